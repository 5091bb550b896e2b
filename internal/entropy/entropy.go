// Package entropy estimates password strength from its character distribution.
package entropy

import (
	"math"

	dErrors "passguard/pkg/domain-errors"
)

// tolerance absorbs float drift so exact results (e.g. 8.0000000001) are not
// rounded up past their true value.
const tolerance = 1e-9

// ErrInvalidInput is returned for an empty password.
var ErrInvalidInput = dErrors.New(dErrors.CodeInvalidInput, "password is empty")

// Estimate returns the Shannon entropy of password in bits, rounded up:
// ceil(H × n) where H is the per-rune entropy over the password's own rune
// frequencies and n its length in runes.
func Estimate(password string) (int, error) {
	runes := []rune(password)
	n := len(runes)
	if n == 0 {
		return 0, ErrInvalidInput
	}

	counts := make(map[rune]int, n)
	for _, r := range runes {
		counts[r]++
	}

	total := float64(n)
	var perChar float64
	for _, c := range counts {
		p := float64(c) / total
		perChar -= p * math.Log2(p)
	}

	bits := math.Ceil(perChar*total - tolerance)
	if bits < 0 {
		return 0, nil
	}
	return int(bits), nil
}
