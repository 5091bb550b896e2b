package breach

import (
	"crypto/sha1" //nolint:gosec // SHA-1 is mandated by the range query protocol, not used for secrecy
	"encoding/hex"
	"strings"
)

const (
	prefixLength = 5
	suffixLength = 35
)

// splitHash returns the uppercase hex SHA-1 of password split into the
// prefix sent to the range service and the suffix matched locally.
func splitHash(password string) (prefix, suffix string) {
	sum := sha1.Sum([]byte(password)) //nolint:gosec
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	return digest[:prefixLength], digest[prefixLength:]
}
