package breach

import "fmt"

// Status is the outcome of a breach lookup.
type Status string

const (
	StatusCompromised Status = "compromised"
	StatusClean       Status = "clean"
	StatusUnknown     Status = "unknown"
)

// Result is the tri-state outcome of a breach lookup. Reason is only set for
// StatusUnknown and explains why the lookup could not complete.
type Result struct {
	Status Status
	Reason string
}

// Compromised is the result for a password found in the breach corpus.
func Compromised() Result {
	return Result{Status: StatusCompromised}
}

// Clean is the result for a password absent from a fully scanned range.
func Clean() Result {
	return Result{Status: StatusClean}
}

// Unknown is the result for a lookup that could not complete.
func Unknown(reason string) Result {
	return Result{Status: StatusUnknown, Reason: reason}
}

// IsCompromised reports whether the password was found.
func (r Result) IsCompromised() bool {
	return r.Status == StatusCompromised
}

// IsClean reports whether the lookup completed without a match.
func (r Result) IsClean() bool {
	return r.Status == StatusClean
}

// IsUnknown reports whether the lookup failed. The zero Result counts as
// unknown so an unset result can never pass for clean.
func (r Result) IsUnknown() bool {
	return r.Status != StatusCompromised && r.Status != StatusClean
}

func (r Result) String() string {
	if r.IsUnknown() {
		return fmt.Sprintf("%s(%s)", StatusUnknown, r.Reason)
	}
	return string(r.Status)
}
