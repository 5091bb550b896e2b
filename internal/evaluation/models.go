package evaluation

import (
	"passguard/internal/breach"
	"passguard/internal/leakage"
)

// Identity is the personal data a password is checked against.
type Identity = leakage.Identity

// Severity classifies a verdict.
type Severity string

const (
	SeverityStrong  Severity = "strong"
	SeverityMedium  Severity = "medium"
	SeverityWeak    Severity = "weak"
	SeverityBlocked Severity = "blocked"
	SeverityError   Severity = "error"
)

// Verdict messages. The vocabulary is fixed.
const (
	MessageEmptyPassword = "empty password"
	MessagePersonalData  = "password contains personal information"
	MessageBreachFailed  = "breach check failed, retry later"
	MessageCompromised   = "password is compromised"
	MessageStrong        = "strong password"
	MessageMedium        = "medium strength password"
	MessageWeak          = "weak password"
)

// Reasons carried by an unknown breach result when no lookup was made.
const (
	ReasonNotEvaluated = "not evaluated"
	ReasonBlocked      = "not checked — blocked before breach lookup"
)

// Entropy thresholds in bits.
const (
	strongThreshold = 60
	mediumThreshold = 40
)

// Thresholds exposes the entropy reference lines for presentation.
type Thresholds struct {
	Strong int
	Medium int
}

// DefaultThresholds returns the entropy thresholds the policy applies.
func DefaultThresholds() Thresholds {
	return Thresholds{Strong: strongThreshold, Medium: mediumThreshold}
}

// Verdict is the complete outcome of one evaluation. It depends only on the
// password, the identity and the breach result, so equal inputs give equal
// verdicts.
type Verdict struct {
	Message      string
	Severity     Severity
	EntropyScore int
	Breach       breach.Result
	Leakage      []leakage.Evidence
}

// Signals are the raw inputs the policy classifies.
type Signals struct {
	Entropy    int
	EntropyErr error
	Leaked     bool
	Leakage    []leakage.Evidence
	Breach     breach.Result
}
