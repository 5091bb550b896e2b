package evaluation

import (
	"fmt"

	"passguard/internal/leakage"
	dErrors "passguard/pkg/domain-errors"
)

// Classify applies the decision policy to gathered signals.
// Rule priority (first match wins):
//  1. Invalid input (empty password)
//  2. Personal data in the password
//  3. Breach lookup failed
//  4. Breach lookup matched
//  5. Entropy bands
func Classify(s Signals) (Severity, string) {
	switch {
	case s.EntropyErr != nil:
		return SeverityError, MessageEmptyPassword
	case s.Leaked:
		return SeverityBlocked, MessagePersonalData
	case s.Breach.IsUnknown():
		return SeverityError, MessageBreachFailed
	case s.Breach.IsCompromised():
		return SeverityBlocked, MessageCompromised
	}
	return strength(s.Entropy)
}

func strength(bits int) (Severity, string) {
	switch {
	case bits >= strongThreshold:
		return SeverityStrong, MessageStrong
	case bits >= mediumThreshold:
		return SeverityMedium, MessageMedium
	default:
		return SeverityWeak, MessageWeak
	}
}

// BuildVerdict turns signals into a Verdict. It panics with a
// CodeInvariantViolation error if the leakage evidence does not cover every
// identity field in order.
func BuildVerdict(s Signals) Verdict {
	mustCoverAllFields(s.Leakage)

	severity, message := Classify(s)
	entropy := s.Entropy
	if s.EntropyErr != nil {
		entropy = 0
	}

	return Verdict{
		Message:      message,
		Severity:     severity,
		EntropyScore: entropy,
		Breach:       s.Breach,
		Leakage:      append([]leakage.Evidence(nil), s.Leakage...),
	}
}

func mustCoverAllFields(evidence []leakage.Evidence) {
	if len(evidence) != len(leakage.Fields) {
		panic(dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("expected %d leakage entries, got %d", len(leakage.Fields), len(evidence))))
	}
	for i, field := range leakage.Fields {
		if evidence[i].Field != field {
			panic(dErrors.New(dErrors.CodeInvariantViolation,
				fmt.Sprintf("leakage evidence missing field %q", field)))
		}
	}
}

// noLeakage is the evidence reported when detection never ran.
func noLeakage() []leakage.Evidence {
	evidence := make([]leakage.Evidence, len(leakage.Fields))
	for i, field := range leakage.Fields {
		evidence[i] = leakage.Evidence{Field: field}
	}
	return evidence
}
