// Package leakage detects reuse of a user's own personal data inside a password.
package leakage

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Field names a piece of personal data checked against the password.
type Field string

const (
	FieldName       Field = "name"
	FieldLastName   Field = "last_name"
	FieldNationalID Field = "national_id"
)

// Fields lists every checked field in the order evidence is reported.
var Fields = []Field{FieldName, FieldLastName, FieldNationalID}

// Identity is the personal data supplied alongside a password. It is only
// compared against the password and never retained.
type Identity struct {
	Name       string
	LastName   string
	NationalID string
}

// Evidence records whether one identity field appears inside the password.
type Evidence struct {
	Field   Field
	Present bool
}

// Detect reports whether password contains any identity field, together with
// one Evidence entry per field in Fields order. Name and last name are matched
// case-insensitively; the national id is matched verbatim. Empty or
// whitespace-only fields never match.
func Detect(password string, id Identity) (bool, []Evidence) {
	folded := fold(password)

	evidence := []Evidence{
		{Field: FieldName, Present: containsFolded(folded, id.Name)},
		{Field: FieldLastName, Present: containsFolded(folded, id.LastName)},
		{Field: FieldNationalID, Present: containsVerbatim(password, id.NationalID)},
	}

	hasLeak := false
	for _, e := range evidence {
		hasLeak = hasLeak || e.Present
	}
	return hasLeak, evidence
}

// Blank values are skipped; anything else is matched as given, surrounding
// whitespace included.
func containsFolded(foldedPassword, value string) bool {
	if isBlank(value) {
		return false
	}
	return strings.Contains(foldedPassword, fold(value))
}

func containsVerbatim(password, value string) bool {
	if isBlank(value) {
		return false
	}
	return strings.Contains(password, value)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// fold normalises to NFC first so composed and decomposed accents compare equal.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
