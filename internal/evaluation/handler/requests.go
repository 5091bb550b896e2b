package handler

import (
	"unicode/utf8"

	"passguard/internal/evaluation"
	dErrors "passguard/pkg/domain-errors"
)

const (
	maxPasswordRunes = 1024
	maxIdentityRunes = 256
)

// EvaluateRequest is the HTTP request body for POST /v1/passwords/evaluate.
type EvaluateRequest struct {
	Password string          `json:"password"`
	Identity IdentityRequest `json:"identity"`
}

// IdentityRequest holds the personal data the password is checked against.
type IdentityRequest struct {
	Name       string `json:"name"`
	LastName   string `json:"last_name"`
	NationalID string `json:"national_id"`
}

// Validate enforces size limits. An empty password is not a validation
// error: it produces an error verdict instead.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	if utf8.RuneCountInString(r.Password) > maxPasswordRunes {
		return dErrors.New(dErrors.CodeValidation, "password must be at most 1024 characters")
	}

	fields := []struct{ name, value string }{
		{"identity.name", r.Identity.Name},
		{"identity.last_name", r.Identity.LastName},
		{"identity.national_id", r.Identity.NationalID},
	}
	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > maxIdentityRunes {
			return dErrors.New(dErrors.CodeValidation, f.name+" must be at most 256 characters")
		}
	}

	return nil
}

// ToIdentity converts the request identity to the domain type.
func (r *EvaluateRequest) ToIdentity() evaluation.Identity {
	return evaluation.Identity{
		Name:       r.Identity.Name,
		LastName:   r.Identity.LastName,
		NationalID: r.Identity.NationalID,
	}
}
