package breach

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy for range lookups. The
// category doubles as the reason carried by an Unknown result.
type ErrorCategory string

const (
	// ErrorTimeout indicates the range service took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the response body could not be parsed as suffix records
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorProviderOutage indicates the range service is unreachable or failing
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorRateLimited indicates the range service throttled the request
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorContractMismatch indicates an unexpected non-success status
	ErrorContractMismatch ErrorCategory = "contract_mismatch"

	// ErrorCircuitOpen indicates the lookup was skipped because the breaker is open
	ErrorCircuitOpen ErrorCategory = "circuit_open"

	// ErrorCanceled indicates the caller abandoned the lookup
	ErrorCanceled ErrorCategory = "canceled"

	// ErrorInternal indicates an unexpected internal error
	ErrorInternal ErrorCategory = "internal"
)

// ProviderError wraps range service failures with normalized categorization.
type ProviderError struct {
	Category   ErrorCategory
	ProviderID string
	Message    string
	Underlying error
	Retryable  bool // Whether a caller-initiated retry is worthwhile
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("provider %s [%s]: %s: %v", e.ProviderID, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("provider %s [%s]: %s", e.ProviderID, e.Category, e.Message)
}

// Unwrap supports error unwrapping
func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// NewProviderError creates a new normalized provider error
func NewProviderError(category ErrorCategory, providerID, message string, underlying error) *ProviderError {
	retryable := category == ErrorTimeout ||
		category == ErrorProviderOutage ||
		category == ErrorRateLimited ||
		category == ErrorCircuitOpen

	return &ProviderError{
		Category:   category,
		ProviderID: providerID,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// IsRetryable checks if an error is worth retrying
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

// GetCategory extracts the error category from an error
func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}
