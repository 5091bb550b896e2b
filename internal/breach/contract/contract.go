// Package contract holds reusable behavioral checks that every
// breach.Transport implementation is expected to pass.
package contract

import (
	"context"
	"testing"

	"passguard/internal/breach"
)

// RangeTest checks a successful range lookup.
type RangeTest struct {
	Name         string
	Transport    breach.Transport
	Prefix       string
	ValidateFunc func(body []byte) error
}

// Suite is a collection of range tests for one transport.
type Suite struct {
	TransportName string
	Tests         []RangeTest
}

// Run executes all range tests in the suite.
func (s *Suite) Run(t *testing.T) {
	for _, test := range s.Tests {
		t.Run(s.TransportName+"/"+test.Name, func(t *testing.T) {
			body, err := test.Transport.FetchRange(context.Background(), test.Prefix)
			if err != nil {
				t.Fatalf("range lookup failed: %v", err)
			}

			if len(body) == 0 {
				t.Error("range lookup returned an empty body")
			}

			if test.ValidateFunc != nil {
				if err := test.ValidateFunc(body); err != nil {
					t.Errorf("custom validation failed: %v", err)
				}
			}
		})
	}
}

// ErrorTest validates that transport failures follow the breach error taxonomy.
type ErrorTest struct {
	Name          string
	Transport     breach.Transport
	Prefix        string
	ExpectedError breach.ErrorCategory
	ExpectedRetry bool
}

// Run executes an error contract test.
func (et *ErrorTest) Run(t *testing.T) {
	t.Run(et.Name, func(t *testing.T) {
		_, err := et.Transport.FetchRange(context.Background(), et.Prefix)
		if err == nil {
			t.Fatal("expected error, got nil")
		}

		if category := breach.GetCategory(err); category != et.ExpectedError {
			t.Errorf("expected error category %s, got %s", et.ExpectedError, category)
		}

		if retry := breach.IsRetryable(err); retry != et.ExpectedRetry {
			t.Errorf("expected retryable=%v, got %v", et.ExpectedRetry, retry)
		}
	})
}
