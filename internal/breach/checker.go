// Package breach checks passwords against a public breach corpus using a
// k-anonymity range query: only the first five hex characters of the
// password's SHA-1 digest ever leave the process.
package breach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const defaultTimeout = 5 * time.Second

var tracer = otel.Tracer("passguard/breach")

// Checker resolves a password to a tri-state breach Result.
type Checker struct {
	transport Transport
	timeout   time.Duration
	padded    bool
	logger    *slog.Logger
}

type Option func(*Checker)

// WithTimeout bounds a single range lookup. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithPaddedResponses tells the checker the transport requests padded
// responses, so zero-count records are synthetic and must not match.
func WithPaddedResponses(padded bool) Option {
	return func(c *Checker) {
		c.padded = padded
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

// New constructs a Checker over transport.
func New(transport Transport, opts ...Option) (*Checker, error) {
	if transport == nil {
		return nil, fmt.Errorf("transport is required")
	}

	c := &Checker{
		transport: transport,
		timeout:   defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type fetchOutcome struct {
	body []byte
	err  error
}

// Check looks password up in the breach corpus. It never returns an error:
// every failure resolves to Unknown with the failure category as reason.
func (c *Checker) Check(ctx context.Context, password string) Result {
	ctx, span := tracer.Start(ctx, "breach.Check")
	defer span.End()

	prefix, suffix := splitHash(password)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// The fetch runs in its own goroutine so a transport that ignores ctx
	// still cannot hold the caller past the timeout.
	done := make(chan fetchOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fetchOutcome{err: NewProviderError(ErrorInternal, "", "transport panicked", fmt.Errorf("%v", r))}
			}
		}()
		body, err := c.transport.FetchRange(ctx, prefix)
		done <- fetchOutcome{body: body, err: err}
	}()

	var out fetchOutcome
	select {
	case out = <-done:
	case <-ctx.Done():
		out = fetchOutcome{err: ctx.Err()}
	}

	result := c.resolve(ctx, out, suffix)
	span.SetAttributes(attribute.String("breach.status", string(result.Status)))
	if result.IsUnknown() {
		span.SetStatus(codes.Error, result.Reason)
	}
	return result
}

func (c *Checker) resolve(ctx context.Context, out fetchOutcome, suffix string) Result {
	if out.err != nil {
		category := classify(out.err)
		c.warn(ctx, "breach lookup failed",
			"category", category,
			"retryable", IsRetryable(out.err),
			"error", out.err,
		)
		return Unknown(string(category))
	}

	records, err := parseRange(out.body)
	if err != nil {
		c.warn(ctx, "breach range response malformed",
			"category", ErrorBadData,
			"error", err,
		)
		return Unknown(string(ErrorBadData))
	}

	for _, rec := range records {
		if c.padded && rec.counted && rec.count == 0 {
			continue
		}
		if rec.suffix == suffix {
			return Compromised()
		}
	}
	return Clean()
}

// classify maps a transport failure onto the error taxonomy. Explicit
// provider errors win; bare context and network timeouts are recognized so
// stub or third-party transports still resolve to a meaningful reason.
func classify(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ErrorTimeout
	}
	if errors.Is(err, context.Canceled) {
		return ErrorCanceled
	}
	return ErrorInternal
}

func (c *Checker) warn(ctx context.Context, msg string, args ...any) {
	if c.logger != nil {
		c.logger.WarnContext(ctx, msg, args...)
	}
}
