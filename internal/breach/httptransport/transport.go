// Package httptransport implements breach.Transport against an HTTP range
// query service such as the Pwned Passwords range API.
package httptransport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"passguard/internal/breach"
	"passguard/pkg/platform/circuit"
)

const (
	providerID = "range-api"

	// MaxBodyBytes caps how much of a range response is read. Real responses
	// are a few tens of kilobytes.
	MaxBodyBytes = 1 << 20
)

var prefixPattern = regexp.MustCompile(`^[0-9A-F]{5}$`)

// Config configures the HTTP transport.
type Config struct {
	BaseURL             string
	Timeout             time.Duration
	UserAgent           string
	Padding             bool
	MaxIdleConnsPerHost int
}

// Transport fetches range responses over HTTP. It is safe for concurrent use.
type Transport struct {
	baseURL   string
	userAgent string
	padding   bool
	client    *http.Client
	breaker   *circuit.Breaker
	logger    *slog.Logger
}

type Option func(*Transport)

// WithBreaker guards the upstream with a circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(t *Transport) {
		t.breaker = b
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *Transport) {
		t.logger = logger
	}
}

// New builds a transport from cfg.
func New(cfg Config, opts ...Option) (*Transport, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	t := &Transport{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		padding:   cfg.Padding,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
			},
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Padded reports whether responses are requested with padding records.
func (t *Transport) Padded() bool {
	return t.padding
}

// FetchRange issues GET {base}{prefix} and returns the response body.
func (t *Transport) FetchRange(ctx context.Context, prefix string) ([]byte, error) {
	if !prefixPattern.MatchString(prefix) {
		return nil, breach.NewProviderError(breach.ErrorInternal, providerID, "prefix must be 5 uppercase hex characters", nil)
	}
	if t.breaker != nil && !t.breaker.Allow() {
		return nil, breach.NewProviderError(breach.ErrorCircuitOpen, providerID, "circuit open", nil)
	}

	body, err := t.fetch(ctx, prefix)
	t.record(ctx, err)
	return body, err
}

func (t *Transport) fetch(ctx context.Context, prefix string) ([]byte, error) {
	endpoint, err := url.JoinPath(t.baseURL, prefix)
	if err != nil {
		return nil, breach.NewProviderError(breach.ErrorInternal, providerID, "build request URL", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, breach.NewProviderError(breach.ErrorInternal, providerID, "create request", err)
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if t.padding {
		req.Header.Set("Add-Padding", "true")
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, classifyRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, classifyRequestError(ctx, err)
	}
	if len(body) > MaxBodyBytes {
		return nil, breach.NewProviderError(breach.ErrorBadData, providerID, "response body exceeds limit", nil)
	}
	return body, nil
}

func statusError(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusTooManyRequests:
		return breach.NewProviderError(breach.ErrorRateLimited, providerID, "rate limited by range service", nil)
	case status >= 500:
		return breach.NewProviderError(breach.ErrorProviderOutage, providerID, fmt.Sprintf("range service returned %d", status), nil)
	default:
		return breach.NewProviderError(breach.ErrorContractMismatch, providerID, fmt.Sprintf("unexpected status %d", status), nil)
	}
}

func classifyRequestError(ctx context.Context, err error) error {
	var ne net.Error
	switch {
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		return breach.NewProviderError(breach.ErrorCanceled, providerID, "request canceled", err)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		return breach.NewProviderError(breach.ErrorTimeout, providerID, "request timed out", err)
	default:
		return breach.NewProviderError(breach.ErrorProviderOutage, providerID, "request failed", err)
	}
}

// record feeds the breaker. Only failures that say something about upstream
// health count against it.
func (t *Transport) record(ctx context.Context, err error) {
	if t.breaker == nil {
		return
	}
	switch breach.GetCategory(err) {
	case breach.ErrorTimeout, breach.ErrorProviderOutage, breach.ErrorRateLimited:
		if _, change := t.breaker.RecordFailure(); change.Opened && t.logger != nil {
			t.logger.WarnContext(ctx, "breach circuit opened", "breaker", t.breaker.Name())
		}
		return
	}
	if err == nil {
		if _, change := t.breaker.RecordSuccess(); change.Closed && t.logger != nil {
			t.logger.InfoContext(ctx, "breach circuit closed", "breaker", t.breaker.Name())
		}
	}
}

// Ready reports whether the transport is willing to send requests.
func (t *Transport) Ready() bool {
	return t.breaker == nil || !t.breaker.IsOpen()
}
