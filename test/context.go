// Package test drives the assembled HTTP stack end to end against an
// in-process breach range service.
package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"passguard/internal/breach"
	"passguard/internal/breach/httptransport"
	"passguard/internal/evaluation"
	"passguard/internal/evaluation/handler"
	evalmetrics "passguard/internal/evaluation/metrics"
	httpapi "passguard/internal/http"
	"passguard/pkg/platform/circuit"
	"passguard/pkg/testutil"
)

// LookupTimeout bounds breach lookups in acceptance scenarios.
const LookupTimeout = 200 * time.Millisecond

// TestContext holds one scenario's stack and the last HTTP exchange.
type TestContext struct {
	RangeService *testutil.RangeStub
	router       http.Handler
	breaker      *circuit.Breaker

	lastStatus int
	lastBody   []byte
}

// NewTestContext starts a fresh range stub and wires the full stack to it.
func NewTestContext() (*TestContext, error) {
	stub := testutil.NewRangeStub()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	breaker := circuit.New("breach-range", circuit.WithFailureThreshold(3), circuit.WithCooldown(time.Hour))

	transport, err := httptransport.New(httptransport.Config{
		BaseURL:   stub.BaseURL(),
		Timeout:   LookupTimeout,
		UserAgent: "passguard-acceptance",
		Padding:   true,
	}, httptransport.WithBreaker(breaker))
	if err != nil {
		stub.Close()
		return nil, err
	}

	checker, err := breach.New(transport,
		breach.WithTimeout(LookupTimeout),
		breach.WithPaddedResponses(transport.Padded()),
		breach.WithLogger(logger),
	)
	if err != nil {
		stub.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	service, err := evaluation.New(checker,
		evaluation.WithLogger(logger),
		evaluation.WithMetrics(evalmetrics.New(registry)),
	)
	if err != nil {
		stub.Close()
		return nil, err
	}

	return &TestContext{
		RangeService: stub,
		router:       httpapi.NewRouter(logger, registry, transport, handler.New(service, logger)),
		breaker:      breaker,
	}, nil
}

// Close releases the range stub.
func (tc *TestContext) Close() {
	tc.RangeService.Close()
}

// POST sends body as JSON. A string body is sent verbatim.
func (tc *TestContext) POST(path string, body interface{}) error {
	var raw []byte
	switch b := body.(type) {
	case string:
		raw = []byte(b)
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		raw = encoded
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	tc.do(req)
	return nil
}

// GET issues a GET request.
func (tc *TestContext) GET(path string, headers map[string]string) error {
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	tc.do(req)
	return nil
}

func (tc *TestContext) do(req *http.Request) {
	rr := httptest.NewRecorder()
	tc.router.ServeHTTP(rr, req)
	tc.lastStatus = rr.Code
	tc.lastBody = rr.Body.Bytes()
}

// GetResponseField resolves a dotted path such as "breach.status" in the
// last JSON response.
func (tc *TestContext) GetResponseField(field string) (interface{}, error) {
	var current interface{}
	if err := json.Unmarshal(tc.lastBody, &current); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	for _, part := range strings.Split(field, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object", field, part)
		}
		current, ok = obj[part]
		if !ok {
			return nil, fmt.Errorf("field %q not found in response", field)
		}
	}
	return current, nil
}

func (tc *TestContext) GetLastResponseStatus() int {
	return tc.lastStatus
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.lastBody
}

// BreakerOpen reports whether the breach circuit is open.
func (tc *TestContext) BreakerOpen() bool {
	return tc.breaker.IsOpen()
}
