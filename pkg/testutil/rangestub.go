package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// RangeStub is an in-process breach range service. It records every
// requested path so tests can assert what left the process.
type RangeStub struct {
	server *httptest.Server

	mu     sync.Mutex
	status int
	body   string
	delay  time.Duration
	paths  []string
	bodies []string
}

// NewRangeStub starts a stub that answers 200 with an empty body until
// configured. Callers must Close it.
func NewRangeStub() *RangeStub {
	s := &RangeStub{status: http.StatusOK}
	s.server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

func (s *RangeStub) serve(w http.ResponseWriter, r *http.Request) {
	reqBody, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.paths = append(s.paths, r.URL.Path)
	s.bodies = append(s.bodies, string(reqBody))
	status, body, delay := s.status, s.body, s.delay
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// BaseURL is the range endpoint prefix, ending in a slash.
func (s *RangeStub) BaseURL() string {
	return s.server.URL + "/range/"
}

// Respond sets the status and body for subsequent lookups.
func (s *RangeStub) Respond(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = body
}

// RespondWithSuffixes answers 200 with one SUFFIX:COUNT record per suffix.
func (s *RangeStub) RespondWithSuffixes(suffixes ...string) {
	lines := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		lines = append(lines, suffix+":1")
	}
	s.Respond(http.StatusOK, strings.Join(lines, "\r\n"))
}

// Delay holds each response for d.
func (s *RangeStub) Delay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Paths returns the request paths seen so far.
func (s *RangeStub) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

// Bodies returns the request bodies seen so far.
func (s *RangeStub) Bodies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.bodies...)
}

// Close shuts the stub down.
func (s *RangeStub) Close() {
	s.server.Close()
}
