package rangeservice

import (
	"context"
	"crypto/sha1" //nolint:gosec // matches the range protocol
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

// decoySuffix never matches any password used in the features.
const decoySuffix = "0018A45C4D1DEF81644B54AB7F969B88D65"

// Stub is the range service controls the steps need.
type Stub interface {
	Respond(status int, body string)
	RespondWithSuffixes(suffixes ...string)
	Delay(d time.Duration)
	Paths() []string
	Bodies() []string
}

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	RangeStub() Stub
	BreakerOpen() bool
}

// RegisterSteps registers range service step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &rangeSteps{tc: tc}

	// Setup
	ctx.Step(`^the breach range service lists the password "([^"]*)"$`, steps.listsPassword)
	ctx.Step(`^the breach range service does not list the password$`, steps.listsNothingRelevant)
	ctx.Step(`^the breach range service responds with status (\d+)$`, steps.respondsWithStatus)
	ctx.Step(`^the breach range service is slower than the lookup timeout$`, steps.isSlow)
	ctx.Step(`^the breach range service returns a malformed body$`, steps.returnsMalformedBody)
	ctx.Step(`^the breach range service pads "([^"]*)" with a zero count$`, steps.padsPassword)

	// Privacy assertions
	ctx.Step(`^the breach range service should have received only the prefix of "([^"]*)"$`, steps.receivedOnlyPrefix)
	ctx.Step(`^the breach range service should not have been contacted$`, steps.notContacted)
	ctx.Step(`^the breach range service should have been contacted (\d+) times?$`, steps.contactedTimes)
	ctx.Step(`^the breach circuit should be open$`, steps.circuitOpen)
}

type rangeSteps struct {
	tc TestContext
}

func digest(password string) string {
	sum := sha1.Sum([]byte(password)) //nolint:gosec
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func (s *rangeSteps) listsPassword(ctx context.Context, password string) error {
	s.tc.RangeStub().RespondWithSuffixes(decoySuffix, digest(password)[5:])
	return nil
}

func (s *rangeSteps) listsNothingRelevant(ctx context.Context) error {
	s.tc.RangeStub().RespondWithSuffixes(decoySuffix)
	return nil
}

func (s *rangeSteps) respondsWithStatus(ctx context.Context, status int) error {
	s.tc.RangeStub().Respond(status, "")
	return nil
}

func (s *rangeSteps) isSlow(ctx context.Context) error {
	s.tc.RangeStub().RespondWithSuffixes(decoySuffix)
	s.tc.RangeStub().Delay(2 * time.Second)
	return nil
}

func (s *rangeSteps) returnsMalformedBody(ctx context.Context) error {
	s.tc.RangeStub().Respond(http.StatusOK, "<html><body>maintenance</body></html>")
	return nil
}

func (s *rangeSteps) padsPassword(ctx context.Context, password string) error {
	s.tc.RangeStub().Respond(http.StatusOK, digest(password)[5:]+":0\r\n"+decoySuffix+":7")
	return nil
}

func (s *rangeSteps) receivedOnlyPrefix(ctx context.Context, password string) error {
	full := digest(password)
	paths := s.tc.RangeStub().Paths()
	if len(paths) != 1 {
		return fmt.Errorf("expected exactly one range request, got %d", len(paths))
	}

	want := "/range/" + full[:5]
	if paths[0] != want {
		return fmt.Errorf("expected request path %q, got %q", want, paths[0])
	}
	for _, body := range s.tc.RangeStub().Bodies() {
		if body != "" {
			return fmt.Errorf("expected empty request body, got %d bytes", len(body))
		}
	}
	if strings.Contains(paths[0], full[5:]) || strings.Contains(paths[0], password) {
		return fmt.Errorf("request path leaked more than the prefix")
	}
	return nil
}

func (s *rangeSteps) notContacted(ctx context.Context) error {
	if paths := s.tc.RangeStub().Paths(); len(paths) != 0 {
		return fmt.Errorf("expected no range requests, got %v", paths)
	}
	return nil
}

func (s *rangeSteps) contactedTimes(ctx context.Context, times int) error {
	if got := len(s.tc.RangeStub().Paths()); got != times {
		return fmt.Errorf("expected %d range requests, got %d", times, got)
	}
	return nil
}

func (s *rangeSteps) circuitOpen(ctx context.Context) error {
	if !s.tc.BreakerOpen() {
		return fmt.Errorf("expected breach circuit to be open")
	}
	return nil
}
