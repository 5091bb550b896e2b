package breach

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	password1Prefix = "70CCD"
	password1Suffix = "9007338D6D81DD3B6271621B9CF9A97EA00"
	otherSuffix     = "0018A45C4D1DEF81644B54AB7F969B88D65"
)

// recordingTransport captures every prefix it is asked for and replies with
// a canned body or error.
type recordingTransport struct {
	mu       sync.Mutex
	prefixes []string
	body     string
	err      error
}

func (r *recordingTransport) FetchRange(_ context.Context, prefix string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefixes = append(r.prefixes, prefix)
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.body), nil
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

type CheckerSuite struct {
	suite.Suite
	transport *recordingTransport
	checker   *Checker
}

func TestCheckerSuite(t *testing.T) {
	suite.Run(t, new(CheckerSuite))
}

func (s *CheckerSuite) SetupTest() {
	s.transport = &recordingTransport{}
	checker, err := New(s.transport, WithTimeout(time.Second))
	s.Require().NoError(err)
	s.checker = checker
}

func (s *CheckerSuite) TestNew() {
	s.Run("nil transport returns error", func() {
		_, err := New(nil)
		s.Error(err)
		s.Contains(err.Error(), "transport is required")
	})

	s.Run("non-positive timeout keeps default", func() {
		c, err := New(s.transport, WithTimeout(0))
		s.NoError(err)
		s.Equal(defaultTimeout, c.timeout)
	})
}

func (s *CheckerSuite) TestOnlyPrefixLeavesTheProcess() {
	s.transport.body = otherSuffix + ":3\n"

	s.checker.Check(context.Background(), "Password1")

	s.Require().Len(s.transport.prefixes, 1)
	sent := s.transport.prefixes[0]
	s.Equal(password1Prefix, sent)
	s.Len(sent, 5)
	s.NotContains(sent, "Password1")
	s.NotContains(sent, password1Suffix)
}

func (s *CheckerSuite) TestCompromisedWhenSuffixListed() {
	s.transport.body = otherSuffix + ":3\r\n" + password1Suffix + ":245\r\n"

	result := s.checker.Check(context.Background(), "Password1")

	s.Equal(Compromised(), result)
	s.True(result.IsCompromised())
}

func (s *CheckerSuite) TestSuffixMatchIgnoresCase() {
	s.transport.body = strings.ToLower(password1Suffix) + "\n"

	s.Equal(Compromised(), s.checker.Check(context.Background(), "Password1"))
}

func (s *CheckerSuite) TestCleanWhenSuffixAbsent() {
	s.transport.body = otherSuffix + ":12\n" + "1E4C9B93F3F0682250B6CF8331B7EE68FD8:1\n"

	result := s.checker.Check(context.Background(), "Password1")

	s.Equal(Clean(), result)
	s.True(result.IsClean())
}

func (s *CheckerSuite) TestRecordsWithoutCounts() {
	s.transport.body = otherSuffix + "\n" + password1Suffix + "\n"

	s.Equal(Compromised(), s.checker.Check(context.Background(), "Password1"))
}

func (s *CheckerSuite) TestFailuresResolveToUnknown() {
	cases := []struct {
		name   string
		err    error
		reason string
	}{
		{name: "provider timeout", err: NewProviderError(ErrorTimeout, "stub", "slow", nil), reason: "timeout"},
		{name: "bare deadline", err: context.DeadlineExceeded, reason: "timeout"},
		{name: "network timeout", err: timeoutError{}, reason: "timeout"},
		{name: "outage", err: NewProviderError(ErrorProviderOutage, "stub", "refused", nil), reason: "provider_outage"},
		{name: "rate limited", err: NewProviderError(ErrorRateLimited, "stub", "429", nil), reason: "rate_limited"},
		{name: "canceled", err: context.Canceled, reason: "canceled"},
		{name: "uncategorized", err: errors.New("boom"), reason: "internal"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.transport.err = tc.err

			result := s.checker.Check(context.Background(), "Password1")

			s.True(result.IsUnknown())
			s.False(result.IsClean())
			s.Equal(Unknown(tc.reason), result)
		})
	}
}

func (s *CheckerSuite) TestMalformedBodiesResolveToBadData() {
	bodies := map[string]string{
		"empty body":       "",
		"only blank lines": "\n\r\n\n",
		"short suffix":     "ABC:1\n",
		"non-hex suffix":   strings.Repeat("Z", 35) + ":1\n",
		"bad count":        password1Suffix + ":many\n",
		"negative count":   password1Suffix + ":-1\n",
		"html error page":  "<html><body>oops</body></html>",
	}

	for name, body := range bodies {
		s.Run(name, func() {
			s.transport.body = body

			s.Equal(Unknown("bad_data"), s.checker.Check(context.Background(), "Password1"))
		})
	}
}

func TestCheckerPaddedResponses(t *testing.T) {
	transport := &recordingTransport{body: password1Suffix + ":0\n" + otherSuffix + ":4\n"}

	t.Run("zero-count record is padding when padding requested", func(t *testing.T) {
		checker, err := New(transport, WithPaddedResponses(true))
		require.NoError(t, err)

		assert.Equal(t, Clean(), checker.Check(context.Background(), "Password1"))
	})

	t.Run("counts are ignored without padding", func(t *testing.T) {
		checker, err := New(transport)
		require.NoError(t, err)

		assert.Equal(t, Compromised(), checker.Check(context.Background(), "Password1"))
	})
}

func TestCheckerTimeoutBoundsStuckTransport(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	stuck := TransportFunc(func(_ context.Context, _ string) ([]byte, error) {
		<-release
		return nil, nil
	})

	checker, err := New(stuck, WithTimeout(20*time.Millisecond))
	require.NoError(t, err)

	start := time.Now()
	result := checker.Check(context.Background(), "Password1")

	assert.Equal(t, Unknown("timeout"), result)
	assert.Less(t, time.Since(start), time.Second)
}

func TestCheckerRecoversPanickingTransport(t *testing.T) {
	panicky := TransportFunc(func(_ context.Context, _ string) ([]byte, error) {
		panic("transport bug")
	})

	checker, err := New(panicky)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		assert.Equal(t, Unknown("internal"), checker.Check(context.Background(), "Password1"))
	})
}

func TestCheckerCanceledByCaller(t *testing.T) {
	blocking := TransportFunc(func(ctx context.Context, _ string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	checker, err := New(blocking)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, Unknown("canceled"), checker.Check(ctx, "Password1"))
}
