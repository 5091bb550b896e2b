package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"passguard/internal/breach"
	"passguard/internal/evaluation"
	"passguard/internal/evaluation/handler/mocks"
	"passguard/internal/leakage"
	"passguard/pkg/testutil"
)

const evaluatePath = "/v1/passwords/evaluate"

var evaluatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type EvaluateHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockService
	logs        *bytes.Buffer
	router      chi.Router
}

func TestEvaluateHandlerSuite(t *testing.T) {
	suite.Run(t, new(EvaluateHandlerSuite))
}

func (s *EvaluateHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = mocks.NewMockService(s.ctrl)
	s.logs = &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(s.logs, nil))

	s.router = chi.NewRouter()
	New(s.mockService, logger, WithClock(func() time.Time { return evaluatedAt })).Register(s.router)
}

func (s *EvaluateHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *EvaluateHandlerSuite) post(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, evaluatePath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func weakVerdict() evaluation.Verdict {
	return evaluation.Verdict{
		Message:      evaluation.MessageWeak,
		Severity:     evaluation.SeverityWeak,
		EntropyScore: 27,
		Breach:       breach.Clean(),
		Leakage: []leakage.Evidence{
			{Field: leakage.FieldName},
			{Field: leakage.FieldLastName},
			{Field: leakage.FieldNationalID},
		},
	}
}

func (s *EvaluateHandlerSuite) TestEvaluateReturnsVerdict() {
	s.mockService.EXPECT().Evaluate(gomock.Any(), "Password1", evaluation.Identity{
		Name: "Ana", LastName: "Silva", NationalID: "12345678900",
	}).Return(weakVerdict())

	w := s.post(`{"password":"Password1","identity":{"name":"Ana","last_name":"Silva","national_id":"12345678900"}}`)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("application/json", w.Header().Get("Content-Type"))

	resp := testutil.UnmarshalResponse[EvaluateResponse](s.T(), w)
	s.Equal("weak password", resp.Message)
	s.Equal("weak", resp.Severity)
	s.Equal(27, resp.EntropyBits)
	s.Equal(BreachResponse{Status: "clean"}, resp.Breach)
	s.Equal([]LeakageResponse{
		{Field: "name"}, {Field: "last_name"}, {Field: "national_id"},
	}, resp.Leakage)
	s.True(evaluatedAt.Equal(resp.EvaluatedAt))
	s.Equal(ThresholdsResponse{Strong: 60, Medium: 40}, resp.Thresholds)
}

func (s *EvaluateHandlerSuite) TestDefaultClockStampsResponse() {
	router := chi.NewRouter()
	New(s.mockService, slog.New(slog.NewJSONHandler(s.logs, nil))).Register(router)
	s.mockService.EXPECT().Evaluate(gomock.Any(), "Password1", evaluation.Identity{}).Return(weakVerdict())

	before := time.Now()
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, evaluatePath, map[string]string{"password": "Password1"})
	w := testutil.DoRequest(router, req)

	s.Equal(http.StatusOK, w.Code)
	resp := testutil.UnmarshalResponse[EvaluateResponse](s.T(), w)
	s.False(resp.EvaluatedAt.Before(before.Truncate(time.Second)))
	s.Equal(time.UTC, resp.EvaluatedAt.Location())
}

func (s *EvaluateHandlerSuite) TestUnknownBreachCarriesReason() {
	verdict := weakVerdict()
	verdict.Severity = evaluation.SeverityError
	verdict.Message = evaluation.MessageBreachFailed
	verdict.Breach = breach.Unknown("timeout")
	s.mockService.EXPECT().Evaluate(gomock.Any(), "Password1", evaluation.Identity{}).Return(verdict)

	w := s.post(`{"password":"Password1"}`)

	s.Equal(http.StatusOK, w.Code)
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(map[string]any{"status": "unknown", "reason": "timeout"}, resp["breach"])
	s.Equal("error", resp["severity"])
}

func (s *EvaluateHandlerSuite) TestEmptyPasswordIsAVerdict() {
	verdict := weakVerdict()
	verdict.Severity = evaluation.SeverityError
	verdict.Message = evaluation.MessageEmptyPassword
	verdict.EntropyScore = 0
	verdict.Breach = breach.Unknown(evaluation.ReasonNotEvaluated)
	s.mockService.EXPECT().Evaluate(gomock.Any(), "", evaluation.Identity{Name: "Ana"}).Return(verdict)

	w := s.post(`{"password":"","identity":{"name":"Ana"}}`)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"message":"empty password"`)
}

func (s *EvaluateHandlerSuite) TestRejectedRequestsNeverReachService() {
	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed JSON", `{"password":`, http.StatusBadRequest, "bad_request"},
		{"wrong type", `{"password":42}`, http.StatusBadRequest, "bad_request"},
		{"unknown field", `{"password":"x","pin":"1"}`, http.StatusBadRequest, "bad_request"},
		{"password too long", `{"password":"` + strings.Repeat("a", 1025) + `"}`, http.StatusBadRequest, "validation_error"},
		{"identity too long", `{"password":"x","identity":{"last_name":"` + strings.Repeat("b", 257) + `"}}`, http.StatusBadRequest, "validation_error"},
		{"body too large", `{"password":"` + strings.Repeat("a", 70<<10) + `"}`, http.StatusRequestEntityTooLarge, "request_too_large"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			w := s.post(tc.body)

			s.Equal(tc.status, w.Code)
			var resp map[string]string
			s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
			s.Equal(tc.code, resp["error"])
		})
	}
}

func (s *EvaluateHandlerSuite) TestPasswordIsNeverLogged() {
	s.mockService.EXPECT().Evaluate(gomock.Any(), gomock.Any(), gomock.Any()).Return(weakVerdict()).Times(1)

	s.post(`{"password":"S3cretPassw0rd!","identity":{"name":"Ana","national_id":"12345678900"}}`)
	s.post(`{"password":"S3cretPassw0rd!",`)

	s.NotEmpty(s.logs.String())
	s.NotContains(s.logs.String(), "S3cretPassw0rd!")
	s.NotContains(s.logs.String(), "12345678900")
}

func (s *EvaluateHandlerSuite) TestMethodNotAllowed() {
	req := httptest.NewRequest(http.MethodGet, evaluatePath, http.NoBody)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusMethodNotAllowed, w.Code)
}
