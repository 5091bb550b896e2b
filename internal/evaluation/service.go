// Package evaluation turns a password and the owner's identity into a single
// verdict by combining entropy, personal-data leakage and breach signals.
package evaluation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"passguard/internal/breach"
	"passguard/internal/evaluation/metrics"
)

// BreachChecker looks a password up in a breach corpus. Implementations must
// resolve every failure to an unknown result rather than returning an error.
type BreachChecker interface {
	Check(ctx context.Context, password string) breach.Result
}

var tracer = otel.Tracer("passguard/evaluation")

// Service evaluates passwords. It holds no per-evaluation state and is safe
// for concurrent use.
type Service struct {
	breach  BreachChecker
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(checker BreachChecker, opts ...Option) (*Service, error) {
	if checker == nil {
		return nil, fmt.Errorf("breach checker is required")
	}

	s := &Service{
		breach: checker,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Evaluate produces exactly one complete Verdict. It never returns an error:
// failures surface as an error severity with an unknown breach result.
func (s *Service) Evaluate(ctx context.Context, password string, identity Identity) Verdict {
	start := time.Now()
	evaluationID := uuid.New()

	ctx, span := tracer.Start(ctx, "evaluation.Evaluate",
		trace.WithAttributes(attribute.String("evaluation.id", evaluationID.String())),
	)
	defer span.End()

	signals := s.gatherSignals(ctx, password, identity)
	verdict := BuildVerdict(signals)

	span.SetAttributes(
		attribute.String("evaluation.severity", string(verdict.Severity)),
		attribute.String("breach.status", string(verdict.Breach.Status)),
	)

	duration := time.Since(start)
	s.metrics.IncrementOutcome(string(verdict.Severity))
	s.metrics.ObserveEvaluateLatency(duration)

	if s.logger != nil {
		s.logger.InfoContext(ctx, "password evaluated",
			"evaluation_id", evaluationID.String(),
			"severity", verdict.Severity,
			"breach_status", verdict.Breach.Status,
			"breach_reason", verdict.Breach.Reason,
			"leak_detected", signals.Leaked,
			"duration_ms", duration.Milliseconds(),
		)
	}

	return verdict
}
