package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"passguard/internal/evaluation"
	"passguard/pkg/platform/httputil"
	"passguard/pkg/platform/middleware/metadata"
)

// Service defines the interface for password evaluation.
type Service interface {
	Evaluate(ctx context.Context, password string, identity evaluation.Identity) evaluation.Verdict
}

// Handler wires evaluation endpoints to the evaluation service.
type Handler struct {
	service Service
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Handler)

// WithClock overrides the time stamped on responses as evaluated_at.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// New constructs an evaluation handler with its dependencies.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts evaluation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/passwords/evaluate", h.HandleEvaluate)
}

// HandleEvaluate handles POST /v1/passwords/evaluate requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetReqID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	verdict := h.service.Evaluate(ctx, req.Password, req.ToIdentity())
	evaluatedAt := h.now().UTC()

	h.logger.InfoContext(ctx, "evaluation request served",
		"request_id", requestID,
		"client_bot", metadata.ClientFromContext(ctx).Bot,
		"severity", verdict.Severity,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromVerdict(verdict, evaluatedAt))
}
