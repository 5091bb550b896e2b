package handler

import (
	"time"

	"passguard/internal/evaluation"
)

// EvaluateResponse is the HTTP response for POST /v1/passwords/evaluate.
type EvaluateResponse struct {
	Message     string             `json:"message"`
	Severity    string             `json:"severity"`
	EntropyBits int                `json:"entropy_bits"`
	Breach      BreachResponse     `json:"breach"`
	Leakage     []LeakageResponse  `json:"leakage"`
	EvaluatedAt time.Time          `json:"evaluated_at"`
	Thresholds  ThresholdsResponse `json:"thresholds"`
}

// BreachResponse is the breach portion of the response.
type BreachResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// LeakageResponse reports one identity field.
type LeakageResponse struct {
	Field   string `json:"field"`
	Present bool   `json:"present"`
}

// ThresholdsResponse carries the entropy reference lines.
type ThresholdsResponse struct {
	Strong int `json:"strong"`
	Medium int `json:"medium"`
}

// FromVerdict converts a domain Verdict to an HTTP response stamped with the
// time the evaluation completed.
func FromVerdict(v evaluation.Verdict, evaluatedAt time.Time) *EvaluateResponse {
	leakage := make([]LeakageResponse, 0, len(v.Leakage))
	for _, e := range v.Leakage {
		leakage = append(leakage, LeakageResponse{Field: string(e.Field), Present: e.Present})
	}

	thresholds := evaluation.DefaultThresholds()

	return &EvaluateResponse{
		Message:     v.Message,
		Severity:    string(v.Severity),
		EntropyBits: v.EntropyScore,
		Breach: BreachResponse{
			Status: string(v.Breach.Status),
			Reason: v.Breach.Reason,
		},
		Leakage:     leakage,
		EvaluatedAt: evaluatedAt,
		Thresholds: ThresholdsResponse{
			Strong: thresholds.Strong,
			Medium: thresholds.Medium,
		},
	}
}
