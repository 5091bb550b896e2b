package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"passguard/internal/breach"
)

// Metrics provides observability for password evaluation.
type Metrics struct {
	// Verdicts by severity
	Outcomes *prometheus.CounterVec

	// Breach lookup results by status
	BreachResults *prometheus.CounterVec

	// Breach lookup latency
	BreachLatency prometheus.Histogram

	// Overall evaluation latency
	EvaluateLatency prometheus.Histogram
}

// New creates evaluation metrics registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "passguard_evaluation_outcomes_total",
			Help: "Total password verdicts by severity",
		}, []string{"severity"}),

		BreachResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "passguard_breach_results_total",
			Help: "Total breach lookups by result status",
		}, []string{"status"}), // status: "compromised", "clean", "unknown"

		BreachLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "passguard_breach_lookup_duration_seconds",
			Help:    "Duration of breach range lookups",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		EvaluateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "passguard_evaluate_duration_seconds",
			Help:    "Duration of full password evaluation including breach lookup",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncrementOutcome records a verdict severity.
func (m *Metrics) IncrementOutcome(severity string) {
	if m != nil {
		m.Outcomes.WithLabelValues(severity).Inc()
	}
}

// ObserveBreachLookup records a completed breach lookup.
func (m *Metrics) ObserveBreachLookup(status breach.Status, d time.Duration) {
	if m != nil {
		m.BreachResults.WithLabelValues(string(status)).Inc()
		m.BreachLatency.Observe(d.Seconds())
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
