// Package metrics exposes Prometheus counters for translation calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for Metrics.Outcomes
const (
	OutcomeCompleted = "completed"
	OutcomeNoResult  = "no_result"
	OutcomeFailed    = "failed"
	OutcomeExhausted = "exhausted"
)

// Metrics contains all Prometheus metrics for translation calls.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Requests         *prometheus.CounterVec
	Outcomes         *prometheus.CounterVec
	Retries          *prometheus.CounterVec
	ThrottleWarnings *prometheus.CounterVec
	BudgetBlocks     *prometheus.CounterVec
	UnitsConsumed    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// NewMetrics creates the metrics and registers them on reg. A nil reg
// registers on the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "turbo_translate_requests_total",
			Help: "Total number of translation calls started",
		}, []string{"provider"}),
		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "turbo_translate_outcomes_total",
			Help: "Total number of translation calls by outcome",
		}, []string{"provider", "outcome"}),
		Retries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "turbo_translate_retries_total",
			Help: "Total number of retries after a rate-limited response",
		}, []string{"provider"}),
		ThrottleWarnings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "turbo_translate_throttle_warnings_total",
			Help: "Total number of calls that reached their last retry",
		}, []string{"provider"}),
		BudgetBlocks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "turbo_translate_budget_blocks_total",
			Help: "Total number of waits on the client-side quota",
		}, []string{"provider"}),
		UnitsConsumed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "turbo_translate_units_consumed_total",
			Help: "Estimated units (characters or tokens) sent in completed calls",
		}, []string{"provider"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "turbo_translate_request_duration_seconds",
			Help:    "Duration of translation calls including retries",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
		}, []string{"provider"}),
	}
}

// RecordRequest increments the started calls counter
func (m *Metrics) RecordRequest(provider string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(provider).Inc()
}

// RecordOutcome counts a finished call and observes its duration
func (m *Metrics) RecordOutcome(provider, outcome string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(provider, outcome).Inc()
	m.RequestDuration.WithLabelValues(provider).Observe(durationSeconds)
}

// RecordRetry increments the retries counter
func (m *Metrics) RecordRetry(provider string) {
	if m == nil {
		return
	}
	m.Retries.WithLabelValues(provider).Inc()
}

// RecordThrottleWarning increments the last-retry warnings counter
func (m *Metrics) RecordThrottleWarning(provider string) {
	if m == nil {
		return
	}
	m.ThrottleWarnings.WithLabelValues(provider).Inc()
}

// RecordBudgetBlock increments the quota waits counter
func (m *Metrics) RecordBudgetBlock(provider string) {
	if m == nil {
		return
	}
	m.BudgetBlocks.WithLabelValues(provider).Inc()
}

// RecordUnits adds units to the consumed units counter
func (m *Metrics) RecordUnits(provider string, units int) {
	if m == nil {
		return
	}
	m.UnitsConsumed.WithLabelValues(provider).Add(float64(units))
}
