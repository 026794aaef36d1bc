package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordRequest("microsoft")
	m.RecordRequest("microsoft")
	m.RecordRetry("microsoft")
	m.RecordThrottleWarning("microsoft")
	m.RecordBudgetBlock("openai")
	m.RecordUnits("microsoft", 42)
	m.RecordOutcome("microsoft", OutcomeCompleted, 0.2)
	m.RecordOutcome("microsoft", OutcomeExhausted, 1.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("microsoft")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Retries.WithLabelValues("microsoft")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ThrottleWarnings.WithLabelValues("microsoft")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BudgetBlocks.WithLabelValues("openai")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.UnitsConsumed.WithLabelValues("microsoft")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Outcomes.WithLabelValues("microsoft", OutcomeCompleted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Outcomes.WithLabelValues("microsoft", OutcomeExhausted)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordRequest("microsoft")
		m.RecordOutcome("microsoft", OutcomeFailed, 1)
		m.RecordRetry("microsoft")
		m.RecordThrottleWarning("microsoft")
		m.RecordBudgetBlock("microsoft")
		m.RecordUnits("microsoft", 1)
	})
}

func TestMetrics_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.RecordRequest("openai")

	assert.Panics(t, func() { NewMetrics(reg) }, "duplicate registration")

	count, err := testutil.GatherAndCount(reg, "turbo_translate_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
