package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLedgerMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLedgerMetrics(reg)

	m.IncMovement("IN")
	m.IncMovement("IN")
	m.IncMovement("OUT")
	m.IncRejected("insufficient_stock")
	m.IncPersistFailure("")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.movements.WithLabelValues("IN")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.movements.WithLabelValues("OUT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected.WithLabelValues("insufficient_stock")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persistFailures.WithLabelValues("unknown")))
}

func TestInsightMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewInsightMetrics(reg)

	m.IncOutcome("success")
	m.ObserveDuration(150 * time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("success")))
	count, err := testutil.GatherAndCount(reg, "inventory_insight_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNilRegistererIsNoop(t *testing.T) {
	var nilLedger *LedgerMetrics
	assert.NotPanics(t, func() {
		nilLedger.IncMovement("IN")
		NewLedgerMetrics(nil).IncRejected("x")
		NewInsightMetrics(nil).ObserveDuration(time.Second)
	})
}
