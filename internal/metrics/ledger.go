package metrics

import "github.com/prometheus/client_golang/prometheus"

// LedgerMetrics counts stock movements and persistence outcomes.
type LedgerMetrics struct {
	movements       *prometheus.CounterVec
	rejected        *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
}

// NewLedgerMetrics registers the ledger metrics on reg. A nil reg yields a no-op recorder.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	movements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_stock_movements_total",
		Help: "Committed stock movements by type.",
	}, []string{"type"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_stock_movements_rejected_total",
		Help: "Rejected stock movements by reason.",
	}, []string{"reason"})
	persistFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_persistence_failures_total",
		Help: "Failed collection writes by collection.",
	}, []string{"collection"})
	reg.MustRegister(movements, rejected, persistFailures)
	return &LedgerMetrics{
		movements:       movements,
		rejected:        rejected,
		persistFailures: persistFailures,
	}
}

func (m *LedgerMetrics) IncMovement(movementType string) {
	if m == nil || m.movements == nil {
		return
	}
	m.movements.WithLabelValues(normalizeLabel(movementType)).Inc()
}

func (m *LedgerMetrics) IncRejected(reason string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

func (m *LedgerMetrics) IncPersistFailure(collection string) {
	if m == nil || m.persistFailures == nil {
		return
	}
	m.persistFailures.WithLabelValues(normalizeLabel(collection)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
