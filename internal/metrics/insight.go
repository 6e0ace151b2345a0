package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// InsightMetrics records narrative insight requests.
type InsightMetrics struct {
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewInsightMetrics(reg prometheus.Registerer) *InsightMetrics {
	if reg == nil {
		return &InsightMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_insight_requests_total",
		Help: "Narrative insight requests by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "inventory_insight_duration_seconds",
		Help:    "Duration of calls to the text generation service.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(requests, duration)
	return &InsightMetrics{requests: requests, duration: duration}
}

func (m *InsightMetrics) IncOutcome(outcome string) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *InsightMetrics) ObserveDuration(d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.Observe(d.Seconds())
}
