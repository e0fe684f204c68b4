package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for evidence snapshot loading.
type Metrics struct {
	// Fetch latency by source
	SourceLatency *prometheus.HistogramVec

	// Fetch failures by source and error category
	SourceFailures *prometheus.CounterVec

	// Appliance records dropped by the tenant guard
	TenantMismatches prometheus.Counter

	// Whole snapshot latency
	LoadLatency prometheus.Histogram
}

// New creates and registers the evidence metrics with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		SourceLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inspectready_evidence_source_duration_seconds",
			Help:    "Duration of evidence source fetches by source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source"}),

		SourceFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inspectready_evidence_source_failures_total",
			Help: "Evidence source fetches that degraded to an empty collection",
		}, []string{"source", "category"}),

		TenantMismatches: factory.NewCounter(prometheus.CounterOpts{
			Name: "inspectready_evidence_tenant_mismatch_total",
			Help: "Appliance records dropped because site or company did not match the request",
		}),

		LoadLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "inspectready_evidence_snapshot_duration_seconds",
			Help:    "Duration of a full evidence snapshot load",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// ObserveSourceLatency records the duration of fetching one source.
func (m *Metrics) ObserveSourceLatency(source string, d time.Duration) {
	if m != nil {
		m.SourceLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementSourceFailure records a degraded source.
func (m *Metrics) IncrementSourceFailure(source, category string) {
	if m != nil {
		m.SourceFailures.WithLabelValues(source, category).Inc()
	}
}

// AddTenantMismatches records dropped cross-tenant appliance records.
func (m *Metrics) AddTenantMismatches(n int) {
	if m != nil && n > 0 {
		m.TenantMismatches.Add(float64(n))
	}
}

// ObserveLoadLatency records the total snapshot duration.
func (m *Metrics) ObserveLoadLatency(d time.Duration) {
	if m != nil {
		m.LoadLatency.Observe(d.Seconds())
	}
}
