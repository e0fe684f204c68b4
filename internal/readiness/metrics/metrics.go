package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for readiness report generation.
type Metrics struct {
	// Reports by star band and whether evidence was partial
	ReportsGenerated *prometheus.CounterVec

	// Cache lookups by result
	CacheLookups *prometheus.CounterVec

	// End-to-end generation latency including evidence loading
	GenerateLatency prometheus.Histogram
}

// New creates and registers the readiness metrics with reg. A nil reg uses
// the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		ReportsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inspectready_readiness_reports_total",
			Help: "Readiness reports generated by star rating and partial evidence",
		}, []string{"stars", "partial"}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inspectready_readiness_cache_lookups_total",
			Help: "Report cache lookups by result",
		}, []string{"result"}), // result: "hit", "miss", "error"

		GenerateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "inspectready_readiness_generate_duration_seconds",
			Help:    "Duration of report generation including evidence loading",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// IncrementReport records a generated report.
func (m *Metrics) IncrementReport(stars int, partial bool) {
	if m != nil {
		m.ReportsGenerated.WithLabelValues(strconv.Itoa(stars), strconv.FormatBool(partial)).Inc()
	}
}

// IncrementCacheLookup records a cache lookup outcome.
func (m *Metrics) IncrementCacheLookup(result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}

// ObserveGenerateLatency records the total generation duration.
func (m *Metrics) ObserveGenerateLatency(d time.Duration) {
	if m != nil {
		m.GenerateLatency.Observe(d.Seconds())
	}
}
