// Package metrics provides Prometheus collectors for the collection services.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics provides observability for the collection services.
type Metrics struct {
	// Operation outcomes by operation name
	Operations *prometheus.CounterVec

	// Operation latency by operation name
	Latency *prometheus.HistogramVec

	// Number of people produced by relationship resolution
	ResolvedPeople prometheus.Histogram
}

// New registers the collectors with reg. A nil registerer uses the default
// Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "social_operations_total",
			Help: "Total collection service operations by operation and outcome",
		}, []string{"operation", "outcome"}),

		Latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "social_operation_duration_seconds",
			Help:    "Duration of collection service operations",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),

		ResolvedPeople: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "social_resolved_people",
			Help:    "Number of people returned by relationship resolution",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),
	}
}

// Observe records the outcome and duration of an operation.
func (m *Metrics) Observe(operation string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.Operations.WithLabelValues(operation, outcome).Inc()
	m.Latency.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveResolved records how many people a lookup produced.
func (m *Metrics) ObserveResolved(n int) {
	if m != nil {
		m.ResolvedPeople.Observe(float64(n))
	}
}
