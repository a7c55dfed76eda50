// Package monitoring exposes Prometheus metrics for the window-state
// pipeline: event coalescing, flush latency, and restore outcomes.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the library.
type Metrics struct {
	// Tracker metrics
	EventsTotal    *prometheus.CounterVec
	FlushesTotal   prometheus.Counter
	FlushErrors    prometheus.Counter
	FlushDuration  prometheus.Histogram
	WindowsTracked prometheus.Gauge

	// Restore metrics
	RestoresTotal   prometheus.Counter
	RestoresClamped prometheus.Counter
	AttributeErrors *prometheus.CounterVec
}

// New creates metrics registered against reg. A nil registerer gets a
// private registry, which keeps repeated construction (tests, multiple
// managers) from colliding on the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "winstate",
			Name:      "events_total",
			Help:      "Window change events received, by kind",
		}, []string{"kind"}),
		FlushesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "winstate",
			Name:      "flushes_total",
			Help:      "State file flushes attempted",
		}),
		FlushErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "winstate",
			Name:      "flush_errors_total",
			Help:      "State file flushes that failed",
		}),
		FlushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "winstate",
			Name:      "flush_duration_seconds",
			Help:      "State file flush latency",
			Buckets:   prometheus.DefBuckets,
		}),
		WindowsTracked: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "winstate",
			Name:      "windows_tracked",
			Help:      "Windows currently tracked for persistence",
		}),
		RestoresTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "winstate",
			Name:      "restores_total",
			Help:      "Restore operations performed",
		}),
		RestoresClamped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "winstate",
			Name:      "restores_clamped_total",
			Help:      "Restores whose saved geometry was clamped on-screen",
		}),
		AttributeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "winstate",
			Name:      "attribute_errors_total",
			Help:      "Attribute applications rejected by the host, by attribute",
		}, []string{"attribute"}),
	}
}
