// Package metrics provides Prometheus metrics for the dashboard server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
// Each instance owns its registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	// Dataset metrics
	DatasetLoads        *prometheus.CounterVec
	DatasetLoadDuration *prometheus.HistogramVec

	// Render metrics
	Renders        *prometheus.CounterVec
	ChartDisposals *prometheus.CounterVec
	StaleStepsDrop *prometheus.CounterVec
	MissingTargets *prometheus.CounterVec

	// Session metrics
	ActiveSessions  prometheus.Gauge
	UIEvents        *prometheus.CounterVec
	UIEventsDropped *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "eventlens"
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		DatasetLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "loads_total",
			Help:      "Dataset fetch attempts by dataset and outcome",
		}, []string{"dataset", "status"}),
		DatasetLoadDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "load_duration_seconds",
			Help:      "Dataset fetch and decode latency",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"dataset"}),

		Renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "charts_total",
			Help:      "Chart instances drawn by target",
		}, []string{"target"}),
		ChartDisposals: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "disposals_total",
			Help:      "Chart instances disposed before a redraw or placeholder",
		}, []string{"target"}),
		StaleStepsDrop: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "stale_steps_dropped_total",
			Help:      "Deferred render steps dropped because a newer task superseded them",
		}, []string{"step"}),
		MissingTargets: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "missing_targets_total",
			Help:      "Renders skipped because the view target does not exist",
		}, []string{"target"}),

		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Open dashboard sessions",
		}),
		UIEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "ui_events_total",
			Help:      "User interface events received by type",
		}, []string{"type"}),
		UIEventsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "ui_events_dropped_total",
			Help:      "User interface events dropped by reason",
		}, []string{"reason"}),
	}
}

// WithRuntimeCollectors adds Go runtime and process collectors to the registry
func (m *Metrics) WithRuntimeCollectors() *Metrics {
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry (tests, custom exporters)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the HTTP handler serving this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
