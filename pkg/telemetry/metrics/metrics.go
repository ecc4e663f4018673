// Package metrics provides Prometheus instrumentation for the export
// pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ExportMetrics tracks export outcomes, latency and artifact sizes, labeled
// by report kind and output format so per-combination behavior is visible.
type ExportMetrics struct {
	registry *prometheus.Registry

	exportsTotal  *prometheus.CounterVec
	failuresTotal *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	artifactBytes *prometheus.HistogramVec
}

// NewExportMetrics creates and registers the export metrics. If registry is
// nil a new registry is created.
func NewExportMetrics(namespace string, registry *prometheus.Registry) *ExportMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &ExportMetrics{
		registry: registry,
		exportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "completed_total",
			Help:      "Completed exports by report kind and output format.",
		}, []string{"kind", "format"}),
		failuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "failures_total",
			Help:      "Failed exports by report kind, output format and error type.",
		}, []string{"kind", "format", "error_type"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "duration_seconds",
			Help:      "End-to-end export latency (fetch plus render).",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"kind", "format"}),
		artifactBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "artifact_bytes",
			Help:      "Size of produced export artifacts.",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		}, []string{"kind", "format"}),
	}

	registry.MustRegister(m.exportsTotal, m.failuresTotal, m.duration, m.artifactBytes)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *ExportMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveExport records one completed export.
func (m *ExportMetrics) ObserveExport(kind, format string, elapsed time.Duration, artifactSize int64) {
	m.exportsTotal.WithLabelValues(kind, format).Inc()
	m.duration.WithLabelValues(kind, format).Observe(elapsed.Seconds())
	m.artifactBytes.WithLabelValues(kind, format).Observe(float64(artifactSize))
}

// ObserveFailure records one failed export. errorType is the taxonomy name
// ("unsupported_format", "data_access", "render", "export").
func (m *ExportMetrics) ObserveFailure(kind, format, errorType string) {
	m.failuresTotal.WithLabelValues(kind, format, errorType).Inc()
}
