// Package telemetry groups Saturn's observability concerns.
//
//   - logging: structured logging over log/slog, shared process-wide
//   - metrics: Prometheus counters and histograms for export outcomes
//
// Both are optional dependencies of the export service: a nil metrics
// collector disables instrumentation, and an absent logger falls back to
// slog.Default.
package telemetry
