// Package export contains the orchestrator tying the report pipeline
// together: it dispatches a report kind and output format to the single
// matching assembler and renderer, owns the per-call deadline, and owns
// error translation.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storeline-hq/saturn/pkg/report"
	"storeline-hq/saturn/pkg/report/assemble"
	"storeline-hq/saturn/pkg/report/render"
	"storeline-hq/saturn/pkg/report/staging"
	"storeline-hq/saturn/pkg/telemetry/metrics"
)

// DefaultDeadline bounds one export call (fetch plus render) when the
// configuration does not say otherwise.
const DefaultDeadline = 2 * time.Minute

// Config contains the dependencies and settings for the export service.
type Config struct {
	// Source is the data source assemblers pull from. Required.
	Source report.DataSource

	// Staging manages the output directory and filenames. Required.
	Staging *staging.Manager

	// Metrics records export outcomes. Optional.
	Metrics *metrics.ExportMetrics

	// Logger is the structured logger. Defaults to slog.Default.
	Logger *slog.Logger

	// Deadline bounds one export call end to end.
	// Defaults to DefaultDeadline.
	Deadline time.Duration
}

// Service orchestrates report exports. It is stateless across calls and safe
// for concurrent use: concurrent exports share nothing but the output
// directory namespace, where staging's filename scheme keeps them apart.
type Service struct {
	source    report.DataSource
	staging   *staging.Manager
	renderers map[report.OutputFormat]report.Renderer
	metrics   *metrics.ExportMetrics
	logger    *slog.Logger
	deadline  time.Duration
}

// NewService creates the export service and its renderer registry.
func NewService(cfg Config) (*Service, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("export: data source is required")
	}
	if cfg.Staging == nil {
		return nil, fmt.Errorf("export: staging manager is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	deadline := cfg.Deadline
	if deadline <= 0 {
		deadline = DefaultDeadline
	}

	return &Service{
		source:    cfg.Source,
		staging:   cfg.Staging,
		renderers: render.Renderers(cfg.Staging),
		metrics:   cfg.Metrics,
		logger:    logger.With("component", "report.export"),
		deadline:  deadline,
	}, nil
}

// Export runs one report export: validate, assemble, render.
//
// The format is validated before anything else so an unsupported format
// costs no data-source work. The dataset is then fully materialized before
// rendering begins; there is no streaming overlap between the two phases.
//
// Error contract: *report.UnsupportedFormatError for a format outside the
// closed set, *report.DataAccessError when the fetch fails (no file is
// produced), *report.RenderError when file construction fails (no partial
// file remains), and *report.ExportError wrapping anything unexpected.
func (s *Service) Export(ctx context.Context, kind report.ReportKind, format report.OutputFormat, filters *report.FilterSet) (*report.Artifact, error) {
	started := time.Now()

	if !format.Valid() {
		s.observeFailure(kind, format, "unsupported_format")
		return nil, report.NewUnsupportedFormatError(string(format))
	}

	assembler, err := assemble.ForKind(kind)
	if err != nil {
		s.observeFailure(kind, format, "export")
		return nil, report.NewExportError(kind, format, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.deadline)
	defer cancel()

	// Phase 1: materialize the full row set.
	fields, rows, err := assembler.Assemble(ctx, s.source, filters)
	if err != nil {
		return nil, s.translate(kind, format, err)
	}

	// Phase 2: render the materialized rows.
	renderer := s.renderers[format]
	artifact, err := renderer.Render(ctx, fields, rows, kind)
	if err != nil {
		return nil, s.translate(kind, format, err)
	}

	elapsed := time.Since(started)
	if s.metrics != nil {
		s.metrics.ObserveExport(string(kind), string(format), elapsed, artifact.Size)
	}
	s.logger.Info("export completed",
		"kind", kind,
		"format", format,
		"rows", len(rows),
		"artifact", artifact.Filename,
		"bytes", artifact.Size,
		"elapsed", elapsed,
	)

	return artifact, nil
}

// translate classifies a pipeline failure: the taxonomy errors pass through
// unchanged, anything else is wrapped into an ExportError carrying the
// original cause.
func (s *Service) translate(kind report.ReportKind, format report.OutputFormat, err error) error {
	var (
		dae *report.DataAccessError
		re  *report.RenderError
	)
	switch {
	case errors.As(err, &dae):
		s.observeFailure(kind, format, "data_access")
		s.logger.Error("export failed during data access", "kind", kind, "format", format, "error", err)
		return err
	case errors.As(err, &re):
		s.observeFailure(kind, format, "render")
		s.logger.Error("export failed during render", "kind", kind, "format", format, "error", err)
		return err
	default:
		s.observeFailure(kind, format, "export")
		s.logger.Error("export failed", "kind", kind, "format", format, "error", err)
		return report.NewExportError(kind, format, err)
	}
}

func (s *Service) observeFailure(kind report.ReportKind, format report.OutputFormat, errorType string) {
	if s.metrics != nil {
		s.metrics.ObserveFailure(string(kind), string(format), errorType)
	}
}
