package render

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"storeline-hq/saturn/pkg/report"
	"storeline-hq/saturn/pkg/report/staging"
)

// CSVRenderer renders the delimited-text output format. The header row is
// the field list verbatim; quoting and escaping follow RFC 4180 via
// encoding/csv. The file is written to a temp path and renamed on success so
// a failure mid-write never leaves a partial .csv behind.
type CSVRenderer struct {
	staging *staging.Manager
}

// NewCSVRenderer creates a new delimited-text renderer.
func NewCSVRenderer(st *staging.Manager) *CSVRenderer {
	return &CSVRenderer{staging: st}
}

// Format returns report.FormatDelimitedText.
func (r *CSVRenderer) Format() report.OutputFormat { return report.FormatDelimitedText }

// Render implements the report.Renderer interface.
func (r *CSVRenderer) Render(ctx context.Context, fields report.FieldList, rows []report.Row, kind report.ReportKind) (*report.Artifact, error) {
	path, err := r.staging.NextPath(kind, r.Format())
	if err != nil {
		return nil, report.NewRenderError(r.Format(), len(rows), err)
	}
	tmp := staging.TempPath(path)

	file, err := os.Create(tmp)
	if err != nil {
		return nil, report.NewRenderError(r.Format(), len(rows), fmt.Errorf("failed to create temp file: %w", err))
	}

	w := csv.NewWriter(file)

	if err := w.Write(fields); err != nil {
		file.Close()
		return nil, discard(tmp, r.Format(), len(rows), err)
	}

	line := make([]string, len(fields))
	for i, row := range rows {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				file.Close()
				return nil, discard(tmp, r.Format(), len(rows), err)
			}
		}
		for j, field := range fields {
			line[j] = cellString(row[field])
		}
		if err := w.Write(line); err != nil {
			file.Close()
			return nil, discard(tmp, r.Format(), len(rows), err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return nil, discard(tmp, r.Format(), len(rows), err)
	}
	if err := file.Close(); err != nil {
		return nil, discard(tmp, r.Format(), len(rows), err)
	}

	return finalize(tmp, path, r.Format(), len(rows))
}
