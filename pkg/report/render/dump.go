package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"storeline-hq/saturn/pkg/report"
	"storeline-hq/saturn/pkg/report/staging"
)

// DumpRenderer renders the structured-dump output format: a pretty-printed
// JSON array of field-to-value objects, with object keys emitted in field
// order. This is the lossless form; there are no column-width or layout
// concerns, which makes it the preferred encoding for debugging and
// machine consumption.
type DumpRenderer struct {
	staging *staging.Manager
}

// NewDumpRenderer creates a new structured-dump renderer.
func NewDumpRenderer(st *staging.Manager) *DumpRenderer {
	return &DumpRenderer{staging: st}
}

// Format returns report.FormatStructuredDump.
func (r *DumpRenderer) Format() report.OutputFormat { return report.FormatStructuredDump }

// Render implements the report.Renderer interface.
//
// The array is assembled by hand rather than through json.Marshal of a map:
// Go maps have no iteration order, and the dump must present keys in the
// export's declared field order.
func (r *DumpRenderer) Render(ctx context.Context, fields report.FieldList, rows []report.Row, kind report.ReportKind) (*report.Artifact, error) {
	path, err := r.staging.NextPath(kind, r.Format())
	if err != nil {
		return nil, report.NewRenderError(r.Format(), len(rows), err)
	}
	tmp := staging.TempPath(path)

	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i, row := range rows {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, report.NewRenderError(r.Format(), len(rows), err)
			}
		}
		buf.WriteString("  {\n")
		for j, field := range fields {
			key, err := json.Marshal(field)
			if err != nil {
				return nil, report.NewRenderError(r.Format(), len(rows), err)
			}
			value, err := json.Marshal(row[field])
			if err != nil {
				return nil, report.NewRenderError(r.Format(), len(rows), err)
			}
			buf.WriteString("    ")
			buf.Write(key)
			buf.WriteString(": ")
			buf.Write(value)
			if j < len(fields)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString("  }")
		if i < len(rows)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("]\n")

	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return nil, discard(tmp, r.Format(), len(rows), fmt.Errorf("failed to write temp file: %w", err))
	}

	return finalize(tmp, path, r.Format(), len(rows))
}
