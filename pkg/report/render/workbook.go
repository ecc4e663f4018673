package render

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"storeline-hq/saturn/pkg/report"
	"storeline-hq/saturn/pkg/report/staging"
)

const (
	// minColumnWidth is the floor for auto-sized column widths, in
	// character units.
	minColumnWidth = 10

	// columnPadding is added on top of the longest rendered value so cell
	// content never touches the column border.
	columnPadding = 2
)

// WorkbookRenderer renders the workbook (.xlsx) output format: a single
// sheet named after the report kind, a bold header row on a light fill, one
// data row per report row, and columns auto-sized to their longest rendered
// value. Numeric values keep their numeric cell type.
type WorkbookRenderer struct {
	staging *staging.Manager
}

// NewWorkbookRenderer creates a new workbook renderer.
func NewWorkbookRenderer(st *staging.Manager) *WorkbookRenderer {
	return &WorkbookRenderer{staging: st}
}

// Format returns report.FormatWorkbook.
func (r *WorkbookRenderer) Format() report.OutputFormat { return report.FormatWorkbook }

// Render implements the report.Renderer interface.
func (r *WorkbookRenderer) Render(ctx context.Context, fields report.FieldList, rows []report.Row, kind report.ReportKind) (*report.Artifact, error) {
	path, err := r.staging.NextPath(kind, r.Format())
	if err != nil {
		return nil, report.NewRenderError(r.Format(), len(rows), err)
	}
	tmp := staging.TempPath(path)

	f := excelize.NewFile()
	defer f.Close()

	sheet := kind.Title()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, report.NewRenderError(r.Format(), len(rows), err)
	}

	// Header row: bold on a light blue fill.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, report.NewRenderError(r.Format(), len(rows), err)
	}

	widths := make([]int, len(fields))
	for col, field := range fields {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, report.NewRenderError(r.Format(), len(rows), err)
		}
		if err := f.SetCellValue(sheet, cell, field); err != nil {
			return nil, report.NewRenderError(r.Format(), len(rows), err)
		}
		widths[col] = len(field)
	}
	firstHeader, _ := excelize.CoordinatesToCellName(1, 1)
	lastHeader, _ := excelize.CoordinatesToCellName(len(fields), 1)
	if err := f.SetCellStyle(sheet, firstHeader, lastHeader, headerStyle); err != nil {
		return nil, report.NewRenderError(r.Format(), len(rows), err)
	}

	for i, row := range rows {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, report.NewRenderError(r.Format(), len(rows), err)
			}
		}
		for col, field := range fields {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, report.NewRenderError(r.Format(), len(rows), err)
			}
			value := row[field]
			// SetCellValue types numerics natively; everything else
			// lands as a string cell.
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, report.NewRenderError(r.Format(), len(rows), err)
			}
			if l := len(cellString(value)); l > widths[col] {
				widths[col] = l
			}
		}
	}

	for col, width := range widths {
		if width < minColumnWidth {
			width = minColumnWidth
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, report.NewRenderError(r.Format(), len(rows), err)
		}
		if err := f.SetColWidth(sheet, name, name, float64(width+columnPadding)); err != nil {
			return nil, report.NewRenderError(r.Format(), len(rows), err)
		}
	}

	// f.Write instead of f.SaveAs: SaveAs rejects the ".tmp" extension of
	// the staging path as an unsupported workbook format.
	out, err := os.Create(tmp)
	if err != nil {
		return nil, report.NewRenderError(r.Format(), len(rows), fmt.Errorf("failed to create temp file: %w", err))
	}
	if err := f.Write(out); err != nil {
		out.Close()
		return nil, discard(tmp, r.Format(), len(rows), fmt.Errorf("failed to save workbook: %w", err))
	}
	if err := out.Close(); err != nil {
		return nil, discard(tmp, r.Format(), len(rows), fmt.Errorf("failed to save workbook: %w", err))
	}

	return finalize(tmp, path, r.Format(), len(rows))
}
