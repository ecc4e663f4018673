package render

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"storeline-hq/saturn/pkg/report"
	"storeline-hq/saturn/pkg/report/staging"
)

// tableRowHeight is the fixed height of header and data rows, in mm.
const tableRowHeight = 7.0

// DocumentRenderer renders the paginated-document (.pdf) output format: an
// A4 landscape page with a title and generation timestamp, followed by a
// table with a filled header band and alternating-shaded data rows. Columns
// share equal width (page content width / column count); cell text is
// clipped to the column so overflow never corrupts adjacent columns.
//
// When a row would extend past the bottom margin a new page is started and
// the table continues without repeating the header; the final page carries a
// footer with the total row count.
type DocumentRenderer struct {
	staging *staging.Manager

	// now is the clock used for the generation timestamp; overridable in
	// tests.
	now func() time.Time
}

// NewDocumentRenderer creates a new paginated-document renderer.
func NewDocumentRenderer(st *staging.Manager) *DocumentRenderer {
	return &DocumentRenderer{staging: st, now: time.Now}
}

// Format returns report.FormatPaginatedDocument.
func (r *DocumentRenderer) Format() report.OutputFormat { return report.FormatPaginatedDocument }

// Render implements the report.Renderer interface.
func (r *DocumentRenderer) Render(ctx context.Context, fields report.FieldList, rows []report.Row, kind report.ReportKind) (*report.Artifact, error) {
	path, err := r.staging.NextPath(kind, r.Format())
	if err != nil {
		return nil, report.NewRenderError(r.Format(), len(rows), err)
	}
	tmp := staging.TempPath(path)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	contentW := pageW - left - right
	bottomLimit := pageH - bottom
	colW := contentW / float64(len(fields))

	// Title and generation timestamp.
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 10, kind.Title()+" Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 6, "Generated: "+r.now().UTC().Format("2006-01-02 15:04:05")+" UTC", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// Header band on a dark fill. The header is not repeated on
	// continuation pages.
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(52, 73, 94)
	pdf.SetTextColor(255, 255, 255)
	for _, field := range fields {
		pdf.CellFormat(colW, tableRowHeight, clipText(pdf, field, colW), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(240, 244, 248)

	for i, row := range rows {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, report.NewRenderError(r.Format(), len(rows), err)
			}
		}

		if pdf.GetY()+tableRowHeight > bottomLimit {
			pdf.AddPage()
		}

		shaded := i%2 == 1
		for _, field := range fields {
			pdf.CellFormat(colW, tableRowHeight, clipText(pdf, cellString(row[field]), colW), "1", 0, "L", shaded, 0, "")
		}
		pdf.Ln(-1)
	}

	// Footer with the total row count on the final page.
	if pdf.GetY()+tableRowHeight > bottomLimit {
		pdf.AddPage()
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Total rows: %d", len(rows)), "", 1, "L", false, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, report.NewRenderError(r.Format(), len(rows), err)
	}
	if err := pdf.OutputFileAndClose(tmp); err != nil {
		return nil, discard(tmp, r.Format(), len(rows), fmt.Errorf("failed to write document: %w", err))
	}

	return finalize(tmp, path, r.Format(), len(rows))
}

// clipText truncates s so it fits inside one column at the current font,
// appending "..." when anything was cut. Clipping rather than wrapping keeps
// row height fixed and neighbors intact.
func clipText(pdf *fpdf.Fpdf, s string, colW float64) string {
	limit := colW - 2
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
