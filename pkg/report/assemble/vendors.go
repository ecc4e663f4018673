package assemble

import (
	"context"

	"storeline-hq/saturn/pkg/report"
	"storeline-hq/saturn/pkg/report/format"
	"storeline-hq/saturn/pkg/report/project"
)

var vendorsFields = report.FieldList{
	"Vendor ID",
	"Business Name",
	"Contact",
	"Email",
	"Phone",
	"Active",
	"Since",
}

// VendorsAssembler shapes vendor records into the vendors report. Default
// ordering is ascending by business name.
type VendorsAssembler struct{}

// Kind returns report.KindVendors.
func (a *VendorsAssembler) Kind() report.ReportKind { return report.KindVendors }

// Assemble implements the Assembler interface.
func (a *VendorsAssembler) Assemble(ctx context.Context, src report.DataSource, filters *report.FilterSet) (report.FieldList, []report.Row, error) {
	f := withDefaultSort(filters, "business_name", false)

	records, err := fetchRows(ctx, src, a.Kind(), f)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]report.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, report.Row{
			"Vendor ID":     format.Text(project.Value(rec, "id")),
			"Business Name": format.Text(project.Value(rec, "business_name")),
			"Contact":       format.TextOr(project.Value(rec, "contact_name"), "N/A"),
			"Email":         format.TextOr(project.Value(rec, "email"), "N/A"),
			"Phone":         format.TextOr(project.Value(rec, "phone"), "N/A"),
			"Active":        format.Bool(project.Value(rec, "active")),
			"Since":         format.Timestamp(project.Value(rec, "created_at")),
		})
	}

	return vendorsFields, rows, nil
}
