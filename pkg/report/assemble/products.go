package assemble

import (
	"context"

	"storeline-hq/saturn/pkg/report"
	"storeline-hq/saturn/pkg/report/format"
	"storeline-hq/saturn/pkg/report/project"
)

var productsFields = report.FieldList{
	"Product ID",
	"Name",
	"SKU",
	"Category",
	"Vendor",
	"Price",
	"Active",
}

// ProductsAssembler shapes catalog products, joined with category and vendor,
// into the products report. Default ordering is ascending by name.
type ProductsAssembler struct{}

// Kind returns report.KindProducts.
func (a *ProductsAssembler) Kind() report.ReportKind { return report.KindProducts }

// Assemble implements the Assembler interface.
func (a *ProductsAssembler) Assemble(ctx context.Context, src report.DataSource, filters *report.FilterSet) (report.FieldList, []report.Row, error) {
	f := withDefaultSort(filters, "name", false)

	records, err := fetchRows(ctx, src, a.Kind(), f)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]report.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, report.Row{
			"Product ID": format.Text(project.Value(rec, "id")),
			"Name":       format.Text(project.Value(rec, "name")),
			"SKU":        format.TextOr(project.Value(rec, "sku"), "N/A"),
			"Category":   format.TextOr(project.Value(rec, "category.name"), "N/A"),
			"Vendor":     format.TextOr(project.Value(rec, "vendor.business_name"), "N/A"),
			"Price":      format.Money(project.Value(rec, "price")),
			"Active":     format.Bool(project.Value(rec, "active")),
		})
	}

	return productsFields, rows, nil
}
