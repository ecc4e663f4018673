package assemble

import (
	"context"

	"storeline-hq/saturn/pkg/report"
	"storeline-hq/saturn/pkg/report/format"
	"storeline-hq/saturn/pkg/report/project"
)

var customersFields = report.FieldList{
	"Customer ID",
	"First Name",
	"Last Name",
	"Email",
	"Phone",
	"City",
	"Country",
	"Active",
	"Joined",
}

// CustomersAssembler shapes customer records into the customers report.
// Default ordering is ascending by last name.
type CustomersAssembler struct{}

// Kind returns report.KindCustomers.
func (a *CustomersAssembler) Kind() report.ReportKind { return report.KindCustomers }

// Assemble implements the Assembler interface.
func (a *CustomersAssembler) Assemble(ctx context.Context, src report.DataSource, filters *report.FilterSet) (report.FieldList, []report.Row, error) {
	f := withDefaultSort(filters, "last_name", false)

	records, err := fetchRows(ctx, src, a.Kind(), f)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]report.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, report.Row{
			"Customer ID": format.Text(project.Value(rec, "id")),
			"First Name":  format.Text(project.Value(rec, "first_name")),
			"Last Name":   format.Text(project.Value(rec, "last_name")),
			"Email":       format.TextOr(project.Value(rec, "email"), "N/A"),
			"Phone":       format.TextOr(project.Value(rec, "phone"), "N/A"),
			"City":        format.TextOr(project.Value(rec, "address.city"), "N/A"),
			"Country":     format.TextOr(project.Value(rec, "address.country"), "N/A"),
			"Active":      format.Bool(project.Value(rec, "active")),
			"Joined":      format.Timestamp(project.Value(rec, "created_at")),
		})
	}

	return customersFields, rows, nil
}
