package assemble

import (
	"context"
	"strings"

	"storeline-hq/saturn/pkg/report"
	"storeline-hq/saturn/pkg/report/format"
	"storeline-hq/saturn/pkg/report/project"
)

// ordersFields is the fixed field schema of the orders report.
var ordersFields = report.FieldList{
	"Order ID",
	"Customer",
	"Email",
	"Status",
	"Payment Method",
	"Items",
	"Total",
	"Created At",
}

// OrdersAssembler shapes order records, joined with their customer, into the
// orders report. Default ordering is newest first.
type OrdersAssembler struct{}

// Kind returns report.KindOrders.
func (a *OrdersAssembler) Kind() report.ReportKind { return report.KindOrders }

// Assemble implements the Assembler interface.
func (a *OrdersAssembler) Assemble(ctx context.Context, src report.DataSource, filters *report.FilterSet) (report.FieldList, []report.Row, error) {
	f := withDefaultSort(filters, "created_at", true)

	records, err := fetchRows(ctx, src, a.Kind(), f)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]report.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, report.Row{
			"Order ID":       format.Text(project.Value(rec, "id")),
			"Customer":       customerName(rec),
			"Email":          format.TextOr(project.Value(rec, "customer.email"), "N/A"),
			"Status":         format.Text(project.Value(rec, "status")),
			"Payment Method": format.TextOr(project.Value(rec, "payment_method"), "N/A"),
			"Items":          format.Int(project.Value(rec, "item_count")),
			"Total":          format.Money(project.Value(rec, "total_amount")),
			"Created At":     format.Timestamp(project.Value(rec, "created_at")),
		})
	}

	return ordersFields, rows, nil
}

// customerName joins the customer's first and last name, falling back to
// "N/A" for guest orders with no customer record.
func customerName(rec report.Record) string {
	first := format.Text(project.Value(rec, "customer.first_name"))
	last := format.Text(project.Value(rec, "customer.last_name"))
	name := strings.TrimSpace(first + " " + last)
	if name == "" {
		return "N/A"
	}
	return name
}
