package assemble

import (
	"context"

	"storeline-hq/saturn/pkg/report"
	"storeline-hq/saturn/pkg/report/format"
	"storeline-hq/saturn/pkg/report/project"
)

var inventoryFields = report.FieldList{
	"SKU",
	"Product",
	"Warehouse",
	"Quantity",
	"Reorder Level",
	"Below Reorder",
	"Updated At",
}

// InventoryAssembler shapes stock records, joined with their product, into
// the inventory report. Default ordering is ascending by quantity so the
// thinnest stock surfaces first.
type InventoryAssembler struct{}

// Kind returns report.KindInventory.
func (a *InventoryAssembler) Kind() report.ReportKind { return report.KindInventory }

// Assemble implements the Assembler interface.
func (a *InventoryAssembler) Assemble(ctx context.Context, src report.DataSource, filters *report.FilterSet) (report.FieldList, []report.Row, error) {
	f := withDefaultSort(filters, "quantity", false)

	records, err := fetchRows(ctx, src, a.Kind(), f)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]report.Row, 0, len(records))
	for _, rec := range records {
		quantity := project.Value(rec, "quantity")
		reorder := project.Value(rec, "reorder_level")
		rows = append(rows, report.Row{
			"SKU":           format.TextOr(project.Value(rec, "product.sku"), "N/A"),
			"Product":       format.Text(project.Value(rec, "product.name")),
			"Warehouse":     format.TextOr(project.Value(rec, "warehouse"), "N/A"),
			"Quantity":      format.Int(quantity),
			"Reorder Level": format.Int(reorder),
			"Below Reorder": format.Bool(belowReorder(quantity, reorder)),
			"Updated At":    format.Timestamp(project.Value(rec, "updated_at")),
		})
	}

	return inventoryFields, rows, nil
}

// belowReorder reports whether the stock level has fallen under the reorder
// threshold.
func belowReorder(quantity, reorder any) bool {
	q, qok := toInt(quantity)
	r, rok := toInt(reorder)
	return qok && rok && q < r
}

// toInt narrows the integral shapes a data source may return.
func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
