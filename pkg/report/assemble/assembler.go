// Package assemble contains the dataset assemblers, one per report kind.
//
// An assembler translates the caller's FilterSet into a data-source query,
// retrieves the matching records, and shapes them into the uniform
// (FieldList, []Row) contract every renderer consumes. Assemblers never
// post-filter and never aggregate: filtering, joining and time bucketing are
// the data source's job.
package assemble

import (
	"context"
	"errors"
	"fmt"

	"storeline-hq/saturn/pkg/report"
)

// Assembler produces the uniform row set for one report kind.
type Assembler interface {
	// Kind returns the report kind this assembler serves.
	Kind() report.ReportKind

	// Assemble retrieves and shapes the dataset. The returned rows are
	// fully materialized; every row carries a value for every field in the
	// returned field list. A data-source failure surfaces as a
	// *report.DataAccessError with no partial output.
	Assemble(ctx context.Context, src report.DataSource, filters *report.FilterSet) (report.FieldList, []report.Row, error)
}

// registry maps each report kind to its single assembler. ReportKind is a
// closed set, so the registry is fixed at init.
var registry = map[report.ReportKind]Assembler{
	report.KindOrders:    &OrdersAssembler{},
	report.KindProducts:  &ProductsAssembler{},
	report.KindCustomers: &CustomersAssembler{},
	report.KindSales:     &SalesAssembler{},
	report.KindInventory: &InventoryAssembler{},
	report.KindVendors:   &VendorsAssembler{},
}

// ForKind returns the assembler for the given report kind.
func ForKind(kind report.ReportKind) (Assembler, error) {
	a, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("no assembler registered for report kind %q", kind)
	}
	return a, nil
}

// withDefaultSort clones the filter set and fills in the kind's default sort
// key when the caller did not override it. Cloning keeps the caller's
// FilterSet immutable across the export call.
func withDefaultSort(filters *report.FilterSet, sortBy string, desc bool) *report.FilterSet {
	f := filters.Clone()
	if f.SortBy == "" {
		f.SortBy = sortBy
		f.SortDesc = desc
	}
	return f
}

// fetchRows retrieves records for one kind, normalizing any failure into a
// *report.DataAccessError.
func fetchRows(ctx context.Context, src report.DataSource, kind report.ReportKind, filters *report.FilterSet) ([]report.Record, error) {
	records, err := src.FindRows(ctx, kind, filters)
	if err != nil {
		var dae *report.DataAccessError
		if errors.As(err, &dae) {
			return nil, err
		}
		return nil, report.NewDataAccessError(kind, "find_rows", err)
	}
	return records, nil
}
