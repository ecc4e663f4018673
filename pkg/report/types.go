package report

import (
	"context"
	"fmt"
	"time"
)

// ReportKind identifies the domain dataset being exported. The set is closed;
// each kind maps to exactly one dataset assembler and one default field list.
type ReportKind string

const (
	KindOrders    ReportKind = "orders"
	KindProducts  ReportKind = "products"
	KindCustomers ReportKind = "customers"
	KindSales     ReportKind = "sales"
	KindInventory ReportKind = "inventory"
	KindVendors   ReportKind = "vendors"
)

// Kinds returns all supported report kinds in stable order.
func Kinds() []ReportKind {
	return []ReportKind{
		KindOrders, KindProducts, KindCustomers,
		KindSales, KindInventory, KindVendors,
	}
}

// Valid reports whether k is a member of the closed ReportKind set.
func (k ReportKind) Valid() bool {
	switch k {
	case KindOrders, KindProducts, KindCustomers, KindSales, KindInventory, KindVendors:
		return true
	}
	return false
}

// String returns the kind's canonical lowercase name.
func (k ReportKind) String() string { return string(k) }

// Title returns the kind's display name, used for workbook sheet names and
// paginated document titles.
func (k ReportKind) Title() string {
	switch k {
	case KindOrders:
		return "Orders"
	case KindProducts:
		return "Products"
	case KindCustomers:
		return "Customers"
	case KindSales:
		return "Sales"
	case KindInventory:
		return "Inventory"
	case KindVendors:
		return "Vendors"
	}
	return string(k)
}

// ParseKind parses a report kind name. Matching is exact and case-sensitive
// against the canonical lowercase names.
func ParseKind(s string) (ReportKind, error) {
	k := ReportKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown report kind %q (supported: orders, products, customers, sales, inventory, vendors)", s)
	}
	return k, nil
}

// OutputFormat identifies the file encoding produced by an export. The set is
// closed; each format maps to exactly one renderer. The canonical name of a
// format doubles as its file extension.
type OutputFormat string

const (
	FormatDelimitedText     OutputFormat = "csv"
	FormatWorkbook          OutputFormat = "xlsx"
	FormatPaginatedDocument OutputFormat = "pdf"
	FormatStructuredDump    OutputFormat = "json"
)

// Formats returns all supported output formats in stable order.
func Formats() []OutputFormat {
	return []OutputFormat{
		FormatDelimitedText, FormatWorkbook,
		FormatPaginatedDocument, FormatStructuredDump,
	}
}

// Valid reports whether f is a member of the closed OutputFormat set.
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatDelimitedText, FormatWorkbook, FormatPaginatedDocument, FormatStructuredDump:
		return true
	}
	return false
}

// String returns the format's canonical name.
func (f OutputFormat) String() string { return string(f) }

// Extension returns the file extension for the format, without a leading dot.
func (f OutputFormat) Extension() string { return string(f) }

// ParseFormat parses an output format name.
func ParseFormat(s string) (OutputFormat, error) {
	f := OutputFormat(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown output format %q (supported: csv, xlsx, pdf, json)", s)
	}
	return f, nil
}

// Granularity is the bucket width for time-series aggregation (sales reports).
type Granularity string

const (
	GranularityHourly  Granularity = "hourly"
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// Valid reports whether g is a supported aggregation granularity.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityHourly, GranularityDaily, GranularityWeekly, GranularityMonthly:
		return true
	}
	return false
}

// ParseGranularity parses a granularity name. The empty string parses to the
// daily default.
func ParseGranularity(s string) (Granularity, error) {
	if s == "" {
		return GranularityDaily, nil
	}
	g := Granularity(s)
	if !g.Valid() {
		return "", fmt.Errorf("unknown granularity %q (supported: hourly, daily, weekly, monthly)", s)
	}
	return g, nil
}

// Record is a loosely typed domain record as supplied by the data source.
// Values may be scalars, nested Records (or plain string-keyed maps), or
// slices. Field projection walks these with dotted paths, so nesting depth
// is unconstrained.
type Record map[string]any

// Row is one rendered report row. Every row of an export carries a value for
// every name in the export's FieldList; values are either strings
// (pre-formatted by the value formatter) or raw numerics, which renderers
// may type natively (workbook cells) or stringify (delimited text).
type Row map[string]any

// FieldList is the ordered field schema of an export. It defines column order
// for every renderer; length and order are identical across all rows of one
// export.
type FieldList []string

// FilterSet carries the caller's query criteria. All fields are optional;
// a nil pointer or zero value imposes no constraint. Range bounds on the
// same attribute compose independently (both may be set). Interpretation is
// report-kind-specific: MinQuantity applies to stock levels for inventory
// and to item counts for orders, for example.
type FilterSet struct {
	// Time range, inclusive. For sales reports this also bounds the
	// aggregation window.
	StartDate *time.Time
	EndDate   *time.Time

	// Status filters orders by fulfillment status.
	Status string

	// Price range.
	MinPrice *float64
	MaxPrice *float64

	// Quantity range (stock level or item count).
	MinQuantity *int
	MaxQuantity *int

	// ActiveOnly restricts to active products/customers/vendors.
	ActiveOnly *bool

	// Foreign-key scoping.
	CustomerID string
	VendorID   string
	CategoryID string

	// Granularity selects the sales aggregation bucket width.
	// Empty means daily.
	Granularity Granularity

	// SortBy overrides the report kind's default sort key; SortDesc
	// selects descending order. Both are ignored by the sales report,
	// whose buckets are always ascending by time.
	SortBy   string
	SortDesc bool
}

// Clone returns a shallow copy of the filter set. Assemblers clone before
// filling in defaults so the caller's FilterSet is never mutated.
func (f *FilterSet) Clone() *FilterSet {
	if f == nil {
		return &FilterSet{}
	}
	c := *f
	return &c
}

// TimeBucket is one pre-aggregated interval of the sales time series, as
// returned by the data source. Aggregation happens in the data source, not
// in the assembler; a bucket covering zero order items carries a zero
// SumQuantity, never a null.
type TimeBucket struct {
	BucketStart time.Time
	SumAmount   float64
	Count       int
	MeanAmount  float64
	SumQuantity int
}

// Artifact describes a completed export file. It is created by a renderer at
// render completion and returned unchanged to the caller, which owns delivery
// and eventual deletion.
type Artifact struct {
	// Path is the absolute path of the produced file.
	Path string

	// Filename is the base name of the produced file.
	Filename string

	// Size is the file size in bytes.
	Size int64

	// CreatedAt is when the artifact was finalized.
	CreatedAt time.Time
}

// DataSource is the interface to the persistence layer consumed by dataset
// assemblers. Implementations return already-filtered, already-joined rows;
// assemblers never post-filter. Implementations must be safe for concurrent
// use.
type DataSource interface {
	// FindRows returns the records for one report kind matching the filter
	// set, in the order requested by FilterSet.SortBy (or the kind's
	// documented default when unset).
	FindRows(ctx context.Context, kind ReportKind, filters *FilterSet) ([]Record, error)

	// FindTimeBuckets returns pre-aggregated order totals grouped by a
	// truncation of the order timestamp, one bucket per non-empty interval,
	// ascending by bucket start. Nil bounds leave the window open on that
	// side.
	FindTimeBuckets(ctx context.Context, start, end *time.Time, g Granularity) ([]TimeBucket, error)

	// Close releases any resources held by the data source.
	Close() error
}

// Renderer is the single capability every output format implements. Adding a
// format means adding one Renderer implementation; assemblers are untouched.
type Renderer interface {
	// Format returns the output format this renderer produces.
	Format() OutputFormat

	// Render writes the row set to a new file in the staging directory and
	// returns the artifact. Render never mutates fields or rows. On failure
	// it returns a *RenderError and leaves no partial file behind.
	Render(ctx context.Context, fields FieldList, rows []Row, kind ReportKind) (*Artifact, error)
}
