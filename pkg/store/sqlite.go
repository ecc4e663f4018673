package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"storeline-hq/saturn/pkg/report"
)

// SQLiteConfig contains configuration for the SQLite data source.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging for better read concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/saturn.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore implements report.DataSource against the commerce schema.
// All timestamps are stored and read in UTC.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens (and if needed initializes) the commerce database.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "store.sqlite")

	db, err := sql.Open("sqlite3", config.Path+"?_loc=UTC")
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", config.Path, err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite store initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// initialize applies pragmas and the schema.
func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for seeding and tests.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

// FindRows returns already-joined records for one report kind.
func (s *SQLiteStore) FindRows(ctx context.Context, kind report.ReportKind, filters *report.FilterSet) ([]report.Record, error) {
	switch kind {
	case report.KindOrders:
		return s.queryOrders(ctx, filters)
	case report.KindProducts:
		return s.queryProducts(ctx, filters)
	case report.KindCustomers:
		return s.queryCustomers(ctx, filters)
	case report.KindInventory:
		return s.queryInventory(ctx, filters)
	case report.KindVendors:
		return s.queryVendors(ctx, filters)
	default:
		return nil, fmt.Errorf("report kind %q has no row dataset", kind)
	}
}

// bucketExprs maps each granularity to the SQL expression that truncates an
// order timestamp to its bucket start. Weekly buckets start on Monday.
var bucketExprs = map[report.Granularity]string{
	report.GranularityHourly:  "strftime('%Y-%m-%d %H:00:00', o.created_at)",
	report.GranularityDaily:   "date(o.created_at)",
	report.GranularityWeekly:  "date(o.created_at, 'weekday 0', '-6 days')",
	report.GranularityMonthly: "strftime('%Y-%m-01', o.created_at)",
}

// FindTimeBuckets aggregates orders by a truncation of their timestamp, one
// row per non-empty bucket, ascending by bucket start. The item quantity sum
// is coalesced to zero for orders with no item rows.
func (s *SQLiteStore) FindTimeBuckets(ctx context.Context, start, end *time.Time, g report.Granularity) ([]report.TimeBucket, error) {
	expr, ok := bucketExprs[g]
	if !ok {
		return nil, fmt.Errorf("unsupported granularity %q", g)
	}

	var conditions []string
	var args []any
	if start != nil {
		conditions = append(conditions, "o.created_at >= ?")
		args = append(args, start.UTC())
	}
	if end != nil {
		conditions = append(conditions, "o.created_at <= ?")
		args = append(args, end.UTC())
	}
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s AS bucket_start,
		       COALESCE(SUM(o.total_amount), 0),
		       COUNT(*),
		       COALESCE(AVG(o.total_amount), 0),
		       COALESCE(SUM(items.item_count), 0)
		FROM orders o
		LEFT JOIN (
			SELECT order_id, SUM(quantity) AS item_count
			FROM order_items
			GROUP BY order_id
		) items ON items.order_id = o.id
		%s
		GROUP BY bucket_start
		ORDER BY bucket_start ASC`, expr, where)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("time bucket query failed: %w", err)
	}
	defer rows.Close()

	layout := "2006-01-02"
	if g == report.GranularityHourly {
		layout = "2006-01-02 15:04:05"
	}

	var buckets []report.TimeBucket
	for rows.Next() {
		var bucketStart string
		var b report.TimeBucket
		if err := rows.Scan(&bucketStart, &b.SumAmount, &b.Count, &b.MeanAmount, &b.SumQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan bucket: %w", err)
		}
		ts, err := time.ParseInLocation(layout, bucketStart, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("failed to parse bucket start %q: %w", bucketStart, err)
		}
		b.BucketStart = ts
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("time bucket iteration failed: %w", err)
	}

	return buckets, nil
}

// whereClause assembles a WHERE fragment from accumulated conditions.
func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

// orderClause resolves the sort key against a per-kind whitelist of sortable
// columns, falling back to the default when the key is unknown. Sort keys
// never reach the SQL text directly.
func orderClause(sortable map[string]string, sortBy, fallback string, desc bool) string {
	column, ok := sortable[sortBy]
	if !ok {
		column = fallback
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, direction)
}

var ordersSortable = map[string]string{
	"created_at": "o.created_at",
	"total":      "o.total_amount",
	"status":     "o.status",
}

func (s *SQLiteStore) queryOrders(ctx context.Context, f *report.FilterSet) ([]report.Record, error) {
	var conditions []string
	var args []any
	if f != nil {
		if f.StartDate != nil {
			conditions = append(conditions, "o.created_at >= ?")
			args = append(args, f.StartDate.UTC())
		}
		if f.EndDate != nil {
			conditions = append(conditions, "o.created_at <= ?")
			args = append(args, f.EndDate.UTC())
		}
		if f.Status != "" {
			conditions = append(conditions, "o.status = ?")
			args = append(args, f.Status)
		}
		if f.CustomerID != "" {
			conditions = append(conditions, "o.customer_id = ?")
			args = append(args, f.CustomerID)
		}
		if f.MinPrice != nil {
			conditions = append(conditions, "o.total_amount >= ?")
			args = append(args, *f.MinPrice)
		}
		if f.MaxPrice != nil {
			conditions = append(conditions, "o.total_amount <= ?")
			args = append(args, *f.MaxPrice)
		}
		if f.MinQuantity != nil {
			conditions = append(conditions, "COALESCE(items.item_count, 0) >= ?")
			args = append(args, *f.MinQuantity)
		}
		if f.MaxQuantity != nil {
			conditions = append(conditions, "COALESCE(items.item_count, 0) <= ?")
			args = append(args, *f.MaxQuantity)
		}
	}

	query := `
		SELECT o.id, o.status, o.payment_method, o.total_amount, o.created_at,
		       COALESCE(items.item_count, 0),
		       c.first_name, c.last_name, c.email
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		LEFT JOIN (
			SELECT order_id, SUM(quantity) AS item_count
			FROM order_items
			GROUP BY order_id
		) items ON items.order_id = o.id` +
		whereClause(conditions) +
		orderClause(ordersSortable, sortKey(f), "o.created_at", sortDesc(f))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("orders query failed: %w", err)
	}
	defer rows.Close()

	var records []report.Record
	for rows.Next() {
		var (
			id, status          string
			payment             sql.NullString
			total               float64
			createdAt           time.Time
			itemCount           int
			first, last, email  sql.NullString
		)
		if err := rows.Scan(&id, &status, &payment, &total, &createdAt, &itemCount, &first, &last, &email); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		rec := report.Record{
			"id":           id,
			"status":       status,
			"total_amount": total,
			"item_count":   itemCount,
			"created_at":   createdAt.UTC(),
		}
		if payment.Valid {
			rec["payment_method"] = payment.String
		}
		if first.Valid || last.Valid || email.Valid {
			rec["customer"] = report.Record{
				"first_name": first.String,
				"last_name":  last.String,
				"email":      email.String,
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

var productsSortable = map[string]string{
	"name":  "p.name",
	"price": "p.price",
	"sku":   "p.sku",
}

func (s *SQLiteStore) queryProducts(ctx context.Context, f *report.FilterSet) ([]report.Record, error) {
	var conditions []string
	var args []any
	if f != nil {
		if f.ActiveOnly != nil && *f.ActiveOnly {
			conditions = append(conditions, "p.active = 1")
		}
		if f.VendorID != "" {
			conditions = append(conditions, "p.vendor_id = ?")
			args = append(args, f.VendorID)
		}
		if f.CategoryID != "" {
			conditions = append(conditions, "p.category_id = ?")
			args = append(args, f.CategoryID)
		}
		if f.MinPrice != nil {
			conditions = append(conditions, "p.price >= ?")
			args = append(args, *f.MinPrice)
		}
		if f.MaxPrice != nil {
			conditions = append(conditions, "p.price <= ?")
			args = append(args, *f.MaxPrice)
		}
	}

	query := `
		SELECT p.id, p.name, p.sku, p.price, p.active, cat.name, v.business_name
		FROM products p
		LEFT JOIN categories cat ON cat.id = p.category_id
		LEFT JOIN vendors v ON v.id = p.vendor_id` +
		whereClause(conditions) +
		orderClause(productsSortable, sortKey(f), "p.name", sortDesc(f))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("products query failed: %w", err)
	}
	defer rows.Close()

	var records []report.Record
	for rows.Next() {
		var (
			id, name             string
			sku, catName, vendor sql.NullString
			price                float64
			active               bool
		)
		if err := rows.Scan(&id, &name, &sku, &price, &active, &catName, &vendor); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		rec := report.Record{
			"id":     id,
			"name":   name,
			"price":  price,
			"active": active,
		}
		if sku.Valid {
			rec["sku"] = sku.String
		}
		if catName.Valid {
			rec["category"] = report.Record{"name": catName.String}
		}
		if vendor.Valid {
			rec["vendor"] = report.Record{"business_name": vendor.String}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

var customersSortable = map[string]string{
	"last_name":  "c.last_name",
	"first_name": "c.first_name",
	"created_at": "c.created_at",
}

func (s *SQLiteStore) queryCustomers(ctx context.Context, f *report.FilterSet) ([]report.Record, error) {
	var conditions []string
	var args []any
	if f != nil {
		if f.ActiveOnly != nil && *f.ActiveOnly {
			conditions = append(conditions, "c.active = 1")
		}
		if f.StartDate != nil {
			conditions = append(conditions, "c.created_at >= ?")
			args = append(args, f.StartDate.UTC())
		}
		if f.EndDate != nil {
			conditions = append(conditions, "c.created_at <= ?")
			args = append(args, f.EndDate.UTC())
		}
	}

	query := `
		SELECT c.id, c.first_name, c.last_name, c.email, c.phone, c.city, c.country, c.active, c.created_at
		FROM customers c` +
		whereClause(conditions) +
		orderClause(customersSortable, sortKey(f), "c.last_name", sortDesc(f))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("customers query failed: %w", err)
	}
	defer rows.Close()

	var records []report.Record
	for rows.Next() {
		var (
			id, first, last            string
			email, phone, city, country sql.NullString
			active                     bool
			createdAt                  time.Time
		)
		if err := rows.Scan(&id, &first, &last, &email, &phone, &city, &country, &active, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}

		rec := report.Record{
			"id":         id,
			"first_name": first,
			"last_name":  last,
			"active":     active,
			"created_at": createdAt.UTC(),
		}
		if email.Valid {
			rec["email"] = email.String
		}
		if phone.Valid {
			rec["phone"] = phone.String
		}
		if city.Valid || country.Valid {
			rec["address"] = report.Record{
				"city":    city.String,
				"country": country.String,
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

var inventorySortable = map[string]string{
	"quantity":   "i.quantity",
	"updated_at": "i.updated_at",
	"product":    "p.name",
}

func (s *SQLiteStore) queryInventory(ctx context.Context, f *report.FilterSet) ([]report.Record, error) {
	var conditions []string
	var args []any
	if f != nil {
		if f.MinQuantity != nil {
			conditions = append(conditions, "i.quantity >= ?")
			args = append(args, *f.MinQuantity)
		}
		if f.MaxQuantity != nil {
			conditions = append(conditions, "i.quantity <= ?")
			args = append(args, *f.MaxQuantity)
		}
		if f.VendorID != "" {
			conditions = append(conditions, "p.vendor_id = ?")
			args = append(args, f.VendorID)
		}
	}

	query := `
		SELECT i.id, i.warehouse, i.quantity, i.reorder_level, i.updated_at, p.name, p.sku
		FROM inventory i
		JOIN products p ON p.id = i.product_id` +
		whereClause(conditions) +
		orderClause(inventorySortable, sortKey(f), "i.quantity", sortDesc(f))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("inventory query failed: %w", err)
	}
	defer rows.Close()

	var records []report.Record
	for rows.Next() {
		var (
			id, productName    string
			warehouse, sku     sql.NullString
			quantity, reorder  int
			updatedAt          time.Time
		)
		if err := rows.Scan(&id, &warehouse, &quantity, &reorder, &updatedAt, &productName, &sku); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}

		product := report.Record{"name": productName}
		if sku.Valid {
			product["sku"] = sku.String
		}
		rec := report.Record{
			"id":            id,
			"quantity":      quantity,
			"reorder_level": reorder,
			"updated_at":    updatedAt.UTC(),
			"product":       product,
		}
		if warehouse.Valid {
			rec["warehouse"] = warehouse.String
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

var vendorsSortable = map[string]string{
	"business_name": "v.business_name",
	"created_at":    "v.created_at",
}

func (s *SQLiteStore) queryVendors(ctx context.Context, f *report.FilterSet) ([]report.Record, error) {
	var conditions []string
	if f != nil && f.ActiveOnly != nil && *f.ActiveOnly {
		conditions = append(conditions, "v.active = 1")
	}

	query := `
		SELECT v.id, v.business_name, v.contact_name, v.email, v.phone, v.active, v.created_at
		FROM vendors v` +
		whereClause(conditions) +
		orderClause(vendorsSortable, sortKey(f), "v.business_name", sortDesc(f))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vendors query failed: %w", err)
	}
	defer rows.Close()

	var records []report.Record
	for rows.Next() {
		var (
			id, name              string
			contact, email, phone sql.NullString
			active                bool
			createdAt             time.Time
		)
		if err := rows.Scan(&id, &name, &contact, &email, &phone, &active, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}

		rec := report.Record{
			"id":            id,
			"business_name": name,
			"active":        active,
			"created_at":    createdAt.UTC(),
		}
		if contact.Valid {
			rec["contact_name"] = contact.String
		}
		if email.Valid {
			rec["email"] = email.String
		}
		if phone.Valid {
			rec["phone"] = phone.String
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func sortKey(f *report.FilterSet) string {
	if f == nil {
		return ""
	}
	return f.SortBy
}

func sortDesc(f *report.FilterSet) bool {
	return f != nil && f.SortDesc
}
