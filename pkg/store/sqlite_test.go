package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"storeline-hq/saturn/pkg/report"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	cfg := DefaultSQLiteConfig()
	cfg.Path = filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(cfg)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// exec is a fatal-on-error insert helper for fixtures.
func exec(t *testing.T, s *SQLiteStore, query string, args ...any) {
	t.Helper()
	if _, err := s.DB().Exec(query, args...); err != nil {
		t.Fatalf("fixture insert failed: %v\n%s", err, query)
	}
}

func insertFixture(t *testing.T, s *SQLiteStore) {
	t.Helper()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	exec(t, s, `INSERT INTO vendors (id, business_name, contact_name, active, created_at) VALUES (?, ?, ?, 1, ?)`,
		"ven-1", "Acme Supply", "Dana Reyes", base)
	exec(t, s, `INSERT INTO vendors (id, business_name, active, created_at) VALUES (?, ?, 0, ?)`,
		"ven-2", "Zenith Goods", base)
	exec(t, s, `INSERT INTO categories (id, name) VALUES (?, ?)`, "cat-1", "Hardware")
	exec(t, s, `INSERT INTO products (id, name, sku, price, active, category_id, vendor_id, created_at) VALUES (?, ?, ?, ?, 1, ?, ?, ?)`,
		"prod-1", "Anvil", "ANV-001", 149.0, "cat-1", "ven-1", base)
	exec(t, s, `INSERT INTO products (id, name, price, active, created_at) VALUES (?, ?, ?, 0, ?)`,
		"prod-2", "Zip Ties", 4.99, base)
	exec(t, s, `INSERT INTO inventory (id, product_id, warehouse, quantity, reorder_level, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		"inv-1", "prod-1", "east", 3, 20, base)
	exec(t, s, `INSERT INTO inventory (id, product_id, warehouse, quantity, reorder_level, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		"inv-2", "prod-2", "west", 55, 10, base)
	exec(t, s, `INSERT INTO customers (id, first_name, last_name, email, city, country, active, created_at) VALUES (?, ?, ?, ?, ?, ?, 1, ?)`,
		"cust-1", "Ada", "Okafor", "ada@example.com", "Lagos", "NG", base)

	orders := []struct {
		id     string
		status string
		total  float64
		day    int
		items  int
	}{
		{"ord-1", "shipped", 120.0, 1, 2},
		{"ord-2", "pending", 45.0, 2, 1},
		{"ord-3", "shipped", 300.0, 2, 5},
	}
	for _, o := range orders {
		exec(t, s, `INSERT INTO orders (id, customer_id, status, payment_method, total_amount, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			o.id, "cust-1", o.status, "card", o.total, base.AddDate(0, 0, o.day-1))
		exec(t, s, `INSERT INTO order_items (id, order_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?, ?)`,
			o.id+"-item", o.id, "prod-1", o.items, o.total/float64(o.items))
	}
}

// TestSQLiteStore_QueryOrders tests the joined order dataset with filters and
// the default newest-first sort key.
func TestSQLiteStore_QueryOrders(t *testing.T) {
	s := openTestStore(t)
	insertFixture(t, s)
	ctx := context.Background()

	records, err := s.FindRows(ctx, report.KindOrders, &report.FilterSet{
		SortBy: "created_at", SortDesc: true,
	})
	if err != nil {
		t.Fatalf("FindRows() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}

	first := records[0]
	if first["id"] != "ord-2" && first["id"] != "ord-3" {
		t.Errorf("newest order = %v", first["id"])
	}
	if cust, ok := first["customer"].(report.Record); !ok || cust["last_name"] != "Okafor" {
		t.Errorf("customer join = %v", first["customer"])
	}

	shipped, err := s.FindRows(ctx, report.KindOrders, &report.FilterSet{Status: "shipped"})
	if err != nil {
		t.Fatalf("FindRows(shipped) error = %v", err)
	}
	if len(shipped) != 2 {
		t.Errorf("shipped orders = %d, want 2", len(shipped))
	}

	min := 100.0
	big, err := s.FindRows(ctx, report.KindOrders, &report.FilterSet{MinPrice: &min})
	if err != nil {
		t.Fatalf("FindRows(min price) error = %v", err)
	}
	if len(big) != 2 {
		t.Errorf("orders over 100 = %d, want 2", len(big))
	}

	for _, rec := range big {
		if _, ok := rec["item_count"].(int); !ok {
			t.Errorf("item_count type = %T", rec["item_count"])
		}
	}
}

// TestSQLiteStore_QueryProducts tests joins to category and vendor plus the
// active-only filter.
func TestSQLiteStore_QueryProducts(t *testing.T) {
	s := openTestStore(t)
	insertFixture(t, s)
	ctx := context.Background()

	records, err := s.FindRows(ctx, report.KindProducts, nil)
	if err != nil {
		t.Fatalf("FindRows() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	// Default sort is name ascending.
	if records[0]["name"] != "Anvil" {
		t.Errorf("records[0][name] = %v", records[0]["name"])
	}
	if cat, ok := records[0]["category"].(report.Record); !ok || cat["name"] != "Hardware" {
		t.Errorf("category join = %v", records[0]["category"])
	}
	if _, ok := records[1]["vendor"]; ok {
		t.Error("unjoined vendor should be absent, not empty")
	}

	active := true
	onlyActive, err := s.FindRows(ctx, report.KindProducts, &report.FilterSet{ActiveOnly: &active})
	if err != nil {
		t.Fatalf("FindRows(active) error = %v", err)
	}
	if len(onlyActive) != 1 || onlyActive[0]["id"] != "prod-1" {
		t.Errorf("active products = %v", onlyActive)
	}
}

// TestSQLiteStore_QueryInventory tests the product join and quantity bounds.
func TestSQLiteStore_QueryInventory(t *testing.T) {
	s := openTestStore(t)
	insertFixture(t, s)

	max := 10
	records, err := s.FindRows(context.Background(), report.KindInventory, &report.FilterSet{MaxQuantity: &max})
	if err != nil {
		t.Fatalf("FindRows() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if prod, ok := records[0]["product"].(report.Record); !ok || prod["sku"] != "ANV-001" {
		t.Errorf("product join = %v", records[0]["product"])
	}
}

// TestSQLiteStore_QueryVendors tests the active-only filter on vendors.
func TestSQLiteStore_QueryVendors(t *testing.T) {
	s := openTestStore(t)
	insertFixture(t, s)

	active := true
	records, err := s.FindRows(context.Background(), report.KindVendors, &report.FilterSet{ActiveOnly: &active})
	if err != nil {
		t.Fatalf("FindRows() error = %v", err)
	}
	if len(records) != 1 || records[0]["business_name"] != "Acme Supply" {
		t.Errorf("active vendors = %v", records)
	}
}

// TestSQLiteStore_SortKeyWhitelist tests that an unknown sort key falls back
// to the default instead of reaching the SQL text.
func TestSQLiteStore_SortKeyWhitelist(t *testing.T) {
	s := openTestStore(t)
	insertFixture(t, s)

	records, err := s.FindRows(context.Background(), report.KindProducts, &report.FilterSet{
		SortBy: "price; DROP TABLE products",
	})
	if err != nil {
		t.Fatalf("FindRows() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	// The table is still there.
	again, err := s.FindRows(context.Background(), report.KindProducts, nil)
	if err != nil || len(again) != 2 {
		t.Fatalf("products table damaged: %v, %d rows", err, len(again))
	}
}

// TestSQLiteStore_TimeBuckets tests SQL-side aggregation per granularity.
func TestSQLiteStore_TimeBuckets(t *testing.T) {
	s := openTestStore(t)
	insertFixture(t, s)
	ctx := context.Background()

	daily, err := s.FindTimeBuckets(ctx, nil, nil, report.GranularityDaily)
	if err != nil {
		t.Fatalf("FindTimeBuckets(daily) error = %v", err)
	}
	if len(daily) != 2 {
		t.Fatalf("daily buckets = %d, want 2", len(daily))
	}
	if daily[0].Count != 1 || daily[0].SumAmount != 120.0 || daily[0].SumQuantity != 2 {
		t.Errorf("daily[0] = %+v", daily[0])
	}
	if daily[1].Count != 2 || daily[1].SumAmount != 345.0 || daily[1].SumQuantity != 6 {
		t.Errorf("daily[1] = %+v", daily[1])
	}
	if got, want := daily[0].BucketStart, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("daily[0].BucketStart = %v, want %v", got, want)
	}

	monthly, err := s.FindTimeBuckets(ctx, nil, nil, report.GranularityMonthly)
	if err != nil {
		t.Fatalf("FindTimeBuckets(monthly) error = %v", err)
	}
	if len(monthly) != 1 || monthly[0].Count != 3 || monthly[0].SumAmount != 465.0 {
		t.Errorf("monthly = %+v", monthly)
	}

	if _, err := s.FindTimeBuckets(ctx, nil, nil, report.Granularity("yearly")); err == nil {
		t.Error("unsupported granularity expected error")
	}
}

// TestSQLiteStore_TimeBucketWindow tests that the aggregation window bounds
// are honored.
func TestSQLiteStore_TimeBucketWindow(t *testing.T) {
	s := openTestStore(t)
	insertFixture(t, s)

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	buckets, err := s.FindTimeBuckets(context.Background(), &start, nil, report.GranularityDaily)
	if err != nil {
		t.Fatalf("FindTimeBuckets() error = %v", err)
	}
	if len(buckets) != 1 || buckets[0].Count != 2 {
		t.Errorf("windowed buckets = %+v", buckets)
	}
}

// TestSQLiteStore_Seed tests that the demo dataset loads and every report
// kind has rows to export.
func TestSQLiteStore_Seed(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Seed(ctx); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	counts := map[report.ReportKind]int{
		report.KindOrders:    24,
		report.KindProducts:  8,
		report.KindCustomers: 5,
		report.KindInventory: 8,
		report.KindVendors:   3,
	}
	for kind, want := range counts {
		records, err := s.FindRows(ctx, kind, nil)
		if err != nil {
			t.Fatalf("FindRows(%s) error = %v", kind, err)
		}
		if len(records) != want {
			t.Errorf("FindRows(%s) = %d rows, want %d", kind, len(records), want)
		}
	}

	buckets, err := s.FindTimeBuckets(ctx, nil, nil, report.GranularityDaily)
	if err != nil {
		t.Fatalf("FindTimeBuckets() error = %v", err)
	}
	if len(buckets) == 0 {
		t.Error("seeded dataset produced no time buckets")
	}
}

// TestSQLiteStore_SchemaIdempotent tests reopening an existing database.
func TestSQLiteStore_SchemaIdempotent(t *testing.T) {
	cfg := DefaultSQLiteConfig()
	cfg.Path = filepath.Join(t.TempDir(), "test.db")

	s, err := NewSQLiteStore(cfg)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	insertFixture(t, s)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s2, err := NewSQLiteStore(cfg)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s2.Close()

	records, err := s2.FindRows(context.Background(), report.KindOrders, nil)
	if err != nil {
		t.Fatalf("FindRows() after reopen error = %v", err)
	}
	if len(records) != 3 {
		t.Errorf("rows after reopen = %d, want 3", len(records))
	}
}

// TestSQLiteStore_UnknownKind tests the closed-set guard on FindRows.
func TestSQLiteStore_UnknownKind(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.FindRows(context.Background(), report.KindSales, nil); err == nil {
		t.Error("FindRows(sales) expected error; sales has no row dataset")
	}
}
