package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"storeline-hq/saturn/pkg/report"
	"storeline-hq/saturn/pkg/report/project"
)

// MemoryStore implements report.DataSource over in-memory record slices.
// This implementation is intended for testing only.
type MemoryStore struct {
	records map[report.ReportKind][]report.Record
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory data source.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[report.ReportKind][]report.Record),
	}
}

// Add appends a record to the dataset of the given kind. Sales has no
// dataset of its own; its buckets are aggregated from the orders records.
func (s *MemoryStore) Add(kind report.ReportKind, rec report.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[kind] = append(s.records[kind], rec)
}

// FindRows returns the records of one kind matching the filter set, sorted
// by the requested key.
func (s *MemoryStore) FindRows(ctx context.Context, kind report.ReportKind, filters *report.FilterSet) ([]report.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []report.Record
	for _, rec := range s.records[kind] {
		if matchesFilters(kind, rec, filters) {
			// Copy so callers can never mutate stored records.
			c := make(report.Record, len(rec))
			for k, v := range rec {
				c[k] = v
			}
			results = append(results, c)
		}
	}

	if filters != nil && filters.SortBy != "" {
		sortRecords(results, filters.SortBy, filters.SortDesc)
	}

	return results, nil
}

// FindTimeBuckets aggregates the orders dataset into time buckets, ascending
// by bucket start. Buckets with no order items report a zero quantity sum.
func (s *MemoryStore) FindTimeBuckets(ctx context.Context, start, end *time.Time, g report.Granularity) ([]report.TimeBucket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	grouped := make(map[time.Time]*report.TimeBucket)
	for _, rec := range s.records[report.KindOrders] {
		created, ok := project.Value(rec, "created_at").(time.Time)
		if !ok {
			continue
		}
		if start != nil && created.Before(*start) {
			continue
		}
		if end != nil && created.After(*end) {
			continue
		}

		bucketStart := truncateTime(created.UTC(), g)
		b, exists := grouped[bucketStart]
		if !exists {
			b = &report.TimeBucket{BucketStart: bucketStart}
			grouped[bucketStart] = b
		}
		b.Count++
		b.SumAmount += asFloat(project.Value(rec, "total_amount"))
		b.SumQuantity += int(asFloat(project.Value(rec, "item_count")))
	}

	buckets := make([]report.TimeBucket, 0, len(grouped))
	for _, b := range grouped {
		if b.Count > 0 {
			b.MeanAmount = b.SumAmount / float64(b.Count)
		}
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].BucketStart.Before(buckets[j].BucketStart)
	})

	return buckets, nil
}

// Close releases resources held by the store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[report.ReportKind][]report.Record)
	return nil
}

// Size returns the number of records held for one kind (for tests).
func (s *MemoryStore) Size(kind report.ReportKind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records[kind])
}

// matchesFilters applies the kind-specific reading of the filter set. Range
// bounds compose with AND; absent bounds impose no constraint.
func matchesFilters(kind report.ReportKind, rec report.Record, f *report.FilterSet) bool {
	if f == nil {
		return true
	}

	if f.StartDate != nil || f.EndDate != nil {
		created, ok := project.Value(rec, "created_at").(time.Time)
		if ok {
			if f.StartDate != nil && created.Before(*f.StartDate) {
				return false
			}
			if f.EndDate != nil && created.After(*f.EndDate) {
				return false
			}
		}
	}

	if f.Status != "" && stringField(rec, "status") != f.Status {
		return false
	}
	if f.CustomerID != "" && stringField(rec, "customer_id") != f.CustomerID {
		return false
	}
	if f.VendorID != "" && stringField(rec, "vendor_id") != f.VendorID {
		return false
	}
	if f.CategoryID != "" && stringField(rec, "category_id") != f.CategoryID {
		return false
	}

	if f.ActiveOnly != nil && *f.ActiveOnly {
		if active, ok := project.Value(rec, "active").(bool); ok && !active {
			return false
		}
	}

	// Price bounds read the kind's price-like attribute.
	priceField := "price"
	if kind == report.KindOrders {
		priceField = "total_amount"
	}
	if f.MinPrice != nil && asFloat(project.Value(rec, priceField)) < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && asFloat(project.Value(rec, priceField)) > *f.MaxPrice {
		return false
	}

	// Quantity bounds read stock level or item count.
	qtyField := "quantity"
	if kind == report.KindOrders {
		qtyField = "item_count"
	}
	if f.MinQuantity != nil && int(asFloat(project.Value(rec, qtyField))) < *f.MinQuantity {
		return false
	}
	if f.MaxQuantity != nil && int(asFloat(project.Value(rec, qtyField))) > *f.MaxQuantity {
		return false
	}

	return true
}

// sortRecords orders records by a dotted sort key. Times, numerics and
// strings compare natively; mixed types fall back to string comparison.
func sortRecords(records []report.Record, key string, desc bool) {
	sort.SliceStable(records, func(i, j int) bool {
		less := compareValues(project.Value(records[i], key), project.Value(records[j], key))
		if desc {
			return !less
		}
		return less
	})
}

func compareValues(a, b any) bool {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Before(bt)
		}
	}
	af, aNum := asNumber(a)
	bf, bNum := asNumber(b)
	if aNum && bNum {
		return af < bf
	}
	return strings.ToLower(asString(a)) < strings.ToLower(asString(b))
}

func stringField(rec report.Record, field string) string {
	return asString(project.Value(rec, field))
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asFloat(v any) float64 {
	f, _ := asNumber(v)
	return f
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// truncateTime floors t to the start of its bucket at granularity g.
// Weekly buckets start on Monday.
func truncateTime(t time.Time, g report.Granularity) time.Time {
	switch g {
	case report.GranularityHourly:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
	case report.GranularityWeekly:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case report.GranularityMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}
