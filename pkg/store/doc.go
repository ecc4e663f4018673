// Package store provides reference implementations of the report.DataSource
// interface consumed by the dataset assemblers.
//
// SQLiteStore is the production-shaped backend: a commerce schema (customers,
// vendors, products, inventory, orders, order items) queried with
// filter-derived WHERE clauses, returning already-joined nested records. The
// sales time series is aggregated in SQL by grouping on a truncation of the
// order timestamp, one row per non-empty bucket.
//
// MemoryStore mirrors the same contract in memory and is intended for tests.
package store
