// Saturn is the reporting and export service of the Storeline commerce
// platform.
//
// It projects commerce datasets (orders, products, customers, sales,
// inventory, vendors) into flat, uniformly formatted reports and renders
// them as delimited text, workbooks, paginated documents, or structured
// dumps.
//
// Usage:
//
//	# Export last month's orders as a spreadsheet
//	saturn export --kind orders --format xlsx --start 2026-07-01 --end 2026-07-31
//
//	# Daily sales time series as CSV
//	saturn export --kind sales --format csv --granularity daily
//
//	# Populate a demo database
//	saturn seed
//
//	# Show version information
//	saturn version
package main

func main() {
	Execute()
}
