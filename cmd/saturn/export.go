package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storeline-hq/saturn/pkg/config"
	"storeline-hq/saturn/pkg/report"
	"storeline-hq/saturn/pkg/report/export"
	"storeline-hq/saturn/pkg/report/staging"
	"storeline-hq/saturn/pkg/store"
	"storeline-hq/saturn/pkg/telemetry/logging"
	"storeline-hq/saturn/pkg/telemetry/metrics"
)

var exportFlags struct {
	kind        string
	format      string
	start       string
	end         string
	status      string
	minPrice    float64
	maxPrice    float64
	minQuantity int
	maxQuantity int
	activeOnly  bool
	customerID  string
	vendorID    string
	categoryID  string
	granularity string
	sortBy      string
	sortDesc    bool
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a report file",
	Long: `Export one report as a downloadable file.

Date flags accept YYYY-MM-DD or RFC3339 timestamps. Range filters
combine with AND; omitted flags impose no constraint.

Examples:
  # Shipped orders over $100, newest first, as a workbook
  saturn export --kind orders --format xlsx --status shipped --min-price 100

  # Monthly sales time series
  saturn export --kind sales --format csv --granularity monthly

  # Low-stock report as a paginated document
  saturn export --kind inventory --format pdf --max-quantity 20`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFlags.kind, "kind", "", "report kind: orders, products, customers, sales, inventory, vendors")
	exportCmd.Flags().StringVar(&exportFlags.format, "format", "csv", "output format: csv, xlsx, pdf, json")
	exportCmd.Flags().StringVar(&exportFlags.start, "start", "", "start of the date range (inclusive)")
	exportCmd.Flags().StringVar(&exportFlags.end, "end", "", "end of the date range (inclusive)")
	exportCmd.Flags().StringVar(&exportFlags.status, "status", "", "filter orders by status")
	exportCmd.Flags().Float64Var(&exportFlags.minPrice, "min-price", 0, "minimum price/total threshold")
	exportCmd.Flags().Float64Var(&exportFlags.maxPrice, "max-price", 0, "maximum price/total threshold")
	exportCmd.Flags().IntVar(&exportFlags.minQuantity, "min-quantity", 0, "minimum quantity threshold")
	exportCmd.Flags().IntVar(&exportFlags.maxQuantity, "max-quantity", 0, "maximum quantity threshold")
	exportCmd.Flags().BoolVar(&exportFlags.activeOnly, "active-only", false, "restrict to active records")
	exportCmd.Flags().StringVar(&exportFlags.customerID, "customer", "", "filter by customer id")
	exportCmd.Flags().StringVar(&exportFlags.vendorID, "vendor", "", "filter by vendor id")
	exportCmd.Flags().StringVar(&exportFlags.categoryID, "category", "", "filter by category id")
	exportCmd.Flags().StringVar(&exportFlags.granularity, "granularity", "", "sales bucket width: hourly, daily, weekly, monthly (default daily)")
	exportCmd.Flags().StringVar(&exportFlags.sortBy, "sort-by", "", "override the default sort key")
	exportCmd.Flags().BoolVar(&exportFlags.sortDesc, "sort-desc", false, "sort descending")

	exportCmd.MarkFlagRequired("kind")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		return err
	}

	kind, err := report.ParseKind(exportFlags.kind)
	if err != nil {
		return err
	}
	// The format string is passed through unparsed: the service owns
	// format validation and reports unsupported formats before touching
	// the data source.
	format := report.OutputFormat(exportFlags.format)

	filters, err := buildFilters()
	if err != nil {
		return err
	}

	src, err := store.NewSQLiteStore(&store.SQLiteConfig{
		Path:         cfg.Store.Path,
		MaxOpenConns: cfg.Store.MaxOpenConns,
		MaxIdleConns: cfg.Store.MaxIdleConns,
		WALMode:      *cfg.Store.WALMode,
		BusyTimeout:  cfg.Store.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to open data source: %w", err)
	}
	defer src.Close()

	var exportMetrics *metrics.ExportMetrics
	if cfg.Metrics.Enabled {
		exportMetrics = metrics.NewExportMetrics(cfg.Metrics.Namespace, nil)
	}

	svc, err := export.NewService(export.Config{
		Source:   src,
		Staging:  staging.NewManager(cfg.Export.Directory),
		Metrics:  exportMetrics,
		Logger:   logger,
		Deadline: cfg.Export.Deadline,
	})
	if err != nil {
		return err
	}

	artifact, err := svc.Export(context.Background(), kind, format, filters)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d bytes to %s\n", artifact.Size, artifact.Path)
	return nil
}

// buildFilters translates flag values into a FilterSet. Zero-valued flags
// stay unset so they impose no constraint.
func buildFilters() (*report.FilterSet, error) {
	filters := &report.FilterSet{
		Status:     exportFlags.status,
		CustomerID: exportFlags.customerID,
		VendorID:   exportFlags.vendorID,
		CategoryID: exportFlags.categoryID,
		SortBy:     exportFlags.sortBy,
		SortDesc:   exportFlags.sortDesc,
	}

	if exportFlags.start != "" {
		t, err := parseDate(exportFlags.start)
		if err != nil {
			return nil, fmt.Errorf("invalid --start: %w", err)
		}
		filters.StartDate = &t
	}
	if exportFlags.end != "" {
		t, err := parseDate(exportFlags.end)
		if err != nil {
			return nil, fmt.Errorf("invalid --end: %w", err)
		}
		filters.EndDate = &t
	}
	if exportFlags.minPrice > 0 {
		filters.MinPrice = &exportFlags.minPrice
	}
	if exportFlags.maxPrice > 0 {
		filters.MaxPrice = &exportFlags.maxPrice
	}
	if exportFlags.minQuantity > 0 {
		filters.MinQuantity = &exportFlags.minQuantity
	}
	if exportFlags.maxQuantity > 0 {
		filters.MaxQuantity = &exportFlags.maxQuantity
	}
	if exportFlags.activeOnly {
		filters.ActiveOnly = &exportFlags.activeOnly
	}
	if exportFlags.granularity != "" {
		g, err := report.ParseGranularity(exportFlags.granularity)
		if err != nil {
			return nil, err
		}
		filters.Granularity = g
	}

	return filters, nil
}

// parseDate accepts YYYY-MM-DD or a full RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or RFC3339, got %q", s)
	}
	return t.UTC(), nil
}
