package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"storeline-hq/saturn/pkg/config"
	"storeline-hq/saturn/pkg/store"
	"storeline-hq/saturn/pkg/telemetry/logging"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo data",
	Long: `Populate the configured SQLite database with a small demo dataset
(vendors, products, inventory, customers and a month of orders) so the
export pipeline can be exercised locally.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if _, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}); err != nil {
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
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer src.Close()

	if err := src.Seed(context.Background()); err != nil {
		return err
	}

	fmt.Printf("Seeded demo data into %s\n", cfg.Store.Path)
	return nil
}
