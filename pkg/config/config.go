// Package config defines Saturn's configuration model: a YAML file with
// defaults applied, SATURN_* environment overrides, and validation before
// use.
package config

import "time"

// Config is the root configuration for Saturn.
type Config struct {
	// Export configures the report export pipeline.
	Export ExportConfig `yaml:"export"`

	// Store configures the commerce data source.
	Store StoreConfig `yaml:"store"`

	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures Prometheus instrumentation.
	Metrics MetricsConfig `yaml:"metrics"`
}

// ExportConfig configures the export pipeline.
type ExportConfig struct {
	// Directory is where export artifacts are written. Created on first
	// use.
	Directory string `yaml:"directory"`

	// Deadline bounds one export call end to end (data fetch plus
	// render). Expiry surfaces as a data-access or render failure.
	Deadline time.Duration `yaml:"deadline"`
}

// StoreConfig configures the SQLite commerce data source.
type StoreConfig struct {
	// Path is the SQLite database file path.
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections.
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging. Defaults to true when unset.
	WALMode *bool `yaml:"wal_mode"`

	// BusyTimeout is the duration to wait when the database is locked.
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is the output format: json, text.
	Format string `yaml:"format"`

	// AddSource includes file and line number in log output.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures Prometheus instrumentation.
type MetricsConfig struct {
	// Enabled turns metric collection on.
	Enabled bool `yaml:"enabled"`

	// Namespace is the Prometheus metric namespace.
	Namespace string `yaml:"namespace"`
}
