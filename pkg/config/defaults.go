package config

import "time"

// ApplyDefaults fills in default values for any unset configuration fields.
// Defaults are applied before validation so a zero-value Config is valid.
func ApplyDefaults(cfg *Config) {
	if cfg.Export.Directory == "" {
		cfg.Export.Directory = "exports"
	}
	if cfg.Export.Deadline <= 0 {
		cfg.Export.Deadline = 2 * time.Minute
	}

	if cfg.Store.Path == "" {
		cfg.Store.Path = "data/saturn.db"
	}
	if cfg.Store.MaxOpenConns <= 0 {
		cfg.Store.MaxOpenConns = 10
	}
	if cfg.Store.MaxIdleConns <= 0 {
		cfg.Store.MaxIdleConns = 5
	}
	if cfg.Store.BusyTimeout <= 0 {
		cfg.Store.BusyTimeout = 5 * time.Second
	}
	if cfg.Store.WALMode == nil {
		wal := true
		cfg.Store.WALMode = &wal
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "saturn"
	}
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
