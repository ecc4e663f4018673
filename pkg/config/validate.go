package config

import "fmt"

// Validate checks the configuration for values that would fail at runtime.
// It assumes defaults have already been applied.
func Validate(cfg *Config) error {
	if cfg.Export.Directory == "" {
		return fmt.Errorf("export.directory must not be empty")
	}
	if cfg.Export.Deadline <= 0 {
		return fmt.Errorf("export.deadline must be positive, got %s", cfg.Export.Deadline)
	}

	if cfg.Store.Path == "" {
		return fmt.Errorf("store.path must not be empty")
	}
	if cfg.Store.MaxOpenConns <= 0 {
		return fmt.Errorf("store.max_open_conns must be positive, got %d", cfg.Store.MaxOpenConns)
	}
	if cfg.Store.MaxIdleConns <= 0 {
		return fmt.Errorf("store.max_idle_conns must be positive, got %d", cfg.Store.MaxIdleConns)
	}
	if cfg.Store.MaxIdleConns > cfg.Store.MaxOpenConns {
		return fmt.Errorf("store.max_idle_conns (%d) must not exceed store.max_open_conns (%d)",
			cfg.Store.MaxIdleConns, cfg.Store.MaxOpenConns)
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text; got %q", cfg.Logging.Format)
	}

	return nil
}
