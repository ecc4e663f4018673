package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file, applies defaults and
// environment variable overrides, and validates the result. A missing file
// is not an error: defaults plus environment overrides then form the whole
// configuration, so Saturn runs without a config file at all.
//
// Environment variables follow the naming convention SATURN_SECTION_FIELD
// (e.g. SATURN_EXPORT_DIRECTORY) and always take precedence over the file.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Fall through to defaults.
	default:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies SATURN_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("SATURN_EXPORT_DIRECTORY"); val != "" {
		cfg.Export.Directory = val
	}
	if val := os.Getenv("SATURN_EXPORT_DEADLINE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Export.Deadline = d
		}
	}

	if val := os.Getenv("SATURN_STORE_PATH"); val != "" {
		cfg.Store.Path = val
	}
	if val := os.Getenv("SATURN_STORE_MAX_OPEN_CONNS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Store.MaxOpenConns = i
		}
	}
	if val := os.Getenv("SATURN_STORE_MAX_IDLE_CONNS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Store.MaxIdleConns = i
		}
	}
	if val := os.Getenv("SATURN_STORE_WAL_MODE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Store.WALMode = &b
		}
	}
	if val := os.Getenv("SATURN_STORE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Store.BusyTimeout = d
		}
	}

	if val := os.Getenv("SATURN_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("SATURN_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}

	if val := os.Getenv("SATURN_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("SATURN_METRICS_NAMESPACE"); val != "" {
		cfg.Metrics.Namespace = val
	}
}
