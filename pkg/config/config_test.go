package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoad_MissingFile tests that a missing file yields the full defaults.
func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Export.Directory != "exports" {
		t.Errorf("Export.Directory = %q", cfg.Export.Directory)
	}
	if cfg.Export.Deadline != 2*time.Minute {
		t.Errorf("Export.Deadline = %s", cfg.Export.Deadline)
	}
	if cfg.Store.Path != "data/saturn.db" {
		t.Errorf("Store.Path = %q", cfg.Store.Path)
	}
	if cfg.Store.WALMode == nil || !*cfg.Store.WALMode {
		t.Error("Store.WALMode default should be true")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Metrics.Namespace != "saturn" {
		t.Errorf("Metrics.Namespace = %q", cfg.Metrics.Namespace)
	}
}

// TestLoad_File tests that file values win over defaults.
func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
export:
  directory: /var/exports
  deadline: 30s
store:
  path: /var/db/commerce.db
  max_open_conns: 20
  wal_mode: false
logging:
  level: debug
  format: json
metrics:
  enabled: true
  namespace: shop
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Export.Directory != "/var/exports" {
		t.Errorf("Export.Directory = %q", cfg.Export.Directory)
	}
	if cfg.Export.Deadline != 30*time.Second {
		t.Errorf("Export.Deadline = %s", cfg.Export.Deadline)
	}
	if cfg.Store.MaxOpenConns != 20 {
		t.Errorf("Store.MaxOpenConns = %d", cfg.Store.MaxOpenConns)
	}
	if cfg.Store.WALMode == nil || *cfg.Store.WALMode {
		t.Error("explicit wal_mode: false was overridden")
	}
	// Unset fields still get defaults.
	if cfg.Store.MaxIdleConns != 5 {
		t.Errorf("Store.MaxIdleConns = %d", cfg.Store.MaxIdleConns)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Namespace != "shop" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
}

// TestLoad_EnvOverrides tests that environment variables beat the file.
func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("export:\n  directory: from-file\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	t.Setenv("SATURN_EXPORT_DIRECTORY", "from-env")
	t.Setenv("SATURN_STORE_BUSY_TIMEOUT", "11s")
	t.Setenv("SATURN_LOGGING_LEVEL", "warn")
	t.Setenv("SATURN_STORE_WAL_MODE", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Export.Directory != "from-env" {
		t.Errorf("Export.Directory = %q, want from-env", cfg.Export.Directory)
	}
	if cfg.Store.BusyTimeout != 11*time.Second {
		t.Errorf("Store.BusyTimeout = %s", cfg.Store.BusyTimeout)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Store.WALMode == nil || *cfg.Store.WALMode {
		t.Error("SATURN_STORE_WAL_MODE=false not applied")
	}
}

// TestLoad_MalformedFile tests that invalid YAML is an error.
func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("export: [not a mapping"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() of malformed YAML expected error")
	}
}

// TestValidate tests rejection of values that would fail at runtime.
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty export directory", func(c *Config) { c.Export.Directory = "" }},
		{"zero deadline", func(c *Config) { c.Export.Deadline = 0 }},
		{"empty store path", func(c *Config) { c.Store.Path = "" }},
		{"zero open conns", func(c *Config) { c.Store.MaxOpenConns = 0 }},
		{"idle exceeds open", func(c *Config) { c.Store.MaxIdleConns = c.Store.MaxOpenConns + 1 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("Validate() expected error, got nil")
			}
		})
	}

	if err := Validate(Default()); err != nil {
		t.Errorf("Validate(Default()) error = %v", err)
	}
}
