package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// TestNew_JSONFormat tests that log records come out as JSON.
func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("export completed", "kind", "orders")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	if record["msg"] != "export completed" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["kind"] != "orders" {
		t.Errorf("kind = %v", record["kind"])
	}
}

// TestNew_TextFormat tests plain text output.
func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("unexpected text output: %s", buf.String())
	}
}

// TestNew_LevelFiltering tests that records below the minimum level drop.
func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("dropped")
	logger.Info("dropped too")
	if buf.Len() != 0 {
		t.Errorf("records below warn were emitted: %s", buf.String())
	}

	logger.Warn("kept")
	if buf.Len() == 0 {
		t.Error("warn record was dropped")
	}
}

// TestNew_InvalidConfig tests rejection of unknown levels and formats.
func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Error("New() with unknown level expected error")
	}
	if _, err := New(Config{Format: "yaml"}); err == nil {
		t.Error("New() with unknown format expected error")
	}
}

// TestNew_Defaults tests that empty level and format fall back to info/JSON.
func TestNew_Defaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("default")
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("default output is not JSON: %v", err)
	}
}
