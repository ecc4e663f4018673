package format

import (
	"testing"
	"time"

	"storeline-hq/saturn/pkg/report"
	"storeline-hq/saturn/pkg/report/project"
)

// TestMoney tests two-decimal fixed formatting, including zero-coercion for
// missing aggregates.
func TestMoney(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"float", 1234.5, "1234.50"},
		{"integer", 42, "42.00"},
		{"zero", 0.0, "0.00"},
		{"rounding", 9.999, "10.00"},
		{"missing defaults to zero", project.Value(report.Record{}, "x"), "0.00"},
		{"nil defaults to zero", nil, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Money(tt.in); got != tt.want {
				t.Errorf("Money(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestRatio tests mean/ratio formatting.
func TestRatio(t *testing.T) {
	if got := Ratio(2.0 / 3.0); got != "0.67" {
		t.Errorf("Ratio(2/3) = %q, want 0.67", got)
	}
	if got := Ratio(nil); got != "0.00" {
		t.Errorf("Ratio(nil) = %q, want 0.00", got)
	}
}

// TestInt tests count formatting with zero-coercion.
func TestInt(t *testing.T) {
	if got := Int(7); got != "7" {
		t.Errorf("Int(7) = %q, want 7", got)
	}
	if got := Int(project.Value(report.Record{}, "missing")); got != "0" {
		t.Errorf("Int(missing) = %q, want 0", got)
	}
}

// TestBool tests Yes/No formatting.
func TestBool(t *testing.T) {
	if got := Bool(true); got != "Yes" {
		t.Errorf("Bool(true) = %q, want Yes", got)
	}
	if got := Bool(false); got != "No" {
		t.Errorf("Bool(false) = %q, want No", got)
	}
	if got := Bool(nil); got != "No" {
		t.Errorf("Bool(nil) = %q, want No", got)
	}
}

// TestTimestamp tests locale-free timestamp formatting.
func TestTimestamp(t *testing.T) {
	ts := time.Date(2026, 3, 15, 9, 30, 45, 0, time.UTC)
	if got := Timestamp(ts); got != "2026-03-15 09:30:45" {
		t.Errorf("Timestamp = %q, want 2026-03-15 09:30:45", got)
	}
	if got := Timestamp(time.Time{}); got != "" {
		t.Errorf("Timestamp(zero) = %q, want empty", got)
	}
	if got := Timestamp("2026-01-01"); got != "2026-01-01" {
		t.Errorf("Timestamp(string) = %q, want passthrough", got)
	}
	if got := Timestamp(nil); got != "" {
		t.Errorf("Timestamp(nil) = %q, want empty", got)
	}
}

// TestTimestamp_Deterministic tests that formatting the same instant twice
// yields identical output.
func TestTimestamp_Deterministic(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if Timestamp(ts) != Timestamp(ts) {
		t.Error("Timestamp is not deterministic")
	}
}

// TestText tests free-text formatting and the N/A fallback.
func TestText(t *testing.T) {
	if got := Text("hello"); got != "hello" {
		t.Errorf("Text(hello) = %q", got)
	}
	if got := Text(project.Value(report.Record{}, "x")); got != "" {
		t.Errorf("Text(missing) = %q, want empty", got)
	}
	if got := TextOr(project.Value(report.Record{}, "x"), "N/A"); got != "N/A" {
		t.Errorf("TextOr(missing) = %q, want N/A", got)
	}
	if got := TextOr("set", "N/A"); got != "set" {
		t.Errorf("TextOr(set) = %q, want set", got)
	}
}
