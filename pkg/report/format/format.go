// Package format provides the locale-free value formatting rules shared by
// every dataset assembler. All conversions are pure and deterministic:
// identical inputs always produce identical strings, independent of
// wall-clock time or environment.
package format

import (
	"fmt"
	"strconv"
	"time"

	"storeline-hq/saturn/pkg/report/project"
)

// timestampLayout is the locale-independent human form used for all exported
// timestamps.
const timestampLayout = "2006-01-02 15:04:05"

// Money formats a currency amount as a two-decimal fixed string. Missing or
// null amounts default to zero, never to an empty value.
func Money(v any) string {
	return strconv.FormatFloat(toFloat(v), 'f', 2, 64)
}

// Ratio formats a ratio or mean as a two-decimal string. Missing values
// default to zero.
func Ratio(v any) string {
	return strconv.FormatFloat(toFloat(v), 'f', 2, 64)
}

// Int formats an integral count. Missing values default to zero.
func Int(v any) string {
	return strconv.FormatInt(toInt(v), 10)
}

// Bool formats a boolean as "Yes" or "No". Missing values read as false.
func Bool(v any) string {
	if b, ok := v.(bool); ok && b {
		return "Yes"
	}
	return "No"
}

// Timestamp formats a timestamp as "2006-01-02 15:04:05" in the timestamp's
// own location. Missing values and zero times format as an empty string;
// strings pass through unchanged so pre-formatted dates survive.
func Timestamp(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(timestampLayout)
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format(timestampLayout)
	case string:
		return t
	default:
		return ""
	}
}

// Text formats a free-text value. Missing and nil render as an empty string;
// non-string scalars are stringified with their default representation.
func Text(v any) string {
	if v == nil || project.IsMissing(v) {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// TextOr formats a free-text value, substituting fallback (typically "N/A")
// for missing or empty values.
func TextOr(v any, fallback string) string {
	s := Text(v)
	if s == "" {
		return fallback
	}
	return s
}

// toFloat coerces numeric scalars to float64. Missing, nil and non-numeric
// values coerce to zero so absent aggregates never propagate as missing.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// toInt coerces numeric scalars to int64, truncating floats. Missing, nil
// and non-numeric values coerce to zero.
func toInt(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	case float32:
		return int64(n)
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}
