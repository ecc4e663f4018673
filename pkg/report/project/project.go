package project

import (
	"strings"

	"storeline-hq/saturn/pkg/report"
)

// missing is the unexported type of the Missing sentinel.
type missing struct{}

// String renders the sentinel as an empty string so accidental printing is
// harmless.
func (missing) String() string { return "" }

// Missing is the sentinel returned when a projected path does not resolve.
// Callers render it as an empty string or an explicit placeholder; it is
// never an error.
var Missing any = missing{}

// IsMissing reports whether v is the Missing sentinel.
func IsMissing(v any) bool {
	_, ok := v.(missing)
	return ok
}

// Value resolves a dot-separated field path against a nested record.
// Traversal follows nested mappings; if any segment is absent, or an
// intermediate value is not a mapping, Value returns Missing.
//
//	Value(Record{"a": Record{"b": 1}}, "a.b") == 1
//	Value(Record{"a": 1}, "a.b")              == Missing
//	Value(Record{}, "x")                      == Missing
func Value(record report.Record, path string) any {
	if record == nil || path == "" {
		return Missing
	}

	current := any(record)
	for _, segment := range strings.Split(path, ".") {
		m, ok := asMapping(current)
		if !ok {
			return Missing
		}
		v, present := m[segment]
		if !present {
			return Missing
		}
		current = v
	}

	if current == nil {
		return Missing
	}
	return current
}

// asMapping normalizes the mapping shapes a record value can take.
func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case report.Record:
		return m, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}
