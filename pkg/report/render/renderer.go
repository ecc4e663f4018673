// Package render contains the format renderers, one per output format.
//
// Every renderer consumes the same uniform contract (FieldList plus
// materialized rows) and produces a single file through the staging manager.
// Renderer selection is a registry lookup keyed on the OutputFormat enum, so
// adding a format means adding one implementation here and nothing else.
//
// All renderers write to a temp file in the staging directory and atomically
// rename on success; a failure mid-write removes the temp file so no partial
// output can be mistaken for a complete artifact.
package render

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"storeline-hq/saturn/pkg/report"
	"storeline-hq/saturn/pkg/report/staging"
)

// Renderers builds the full renderer registry over one staging manager,
// keyed by output format.
func Renderers(st *staging.Manager) map[report.OutputFormat]report.Renderer {
	return map[report.OutputFormat]report.Renderer{
		report.FormatDelimitedText:     NewCSVRenderer(st),
		report.FormatWorkbook:          NewWorkbookRenderer(st),
		report.FormatPaginatedDocument: NewDocumentRenderer(st),
		report.FormatStructuredDump:    NewDumpRenderer(st),
	}
}

// ctxCheckInterval is how many rows a renderer writes between deadline
// checks.
const ctxCheckInterval = 256

// cellString stringifies a row value for text-based output. Strings pass
// through untouched; numerics use standard formatting.
func cellString(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case int:
		return strconv.Itoa(n)
	case int32:
		return strconv.FormatInt(int64(n), 10)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(n)
	default:
		return fmt.Sprintf("%v", n)
	}
}

// finalize renames the temp file into place and builds the artifact from the
// final file's metadata.
func finalize(tmp, path string, f report.OutputFormat, rowCount int) (*report.Artifact, error) {
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return nil, report.NewRenderError(f, rowCount, fmt.Errorf("failed to finalize artifact: %w", err))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, report.NewRenderError(f, rowCount, fmt.Errorf("failed to stat artifact: %w", err))
	}

	return &report.Artifact{
		Path:      path,
		Filename:  info.Name(),
		Size:      info.Size(),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// discard removes the temp file and wraps the failure as a RenderError.
func discard(tmp string, f report.OutputFormat, rowCount int, cause error) error {
	os.Remove(tmp)
	return report.NewRenderError(f, rowCount, cause)
}
