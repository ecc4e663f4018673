package report

import "fmt"

// UnsupportedFormatError indicates the requested output format is not in the
// closed OutputFormat set. The orchestrator raises it before any data-source
// call, so it never has side effects.
type UnsupportedFormatError struct {
	Format string // Requested format name
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported output format %q (supported: csv, xlsx, pdf, json)", e.Format)
}

// NewUnsupportedFormatError creates a new UnsupportedFormatError.
func NewUnsupportedFormatError(format string) *UnsupportedFormatError {
	return &UnsupportedFormatError{Format: format}
}

// DataAccessError represents a query or connection failure in the data
// source. No file is produced when it is raised.
type DataAccessError struct {
	Kind      ReportKind // Report kind being assembled
	Operation string     // Data-source operation that failed ("find_rows", "find_time_buckets")
	Cause     error      // Underlying error
}

// Error implements the error interface.
func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access error [kind=%s, operation=%s]: %v", e.Kind, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *DataAccessError) Unwrap() error {
	return e.Cause
}

// NewDataAccessError creates a new DataAccessError.
func NewDataAccessError(kind ReportKind, operation string, cause error) *DataAccessError {
	return &DataAccessError{Kind: kind, Operation: operation, Cause: cause}
}

// RenderError represents an I/O or encoding failure during file
// construction. Renderers delete any partial output before returning it, so
// a RenderError implies no file was left in a state the caller could mistake
// for complete.
type RenderError struct {
	Format   OutputFormat // Output format being rendered
	RowCount int          // Number of rows in the export
	Cause    error        // Underlying error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("render error [format=%s, row_count=%d]: %v", e.Format, e.RowCount, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a new RenderError.
func NewRenderError(format OutputFormat, rowCount int, cause error) *RenderError {
	return &RenderError{Format: format, RowCount: rowCount, Cause: cause}
}

// ExportError wraps any unexpected failure in the export pipeline that is not
// a DataAccessError, RenderError or UnsupportedFormatError, preserving the
// original cause for diagnostics.
type ExportError struct {
	Kind   ReportKind   // Report kind being exported
	Format OutputFormat // Output format requested
	Cause  error        // Underlying error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [kind=%s, format=%s]: %v", e.Kind, e.Format, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ExportError) Unwrap() error {
	return e.Cause
}

// NewExportError creates a new ExportError.
func NewExportError(kind ReportKind, format OutputFormat, cause error) *ExportError {
	return &ExportError{Kind: kind, Format: format, Cause: cause}
}
