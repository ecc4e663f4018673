// Package report defines the core types and contracts for the Saturn
// tabular report export pipeline.
//
// A report export is the projection of one domain dataset (orders, products,
// customers, sales, inventory, vendors) into a flat, uniformly formatted row
// set, rendered into one of several file encodings (delimited text, workbook,
// paginated document, structured dump).
//
// The package itself contains no I/O. It holds:
//
//   - The closed ReportKind and OutputFormat enumerations
//   - Record, Row and FieldList, the uniform dataset shapes shared by
//     every assembler and renderer
//   - FilterSet, the typed query criteria translated by assemblers
//   - DataSource, the interface to the persistence layer
//   - Renderer, the single capability every output format implements
//   - Artifact, the produced file plus its metadata
//   - The error taxonomy (UnsupportedFormatError, DataAccessError,
//     RenderError, ExportError)
//
// Concrete behavior lives in the subpackages:
//
//   - report/project: dotted-path field projection over nested records
//   - report/format: locale-free value formatting
//   - report/assemble: one dataset assembler per report kind
//   - report/render: one renderer per output format
//   - report/staging: export directory and filename management
//   - report/export: the orchestrator tying the pipeline together
//
// Architecture:
//
//	caller -> export.Service -> assemble.Assembler -> render (via staging) -> Artifact
//
// Each export call is independent and stateless; the row set is materialized
// in full before rendering begins, and nothing is cached between calls.
package report
