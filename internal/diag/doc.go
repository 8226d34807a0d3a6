// Package diag defines the diagnostic model shared by the lexer, the format
// checker and the CLI.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity - tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code - compact numeric identifier (see codes.go) with stable string form
//     (LEX1002, FMT2003, ...).
//   - Message - human oriented text; keep it short and actionable.
//   - Primary span - the source.Span pointing to the issue.
//   - Notes - optional secondary spans/messages.
//   - Fixes - optional Fix records describing how to address the problem.
//
// # Fix suggestions
//
// A Fix is a list of TextEdit values. Each edit carries the text it expects to
// replace (OldText) so stale fixes are rejected instead of corrupting a file.
// Fixes may be lazy (Thunk) and are materialised by MaterializeFixes right
// before internal/fix applies them.
//
// # Reporting
//
// Producers never append to a Bag directly; they call a Reporter
// (Errorf for the common case, ReporterFunc for ad-hoc sinks).
// BagReporter aggregates diagnostics into a Bag, which supports sorting,
// deduplication and filtering. Rendering lives in internal/diagfmt.
package diag
