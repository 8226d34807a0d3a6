// Package trace records what the checker is doing while it runs.
//
// Diagnostics are data and live in internal/diag. Trace output is for the
// operator: file spans with phase timings, and points for skipped call sites.
//
// # Usage
//
//	cfmtlint check --trace=- --trace-level=detail src/
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: reserved for failures, emits no spans
//   - LevelPhase: driver boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: per-call-site events
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//
//	span, ctx := trace.StartFile(ctx, "analyze", file.Path)
//	defer span.End("")
//	span.Point(trace.ScopeCallSite, "skip", "format is not a literal")
package trace
