// Package trace is the structured logging layer of tabtidy.
//
// Events are spans (begin/end pairs) and points, tagged with a scope and
// filtered by level:
//
//   - LevelOff: nothing
//   - LevelError: error points only
//   - LevelPhase: driver operations
//   - LevelDetail: plus one span per file
//   - LevelDebug: plus one span per lex/tidy pass
//
// Tracers travel through the driver via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, parentID)
//	defer span.End("")
//
// Enable from the command line:
//
//	tabtidy tidy --trace=- --trace-level=detail tests/
package trace
