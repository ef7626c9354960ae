// Package diag defines the diagnostic model shared by the lexer, parser,
// and formatting engine.
//
// Diagnostic is the central record: severity, a compact numeric code with a
// stable string form, a human message, the primary source.Span, and
// optional notes. Producers emit through a Reporter so they stay decoupled
// from storage; Bag aggregates diagnostics per file with a hard cap,
// deterministic sorting, and deduplication.
//
// Codes in the 3000 range mark engine invariant violations (bugs in the
// formatter itself); the CLI reports those distinctly from problems with
// the user's input.
package diag
