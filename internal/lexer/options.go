package lexer

import (
	"phpfmt/internal/diag"
	"phpfmt/internal/source"
)

// Options configures a Lexer. A nil Reporter discards diagnostics; lexing
// continues either way.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg)
	}
}
