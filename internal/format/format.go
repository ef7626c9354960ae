// Package format lowers a parsed PHP file into the document IR and
// renders it under the active style configuration.
//
// Format is a pure function of the tree and the configuration: no shared
// state, safe to call concurrently for different files. Flat and broken
// renderings of every construct reparse to the same tree shape, which is
// what makes the output idempotent.
package format

import (
	"fmt"
	"strings"

	"phpfmt/internal/ast"
	"phpfmt/internal/doc"
	"phpfmt/internal/layout"
	"phpfmt/internal/source"
	"phpfmt/internal/style"
)

// LoweringError reports an AST construct the formatter does not handle.
// It marks the input as failed without aborting the batch.
type LoweringError struct {
	Span source.Span
	Msg  string
}

func (e *LoweringError) Error() string { return e.Msg }

type printer struct {
	cfg *style.Config
	ids doc.IDGen
	err error
}

// Format renders one parsed file. The output always ends with a newline
// and uses the configured line separator.
func Format(file *ast.File, cfg *style.Config) ([]byte, error) {
	p := &printer{cfg: cfg}
	d := p.file(file)
	if p.err != nil {
		return nil, p.err
	}
	out, err := layout.RenderChecked(d, layout.Options{
		Width:       cfg.Width,
		IndentWidth: cfg.IndentWidth,
		UseTabs:     cfg.UseTabs,
	})
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	if cfg.EndOfLine == style.EOLCRLF {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	return []byte(out), nil
}

// fail records the first lowering failure; later ones are dropped since
// the input is already doomed.
func (p *printer) fail(sp source.Span, format string, args ...any) {
	if p.err == nil {
		p.err = &LoweringError{Span: sp, Msg: fmt.Sprintf(format, args...)}
	}
}

// file assembles the whole document: the opening tag, the statement list
// with blank lines collapsed to at most one, and trailing comments.
func (p *printer) file(f *ast.File) doc.Doc {
	parts := doc.Concat{doc.Text("<?php")}
	for _, s := range f.Stmts {
		b := s.Comments()
		if b.Blank {
			parts = append(parts, doc.LiteralLine)
		}
		parts = append(parts, doc.HardLine)
		parts = p.appendLead(parts, b.Lead, b.BlankAfterLead)
		parts = append(parts, p.stmt(s))
		parts = p.appendTrail(parts, b.Trail)
	}
	for _, c := range f.EOFLead {
		if c.NewlinesBefore >= 2 {
			parts = append(parts, doc.LiteralLine)
		}
		parts = append(parts, doc.HardLine, p.comment(c))
	}
	parts = append(parts, doc.HardLine)
	return parts
}
