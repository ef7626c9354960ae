// Package parser builds the PHP syntax tree from the lexer's token stream
// with a hand-written recursive descent front and precedence climbing for
// expressions. Comment trivia is lifted off tokens and attached to the
// statements it belongs to, so the formatter can re-anchor it.
package parser

import (
	"fmt"

	"phpfmt/internal/ast"
	"phpfmt/internal/diag"
	"phpfmt/internal/lexer"
	"phpfmt/internal/source"
	"phpfmt/internal/token"
)

type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter
}

// Parser holds the state for one file.
type Parser struct {
	lx   *lexer.Lexer
	opts Options

	tok      token.Token // current token
	lastSpan source.Span // span of the last consumed token
	errs     uint
}

// ParseFile parses one file. The returned ok is false when at least one
// syntax error was reported; the tree is still returned for inspection but
// must not be formatted.
func ParseFile(file *source.File, opts Options) (*ast.File, bool) {
	p := &Parser{
		lx:   lexer.New(file, lexer.Options{Reporter: opts.Reporter}),
		opts: opts,
	}
	p.tok = p.lx.Next()
	if p.tok.Kind == token.OpenTag {
		p.advance()
	}

	f := &ast.File{Span: source.Span{File: file.ID}}
	start := p.tok.Span
	for p.tok.Kind != token.EOF && p.tok.Kind != token.CloseTag {
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncStmt()
			continue
		}
		if stmt == nil {
			if !p.at(token.EOF) && !p.at(token.CloseTag) {
				p.errorf(diag.SynUnexpectedTopLevel, p.tok.Span,
					"unexpected %s at top level", p.describe(p.tok))
				p.advance()
			}
			continue
		}
		f.Stmts = append(f.Stmts, stmt)
	}

	// comments between the last statement and EOF (or the close tag)
	f.EOFLead = append(f.EOFLead, p.tok.Leading...)
	if p.tok.Kind == token.CloseTag {
		p.advance()
		f.EOFLead = append(f.EOFLead, p.tok.Leading...)
	}
	f.Span = start.Cover(p.lastSpan)
	return f, p.errs == 0
}

// advance consumes the current token and returns it.
func (p *Parser) advance() token.Token {
	tok := p.tok
	p.lastSpan = tok.Span
	p.tok = p.lx.Next()
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.tok.Kind == k
}

// peek looks one token past the current one.
func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, bool) {
	if p.tok.Kind == k {
		return p.advance(), true
	}
	p.errorf(code, p.tok.Span, "expected %s, found %s", k, p.describe(p.tok))
	return p.tok, false
}

func (p *Parser) describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident, token.Variable, token.IntLit, token.FloatLit,
		token.StringLit, token.InterpStringLit:
		return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
	default:
		return fmt.Sprintf("'%s'", tok.Kind)
	}
}

func (p *Parser) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	p.errs++
	if p.opts.MaxErrors != 0 && p.errs > p.opts.MaxErrors {
		return
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, fmt.Sprintf(format, args...))
	}
}

// resyncStmt skips ahead to a statement boundary after an error: past the
// next semicolon, or up to a closing brace or EOF.
func (p *Parser) resyncStmt() {
	for {
		switch p.tok.Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.RBrace, token.EOF, token.CloseTag:
			return
		case token.LBrace:
			// skip nested blocks wholesale
			p.advance()
			depth := 1
			for depth > 0 && !p.at(token.EOF) {
				switch p.tok.Kind {
				case token.LBrace:
					depth++
				case token.RBrace:
					depth--
				}
				p.advance()
			}
			return
		default:
			p.advance()
		}
	}
}

// takeLead detaches the current token's leading comments and blank-line
// flag so they can be pinned on the statement about to be parsed. The
// second flag records a blank line between the last comment and the
// construct itself.
func (p *Parser) takeLead() ([]token.Trivia, bool, bool) {
	lead := p.tok.Leading
	blank := p.tok.BlankLineBefore()
	gap := len(lead) > 0 && p.tok.NewlinesBefore >= 2
	p.tok.Leading = nil
	return lead, blank, gap
}

// takeTrail claims a comment sitting on the same line as the construct
// that was just parsed. The lexer attaches such a comment to the next
// token; a zero newline count identifies it.
func (p *Parser) takeTrail() []token.Trivia {
	if len(p.tok.Leading) > 0 && p.tok.Leading[0].NewlinesBefore == 0 {
		trail := p.tok.Leading[0]
		p.tok.Leading = p.tok.Leading[1:]
		return []token.Trivia{trail}
	}
	return nil
}

// spanFrom builds a span from a construct's first token to the last
// consumed one.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}
