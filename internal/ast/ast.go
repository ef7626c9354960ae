// Package ast defines the PHP syntax tree produced by the parser and
// consumed by the formatter. Node kinds form a closed set: the lowering
// pass matches exhaustively over them, so an unhandled kind is an engine
// bug, not a user error.
package ast

import (
	"phpfmt/internal/source"
	"phpfmt/internal/token"
)

// Node is implemented by every syntax node.
type Node interface {
	Pos() source.Span
}

// Stmt is implemented by statement and declaration nodes.
type Stmt interface {
	Node
	Comments() *Base
	stmtNode()
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Member is implemented by class and interface body members.
type Member interface {
	Node
	Comments() *Base
	memberNode()
}

// Base carries the source extent and comment trivia shared by statements
// and members. Lead holds comments between the previous construct and
// this one; Trail holds a same-line comment after it. Blank records
// whether at least one blank line preceded the construct (or its first
// leading comment); BlankAfterLead records one between the last leading
// comment and the construct itself.
type Base struct {
	Span           source.Span
	Lead           []token.Trivia
	Trail          []token.Trivia
	Blank          bool
	BlankAfterLead bool
}

func (b *Base) Pos() source.Span { return b.Span }

// Comments exposes the trivia carrier for statement-sequence printing.
func (b *Base) Comments() *Base { return b }

// File is one parsed PHP source file.
type File struct {
	Span    source.Span
	Stmts   []Stmt
	EOFLead []token.Trivia // comments between the last statement and EOF
}

func (f *File) Pos() source.Span { return f.Span }
