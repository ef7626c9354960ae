package ast

import (
	"phpfmt/internal/token"
)

// ExprStmt is an expression used as a statement, terminated by ';'.
type ExprStmt struct {
	Base
	X Expr
}

// EchoStmt is 'echo e1, e2, ...;'.
type EchoStmt struct {
	Base
	Args []Expr
}

// ReturnStmt is 'return;' or 'return expr;'.
type ReturnStmt struct {
	Base
	X Expr // nil for bare return
}

// BreakStmt is 'break;'.
type BreakStmt struct {
	Base
}

// ContinueStmt is 'continue;'.
type ContinueStmt struct {
	Base
}

// BlockStmt is a '{ ... }' statement list. DanglingLead holds comments
// that sit between the last statement and the closing brace (or fill an
// otherwise empty block).
type BlockStmt struct {
	Base
	Stmts        []Stmt
	DanglingLead []token.Trivia
}

// ElseifClause is one 'elseif (cond) { ... }' arm.
type ElseifClause struct {
	Base
	Cond Expr
	Body *BlockStmt
}

// IfStmt is 'if (cond) { ... } elseif ... else { ... }'. ElseLead holds
// comments between the last arm and the 'else' keyword.
type IfStmt struct {
	Base
	Cond     Expr
	Then     *BlockStmt
	Elseifs  []*ElseifClause
	Else     *BlockStmt // nil when absent
	ElseLead []token.Trivia
}

// WhileStmt is 'while (cond) { ... }'.
type WhileStmt struct {
	Base
	Cond Expr
	Body *BlockStmt
}

// DoWhileStmt is 'do { ... } while (cond);'.
type DoWhileStmt struct {
	Base
	Body *BlockStmt
	Cond Expr
}

// ForStmt is 'for (init; cond; post) { ... }'; each section may hold zero
// or more comma-separated expressions.
type ForStmt struct {
	Base
	Init []Expr
	Cond []Expr
	Post []Expr
	Body *BlockStmt
}

// ForeachStmt is 'foreach (subject as [$key =>] [&]$value) { ... }'.
type ForeachStmt struct {
	Base
	Subject Expr
	Key     Expr // nil when no key
	ByRef   bool
	Value   Expr
	Body    *BlockStmt
}

// EchoStmt and friends share the statement marker.
func (*ExprStmt) stmtNode()     {}
func (*EchoStmt) stmtNode()     {}
func (*ReturnStmt) stmtNode()   {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*BlockStmt) stmtNode()    {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*DoWhileStmt) stmtNode()  {}
func (*ForStmt) stmtNode()      {}
func (*ForeachStmt) stmtNode()  {}
