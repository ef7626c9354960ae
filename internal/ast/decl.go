package ast

import (
	"phpfmt/internal/source"
	"phpfmt/internal/token"
)

// TypeHint is a parameter, property, or return type annotation.
type TypeHint struct {
	Span     source.Span
	Nullable bool   // leading '?'
	Name     string // possibly qualified; unions kept verbatim
}

func (t *TypeHint) Pos() source.Span { return t.Span }

// Param is one function, method, or closure parameter.
type Param struct {
	Base
	Modifiers []string // promoted-property modifiers on constructors
	Type      *TypeHint
	ByRef     bool
	Variadic  bool
	Name      string // without the leading '$'
	Default   Expr   // nil when absent
}

func (p *Param) Pos() source.Span { return p.Span }

// FunctionDecl is a top-level 'function name(params) { ... }'.
type FunctionDecl struct {
	Base
	Name       string
	ByRef      bool
	Params     []*Param
	ReturnType *TypeHint
	Body       *BlockStmt
}

// ClassDecl is 'class Name extends E implements I1, I2 { members }'.
// TailLead holds comments between the last member and the closing brace.
type ClassDecl struct {
	Base
	Name       string
	Extends    string // empty when absent
	Implements []string
	Members    []Member
	TailLead   []token.Trivia
}

// InterfaceDecl is 'interface Name extends I1, I2 { members }'.
type InterfaceDecl struct {
	Base
	Name     string
	Extends  []string
	Members  []Member
	TailLead []token.Trivia
}

// UseStmt is a namespace import: 'use Foo\Bar [as Baz];'.
type UseStmt struct {
	Base
	Path  string
	Alias string // empty when absent
}

// NamespaceStmt is 'namespace Foo\Bar;'.
type NamespaceStmt struct {
	Base
	Name string
}

// ConstStmt is a top-level 'const NAME = expr;'.
type ConstStmt struct {
	Base
	Name  string
	Value Expr
}

// PropertyDecl is a class property: 'modifiers [?type] $name [= default];'.
type PropertyDecl struct {
	Base
	Modifiers []string
	Type      *TypeHint
	Name      string // without the leading '$'
	Default   Expr   // nil when absent
}

// ClassConstDecl is 'modifiers const NAME = expr;'.
type ClassConstDecl struct {
	Base
	Modifiers []string
	Name      string
	Value     Expr
}

// MethodDecl is a class or interface method. Body is nil for interface
// signatures.
type MethodDecl struct {
	Base
	Modifiers  []string
	Name       string
	ByRef      bool
	Params     []*Param
	ReturnType *TypeHint
	Body       *BlockStmt
}

func (*FunctionDecl) stmtNode()  {}
func (*ClassDecl) stmtNode()     {}
func (*InterfaceDecl) stmtNode() {}
func (*UseStmt) stmtNode()       {}
func (*NamespaceStmt) stmtNode() {}
func (*ConstStmt) stmtNode()     {}

func (*PropertyDecl) memberNode()   {}
func (*ClassConstDecl) memberNode() {}
func (*MethodDecl) memberNode()     {}
