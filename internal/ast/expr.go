package ast

import (
	"phpfmt/internal/source"
	"phpfmt/internal/token"
)

// ExprBase carries the source extent shared by expression nodes.
type ExprBase struct {
	Span source.Span
}

func (b *ExprBase) Pos() source.Span { return b.Span }

// Ident is a possibly-qualified name: a function, class, or constant
// reference such as 'strlen', 'Foo\Bar', or '\DateTime'.
type Ident struct {
	ExprBase
	Name string
}

// VariableExpr is '$name'; Name excludes the '$'.
type VariableExpr struct {
	ExprBase
	Name string
}

// IntLit keeps the literal digits verbatim.
type IntLit struct {
	ExprBase
	Text string
}

// FloatLit keeps the literal digits verbatim.
type FloatLit struct {
	ExprBase
	Text string
}

// StringLit is a single-quoted string; Text includes the quotes.
type StringLit struct {
	ExprBase
	Text string
}

// InterpStringLit is a double-quoted string, possibly with interpolation;
// Text includes the quotes and is kept verbatim.
type InterpStringLit struct {
	ExprBase
	Text string
}

// BoolLit is 'true' or 'false'.
type BoolLit struct {
	ExprBase
	Value bool
}

// NullLit is 'null'.
type NullLit struct {
	ExprBase
}

// ArrayItem is one '[key =>] [&|...]value' entry of an array literal.
type ArrayItem struct {
	Span   source.Span
	Key    Expr // nil when absent
	ByRef  bool
	Spread bool
	Value  Expr
}

func (a *ArrayItem) Pos() source.Span { return a.Span }

// ArrayLit is '[a, b]' or 'array(a, b)'; both print as '[...]'.
type ArrayLit struct {
	ExprBase
	Items []*ArrayItem
}

// AssignExpr is 'target op value' for '=' and compound assignments.
type AssignExpr struct {
	ExprBase
	Target Expr
	Op     token.Kind
	Value  Expr
}

// BinaryExpr covers arithmetic, comparison, logic, concatenation, and
// 'instanceof'. Operator precedence is reconstructed from the tree shape
// when printing; the source's redundant parentheses are not preserved.
type BinaryExpr struct {
	ExprBase
	Left  Expr
	Op    token.Kind
	Right Expr
}

// UnaryExpr is a prefix operator: '!', '-', '+', '~', '@', '++', '--'.
type UnaryExpr struct {
	ExprBase
	Op token.Kind
	X  Expr
}

// PostfixExpr is '$x++' or '$x--'.
type PostfixExpr struct {
	ExprBase
	X  Expr
	Op token.Kind
}

// TernaryExpr is 'cond ? then : else'; Then is nil for the short form.
type TernaryExpr struct {
	ExprBase
	Cond Expr
	Then Expr
	Else Expr
}

// CallExpr is 'callee(args)'.
type CallExpr struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

// SpreadExpr is a '...expr' argument or array element.
type SpreadExpr struct {
	ExprBase
	X Expr
}

// MethodCallExpr is 'obj->name(args)' or 'obj?->name(args)'.
type MethodCallExpr struct {
	ExprBase
	Object   Expr
	NullSafe bool
	Method   string
	Args     []Expr
}

// PropertyAccessExpr is 'obj->name' or 'obj?->name'.
type PropertyAccessExpr struct {
	ExprBase
	Object   Expr
	NullSafe bool
	Name     string
}

// StaticCallExpr is 'Class::method(args)'.
type StaticCallExpr struct {
	ExprBase
	Class  string
	Method string
	Args   []Expr
}

// ClassConstAccessExpr is 'Class::NAME', including 'Class::class'.
type ClassConstAccessExpr struct {
	ExprBase
	Class string
	Name  string
}

// StaticPropExpr is 'Class::$name'.
type StaticPropExpr struct {
	ExprBase
	Class string
	Name  string // without the leading '$'
}

// NewExpr is 'new Class(args)'. HadParens distinguishes 'new Foo' from
// 'new Foo()'; both print with parentheses.
type NewExpr struct {
	ExprBase
	Class     Expr
	Args      []Expr
	HadParens bool
}

// SubscriptExpr is 'x[index]'; Index is nil for the append form 'x[]'.
type SubscriptExpr struct {
	ExprBase
	X     Expr
	Index Expr
}

// ClosureUse is one captured variable of a closure's 'use (...)' clause.
type ClosureUse struct {
	Span  source.Span
	ByRef bool
	Name  string // without the leading '$'
}

func (c *ClosureUse) Pos() source.Span { return c.Span }

// ClosureExpr is '[static] function (params) use (vars) { ... }'.
type ClosureExpr struct {
	ExprBase
	Static     bool
	ByRef      bool
	Params     []*Param
	Uses       []*ClosureUse
	ReturnType *TypeHint
	Body       *BlockStmt
}

// ArrowFnExpr is '[static] fn (params) => expr'.
type ArrowFnExpr struct {
	ExprBase
	Static     bool
	ByRef      bool
	Params     []*Param
	ReturnType *TypeHint
	Body       Expr
}

func (*Ident) exprNode()                {}
func (*VariableExpr) exprNode()         {}
func (*IntLit) exprNode()               {}
func (*FloatLit) exprNode()             {}
func (*StringLit) exprNode()            {}
func (*InterpStringLit) exprNode()      {}
func (*BoolLit) exprNode()              {}
func (*NullLit) exprNode()              {}
func (*ArrayLit) exprNode()             {}
func (*AssignExpr) exprNode()           {}
func (*BinaryExpr) exprNode()           {}
func (*UnaryExpr) exprNode()            {}
func (*PostfixExpr) exprNode()          {}
func (*TernaryExpr) exprNode()          {}
func (*CallExpr) exprNode()             {}
func (*SpreadExpr) exprNode()           {}
func (*MethodCallExpr) exprNode()       {}
func (*PropertyAccessExpr) exprNode()   {}
func (*StaticCallExpr) exprNode()       {}
func (*ClassConstAccessExpr) exprNode() {}
func (*StaticPropExpr) exprNode()       {}
func (*NewExpr) exprNode()              {}
func (*SubscriptExpr) exprNode()        {}
func (*ClosureExpr) exprNode()          {}
func (*ArrowFnExpr) exprNode()          {}
