package format

import (
	"strings"

	"phpfmt/internal/ast"
	"phpfmt/internal/doc"
	"phpfmt/internal/token"
)

// atomPrec is the binding power of expressions that never need
// parenthesization: literals, variables, names, delimited constructs.
const atomPrec = ast.PrecPostfix + 1

// expr renders e and wraps it in parentheses when its own binding power
// is below what the surrounding context requires. Redundant source parens
// were dropped by the parser; this is where the necessary ones come back.
func (p *printer) expr(e ast.Expr, min int) doc.Doc {
	d, prec := p.exprPrec(e)
	if prec < min {
		return doc.Join(doc.Text("("), d, doc.Text(")"))
	}
	return d
}

func (p *printer) exprPrec(e ast.Expr) (doc.Doc, int) {
	switch e := e.(type) {
	case *ast.Ident:
		return doc.Text(e.Name), atomPrec
	case *ast.VariableExpr:
		return doc.Text("$" + e.Name), atomPrec
	case *ast.IntLit:
		return doc.Text(e.Text), atomPrec
	case *ast.FloatLit:
		return doc.Text(e.Text), atomPrec
	case *ast.StringLit:
		return doc.Text(e.Text), atomPrec
	case *ast.InterpStringLit:
		return doc.Text(p.requote(e.Text)), atomPrec
	case *ast.BoolLit:
		if e.Value {
			return doc.Text("true"), atomPrec
		}
		return doc.Text("false"), atomPrec
	case *ast.NullLit:
		return doc.Text("null"), atomPrec
	case *ast.ArrayLit:
		return p.arrayLit(e), atomPrec

	case *ast.UnaryExpr:
		prec := ast.UnaryPrec(e.Op)
		if signClash(e.Op, e.X) {
			// '-' against '-$a' or '--$a' would relex as a decrement,
			// likewise '+' against '+'; the parens are load-bearing here
			return doc.Join(doc.Text(e.Op.String()+"("),
				p.expr(e.X, ast.PrecLowest), doc.Text(")")), prec
		}
		return doc.Join(doc.Text(e.Op.String()), p.expr(e.X, prec)), prec
	case *ast.PostfixExpr:
		return doc.Join(p.expr(e.X, ast.PrecPostfix), doc.Text(e.Op.String())),
			ast.PrecPostfix
	case *ast.BinaryExpr:
		return p.binary(e)
	case *ast.AssignExpr:
		return p.assign(e)
	case *ast.TernaryExpr:
		return p.ternary(e)

	case *ast.CallExpr:
		return doc.Join(p.expr(e.Callee, ast.PrecPostfix), p.argList(e.Args)),
			ast.PrecPostfix
	case *ast.MethodCallExpr, *ast.PropertyAccessExpr:
		return p.chain(e), ast.PrecPostfix
	case *ast.StaticCallExpr:
		return doc.Join(doc.Text(e.Class+"::"+e.Method), p.argList(e.Args)),
			ast.PrecPostfix
	case *ast.ClassConstAccessExpr:
		return doc.Text(e.Class + "::" + e.Name), ast.PrecPostfix
	case *ast.StaticPropExpr:
		return doc.Text(e.Class + "::$" + e.Name), ast.PrecPostfix
	case *ast.SubscriptExpr:
		var inner doc.Doc = doc.Nil
		if e.Index != nil {
			inner = p.expr(e.Index, ast.PrecLowest)
		}
		return doc.Join(p.expr(e.X, ast.PrecPostfix), doc.Text("["), inner,
			doc.Text("]")), ast.PrecPostfix

	case *ast.NewExpr:
		// below postfix so '(new Foo())->bar()' regains its parens
		return doc.Join(doc.Text("new "), p.expr(e.Class, ast.PrecPostfix),
			p.argList(e.Args)), ast.PrecUnary
	case *ast.SpreadExpr:
		return doc.Join(doc.Text("..."), p.expr(e.X, ast.PrecLowest)), atomPrec

	case *ast.ClosureExpr:
		return p.closure(e), atomPrec
	case *ast.ArrowFnExpr:
		return p.arrowFn(e), ast.PrecAssign

	default:
		p.fail(e.Pos(), "unsupported expression node %T", e)
		return doc.Nil, atomPrec
	}
}

func (p *printer) binary(e *ast.BinaryExpr) (doc.Doc, int) {
	prec := ast.BinaryPrec(e.Op)
	lmin, rmin := prec, prec+1
	if ast.RightAssoc(e.Op) {
		lmin, rmin = prec+1, prec
	}
	left := p.expr(e.Left, lmin)
	right := p.expr(e.Right, rmin)
	return doc.GroupOf(&p.ids,
		left,
		doc.Text(" "+e.Op.String()),
		doc.IndentOf(doc.SoftLine, right),
	), prec
}

func (p *printer) assign(e *ast.AssignExpr) (doc.Doc, int) {
	target := p.expr(e.Target, ast.PrecPostfix)
	value := p.expr(e.Value, ast.PrecAssign)
	if hugs(e.Value) {
		// closures and arrays break inside their own delimiters, never
		// after the '='
		return doc.Join(target, doc.Text(" "+e.Op.String()+" "), value),
			ast.PrecAssign
	}
	return doc.GroupOf(&p.ids,
		target,
		doc.Text(" "+e.Op.String()),
		doc.IndentOf(doc.SoftLine, value),
	), ast.PrecAssign
}

// ternary always parenthesizes nested conditionals; PHP 8 removed the
// left-associative reading, so explicit grouping is the only valid form.
func (p *printer) ternary(e *ast.TernaryExpr) (doc.Doc, int) {
	cond := p.expr(e.Cond, ast.PrecTernary+1)
	els := p.expr(e.Else, ast.PrecTernary+1)
	if e.Then == nil {
		return doc.GroupOf(&p.ids, cond,
			doc.IndentOf(doc.SoftLine, doc.Text("?: "), els)), ast.PrecTernary
	}
	then := p.expr(e.Then, ast.PrecLowest)
	return doc.GroupOf(&p.ids, cond, doc.IndentOf(
		doc.SoftLine, doc.Text("? "), then,
		doc.SoftLine, doc.Text(": "), els,
	)), ast.PrecTernary
}

// signClash reports whether printing op directly against x would merge
// into a different token: '-' before '-$a' or '--$a' lexes as '--',
// '+' before '+$a' or '++$a' as '++'.
func signClash(op token.Kind, x ast.Expr) bool {
	if op != token.Minus && op != token.Plus {
		return false
	}
	u, ok := x.(*ast.UnaryExpr)
	if !ok {
		return false
	}
	return u.Op.String()[0] == op.String()[0]
}

// requote converts a double-quoted string to single quotes when that
// changes nothing: no interpolation, no escapes, no single quote inside.
func (p *printer) requote(text string) string {
	if !p.cfg.SingleQuote || len(text) < 2 {
		return text
	}
	body := text[1 : len(text)-1]
	if strings.ContainsAny(body, `$\'{`) {
		return text
	}
	return "'" + body + "'"
}
