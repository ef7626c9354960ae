package format

import (
	"fmt"
	"strings"
	"testing"

	"phpfmt/internal/ast"
	"phpfmt/internal/diag"
	"phpfmt/internal/parser"
	"phpfmt/internal/source"
	"phpfmt/internal/style"
)

// TestFormattingPreservesSyntaxTree reparses formatted output and compares
// the statement and expression structure against the original parse. Any
// formatting decision that changes what the code means shows up here, for
// example dropped parentheses that let adjacent operators fuse into a
// different token.
func TestFormattingPreservesSyntaxTree(t *testing.T) {
	sources := []string{
		"<?php $x = -(-$a); $y = +(+$b); $z = -(--$c);",
		"<?php function f(int $a, ...$rest): int { return $a + count($rest); }",
		"<?php class A extends B implements C { public int $x = 1; public function m(): int { return $this->x; } }",
		"<?php interface I { public function m(int $a): bool; }",
		"<?php if($a) x(); else if($b) y(); else z();",
		"<?php foreach($xs as $k=>$v){ echo $k, $v; } while ($i < 3) { $i++; }",
		"<?php for($i=0;$i<10;$i++){work($i);} do { tick(); } while ($a < 10);",
		"<?php $m = array('k' => 1, 'l' => [2, 3], ...$rest);",
		`<?php $s = "plain"; $i = "x $y"; $q = 'it\'s';`,
		"<?php namespace App; use Foo\\Bar as Baz; const LIMIT = 10;",
		"<?php $r = $a ? $b : ($c ? $d : $e); $n = $xs[0][1]; $acc[] = 5;",
		"<?php (new Foo())->bar(fn ($x) => $x * 2); Registry::get()->reset();",
		"<?php $f = function ($x) use (&$acc) { $acc[] = $x; };",
		"<?php $x = ($a + $b) * $c; $y = 2 ** 3 ** 4; $z = (2 ** 3) ** 4;",
	}
	for _, cfg := range []*style.Config{style.Default(), narrow()} {
		for _, src := range sources {
			before := parseShape(t, src)
			out := formatSrc(t, cfg, src)
			after := parseShape(t, out)
			if before != after {
				t.Errorf("tree changed for %q at width %d\n--- input parse ---\n%s--- output parse ---\n%s\n--- output ---\n%s",
					src, cfg.Width, before, after, out)
			}
		}
	}
}

// parseShape parses src and renders the tree without trivia or spans, so
// two parses compare structurally.
func parseShape(t *testing.T, src string) string {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("shape.php", []byte(src))
	bag := diag.NewBag(64)
	f, ok := parser.ParseFile(fs.Get(id), parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if !ok || bag.HasErrors() {
		t.Fatalf("parse failed for %q: %v", src, bag.Items())
	}
	var sb strings.Builder
	for _, s := range f.Stmts {
		writeStmtShape(&sb, s)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writeStmtShape(sb *strings.Builder, s ast.Stmt) {
	switch s := s.(type) {
	case *ast.ExprStmt:
		sb.WriteString("(expr ")
		writeExprShape(sb, s.X)
		sb.WriteByte(')')
	case *ast.EchoStmt:
		sb.WriteString("(echo")
		writeExprList(sb, s.Args)
		sb.WriteByte(')')
	case *ast.ReturnStmt:
		sb.WriteString("(return")
		if s.X != nil {
			sb.WriteByte(' ')
			writeExprShape(sb, s.X)
		}
		sb.WriteByte(')')
	case *ast.BreakStmt:
		sb.WriteString("(break)")
	case *ast.ContinueStmt:
		sb.WriteString("(continue)")
	case *ast.BlockStmt:
		writeBlockShape(sb, s)
	case *ast.IfStmt:
		sb.WriteString("(if ")
		writeExprShape(sb, s.Cond)
		sb.WriteByte(' ')
		writeBlockShape(sb, s.Then)
		for _, e := range s.Elseifs {
			sb.WriteString(" (elseif ")
			writeExprShape(sb, e.Cond)
			sb.WriteByte(' ')
			writeBlockShape(sb, e.Body)
			sb.WriteByte(')')
		}
		if s.Else != nil {
			sb.WriteString(" (else ")
			writeBlockShape(sb, s.Else)
			sb.WriteByte(')')
		}
		sb.WriteByte(')')
	case *ast.WhileStmt:
		sb.WriteString("(while ")
		writeExprShape(sb, s.Cond)
		sb.WriteByte(' ')
		writeBlockShape(sb, s.Body)
		sb.WriteByte(')')
	case *ast.DoWhileStmt:
		sb.WriteString("(do ")
		writeBlockShape(sb, s.Body)
		sb.WriteByte(' ')
		writeExprShape(sb, s.Cond)
		sb.WriteByte(')')
	case *ast.ForStmt:
		sb.WriteString("(for")
		writeExprList(sb, s.Init)
		sb.WriteByte(';')
		writeExprList(sb, s.Cond)
		sb.WriteByte(';')
		writeExprList(sb, s.Post)
		sb.WriteByte(' ')
		writeBlockShape(sb, s.Body)
		sb.WriteByte(')')
	case *ast.ForeachStmt:
		sb.WriteString("(foreach ")
		writeExprShape(sb, s.Subject)
		if s.Key != nil {
			sb.WriteString(" key=")
			writeExprShape(sb, s.Key)
		}
		if s.ByRef {
			sb.WriteString(" &")
		}
		sb.WriteByte(' ')
		writeExprShape(sb, s.Value)
		sb.WriteByte(' ')
		writeBlockShape(sb, s.Body)
		sb.WriteByte(')')
	case *ast.FunctionDecl:
		sb.WriteString("(function " + s.Name)
		if s.ByRef {
			sb.WriteByte('&')
		}
		writeParamShapes(sb, s.Params)
		writeTypeShape(sb, s.ReturnType)
		sb.WriteByte(' ')
		writeBlockShape(sb, s.Body)
		sb.WriteByte(')')
	case *ast.ClassDecl:
		sb.WriteString("(class " + s.Name)
		if s.Extends != "" {
			sb.WriteString(" extends " + s.Extends)
		}
		if len(s.Implements) > 0 {
			sb.WriteString(" implements " + strings.Join(s.Implements, ","))
		}
		writeMemberShapes(sb, s.Members)
		sb.WriteByte(')')
	case *ast.InterfaceDecl:
		sb.WriteString("(interface " + s.Name)
		if len(s.Extends) > 0 {
			sb.WriteString(" extends " + strings.Join(s.Extends, ","))
		}
		writeMemberShapes(sb, s.Members)
		sb.WriteByte(')')
	case *ast.UseStmt:
		sb.WriteString("(use " + s.Path)
		if s.Alias != "" {
			sb.WriteString(" as " + s.Alias)
		}
		sb.WriteByte(')')
	case *ast.NamespaceStmt:
		sb.WriteString("(namespace " + s.Name + ")")
	case *ast.ConstStmt:
		sb.WriteString("(const " + s.Name + " ")
		writeExprShape(sb, s.Value)
		sb.WriteByte(')')
	default:
		fmt.Fprintf(sb, "(%T)", s)
	}
}

func writeBlockShape(sb *strings.Builder, b *ast.BlockStmt) {
	sb.WriteByte('{')
	for i, s := range b.Stmts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		writeStmtShape(sb, s)
	}
	sb.WriteByte('}')
}

func writeMemberShapes(sb *strings.Builder, members []ast.Member) {
	for _, m := range members {
		sb.WriteByte(' ')
		switch m := m.(type) {
		case *ast.PropertyDecl:
			sb.WriteString("(prop " + strings.Join(m.Modifiers, ","))
			writeTypeShape(sb, m.Type)
			sb.WriteString(" $" + m.Name)
			if m.Default != nil {
				sb.WriteByte(' ')
				writeExprShape(sb, m.Default)
			}
			sb.WriteByte(')')
		case *ast.ClassConstDecl:
			sb.WriteString("(const " + strings.Join(m.Modifiers, ",") + " " + m.Name + " ")
			writeExprShape(sb, m.Value)
			sb.WriteByte(')')
		case *ast.MethodDecl:
			sb.WriteString("(method " + strings.Join(m.Modifiers, ",") + " " + m.Name)
			if m.ByRef {
				sb.WriteByte('&')
			}
			writeParamShapes(sb, m.Params)
			writeTypeShape(sb, m.ReturnType)
			if m.Body != nil {
				sb.WriteByte(' ')
				writeBlockShape(sb, m.Body)
			}
			sb.WriteByte(')')
		default:
			fmt.Fprintf(sb, "(%T)", m)
		}
	}
}

func writeParamShapes(sb *strings.Builder, params []*ast.Param) {
	sb.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if len(p.Modifiers) > 0 {
			sb.WriteString(strings.Join(p.Modifiers, ",") + " ")
		}
		writeTypeShape(sb, p.Type)
		if p.ByRef {
			sb.WriteByte('&')
		}
		if p.Variadic {
			sb.WriteString("...")
		}
		sb.WriteString("$" + p.Name)
		if p.Default != nil {
			sb.WriteByte('=')
			writeExprShape(sb, p.Default)
		}
	}
	sb.WriteByte(')')
}

func writeTypeShape(sb *strings.Builder, t *ast.TypeHint) {
	if t == nil {
		return
	}
	sb.WriteString(" :")
	if t.Nullable {
		sb.WriteByte('?')
	}
	sb.WriteString(t.Name)
}

func writeExprList(sb *strings.Builder, exprs []ast.Expr) {
	for _, e := range exprs {
		sb.WriteByte(' ')
		writeExprShape(sb, e)
	}
}

func writeExprShape(sb *strings.Builder, e ast.Expr) {
	switch e := e.(type) {
	case *ast.Ident:
		sb.WriteString(e.Name)
	case *ast.VariableExpr:
		sb.WriteString("$" + e.Name)
	case *ast.IntLit:
		sb.WriteString(e.Text)
	case *ast.FloatLit:
		sb.WriteString(e.Text)
	case *ast.StringLit:
		// compare quote-stripped bodies so requoting "x" to 'x' is not a
		// structural change
		sb.WriteString("str<" + e.Text[1:len(e.Text)-1] + ">")
	case *ast.InterpStringLit:
		sb.WriteString("str<" + e.Text[1:len(e.Text)-1] + ">")
	case *ast.BoolLit:
		fmt.Fprintf(sb, "%t", e.Value)
	case *ast.NullLit:
		sb.WriteString("null")
	case *ast.ArrayLit:
		sb.WriteString("(array")
		for _, item := range e.Items {
			sb.WriteString(" (")
			if item.Spread {
				sb.WriteString("...")
			}
			if item.Key != nil {
				writeExprShape(sb, item.Key)
				sb.WriteString("=>")
			}
			if item.ByRef {
				sb.WriteByte('&')
			}
			writeExprShape(sb, item.Value)
			sb.WriteByte(')')
		}
		sb.WriteByte(')')
	case *ast.AssignExpr:
		sb.WriteString("(" + e.Op.String() + " ")
		writeExprShape(sb, e.Target)
		sb.WriteByte(' ')
		writeExprShape(sb, e.Value)
		sb.WriteByte(')')
	case *ast.BinaryExpr:
		sb.WriteString("(" + e.Op.String() + " ")
		writeExprShape(sb, e.Left)
		sb.WriteByte(' ')
		writeExprShape(sb, e.Right)
		sb.WriteByte(')')
	case *ast.UnaryExpr:
		sb.WriteString("(pre" + e.Op.String() + " ")
		writeExprShape(sb, e.X)
		sb.WriteByte(')')
	case *ast.PostfixExpr:
		sb.WriteString("(post" + e.Op.String() + " ")
		writeExprShape(sb, e.X)
		sb.WriteByte(')')
	case *ast.TernaryExpr:
		sb.WriteString("(?: ")
		writeExprShape(sb, e.Cond)
		sb.WriteByte(' ')
		if e.Then == nil {
			sb.WriteByte('_')
		} else {
			writeExprShape(sb, e.Then)
		}
		sb.WriteByte(' ')
		writeExprShape(sb, e.Else)
		sb.WriteByte(')')
	case *ast.CallExpr:
		sb.WriteString("(call ")
		writeExprShape(sb, e.Callee)
		writeExprList(sb, e.Args)
		sb.WriteByte(')')
	case *ast.SpreadExpr:
		sb.WriteString("(... ")
		writeExprShape(sb, e.X)
		sb.WriteByte(')')
	case *ast.MethodCallExpr:
		op := "->"
		if e.NullSafe {
			op = "?->"
		}
		sb.WriteString("(" + op + " ")
		writeExprShape(sb, e.Object)
		sb.WriteString(" " + e.Method)
		writeExprList(sb, e.Args)
		sb.WriteByte(')')
	case *ast.PropertyAccessExpr:
		op := "->"
		if e.NullSafe {
			op = "?->"
		}
		sb.WriteString("(" + op + " ")
		writeExprShape(sb, e.Object)
		sb.WriteString(" " + e.Name + ")")
	case *ast.StaticCallExpr:
		sb.WriteString("(:: " + e.Class + " " + e.Method)
		writeExprList(sb, e.Args)
		sb.WriteByte(')')
	case *ast.ClassConstAccessExpr:
		sb.WriteString(e.Class + "::" + e.Name)
	case *ast.StaticPropExpr:
		sb.WriteString(e.Class + "::$" + e.Name)
	case *ast.NewExpr:
		// 'new Foo' always prints as 'new Foo()', so HadParens is not part
		// of the shape
		sb.WriteString("(new ")
		writeExprShape(sb, e.Class)
		writeExprList(sb, e.Args)
		sb.WriteByte(')')
	case *ast.SubscriptExpr:
		sb.WriteString("(idx ")
		writeExprShape(sb, e.X)
		if e.Index != nil {
			sb.WriteByte(' ')
			writeExprShape(sb, e.Index)
		}
		sb.WriteByte(')')
	case *ast.ClosureExpr:
		sb.WriteString("(closure")
		if e.Static {
			sb.WriteString(" static")
		}
		if e.ByRef {
			sb.WriteByte('&')
		}
		writeParamShapes(sb, e.Params)
		sb.WriteString(" use(")
		for i, u := range e.Uses {
			if i > 0 {
				sb.WriteByte(' ')
			}
			if u.ByRef {
				sb.WriteByte('&')
			}
			sb.WriteString("$" + u.Name)
		}
		sb.WriteByte(')')
		writeTypeShape(sb, e.ReturnType)
		sb.WriteByte(' ')
		writeBlockShape(sb, e.Body)
		sb.WriteByte(')')
	case *ast.ArrowFnExpr:
		sb.WriteString("(fn")
		if e.Static {
			sb.WriteString(" static")
		}
		if e.ByRef {
			sb.WriteByte('&')
		}
		writeParamShapes(sb, e.Params)
		writeTypeShape(sb, e.ReturnType)
		sb.WriteString(" => ")
		writeExprShape(sb, e.Body)
		sb.WriteByte(')')
	default:
		fmt.Fprintf(sb, "(%T)", e)
	}
}
