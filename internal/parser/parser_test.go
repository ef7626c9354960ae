package parser

import (
	"testing"

	"phpfmt/internal/ast"
	"phpfmt/internal/diag"
	"phpfmt/internal/source"
	"phpfmt/internal/token"
)

func parseSrc(t *testing.T, src string) (*ast.File, *diag.Bag, bool) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.php", []byte(src))
	bag := diag.NewBag(64)
	f, ok := ParseFile(fs.Get(id), Options{Reporter: &diag.BagReporter{Bag: bag}})
	return f, bag, ok
}

func parseOK(t *testing.T, src string) *ast.File {
	t.Helper()
	f, bag, ok := parseSrc(t, src)
	if !ok || bag.HasErrors() {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	return f
}

func firstExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	f := parseOK(t, "<?php "+src+";")
	if len(f.Stmts) != 1 {
		t.Fatalf("statement count = %d", len(f.Stmts))
	}
	es, ok := f.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("statement is %T, not expression", f.Stmts[0])
	}
	return es.X
}

func TestPrecedenceMulOverAdd(t *testing.T) {
	x := firstExpr(t, "1 + 2 * 3")
	add, ok := x.(*ast.BinaryExpr)
	if !ok || add.Op != token.Plus {
		t.Fatalf("root = %T", x)
	}
	mul, ok := add.Right.(*ast.BinaryExpr)
	if !ok || mul.Op != token.Star {
		t.Fatalf("right = %T", add.Right)
	}
}

func TestGroupingParensShapeTheTree(t *testing.T) {
	x := firstExpr(t, "(1 + 2) * 3")
	mul, ok := x.(*ast.BinaryExpr)
	if !ok || mul.Op != token.Star {
		t.Fatalf("root = %T", x)
	}
	if add, ok := mul.Left.(*ast.BinaryExpr); !ok || add.Op != token.Plus {
		t.Fatalf("left = %T", mul.Left)
	}
}

func TestLeftAssociativeSubtraction(t *testing.T) {
	x := firstExpr(t, "10 - 2 - 3")
	outer := x.(*ast.BinaryExpr)
	if _, ok := outer.Left.(*ast.BinaryExpr); !ok {
		t.Fatalf("subtraction grouped right: %T", outer.Left)
	}
}

func TestRightAssociativeAssignAndPow(t *testing.T) {
	x := firstExpr(t, "$a = $b = 1")
	outer := x.(*ast.AssignExpr)
	if _, ok := outer.Value.(*ast.AssignExpr); !ok {
		t.Fatalf("assignment grouped left: %T", outer.Value)
	}

	x = firstExpr(t, "2 ** 3 ** 4")
	pow := x.(*ast.BinaryExpr)
	if _, ok := pow.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("pow grouped left: %T", pow.Right)
	}
}

func TestUnaryBinding(t *testing.T) {
	// '!' binds looser than instanceof
	x := firstExpr(t, "!$a instanceof Foo")
	not, ok := x.(*ast.UnaryExpr)
	if !ok || not.Op != token.Bang {
		t.Fatalf("root = %T", x)
	}
	if inst, ok := not.X.(*ast.BinaryExpr); !ok || inst.Op != token.KwInstanceof {
		t.Fatalf("operand = %T", not.X)
	}

	// '**' binds tighter than unary minus
	x = firstExpr(t, "-2 ** 3")
	neg, ok := x.(*ast.UnaryExpr)
	if !ok || neg.Op != token.Minus {
		t.Fatalf("root = %T", x)
	}
	if _, ok := neg.X.(*ast.BinaryExpr); !ok {
		t.Fatalf("operand = %T", neg.X)
	}
}

func TestTernaryForms(t *testing.T) {
	x := firstExpr(t, "$a ? 1 : 2")
	tern := x.(*ast.TernaryExpr)
	if tern.Then == nil || tern.Else == nil {
		t.Fatalf("long ternary lost a branch: %+v", tern)
	}

	x = firstExpr(t, "$a ?: 2")
	tern = x.(*ast.TernaryExpr)
	if tern.Then != nil {
		t.Fatalf("short ternary grew a then branch")
	}
}

func TestCallsAndChains(t *testing.T) {
	x := firstExpr(t, "$obj->method(1, 2)->prop")
	prop := x.(*ast.PropertyAccessExpr)
	call, ok := prop.Object.(*ast.MethodCallExpr)
	if !ok || call.Method != "method" || len(call.Args) != 2 {
		t.Fatalf("chain shape wrong: %T", prop.Object)
	}
	if _, ok := call.Object.(*ast.VariableExpr); !ok {
		t.Fatalf("chain base = %T", call.Object)
	}
}

func TestStaticAccessForms(t *testing.T) {
	if x := firstExpr(t, "Foo::bar()"); true {
		call := x.(*ast.StaticCallExpr)
		if call.Class != "Foo" || call.Method != "bar" {
			t.Fatalf("static call = %+v", call)
		}
	}
	if x := firstExpr(t, "Foo::BAR"); true {
		c := x.(*ast.ClassConstAccessExpr)
		if c.Name != "BAR" {
			t.Fatalf("const access = %+v", c)
		}
	}
	if x := firstExpr(t, "Foo::class"); true {
		c := x.(*ast.ClassConstAccessExpr)
		if c.Name != "class" {
			t.Fatalf("::class = %+v", c)
		}
	}
	if x := firstExpr(t, "Foo::$prop"); true {
		s := x.(*ast.StaticPropExpr)
		if s.Name != "prop" {
			t.Fatalf("static prop = %+v", s)
		}
	}
}

func TestArrayLiterals(t *testing.T) {
	x := firstExpr(t, "[1, 'k' => 2, ...$rest,]")
	lit := x.(*ast.ArrayLit)
	if len(lit.Items) != 3 {
		t.Fatalf("item count = %d", len(lit.Items))
	}
	if lit.Items[0].Key != nil {
		t.Fatalf("plain item grew a key")
	}
	if lit.Items[1].Key == nil {
		t.Fatalf("keyed item lost its key")
	}
	if !lit.Items[2].Spread {
		t.Fatalf("spread item not flagged")
	}

	// legacy spelling parses into the same node
	x = firstExpr(t, "array(1, 2)")
	if lit := x.(*ast.ArrayLit); len(lit.Items) != 2 {
		t.Fatalf("legacy array items = %d", len(lit.Items))
	}
}

func TestFunctionDecl(t *testing.T) {
	f := parseOK(t, "<?php function add(int $a, ?int $b = null, ...$rest): int { return $a; }")
	decl := f.Stmts[0].(*ast.FunctionDecl)
	if decl.Name != "add" || len(decl.Params) != 3 {
		t.Fatalf("decl = %+v", decl)
	}
	if decl.Params[0].Type == nil || decl.Params[0].Type.Name != "int" {
		t.Fatalf("param type = %+v", decl.Params[0].Type)
	}
	if !decl.Params[1].Type.Nullable || decl.Params[1].Default == nil {
		t.Fatalf("nullable default param = %+v", decl.Params[1])
	}
	if !decl.Params[2].Variadic {
		t.Fatalf("variadic param not flagged")
	}
	if decl.ReturnType == nil || decl.ReturnType.Name != "int" {
		t.Fatalf("return type = %+v", decl.ReturnType)
	}
}

func TestClassMembers(t *testing.T) {
	src := `<?php
class User extends Base implements A, B {
    public const ROLE = 'admin';
    private ?string $name = null;
    public static function make(string $name): static {
        return new static();
    }
}`
	f := parseOK(t, src)
	decl := f.Stmts[0].(*ast.ClassDecl)
	if decl.Extends != "Base" || len(decl.Implements) != 2 {
		t.Fatalf("heritage = %+v", decl)
	}
	if len(decl.Members) != 3 {
		t.Fatalf("member count = %d", len(decl.Members))
	}
	c := decl.Members[0].(*ast.ClassConstDecl)
	if c.Name != "ROLE" || len(c.Modifiers) != 1 {
		t.Fatalf("const member = %+v", c)
	}
	prop := decl.Members[1].(*ast.PropertyDecl)
	if prop.Name != "name" || !prop.Type.Nullable || prop.Default == nil {
		t.Fatalf("property = %+v", prop)
	}
	m := decl.Members[2].(*ast.MethodDecl)
	if m.Name != "make" || len(m.Modifiers) != 2 || m.Body == nil {
		t.Fatalf("method = %+v", m)
	}
}

func TestInterfaceMethodsHaveNoBody(t *testing.T) {
	f := parseOK(t, "<?php interface Shape { public function area(): float; }")
	decl := f.Stmts[0].(*ast.InterfaceDecl)
	m := decl.Members[0].(*ast.MethodDecl)
	if m.Body != nil {
		t.Fatalf("interface method grew a body")
	}
}

func TestForeachVariants(t *testing.T) {
	f := parseOK(t, "<?php foreach ($xs as $k => &$v) { echo $v; }")
	stmt := f.Stmts[0].(*ast.ForeachStmt)
	if stmt.Key == nil || !stmt.ByRef {
		t.Fatalf("foreach = %+v", stmt)
	}

	f = parseOK(t, "<?php foreach ($xs as $v) {}")
	stmt = f.Stmts[0].(*ast.ForeachStmt)
	if stmt.Key != nil || stmt.ByRef {
		t.Fatalf("plain foreach = %+v", stmt)
	}
}

func TestElseIfNormalizesToElseif(t *testing.T) {
	f := parseOK(t, "<?php if ($a) {} else if ($b) {} else {}")
	stmt := f.Stmts[0].(*ast.IfStmt)
	if len(stmt.Elseifs) != 1 || stmt.Else == nil {
		t.Fatalf("if shape = %+v", stmt)
	}
}

func TestUnbracedBodyGetsWrapped(t *testing.T) {
	f := parseOK(t, "<?php if ($a) echo 1;")
	stmt := f.Stmts[0].(*ast.IfStmt)
	if len(stmt.Then.Stmts) != 1 {
		t.Fatalf("wrapped body = %+v", stmt.Then)
	}
}

func TestClosureAndArrowFn(t *testing.T) {
	x := firstExpr(t, "static function ($a) use (&$b): int { return $a; }")
	cl := x.(*ast.ClosureExpr)
	if !cl.Static || len(cl.Uses) != 1 || !cl.Uses[0].ByRef {
		t.Fatalf("closure = %+v", cl)
	}

	x = firstExpr(t, "fn ($x) => $x * 2")
	arrow := x.(*ast.ArrowFnExpr)
	if len(arrow.Params) != 1 || arrow.Body == nil {
		t.Fatalf("arrow fn = %+v", arrow)
	}
}

func TestCommentAnchoring(t *testing.T) {
	src := "<?php\n// leading\n$a = 1; // trailing\n\n$b = 2;\n// at the end\n"
	f := parseOK(t, src)
	if len(f.Stmts) != 2 {
		t.Fatalf("statement count = %d", len(f.Stmts))
	}

	first := f.Stmts[0].Comments()
	if len(first.Lead) != 1 || first.Lead[0].Text != "// leading" {
		t.Fatalf("lead = %+v", first.Lead)
	}
	if len(first.Trail) != 1 || first.Trail[0].Text != "// trailing" {
		t.Fatalf("trail = %+v", first.Trail)
	}

	second := f.Stmts[1].Comments()
	if !second.Blank {
		t.Fatalf("blank separator lost")
	}
	if len(f.EOFLead) != 1 || f.EOFLead[0].Text != "// at the end" {
		t.Fatalf("EOF lead = %+v", f.EOFLead)
	}
}

func TestDanglingBlockComment(t *testing.T) {
	f := parseOK(t, "<?php function f() {\n    // nothing yet\n}")
	decl := f.Stmts[0].(*ast.FunctionDecl)
	if len(decl.Body.DanglingLead) != 1 {
		t.Fatalf("dangling = %+v", decl.Body.DanglingLead)
	}
}

func TestMissingSemicolonFails(t *testing.T) {
	_, bag, ok := parseSrc(t, "<?php $a = 1")
	if ok {
		t.Fatalf("missing semicolon accepted")
	}
	d, found := bag.FirstError()
	if !found || d.Code != diag.SynExpectSemicolon {
		t.Fatalf("diagnostics = %v", bag.Items())
	}
}

func TestBadAssignTarget(t *testing.T) {
	_, bag, ok := parseSrc(t, "<?php 1 = $a;")
	if ok {
		t.Fatalf("bad assignment accepted")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynBadAssignTarget {
			found = true
		}
	}
	if !found {
		t.Fatalf("diagnostics = %v", bag.Items())
	}
}

func TestRecoveryProducesMultipleErrors(t *testing.T) {
	_, bag, ok := parseSrc(t, "<?php $a = ; $b = ; $c = 1;")
	if ok {
		t.Fatalf("broken input accepted")
	}
	if bag.Len() < 2 {
		t.Fatalf("recovery stopped early: %v", bag.Items())
	}
}
