package layout

import (
	"strings"
	"testing"

	"phpfmt/internal/doc"
)

func opts(width int) Options {
	return Options{Width: width, IndentWidth: 4}
}

func TestTextAndConcat(t *testing.T) {
	d := doc.Concat{doc.Text("echo"), doc.Text(" "), doc.Text("1;")}
	if got := Render(d, opts(80)); got != "echo 1;" {
		t.Fatalf("Render = %q", got)
	}
}

func TestGroupFlatWhenFits(t *testing.T) {
	var ids doc.IDGen
	d := doc.GroupOf(&ids,
		doc.Text("f("),
		doc.IndentOf(doc.TightLine, doc.Text("a"), doc.Text(","), doc.SoftLine, doc.Text("b")),
		doc.TightLine,
		doc.Text(")"),
	)
	if got := Render(d, opts(80)); got != "f(a, b)" {
		t.Fatalf("flat group = %q", got)
	}
}

func TestGroupBreaksWhenTooWide(t *testing.T) {
	var ids doc.IDGen
	d := doc.GroupOf(&ids,
		doc.Text("f("),
		doc.IndentOf(doc.TightLine, doc.Text("aaaa"), doc.Text(","), doc.SoftLine, doc.Text("bbbb")),
		doc.TightLine,
		doc.Text(")"),
	)
	want := "f(\n    aaaa,\n    bbbb\n)"
	if got := Render(d, opts(10)); got != want {
		t.Fatalf("broken group = %q, want %q", got, want)
	}
}

func TestGroupFitCountsLineRemainder(t *testing.T) {
	var ids doc.IDGen
	g := doc.GroupOf(&ids,
		doc.Text("("),
		doc.IndentOf(doc.TightLine, doc.Text("aaaa")),
		doc.TightLine,
		doc.Text(")"),
	)
	d := doc.Concat{doc.Text("foo"), g, doc.Text(";")}
	// flat "foo(aaaa);" is 10 columns: the ';' after the group must count
	want := "foo(\n    aaaa\n);"
	if got := Render(d, opts(9)); got != want {
		t.Fatalf("width 9 = %q, want %q", got, want)
	}
	if got := Render(d, opts(10)); got != "foo(aaaa);" {
		t.Fatalf("width 10 = %q, want foo(aaaa);", got)
	}
}

func TestHardLineForcesEnclosingGroup(t *testing.T) {
	var ids doc.IDGen
	d := doc.GroupOf(&ids,
		doc.Text("{"),
		doc.IndentOf(doc.HardLine, doc.Text("x;")),
		doc.HardLine,
		doc.Text("}"),
	)
	want := "{\n    x;\n}"
	if got := Render(d, opts(80)); got != want {
		t.Fatalf("hardline group = %q, want %q", got, want)
	}
}

func TestBreakParentPropagatesThroughNestedGroups(t *testing.T) {
	var ids doc.IDGen
	inner := doc.GroupOf(&ids, doc.Text("a"), doc.BreakParent{})
	outer := doc.GroupOf(&ids, doc.Text("x"), doc.SoftLine, inner)
	want := "x\na"
	if got := Render(outer, opts(80)); got != want {
		t.Fatalf("breakparent = %q, want %q", got, want)
	}
}

func TestIfBreakKeyedToGroup(t *testing.T) {
	var ids doc.IDGen
	build := func() doc.Doc {
		ids = doc.IDGen{}
		g := doc.GroupOf(&ids,
			doc.Text("["),
			doc.IndentOf(doc.TightLine, doc.Text("1"), doc.Text(","), doc.SoftLine, doc.Text("2")),
		)
		return doc.Concat{
			doc.Group{ID: g.ID, Inner: doc.Concat{g.Inner, doc.IfBreak{Group: g.ID, Broken: doc.Text(",")}, doc.TightLine, doc.Text("]")}},
		}
	}
	if got := Render(build(), opts(80)); got != "[1, 2]" {
		t.Fatalf("flat ifbreak = %q", got)
	}
	want := "[\n    1,\n    2,\n]"
	if got := Render(build(), opts(4)); got != want {
		t.Fatalf("broken ifbreak = %q, want %q", got, want)
	}
}

func TestIfBreakNearestGroupFallback(t *testing.T) {
	var ids doc.IDGen
	d := doc.GroupOf(&ids,
		doc.Text("x"),
		doc.IfBreak{Broken: doc.Text("B"), Flat: doc.Text("F")},
	)
	if got := Render(d, opts(80)); got != "xF" {
		t.Fatalf("flat nearest-group ifbreak = %q", got)
	}
	forced := doc.Group{ID: ids.Next(), Break: true, Inner: doc.Concat{
		doc.Text("x"),
		doc.IfBreak{Broken: doc.Text("B"), Flat: doc.Text("F")},
	}}
	if got := Render(forced, opts(80)); got != "xB" {
		t.Fatalf("broken nearest-group ifbreak = %q", got)
	}
}

func TestLiteralLineIgnoresIndent(t *testing.T) {
	d := doc.IndentOf(
		doc.Text("a;"),
		doc.LiteralLine,
		doc.HardLine,
		doc.Text("b;"),
	)
	// the literal line leaves a completely blank line, the hard line then
	// indents the next statement
	want := "a;\n\n    b;"
	if got := Render(d, opts(80)); got != want {
		t.Fatalf("literal line = %q, want %q", got, want)
	}
}

func TestFillPacksItems(t *testing.T) {
	items := doc.Fill{}
	words := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	for i, w := range words {
		if i > 0 {
			items = append(items, doc.SoftLine)
		}
		items = append(items, doc.Text(w))
	}
	got := Render(items, opts(13))
	want := "alpha beta\ngamma delta\nepsilon"
	if got != want {
		t.Fatalf("fill = %q, want %q", got, want)
	}
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 13 {
			t.Fatalf("fill line %q exceeds width", line)
		}
	}
}

func TestOversizedTokenEmittedWhole(t *testing.T) {
	long := strings.Repeat("x", 40)
	var ids doc.IDGen
	d := doc.GroupOf(&ids, doc.Text(long))
	if got := Render(d, opts(10)); got != long {
		t.Fatalf("oversized token mangled: %q", got)
	}
}

func TestTabsIndent(t *testing.T) {
	d := doc.IndentOf(doc.HardLine, doc.Text("x"))
	got := Render(d, Options{Width: 80, IndentWidth: 4, UseTabs: true})
	if got != "\n\tx" {
		t.Fatalf("tab indent = %q", got)
	}
}

func TestNoTrailingWhitespaceBeforeBreaks(t *testing.T) {
	d := doc.Concat{doc.Text("a "), doc.HardLine, doc.Text("b")}
	if got := Render(d, opts(80)); got != "a\nb" {
		t.Fatalf("trailing blank not trimmed: %q", got)
	}
}

func TestRenderCheckedDanglingRef(t *testing.T) {
	d := doc.Concat{doc.IfBreak{Group: 99, Broken: doc.Text(",")}}
	if _, err := RenderChecked(d, opts(80)); err == nil {
		t.Fatalf("expected dangling group reference error")
	}
	var ids doc.IDGen
	ok := doc.GroupOf(&ids, doc.Text("x"))
	if _, err := RenderChecked(ok, opts(80)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRenderDeterministic(t *testing.T) {
	var ids doc.IDGen
	d := doc.GroupOf(&ids,
		doc.Text("call("),
		doc.IndentOf(doc.TightLine, doc.Text("argument_one"), doc.Text(","), doc.SoftLine, doc.Text("argument_two")),
		doc.TightLine,
		doc.Text(")"),
	)
	first := Render(d, opts(20))
	for i := 0; i < 10; i++ {
		if got := Render(d, opts(20)); got != first {
			t.Fatalf("rendering is not deterministic: %q vs %q", got, first)
		}
	}
}
