package format

import (
	"phpfmt/internal/ast"
	"phpfmt/internal/doc"
	"phpfmt/internal/style"
)

// delimitedList is the shared layout for argument, parameter, and array
// element lists: flat with ', ' separators when it fits, otherwise one
// item per line with the trailing comma governed by the policy.
func (p *printer) delimitedList(open, closer string, items []doc.Doc) doc.Doc {
	id := p.ids.Next()
	var trailing doc.Doc = doc.Nil
	if p.cfg.TrailingComma != style.TrailingNone {
		trailing = doc.IfBreak{Group: id, Broken: doc.Text(","), Flat: doc.Nil}
	}
	inner := doc.Separated(doc.Concat{doc.Text(","), doc.SoftLine}, items)
	return doc.Group{ID: id, Inner: doc.Concat{
		doc.Text(open),
		doc.IndentOf(doc.TightLine, inner, trailing),
		doc.TightLine,
		doc.Text(closer),
	}}
}

func (p *printer) argList(args []ast.Expr) doc.Doc {
	if len(args) == 0 {
		return doc.Text("()")
	}
	if len(args) == 1 && hugs(args[0]) {
		// a single closure or array argument is hugged: the delimiters
		// stay put and the argument breaks internally
		return doc.Join(doc.Text("("), p.expr(args[0], ast.PrecLowest), doc.Text(")"))
	}
	docs := make([]doc.Doc, len(args))
	for i, a := range args {
		docs[i] = p.expr(a, ast.PrecLowest)
	}
	return p.delimitedList("(", ")", docs)
}

func hugs(e ast.Expr) bool {
	switch e.(type) {
	case *ast.ClosureExpr, *ast.ArrayLit:
		return true
	default:
		return false
	}
}

func (p *printer) arrayLit(e *ast.ArrayLit) doc.Doc {
	if len(e.Items) == 0 {
		return doc.Text("[]")
	}
	docs := make([]doc.Doc, len(e.Items))
	for i, item := range e.Items {
		docs[i] = p.arrayItem(item)
	}
	return p.delimitedList("[", "]", docs)
}

func (p *printer) arrayItem(item *ast.ArrayItem) doc.Doc {
	var parts doc.Concat
	if item.Key != nil {
		parts = append(parts, p.expr(item.Key, ast.PrecLowest), doc.Text(" => "))
	}
	if item.Spread {
		parts = append(parts, doc.Text("..."))
	}
	if item.ByRef {
		parts = append(parts, doc.Text("&"))
	}
	parts = append(parts, p.expr(item.Value, ast.PrecLowest))
	return parts
}

// chain renders '->' sequences. Short chains stay inline; once a chain
// has three or more links it becomes a group that puts every link on its
// own line when the whole thing does not fit.
func (p *printer) chain(e ast.Expr) doc.Doc {
	var links []doc.Doc
	cur := e
walk:
	for {
		switch x := cur.(type) {
		case *ast.MethodCallExpr:
			links = append(links, doc.Join(
				doc.Text(arrowText(x.NullSafe)+x.Method), p.argList(x.Args)))
			cur = x.Object
		case *ast.PropertyAccessExpr:
			links = append(links, doc.Text(arrowText(x.NullSafe)+x.Name))
			cur = x.Object
		default:
			break walk
		}
	}
	// links were collected inside-out
	for i, j := 0, len(links)-1; i < j; i, j = i+1, j-1 {
		links[i], links[j] = links[j], links[i]
	}

	base := p.expr(cur, ast.PrecPostfix)
	if len(links) < 3 {
		return doc.Join(base, doc.Join(links...))
	}
	var broken doc.Concat
	for _, link := range links {
		broken = append(broken, doc.TightLine, link)
	}
	return doc.GroupOf(&p.ids, base, doc.IndentOf(broken...))
}

func arrowText(nullSafe bool) string {
	if nullSafe {
		return "?->"
	}
	return "->"
}

// closure bodies always open their brace on the same line, independent of
// the function brace option.
func (p *printer) closure(e *ast.ClosureExpr) doc.Doc {
	var parts doc.Concat
	if e.Static {
		parts = append(parts, doc.Text("static "))
	}
	parts = append(parts, doc.Text("function "))
	if e.ByRef {
		parts = append(parts, doc.Text("&"))
	}
	parts = append(parts, p.paramList(e.Params))
	if len(e.Uses) > 0 {
		parts = append(parts, doc.Text(" use ("))
		for i, use := range e.Uses {
			if i > 0 {
				parts = append(parts, doc.Text(", "))
			}
			if use.ByRef {
				parts = append(parts, doc.Text("&"))
			}
			parts = append(parts, doc.Text("$"+use.Name))
		}
		parts = append(parts, doc.Text(")"))
	}
	parts = append(parts, p.returnType(e.ReturnType))
	return doc.Join(parts, doc.Text(" {"), p.blockBody(e.Body))
}

func (p *printer) arrowFn(e *ast.ArrowFnExpr) doc.Doc {
	var parts doc.Concat
	if e.Static {
		parts = append(parts, doc.Text("static "))
	}
	parts = append(parts, doc.Text("fn "))
	if e.ByRef {
		parts = append(parts, doc.Text("&"))
	}
	parts = append(parts, p.paramList(e.Params), p.returnType(e.ReturnType))
	return doc.GroupOf(&p.ids, parts, doc.Text(" =>"),
		doc.IndentOf(doc.SoftLine, p.expr(e.Body, ast.PrecAssign)))
}
