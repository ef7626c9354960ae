package format

import (
	"strings"

	"phpfmt/internal/ast"
	"phpfmt/internal/doc"
	"phpfmt/internal/token"
)

func (p *printer) functionDecl(d *ast.FunctionDecl) doc.Doc {
	sig := doc.Concat{doc.Text("function ")}
	if d.ByRef {
		sig = append(sig, doc.Text("&"))
	}
	sig = append(sig, doc.Text(d.Name), p.paramList(d.Params))
	sig = append(sig, p.returnType(d.ReturnType))
	return doc.Join(sig, p.braceBlock(p.cfg.BraceFunctions, d.Body))
}

func (p *printer) returnType(t *ast.TypeHint) doc.Doc {
	if t == nil {
		return doc.Nil
	}
	return doc.Text(": " + typeText(t))
}

func typeText(t *ast.TypeHint) string {
	if t.Nullable {
		return "?" + t.Name
	}
	return t.Name
}

// paramList lays out parameters like an argument list: one line when it
// fits, one parameter per line when it breaks.
func (p *printer) paramList(params []*ast.Param) doc.Doc {
	if len(params) == 0 {
		return doc.Text("()")
	}
	docs := make([]doc.Doc, len(params))
	for i, param := range params {
		docs[i] = p.param(param)
	}
	return p.delimitedList("(", ")", docs)
}

func (p *printer) param(param *ast.Param) doc.Doc {
	var b strings.Builder
	for _, m := range param.Modifiers {
		b.WriteString(m)
		b.WriteByte(' ')
	}
	if param.Type != nil {
		b.WriteString(typeText(param.Type))
		b.WriteByte(' ')
	}
	if param.ByRef {
		b.WriteByte('&')
	}
	if param.Variadic {
		b.WriteString("...")
	}
	b.WriteByte('$')
	b.WriteString(param.Name)
	if param.Default == nil {
		return doc.Text(b.String())
	}
	return doc.Join(doc.Text(b.String()), doc.Text(" = "),
		p.expr(param.Default, ast.PrecAssign))
}

func (p *printer) classDecl(d *ast.ClassDecl) doc.Doc {
	header := doc.Concat{doc.Text("class " + d.Name)}
	if d.Extends != "" {
		header = append(header, doc.Text(" extends "+d.Extends))
	}
	if len(d.Implements) > 0 {
		header = append(header, doc.Text(" implements "+strings.Join(d.Implements, ", ")))
	}
	return doc.Join(header, openBrace(p.cfg.BraceClasses),
		p.memberBody(d.Members, d.TailLead))
}

func (p *printer) interfaceDecl(d *ast.InterfaceDecl) doc.Doc {
	header := doc.Concat{doc.Text("interface " + d.Name)}
	if len(d.Extends) > 0 {
		header = append(header, doc.Text(" extends "+strings.Join(d.Extends, ", ")))
	}
	return doc.Join(header, openBrace(p.cfg.BraceClasses),
		p.memberBody(d.Members, d.TailLead))
}

// memberBody renders a class or interface body the way blockBody renders
// statements.
func (p *printer) memberBody(members []ast.Member, tail []token.Trivia) doc.Doc {
	if len(members) == 0 && len(tail) == 0 {
		return doc.Join(doc.HardLine, doc.Text("}"))
	}
	var inner doc.Concat
	for i, m := range members {
		mb := m.Comments()
		if i > 0 && mb.Blank {
			inner = append(inner, doc.LiteralLine)
		}
		inner = append(inner, doc.HardLine)
		inner = p.appendLead(inner, mb.Lead, mb.BlankAfterLead)
		inner = append(inner, p.member(m))
		inner = p.appendTrail(inner, mb.Trail)
	}
	for _, c := range tail {
		if c.NewlinesBefore >= 2 && len(inner) > 0 {
			inner = append(inner, doc.LiteralLine)
		}
		inner = append(inner, doc.HardLine, p.comment(c))
	}
	return doc.Join(doc.IndentOf(inner...), doc.HardLine, doc.Text("}"))
}

func (p *printer) member(m ast.Member) doc.Doc {
	switch m := m.(type) {
	case *ast.PropertyDecl:
		var b strings.Builder
		for _, mod := range m.Modifiers {
			b.WriteString(mod)
			b.WriteByte(' ')
		}
		if m.Type != nil {
			b.WriteString(typeText(m.Type))
			b.WriteByte(' ')
		}
		b.WriteByte('$')
		b.WriteString(m.Name)
		if m.Default == nil {
			return doc.Text(b.String() + ";")
		}
		return doc.Join(doc.Text(b.String()+" = "),
			p.expr(m.Default, ast.PrecAssign), doc.Text(";"))

	case *ast.ClassConstDecl:
		prefix := strings.Join(m.Modifiers, " ")
		if prefix != "" {
			prefix += " "
		}
		return doc.Join(doc.Text(prefix+"const "+m.Name+" = "),
			p.expr(m.Value, ast.PrecLowest), doc.Text(";"))

	case *ast.MethodDecl:
		sig := doc.Concat{}
		for _, mod := range m.Modifiers {
			sig = append(sig, doc.Text(mod+" "))
		}
		sig = append(sig, doc.Text("function "))
		if m.ByRef {
			sig = append(sig, doc.Text("&"))
		}
		sig = append(sig, doc.Text(m.Name), p.paramList(m.Params), p.returnType(m.ReturnType))
		if m.Body == nil {
			return doc.Join(sig, doc.Text(";"))
		}
		return doc.Join(sig, p.braceBlock(p.cfg.BraceFunctions, m.Body))

	default:
		p.fail(m.Pos(), "unsupported member node %T", m)
		return doc.Nil
	}
}
