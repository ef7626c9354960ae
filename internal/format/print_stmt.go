package format

import (
	"phpfmt/internal/ast"
	"phpfmt/internal/doc"
	"phpfmt/internal/style"
	"phpfmt/internal/token"
)

func (p *printer) stmt(s ast.Stmt) doc.Doc {
	switch s := s.(type) {
	case *ast.ExprStmt:
		return doc.Join(p.expr(s.X, ast.PrecLowest), doc.Text(";"))
	case *ast.EchoStmt:
		return doc.Join(doc.Text("echo "), p.wrappedList(s.Args), doc.Text(";"))
	case *ast.ReturnStmt:
		if s.X == nil {
			return doc.Text("return;")
		}
		return doc.Join(doc.Text("return "), p.expr(s.X, ast.PrecLowest), doc.Text(";"))
	case *ast.BreakStmt:
		return doc.Text("break;")
	case *ast.ContinueStmt:
		return doc.Text("continue;")
	case *ast.BlockStmt:
		return doc.Join(doc.Text("{"), p.blockBody(s))
	case *ast.IfStmt:
		return p.ifStmt(s)
	case *ast.WhileStmt:
		return doc.Join(doc.Text("while "), p.parenExpr(s.Cond),
			p.braceBlock(p.cfg.BraceControl, s.Body))
	case *ast.DoWhileStmt:
		return doc.Join(doc.Text("do"),
			p.braceBlock(p.cfg.BraceControl, s.Body),
			p.armJoiner(), doc.Text("while "), p.parenExpr(s.Cond), doc.Text(";"))
	case *ast.ForStmt:
		return p.forStmt(s)
	case *ast.ForeachStmt:
		return p.foreachStmt(s)
	case *ast.FunctionDecl:
		return p.functionDecl(s)
	case *ast.ClassDecl:
		return p.classDecl(s)
	case *ast.InterfaceDecl:
		return p.interfaceDecl(s)
	case *ast.UseStmt:
		if s.Alias != "" {
			return doc.Text("use " + s.Path + " as " + s.Alias + ";")
		}
		return doc.Text("use " + s.Path + ";")
	case *ast.NamespaceStmt:
		if s.Name == "" {
			return doc.Text("namespace;")
		}
		return doc.Text("namespace " + s.Name + ";")
	case *ast.ConstStmt:
		return doc.Join(doc.Text("const "+s.Name+" = "),
			p.expr(s.Value, ast.PrecLowest), doc.Text(";"))
	default:
		p.fail(s.Pos(), "unsupported statement node %T", s)
		return doc.Nil
	}
}

// armJoiner separates a closing brace from a follow-up keyword ('else',
// 'elseif', do-while's 'while') per the control brace style.
func (p *printer) armJoiner() doc.Doc {
	if p.cfg.BraceControl == style.BraceNextLine {
		return doc.HardLine
	}
	return doc.Text(" ")
}

// openBrace places an opening brace per the given style; the caller has
// already printed the construct header.
func openBrace(bs style.BraceStyle) doc.Doc {
	if bs == style.BraceNextLine {
		return doc.Concat{doc.HardLine, doc.Text("{")}
	}
	return doc.Text(" {")
}

func (p *printer) braceBlock(bs style.BraceStyle, b *ast.BlockStmt) doc.Doc {
	return doc.Join(openBrace(bs), p.blockBody(b))
}

// blockBody renders everything after the opening brace: the indented
// statement list, dangling comments, and the closing brace. An empty body
// still spreads across two lines.
func (p *printer) blockBody(b *ast.BlockStmt) doc.Doc {
	if len(b.Stmts) == 0 && len(b.DanglingLead) == 0 {
		return doc.Join(doc.HardLine, doc.Text("}"))
	}
	var inner doc.Concat
	for i, s := range b.Stmts {
		sb := s.Comments()
		if i > 0 && sb.Blank {
			inner = append(inner, doc.LiteralLine)
		}
		inner = append(inner, doc.HardLine)
		inner = p.appendLead(inner, sb.Lead, sb.BlankAfterLead)
		inner = append(inner, p.stmt(s))
		inner = p.appendTrail(inner, sb.Trail)
	}
	for _, c := range b.DanglingLead {
		if c.NewlinesBefore >= 2 && len(inner) > 0 {
			inner = append(inner, doc.LiteralLine)
		}
		inner = append(inner, doc.HardLine, p.comment(c))
	}
	return doc.Join(doc.IndentOf(inner...), doc.HardLine, doc.Text("}"))
}

// parenExpr wraps an expression in parentheses that admit an internal
// break when the content does not fit.
func (p *printer) parenExpr(e ast.Expr) doc.Doc {
	return doc.GroupOf(&p.ids,
		doc.Text("("),
		doc.IndentOf(doc.TightLine, p.expr(e, ast.PrecLowest)),
		doc.TightLine,
		doc.Text(")"),
	)
}

func (p *printer) ifStmt(s *ast.IfStmt) doc.Doc {
	parts := doc.Concat{
		doc.Text("if "), p.parenExpr(s.Cond),
		p.braceBlock(p.cfg.BraceControl, s.Then),
	}
	for _, arm := range s.Elseifs {
		parts = p.appendArmLead(parts, arm.Lead)
		parts = append(parts,
			doc.Text("elseif "), p.parenExpr(arm.Cond),
			p.braceBlock(p.cfg.BraceControl, arm.Body))
	}
	if s.Else != nil {
		parts = p.appendArmLead(parts, s.ElseLead)
		parts = append(parts, doc.Text("else"),
			p.braceBlock(p.cfg.BraceControl, s.Else))
	}
	return parts
}

// appendArmLead joins an elseif/else arm to the previous closing brace.
// Comments before the keyword force the arm onto its own line regardless
// of brace style, so they stay where the author put them.
func (p *printer) appendArmLead(parts doc.Concat, lead []token.Trivia) doc.Concat {
	if len(lead) == 0 {
		return append(parts, p.armJoiner())
	}
	for _, c := range lead {
		parts = append(parts, doc.HardLine, p.comment(c))
	}
	return append(parts, doc.HardLine)
}

func (p *printer) forStmt(s *ast.ForStmt) doc.Doc {
	header := doc.Concat{}
	if len(s.Init) > 0 {
		header = append(header, p.exprList(s.Init))
	}
	header = append(header, doc.Text(";"))
	if len(s.Cond) > 0 {
		header = append(header, doc.Text(" "), p.exprList(s.Cond))
	}
	header = append(header, doc.Text(";"))
	if len(s.Post) > 0 {
		header = append(header, doc.Text(" "), p.exprList(s.Post))
	}
	return doc.Join(doc.Text("for ("), header, doc.Text(")"),
		p.braceBlock(p.cfg.BraceControl, s.Body))
}

func (p *printer) foreachStmt(s *ast.ForeachStmt) doc.Doc {
	parts := doc.Concat{doc.Text("foreach ("), p.expr(s.Subject, ast.PrecLowest),
		doc.Text(" as ")}
	if s.Key != nil {
		parts = append(parts, p.expr(s.Key, ast.PrecLowest), doc.Text(" => "))
	}
	if s.ByRef {
		parts = append(parts, doc.Text("&"))
	}
	parts = append(parts, p.expr(s.Value, ast.PrecLowest), doc.Text(")"))
	return doc.Join(parts, p.braceBlock(p.cfg.BraceControl, s.Body))
}

// exprList prints comma-separated expressions without surrounding
// delimiters; 'for' headers and 'echo' arguments use it.
func (p *printer) exprList(exprs []ast.Expr) doc.Doc {
	docs := make([]doc.Doc, len(exprs))
	for i, e := range exprs {
		docs[i] = p.expr(e, ast.PrecLowest)
	}
	return doc.Separated(doc.Text(", "), docs)
}

// wrappedList is exprList with a break opportunity after each comma for
// lists that may exceed the width.
func (p *printer) wrappedList(exprs []ast.Expr) doc.Doc {
	docs := make([]doc.Doc, len(exprs))
	for i, e := range exprs {
		docs[i] = p.expr(e, ast.PrecLowest)
	}
	return doc.GroupOf(&p.ids,
		doc.IndentOf(doc.Separated(doc.Concat{doc.Text(","), doc.SoftLine}, docs)))
}
