package parser

import (
	"phpfmt/internal/ast"
	"phpfmt/internal/diag"
	"phpfmt/internal/token"
)

// parseStmt parses one statement or declaration, pinning the leading
// comments, blank-line flag, and any same-line trailing comment onto it.
// Stray empty statements are dropped; a nil statement with ok true means
// nothing was left to parse at this position.
func (p *Parser) parseStmt() (ast.Stmt, bool) {
	lead, blank, gap := p.takeLead()
	for p.at(token.Semicolon) {
		p.advance()
		more, _, moreGap := p.takeLead()
		lead = append(lead, more...)
		gap = moreGap || (gap && len(more) == 0)
	}
	if p.at(token.RBrace) || p.at(token.EOF) || p.at(token.CloseTag) {
		// only stray semicolons remained; hand their comments back
		p.tok.Leading = append(lead, p.tok.Leading...)
		return nil, true
	}
	stmt, ok := p.parseStmtInner()
	if !ok {
		return nil, false
	}
	base := stmt.Comments()
	base.Lead = lead
	base.Blank = blank
	base.BlankAfterLead = gap
	base.Trail = p.takeTrail()
	return stmt, true
}

func (p *Parser) parseStmtInner() (ast.Stmt, bool) {
	switch p.tok.Kind {
	case token.KwFunction:
		// a named function is a declaration; an anonymous one is an
		// expression statement (closure)
		if next := p.peek(); next.Kind == token.Ident || next.Kind == token.Amp {
			return p.parseFunctionDecl()
		}
		return p.parseExprStmt()
	case token.KwClass:
		return p.parseClassDecl()
	case token.KwInterface:
		return p.parseInterfaceDecl()
	case token.KwNamespace:
		return p.parseNamespaceStmt()
	case token.KwUse:
		return p.parseUseStmt()
	case token.KwConst:
		return p.parseConstStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwDo:
		return p.parseDoWhileStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwForeach:
		return p.parseForeachStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwBreak:
		return p.parseJumpStmt(token.KwBreak)
	case token.KwContinue:
		return p.parseJumpStmt(token.KwContinue)
	case token.KwEcho:
		return p.parseEchoStmt()
	case token.LBrace:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseExprStmt() (ast.Stmt, bool) {
	start := p.tok.Span
	x, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return nil, false
	}
	return &ast.ExprStmt{
		Base: ast.Base{Span: p.spanFrom(start)},
		X:    x,
	}, true
}

func (p *Parser) parseEchoStmt() (ast.Stmt, bool) {
	start := p.advance().Span // echo
	args, ok := p.parseExprList()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return nil, false
	}
	return &ast.EchoStmt{
		Base: ast.Base{Span: p.spanFrom(start)},
		Args: args,
	}, true
}

func (p *Parser) parseReturnStmt() (ast.Stmt, bool) {
	start := p.advance().Span // return
	var x ast.Expr
	if !p.at(token.Semicolon) {
		var ok bool
		x, ok = p.parseExpr()
		if !ok {
			return nil, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return nil, false
	}
	return &ast.ReturnStmt{
		Base: ast.Base{Span: p.spanFrom(start)},
		X:    x,
	}, true
}

func (p *Parser) parseJumpStmt(kw token.Kind) (ast.Stmt, bool) {
	start := p.advance().Span
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return nil, false
	}
	base := ast.Base{Span: p.spanFrom(start)}
	if kw == token.KwBreak {
		return &ast.BreakStmt{Base: base}, true
	}
	return &ast.ContinueStmt{Base: base}, true
}

// parseBlock parses '{ stmts }'. Comments between the last statement and
// the closing brace become DanglingLead.
func (p *Parser) parseBlock() (*ast.BlockStmt, bool) {
	start, ok := p.expect(token.LBrace, diag.SynUnclosedBrace)
	if !ok {
		return nil, false
	}
	block := &ast.BlockStmt{}
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.at(token.CloseTag) {
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncStmt()
			continue
		}
		if stmt == nil {
			continue
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	block.DanglingLead = p.tok.Leading
	p.tok.Leading = nil
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace); !ok {
		return nil, false
	}
	block.Span = p.spanFrom(start.Span)
	return block, true
}

// parseBodyBlock parses a control-flow body. A bare statement without
// braces is wrapped into a block so every body prints braced.
func (p *Parser) parseBodyBlock() (*ast.BlockStmt, bool) {
	if p.at(token.LBrace) {
		return p.parseBlock()
	}
	stmt, ok := p.parseStmt()
	if !ok {
		return nil, false
	}
	return &ast.BlockStmt{
		Base:  ast.Base{Span: stmt.Pos()},
		Stmts: []ast.Stmt{stmt},
	}, true
}

func (p *Parser) parseParenExpr() (ast.Expr, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen); !ok {
		return nil, false
	}
	x, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen); !ok {
		return nil, false
	}
	return x, true
}

func (p *Parser) parseIfStmt() (ast.Stmt, bool) {
	start := p.advance().Span // if
	cond, ok := p.parseParenExpr()
	if !ok {
		return nil, false
	}
	then, ok := p.parseBodyBlock()
	if !ok {
		return nil, false
	}
	stmt := &ast.IfStmt{Cond: cond, Then: then}

	for {
		lead, blank, _ := p.takeLead()
		if p.at(token.KwElseif) || (p.at(token.KwElse) && p.peek().Kind == token.KwIf) {
			clauseStart := p.advance().Span // elseif, or else of 'else if'
			if p.at(token.KwIf) {
				p.advance()
			}
			cond, ok := p.parseParenExpr()
			if !ok {
				return nil, false
			}
			body, ok := p.parseBodyBlock()
			if !ok {
				return nil, false
			}
			stmt.Elseifs = append(stmt.Elseifs, &ast.ElseifClause{
				Base: ast.Base{Span: p.spanFrom(clauseStart), Lead: lead, Blank: blank},
				Cond: cond,
				Body: body,
			})
			continue
		}
		if p.at(token.KwElse) {
			p.advance()
			stmt.ElseLead = lead
			body, ok := p.parseBodyBlock()
			if !ok {
				return nil, false
			}
			stmt.Else = body
			break
		}
		// no further arm: hand the comments back to the next construct
		p.tok.Leading = append(lead, p.tok.Leading...)
		break
	}
	stmt.Span = p.spanFrom(start)
	return stmt, true
}

func (p *Parser) parseWhileStmt() (ast.Stmt, bool) {
	start := p.advance().Span // while
	cond, ok := p.parseParenExpr()
	if !ok {
		return nil, false
	}
	body, ok := p.parseBodyBlock()
	if !ok {
		return nil, false
	}
	return &ast.WhileStmt{
		Base: ast.Base{Span: p.spanFrom(start)},
		Cond: cond,
		Body: body,
	}, true
}

func (p *Parser) parseDoWhileStmt() (ast.Stmt, bool) {
	start := p.advance().Span // do
	body, ok := p.parseBodyBlock()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwWhile, diag.SynUnexpectedToken); !ok {
		return nil, false
	}
	cond, ok := p.parseParenExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return nil, false
	}
	return &ast.DoWhileStmt{
		Base: ast.Base{Span: p.spanFrom(start)},
		Body: body,
		Cond: cond,
	}, true
}

func (p *Parser) parseForStmt() (ast.Stmt, bool) {
	start := p.advance().Span // for
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen); !ok {
		return nil, false
	}
	stmt := &ast.ForStmt{}

	section := func(terminator token.Kind) ([]ast.Expr, bool) {
		if p.at(terminator) {
			return nil, true
		}
		return p.parseExprList()
	}

	var ok bool
	if stmt.Init, ok = section(token.Semicolon); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return nil, false
	}
	if stmt.Cond, ok = section(token.Semicolon); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return nil, false
	}
	if stmt.Post, ok = section(token.RParen); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen); !ok {
		return nil, false
	}
	if stmt.Body, ok = p.parseBodyBlock(); !ok {
		return nil, false
	}
	stmt.Span = p.spanFrom(start)
	return stmt, true
}

func (p *Parser) parseForeachStmt() (ast.Stmt, bool) {
	start := p.advance().Span // foreach
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen); !ok {
		return nil, false
	}
	subject, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwAs, diag.SynUnexpectedToken); !ok {
		return nil, false
	}

	stmt := &ast.ForeachStmt{Subject: subject}
	byRef := false
	if p.at(token.Amp) {
		byRef = true
		p.advance()
	}
	first, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if p.at(token.DoubleArrow) {
		if byRef {
			p.errorf(diag.SynUnexpectedToken, p.tok.Span, "foreach key cannot be by reference")
			return nil, false
		}
		p.advance()
		stmt.Key = first
		if p.at(token.Amp) {
			stmt.ByRef = true
			p.advance()
		}
		if stmt.Value, ok = p.parseExpr(); !ok {
			return nil, false
		}
	} else {
		stmt.ByRef = byRef
		stmt.Value = first
	}

	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen); !ok {
		return nil, false
	}
	if stmt.Body, ok = p.parseBodyBlock(); !ok {
		return nil, false
	}
	stmt.Span = p.spanFrom(start)
	return stmt, true
}

// parseExprList parses one or more comma-separated expressions.
func (p *Parser) parseExprList() ([]ast.Expr, bool) {
	var list []ast.Expr
	for {
		x, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		list = append(list, x)
		if !p.at(token.Comma) {
			return list, true
		}
		p.advance()
	}
}
