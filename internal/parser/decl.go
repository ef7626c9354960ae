package parser

import (
	"phpfmt/internal/ast"
	"phpfmt/internal/diag"
	"phpfmt/internal/token"
)

// identText consumes an identifier token and returns its verbatim text.
func (p *Parser) identText() (string, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		return "", false
	}
	return tok.Text, true
}

func (p *Parser) parseFunctionDecl() (ast.Stmt, bool) {
	start := p.advance().Span // function
	decl := &ast.FunctionDecl{}
	if p.at(token.Amp) {
		decl.ByRef = true
		p.advance()
	}
	var ok bool
	if decl.Name, ok = p.identText(); !ok {
		return nil, false
	}
	if decl.Params, ok = p.parseParams(); !ok {
		return nil, false
	}
	if decl.ReturnType, ok = p.parseReturnType(); !ok {
		return nil, false
	}
	if decl.Body, ok = p.parseBlock(); !ok {
		return nil, false
	}
	decl.Span = p.spanFrom(start)
	return decl, true
}

// parseReturnType parses an optional ': type' suffix.
func (p *Parser) parseReturnType() (*ast.TypeHint, bool) {
	if !p.at(token.Colon) {
		return nil, true
	}
	p.advance()
	return p.parseTypeHint()
}

// parseTypeHint parses '?name' or 'a|b' union spellings. Union members are
// kept verbatim in one string; the formatter does not reorder them.
func (p *Parser) parseTypeHint() (*ast.TypeHint, bool) {
	start := p.tok.Span
	hint := &ast.TypeHint{}
	if p.at(token.Question) {
		hint.Nullable = true
		p.advance()
	}
	name, ok := p.typeName()
	if !ok {
		return nil, false
	}
	hint.Name = name
	for p.at(token.Pipe) {
		p.advance()
		next, ok := p.typeName()
		if !ok {
			return nil, false
		}
		hint.Name += "|" + next
	}
	hint.Span = p.spanFrom(start)
	return hint, true
}

// typeName accepts the tokens that may name a type: identifiers plus the
// keywords PHP allows in type position.
func (p *Parser) typeName() (string, bool) {
	switch p.tok.Kind {
	case token.Ident, token.KwArray, token.KwNull, token.KwStatic,
		token.KwTrue, token.KwFalse:
		return p.advance().Text, true
	default:
		p.errorf(diag.SynExpectIdentifier, p.tok.Span,
			"expected type name, found %s", p.describe(p.tok))
		return "", false
	}
}

// atTypeHint reports whether the current token can start a type hint in a
// parameter or property position.
func (p *Parser) atTypeHint() bool {
	switch p.tok.Kind {
	case token.Question, token.Ident, token.KwArray, token.KwNull,
		token.KwStatic, token.KwTrue, token.KwFalse:
		return true
	default:
		return false
	}
}

// parseParams parses '(param, ...)' with an optional trailing comma.
func (p *Parser) parseParams() ([]*ast.Param, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen); !ok {
		return nil, false
	}
	var params []*ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		param, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		params = append(params, param)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen); !ok {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseParam() (*ast.Param, bool) {
	start := p.tok.Span
	param := &ast.Param{}
	param.Lead, param.Blank, _ = p.takeLead()

	for {
		switch p.tok.Kind {
		case token.KwPublic, token.KwProtected, token.KwPrivate:
			param.Modifiers = append(param.Modifiers, token.KeywordText(p.tok.Kind))
			p.advance()
			continue
		}
		break
	}

	if p.atTypeHint() {
		hint, ok := p.parseTypeHint()
		if !ok {
			return nil, false
		}
		param.Type = hint
	}
	if p.at(token.Amp) {
		param.ByRef = true
		p.advance()
	}
	if p.at(token.Ellipsis) {
		param.Variadic = true
		p.advance()
	}
	name, ok := p.variableName()
	if !ok {
		return nil, false
	}
	param.Name = name
	if p.at(token.Assign) {
		p.advance()
		if param.Default, ok = p.parseExpr(); !ok {
			return nil, false
		}
	}
	param.Span = p.spanFrom(start)
	return param, true
}

// variableName consumes a '$name' token and returns the name without '$'.
func (p *Parser) variableName() (string, bool) {
	tok, ok := p.expect(token.Variable, diag.SynExpectVariable)
	if !ok {
		return "", false
	}
	return tok.Text[1:], true
}

func (p *Parser) parseClassDecl() (ast.Stmt, bool) {
	start := p.advance().Span // class
	decl := &ast.ClassDecl{}
	var ok bool
	if decl.Name, ok = p.identText(); !ok {
		return nil, false
	}
	if p.at(token.KwExtends) {
		p.advance()
		if decl.Extends, ok = p.identText(); !ok {
			return nil, false
		}
	}
	if p.at(token.KwImplements) {
		p.advance()
		for {
			name, ok := p.identText()
			if !ok {
				return nil, false
			}
			decl.Implements = append(decl.Implements, name)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	members, tail, ok := p.parseMemberBody()
	if !ok {
		return nil, false
	}
	decl.Members = members
	decl.TailLead = tail
	decl.Span = p.spanFrom(start)
	return decl, true
}

func (p *Parser) parseInterfaceDecl() (ast.Stmt, bool) {
	start := p.advance().Span // interface
	decl := &ast.InterfaceDecl{}
	var ok bool
	if decl.Name, ok = p.identText(); !ok {
		return nil, false
	}
	if p.at(token.KwExtends) {
		p.advance()
		for {
			name, ok := p.identText()
			if !ok {
				return nil, false
			}
			decl.Extends = append(decl.Extends, name)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	members, tail, ok := p.parseMemberBody()
	if !ok {
		return nil, false
	}
	decl.Members = members
	decl.TailLead = tail
	decl.Span = p.spanFrom(start)
	return decl, true
}

// parseMemberBody parses '{ members }' and returns the members plus the
// comments that sat between the last member and the closing brace.
func (p *Parser) parseMemberBody() ([]ast.Member, []token.Trivia, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynUnclosedBrace); !ok {
		return nil, nil, false
	}
	var members []ast.Member
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.at(token.CloseTag) {
		member, ok := p.parseMember()
		if !ok {
			p.resyncStmt()
			continue
		}
		members = append(members, member)
	}
	tail := p.tok.Leading
	p.tok.Leading = nil
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedBrace); !ok {
		return nil, nil, false
	}
	return members, tail, true
}

func (p *Parser) parseMember() (ast.Member, bool) {
	lead, blank, gap := p.takeLead()
	member, ok := p.parseMemberInner()
	if !ok {
		return nil, false
	}
	base := member.Comments()
	base.Lead = lead
	base.Blank = blank
	base.BlankAfterLead = gap
	base.Trail = p.takeTrail()
	return member, true
}

func (p *Parser) parseMemberInner() (ast.Member, bool) {
	start := p.tok.Span
	var modifiers []string
	for {
		switch p.tok.Kind {
		case token.KwPublic, token.KwProtected, token.KwPrivate, token.KwStatic:
			modifiers = append(modifiers, token.KeywordText(p.tok.Kind))
			p.advance()
			continue
		}
		break
	}

	switch p.tok.Kind {
	case token.KwConst:
		p.advance()
		decl := &ast.ClassConstDecl{Modifiers: modifiers}
		var ok bool
		if decl.Name, ok = p.identText(); !ok {
			return nil, false
		}
		if _, ok = p.expect(token.Assign, diag.SynUnexpectedToken); !ok {
			return nil, false
		}
		if decl.Value, ok = p.parseExpr(); !ok {
			return nil, false
		}
		if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
			return nil, false
		}
		decl.Span = p.spanFrom(start)
		return decl, true

	case token.KwFunction:
		p.advance()
		decl := &ast.MethodDecl{Modifiers: modifiers}
		if p.at(token.Amp) {
			decl.ByRef = true
			p.advance()
		}
		var ok bool
		if decl.Name, ok = p.identText(); !ok {
			return nil, false
		}
		if decl.Params, ok = p.parseParams(); !ok {
			return nil, false
		}
		if decl.ReturnType, ok = p.parseReturnType(); !ok {
			return nil, false
		}
		if p.at(token.Semicolon) {
			// interface or abstract signature: no body
			p.advance()
		} else if decl.Body, ok = p.parseBlock(); !ok {
			return nil, false
		}
		decl.Span = p.spanFrom(start)
		return decl, true
	}

	// property: 'modifiers [?type] $name [= default];'
	decl := &ast.PropertyDecl{Modifiers: modifiers}
	if p.atTypeHint() {
		hint, ok := p.parseTypeHint()
		if !ok {
			return nil, false
		}
		decl.Type = hint
	}
	name, ok := p.variableName()
	if !ok {
		if len(modifiers) == 0 && decl.Type == nil {
			p.errorf(diag.SynExpectMember, p.tok.Span,
				"expected class member, found %s", p.describe(p.tok))
		}
		return nil, false
	}
	decl.Name = name
	if p.at(token.Assign) {
		p.advance()
		if decl.Default, ok = p.parseExpr(); !ok {
			return nil, false
		}
	}
	if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return nil, false
	}
	decl.Span = p.spanFrom(start)
	return decl, true
}

func (p *Parser) parseNamespaceStmt() (ast.Stmt, bool) {
	start := p.advance().Span // namespace
	stmt := &ast.NamespaceStmt{}
	if p.at(token.Ident) {
		stmt.Name = p.advance().Text
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return nil, false
	}
	stmt.Span = p.spanFrom(start)
	return stmt, true
}

func (p *Parser) parseUseStmt() (ast.Stmt, bool) {
	start := p.advance().Span // use
	stmt := &ast.UseStmt{}
	var ok bool
	if stmt.Path, ok = p.identText(); !ok {
		return nil, false
	}
	if p.at(token.KwAs) {
		p.advance()
		if stmt.Alias, ok = p.identText(); !ok {
			return nil, false
		}
	}
	if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return nil, false
	}
	stmt.Span = p.spanFrom(start)
	return stmt, true
}

func (p *Parser) parseConstStmt() (ast.Stmt, bool) {
	start := p.advance().Span // const
	stmt := &ast.ConstStmt{}
	var ok bool
	if stmt.Name, ok = p.identText(); !ok {
		return nil, false
	}
	if _, ok = p.expect(token.Assign, diag.SynUnexpectedToken); !ok {
		return nil, false
	}
	if stmt.Value, ok = p.parseExpr(); !ok {
		return nil, false
	}
	if _, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon); !ok {
		return nil, false
	}
	stmt.Span = p.spanFrom(start)
	return stmt, true
}
