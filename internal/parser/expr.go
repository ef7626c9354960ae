package parser

import (
	"phpfmt/internal/ast"
	"phpfmt/internal/diag"
	"phpfmt/internal/source"
	"phpfmt/internal/token"
)

func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseBinary(ast.PrecLowest)
}

// parseBinary implements precedence climbing over the shared binding power
// table. Assignment and the ternary conditional are folded into the same
// loop since both are infix from the parser's point of view.
func (p *Parser) parseBinary(minPrec int) (ast.Expr, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	for {
		op := p.tok.Kind
		prec := ast.BinaryPrec(op)
		if prec == 0 || prec < minPrec {
			return left, true
		}

		if op == token.Question {
			if left, ok = p.parseTernaryTail(left); !ok {
				return nil, false
			}
			continue
		}

		isAssign := p.tok.IsAssignOp()
		p.advance()
		nextMin := prec + 1
		if ast.RightAssoc(op) {
			nextMin = prec
		}
		right, ok := p.parseBinary(nextMin)
		if !ok {
			return nil, false
		}

		span := left.Pos().Cover(right.Pos())
		if isAssign {
			p.checkAssignTarget(left)
			left = &ast.AssignExpr{
				ExprBase: ast.ExprBase{Span: span},
				Target:   left,
				Op:       op,
				Value:    right,
			}
		} else {
			left = &ast.BinaryExpr{
				ExprBase: ast.ExprBase{Span: span},
				Left:     left,
				Op:       op,
				Right:    right,
			}
		}
	}
}

// parseTernaryTail parses '? then : else' and '?: else' after cond.
func (p *Parser) parseTernaryTail(cond ast.Expr) (ast.Expr, bool) {
	p.advance() // ?
	tern := &ast.TernaryExpr{Cond: cond}
	if !p.at(token.Colon) {
		then, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		tern.Then = then
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken); !ok {
		return nil, false
	}
	els, ok := p.parseBinary(ast.PrecTernary)
	if !ok {
		return nil, false
	}
	tern.Else = els
	tern.Span = cond.Pos().Cover(els.Pos())
	return tern, true
}

func (p *Parser) checkAssignTarget(target ast.Expr) {
	switch target.(type) {
	case *ast.VariableExpr, *ast.SubscriptExpr, *ast.PropertyAccessExpr,
		*ast.StaticPropExpr, *ast.ArrayLit:
		// ArrayLit covers list destructuring '[$a, $b] = ...'
	default:
		p.errorf(diag.SynBadAssignTarget, target.Pos(),
			"cannot assign to this expression")
	}
}

func (p *Parser) parseUnary() (ast.Expr, bool) {
	op := p.tok.Kind
	if prec := ast.UnaryPrec(op); prec != 0 {
		start := p.advance().Span
		x, ok := p.parseBinary(prec)
		if !ok {
			return nil, false
		}
		return &ast.UnaryExpr{
			ExprBase: ast.ExprBase{Span: start.Cover(x.Pos())},
			Op:       op,
			X:        x,
		}, true
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expr, bool) {
	x, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for {
		switch p.tok.Kind {
		case token.LParen:
			args, ok := p.parseArgs()
			if !ok {
				return nil, false
			}
			x = &ast.CallExpr{
				ExprBase: ast.ExprBase{Span: p.spanFrom(x.Pos())},
				Callee:   x,
				Args:     args,
			}

		case token.Arrow, token.NullArrow:
			nullSafe := p.tok.Kind == token.NullArrow
			p.advance()
			name, ok := p.memberName()
			if !ok {
				return nil, false
			}
			if p.at(token.LParen) {
				args, ok := p.parseArgs()
				if !ok {
					return nil, false
				}
				x = &ast.MethodCallExpr{
					ExprBase: ast.ExprBase{Span: p.spanFrom(x.Pos())},
					Object:   x,
					NullSafe: nullSafe,
					Method:   name,
					Args:     args,
				}
			} else {
				x = &ast.PropertyAccessExpr{
					ExprBase: ast.ExprBase{Span: p.spanFrom(x.Pos())},
					Object:   x,
					NullSafe: nullSafe,
					Name:     name,
				}
			}

		case token.ColonColon:
			x, ok = p.parseStaticAccess(x)
			if !ok {
				return nil, false
			}

		case token.LBracket:
			p.advance()
			var index ast.Expr
			if !p.at(token.RBracket) {
				if index, ok = p.parseExpr(); !ok {
					return nil, false
				}
			}
			if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket); !ok {
				return nil, false
			}
			x = &ast.SubscriptExpr{
				ExprBase: ast.ExprBase{Span: p.spanFrom(x.Pos())},
				X:        x,
				Index:    index,
			}

		case token.Inc, token.Dec:
			op := p.advance().Kind
			x = &ast.PostfixExpr{
				ExprBase: ast.ExprBase{Span: p.spanFrom(x.Pos())},
				X:        x,
				Op:       op,
			}

		default:
			return x, true
		}
	}
}

// memberName accepts an identifier or any keyword spelling after '->'.
func (p *Parser) memberName() (string, bool) {
	if p.at(token.Ident) || p.tok.IsKeyword() {
		return p.advance().Text, true
	}
	p.errorf(diag.SynExpectIdentifier, p.tok.Span,
		"expected member name, found %s", p.describe(p.tok))
	return "", false
}

// parseStaticAccess parses the '::' forms. The left side must be a plain
// class name; dynamic class expressions are out of scope.
func (p *Parser) parseStaticAccess(x ast.Expr) (ast.Expr, bool) {
	class, ok := x.(*ast.Ident)
	if !ok {
		p.errorf(diag.SynUnexpectedToken, p.tok.Span,
			"'::' requires a class name on the left")
		return nil, false
	}
	p.advance() // ::

	switch p.tok.Kind {
	case token.KwClass:
		p.advance()
		return &ast.ClassConstAccessExpr{
			ExprBase: ast.ExprBase{Span: p.spanFrom(x.Pos())},
			Class:    class.Name,
			Name:     "class",
		}, true
	case token.Variable:
		name, _ := p.variableName()
		return &ast.StaticPropExpr{
			ExprBase: ast.ExprBase{Span: p.spanFrom(x.Pos())},
			Class:    class.Name,
			Name:     name,
		}, true
	}

	name, ok := p.memberName()
	if !ok {
		return nil, false
	}
	if p.at(token.LParen) {
		args, ok := p.parseArgs()
		if !ok {
			return nil, false
		}
		return &ast.StaticCallExpr{
			ExprBase: ast.ExprBase{Span: p.spanFrom(x.Pos())},
			Class:    class.Name,
			Method:   name,
			Args:     args,
		}, true
	}
	return &ast.ClassConstAccessExpr{
		ExprBase: ast.ExprBase{Span: p.spanFrom(x.Pos())},
		Class:    class.Name,
		Name:     name,
	}, true
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	switch p.tok.Kind {
	case token.Variable:
		tok := p.advance()
		return &ast.VariableExpr{
			ExprBase: ast.ExprBase{Span: tok.Span},
			Name:     tok.Text[1:],
		}, true
	case token.IntLit:
		tok := p.advance()
		return &ast.IntLit{ExprBase: ast.ExprBase{Span: tok.Span}, Text: tok.Text}, true
	case token.FloatLit:
		tok := p.advance()
		return &ast.FloatLit{ExprBase: ast.ExprBase{Span: tok.Span}, Text: tok.Text}, true
	case token.StringLit:
		tok := p.advance()
		return &ast.StringLit{ExprBase: ast.ExprBase{Span: tok.Span}, Text: tok.Text}, true
	case token.InterpStringLit:
		tok := p.advance()
		return &ast.InterpStringLit{ExprBase: ast.ExprBase{Span: tok.Span}, Text: tok.Text}, true
	case token.KwTrue, token.KwFalse:
		tok := p.advance()
		return &ast.BoolLit{
			ExprBase: ast.ExprBase{Span: tok.Span},
			Value:    tok.Kind == token.KwTrue,
		}, true
	case token.KwNull:
		tok := p.advance()
		return &ast.NullLit{ExprBase: ast.ExprBase{Span: tok.Span}}, true
	case token.Ident:
		tok := p.advance()
		return &ast.Ident{ExprBase: ast.ExprBase{Span: tok.Span}, Name: tok.Text}, true

	case token.LParen:
		// grouping parentheses are dropped; the printer re-derives them
		p.advance()
		x, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen); !ok {
			return nil, false
		}
		return x, true

	case token.LBracket:
		return p.parseArrayLit(token.LBracket, token.RBracket)
	case token.KwArray:
		if p.peek().Kind == token.LParen {
			p.advance() // array
			return p.parseArrayLit(token.LParen, token.RParen)
		}
		p.errorf(diag.SynUnexpectedToken, p.tok.Span, "unexpected 'array'")
		return nil, false

	case token.KwNew:
		return p.parseNewExpr()
	case token.KwFunction:
		return p.parseClosure(false, p.tok.Span)
	case token.KwFn:
		return p.parseArrowFn(false, p.tok.Span)
	case token.KwStatic:
		start := p.tok.Span
		switch p.peek().Kind {
		case token.KwFunction:
			p.advance()
			return p.parseClosure(true, start)
		case token.KwFn:
			p.advance()
			return p.parseArrowFn(true, start)
		case token.ColonColon:
			tok := p.advance()
			return &ast.Ident{ExprBase: ast.ExprBase{Span: tok.Span}, Name: "static"}, true
		}
		p.errorf(diag.SynUnexpectedToken, p.tok.Span, "unexpected 'static'")
		return nil, false

	default:
		p.errorf(diag.SynUnexpectedToken, p.tok.Span,
			"expected expression, found %s", p.describe(p.tok))
		return nil, false
	}
}

// parseArrayLit parses the items between the opener and closer; the '['
// or 'array(' opener has already been identified.
func (p *Parser) parseArrayLit(opener, closer token.Kind) (ast.Expr, bool) {
	start, ok := p.expect(opener, diag.SynUnclosedBracket)
	if !ok {
		return nil, false
	}
	lit := &ast.ArrayLit{}
	for !p.at(closer) && !p.at(token.EOF) {
		item, ok := p.parseArrayItem()
		if !ok {
			return nil, false
		}
		lit.Items = append(lit.Items, item)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	code := diag.SynUnclosedBracket
	if closer == token.RParen {
		code = diag.SynUnclosedParen
	}
	if _, ok := p.expect(closer, code); !ok {
		return nil, false
	}
	lit.Span = p.spanFrom(start.Span)
	return lit, true
}

func (p *Parser) parseArrayItem() (*ast.ArrayItem, bool) {
	start := p.tok.Span
	item := &ast.ArrayItem{}

	if p.at(token.Ellipsis) {
		p.advance()
		item.Spread = true
		value, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		item.Value = value
		item.Span = p.spanFrom(start)
		return item, true
	}

	if p.at(token.Amp) {
		p.advance()
		item.ByRef = true
	}
	first, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if p.at(token.DoubleArrow) && !item.ByRef {
		p.advance()
		item.Key = first
		if p.at(token.Amp) {
			p.advance()
			item.ByRef = true
		}
		if item.Value, ok = p.parseExpr(); !ok {
			return nil, false
		}
	} else {
		item.Value = first
	}
	item.Span = p.spanFrom(start)
	return item, true
}

// parseArgs parses a call argument list with an optional trailing comma.
func (p *Parser) parseArgs() ([]ast.Expr, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen); !ok {
		return nil, false
	}
	var args []ast.Expr
	for !p.at(token.RParen) && !p.at(token.EOF) {
		var arg ast.Expr
		if p.at(token.Ellipsis) {
			start := p.advance().Span
			x, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			arg = &ast.SpreadExpr{
				ExprBase: ast.ExprBase{Span: start.Cover(x.Pos())},
				X:        x,
			}
		} else {
			var ok bool
			if arg, ok = p.parseExpr(); !ok {
				return nil, false
			}
		}
		args = append(args, arg)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen); !ok {
		return nil, false
	}
	return args, true
}

func (p *Parser) parseNewExpr() (ast.Expr, bool) {
	start := p.advance().Span // new
	var class ast.Expr
	switch p.tok.Kind {
	case token.Ident:
		tok := p.advance()
		class = &ast.Ident{ExprBase: ast.ExprBase{Span: tok.Span}, Name: tok.Text}
	case token.KwStatic:
		tok := p.advance()
		class = &ast.Ident{ExprBase: ast.ExprBase{Span: tok.Span}, Name: "static"}
	case token.Variable:
		tok := p.advance()
		class = &ast.VariableExpr{ExprBase: ast.ExprBase{Span: tok.Span}, Name: tok.Text[1:]}
	default:
		p.errorf(diag.SynExpectIdentifier, p.tok.Span,
			"expected class name after 'new', found %s", p.describe(p.tok))
		return nil, false
	}

	expr := &ast.NewExpr{Class: class}
	if p.at(token.LParen) {
		expr.HadParens = true
		args, ok := p.parseArgs()
		if !ok {
			return nil, false
		}
		expr.Args = args
	}
	expr.Span = p.spanFrom(start)
	return expr, true
}

func (p *Parser) parseClosure(static bool, start source.Span) (ast.Expr, bool) {
	p.advance() // function
	expr := &ast.ClosureExpr{Static: static}
	if p.at(token.Amp) {
		expr.ByRef = true
		p.advance()
	}
	var ok bool
	if expr.Params, ok = p.parseParams(); !ok {
		return nil, false
	}
	if p.at(token.KwUse) {
		p.advance()
		if expr.Uses, ok = p.parseClosureUses(); !ok {
			return nil, false
		}
	}
	if expr.ReturnType, ok = p.parseReturnType(); !ok {
		return nil, false
	}
	if expr.Body, ok = p.parseBlock(); !ok {
		return nil, false
	}
	expr.Span = p.spanFrom(start)
	return expr, true
}

func (p *Parser) parseClosureUses() ([]*ast.ClosureUse, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnclosedParen); !ok {
		return nil, false
	}
	var uses []*ast.ClosureUse
	for !p.at(token.RParen) && !p.at(token.EOF) {
		use := &ast.ClosureUse{Span: p.tok.Span}
		if p.at(token.Amp) {
			use.ByRef = true
			p.advance()
		}
		name, ok := p.variableName()
		if !ok {
			return nil, false
		}
		use.Name = name
		use.Span = p.spanFrom(use.Span)
		uses = append(uses, use)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen); !ok {
		return nil, false
	}
	return uses, true
}

func (p *Parser) parseArrowFn(static bool, start source.Span) (ast.Expr, bool) {
	p.advance() // fn
	expr := &ast.ArrowFnExpr{Static: static}
	if p.at(token.Amp) {
		expr.ByRef = true
		p.advance()
	}
	var ok bool
	if expr.Params, ok = p.parseParams(); !ok {
		return nil, false
	}
	if expr.ReturnType, ok = p.parseReturnType(); !ok {
		return nil, false
	}
	if _, ok = p.expect(token.DoubleArrow, diag.SynUnexpectedToken); !ok {
		return nil, false
	}
	if expr.Body, ok = p.parseExpr(); !ok {
		return nil, false
	}
	expr.Span = p.spanFrom(start)
	return expr, true
}
