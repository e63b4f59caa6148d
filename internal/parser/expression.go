package parser

import (
	"nyanc/internal/ast"
	"nyanc/internal/diag"
	"nyanc/internal/source"
	"nyanc/internal/token"
)

// parseExpr всегда возвращает узел; при ошибке это ExprBad.
func (p *Parser) parseExpr() ast.ExprID {
	return p.parseBinary(precLogicalOr)
}

// parseBinary — precedence climbing.
func (p *Parser) parseBinary(minPrec int) ast.ExprID {
	left := p.parseUnary()
	for {
		prec, op := binaryOp(p.ts.Peek().Kind)
		if prec < minPrec {
			return left
		}
		p.advance()
		right := p.parseBinary(prec + 1)
		sp := p.tree.Exprs.Get(left).Span.Cover(p.tree.Exprs.Get(right).Span)
		left = p.tree.Exprs.NewBinary(sp, op, left, right)
	}
}

func (p *Parser) parseUnary() ast.ExprID {
	tok := p.ts.Peek()
	var op ast.UnaryOp
	switch tok.Kind {
	case token.Minus:
		op = ast.OpNeg
	case token.Bang:
		op = ast.OpNot
	case token.Amp:
		op = ast.OpRef
	default:
		return p.parsePostfix()
	}
	p.advance()
	operand := p.parseUnary()
	sp := tok.Span.Cover(p.tree.Exprs.Get(operand).Span)
	return p.tree.Exprs.NewUnary(sp, op, operand)
}

// parsePostfix: primary ( '(' args ')' | '.' IDENT | '[' expr ']' )*
func (p *Parser) parsePostfix() ast.ExprID {
	expr := p.parsePrimary()
	if p.tree.Exprs.Get(expr).Kind == ast.ExprBad {
		return expr
	}
	start := p.tree.Exprs.Get(expr).Span
	for {
		switch p.ts.Peek().Kind {
		case token.LParen:
			open := p.advance()
			args := p.parseArgs(open.Span)
			expr = p.tree.Exprs.NewCall(p.spanFrom(start), expr, args)
		case token.Dot:
			p.advance()
			field, _, ok := p.parseIdent(diag.SynExpectIdentifier, "expected field name after '.'")
			if !ok {
				return p.tree.Exprs.NewBad(p.spanFrom(start))
			}
			expr = p.tree.Exprs.NewMember(p.spanFrom(start), expr, field)
		case token.LBracket:
			open := p.advance()
			index := p.parseExpr()
			if !p.at(token.RBracket) {
				p.report(diag.SynUnclosedBracket, diag.SevError, open.Span,
					"unclosed '[', got "+describe(p.ts.Peek()))
				return p.tree.Exprs.NewBad(p.spanFrom(start))
			}
			p.advance()
			expr = p.tree.Exprs.NewIndex(p.spanFrom(start), expr, index)
		default:
			return expr
		}
	}
}

// parseArgs разбирает аргументы вызова после '(' включая ')'.
func (p *Parser) parseArgs(open source.Span) []ast.ExprID {
	var args []ast.ExprID
	for !p.atOr(token.RParen, token.EOF, token.Semicolon, token.RBrace) {
		args = append(args, p.parseExpr())
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if p.at(token.RParen) {
		p.advance()
		return args
	}
	p.report(diag.SynUnclosedParen, diag.SevError, open, "unclosed '(' in call, got "+describe(p.ts.Peek()))
	return args
}

func (p *Parser) parsePrimary() ast.ExprID {
	tok := p.ts.Peek()
	switch tok.Kind {
	case token.IntLit:
		return p.literal(ast.LitInt)
	case token.FloatLit:
		return p.literal(ast.LitFloat)
	case token.StringLit:
		return p.literal(ast.LitString)
	case token.KwTrue:
		return p.literal(ast.LitTrue)
	case token.KwFalse:
		return p.literal(ast.LitFalse)
	case token.NothingLit:
		return p.literal(ast.LitNothing)

	case token.Ident:
		path, ok := p.parsePath(diag.SynExpectIdentifier)
		if !ok {
			return p.tree.Exprs.NewBad(p.spanFrom(tok.Span))
		}
		return p.tree.Exprs.NewPath(p.tree.Path(path).Span, path)

	case token.LParen:
		open := p.advance()
		inner := p.parseExpr()
		if !p.at(token.RParen) {
			p.report(diag.SynUnclosedParen, diag.SevError, open.Span, "unclosed '(', got "+describe(p.ts.Peek()))
			return p.tree.Exprs.NewBad(p.spanFrom(open.Span))
		}
		p.advance()
		return p.tree.Exprs.NewGroup(p.spanFrom(open.Span), inner)

	case token.Invalid:
		// лексер уже отрепортил; съедаем, чтобы не зациклиться
		p.advance()
		return p.tree.Exprs.NewBad(tok.Span)
	}

	p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
	if isExprSync(tok.Kind) {
		return p.tree.Exprs.NewBad(source.Span{File: tok.Span.File, Start: tok.Span.Start, End: tok.Span.Start})
	}
	p.advance()
	return p.tree.Exprs.NewBad(tok.Span)
}

func (p *Parser) literal(kind ast.LitKind) ast.ExprID {
	tok := p.advance()
	return p.tree.Exprs.NewLiteral(tok.Span, kind, p.env.Strings.Intern(tok.Text))
}

// isExprSync — токены, которые выражение не должно съедать при ошибке:
// их ждут вызывающие (операторы, блоки, items).
func isExprSync(k token.Kind) bool {
	switch k {
	case token.EOF, token.Semicolon, token.Comma,
		token.RParen, token.RBrace, token.RBracket, token.LBrace,
		token.KwLet, token.KwReturn, token.KwIf, token.KwWhile, token.KwElse,
		token.KwFn, token.KwImport, token.KwType, token.KwPub:
		return true
	default:
		return false
	}
}
