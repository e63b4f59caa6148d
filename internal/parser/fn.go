package parser

import (
	"nyanc/internal/ast"
	"nyanc/internal/diag"
	"nyanc/internal/source"
	"nyanc/internal/token"
)

// parseFnItem: 'pub'? 'fn' IDENT '(' params? ')' ('->' type)? block
func (p *Parser) parseFnItem(pubSpan source.Span, public bool) (ast.ItemID, bool) {
	kw := p.advance() // 'fn'
	start := kw.Span
	if public {
		start = pubSpan
	}

	name, nameSpan, ok := p.parseIdent(diag.SynExpectIdentifier, "expected function name")
	if !ok {
		return ast.NoItemID, false
	}
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name")
	if !ok {
		return ast.NoItemID, false
	}
	params := p.parseParams(open.Span)

	result := ast.NoTypeID
	if p.at(token.Arrow) {
		p.advance()
		ty, ok := p.parseType()
		if !ok {
			return ast.NoItemID, false
		}
		result = ty
	}

	if !p.at(token.LBrace) {
		p.err(diag.SynExpectBlock, "expected '{' to start function body, got "+describe(p.ts.Peek()))
		return ast.NoItemID, false
	}
	body := p.parseBlock()

	return p.tree.Items.NewFn(p.spanFrom(start), ast.FnItem{
		Name:     name,
		NameSpan: nameSpan,
		Public:   public,
		Params:   params,
		Result:   result,
		Body:     body,
	}), true
}

// parseParams разбирает список после '(' включая закрывающую ')'.
// Сломанный параметр пропускается до ',' / ')' / '{'.
func (p *Parser) parseParams(open source.Span) []ast.FnParam {
	var params []ast.FnParam
	for !p.atOr(token.RParen, token.EOF, token.LBrace) {
		param, ok := p.parseParam()
		if ok {
			params = append(params, param)
		} else {
			for !p.atOr(token.Comma, token.RParen, token.LBrace, token.EOF) {
				p.advance()
			}
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if p.at(token.RParen) {
		p.advance()
		return params
	}
	p.report(diag.SynUnclosedParen, diag.SevError, open, "unclosed '(' in parameter list, got "+describe(p.ts.Peek()))
	return params
}

func (p *Parser) parseParam() (ast.FnParam, bool) {
	name, sp, ok := p.parseIdent(diag.SynExpectIdentifier, "expected parameter name")
	if !ok {
		return ast.FnParam{}, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after parameter name"); !ok {
		return ast.FnParam{}, false
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.FnParam{}, false
	}
	return ast.FnParam{Name: name, Span: p.spanFrom(sp), Type: ty}, true
}
