package parser

import (
	"nyanc/internal/ast"
	"nyanc/internal/diag"
	"nyanc/internal/source"
	"nyanc/internal/token"
)

// parseTypeItem: 'pub'? 'type' IDENT '=' typeexpr ';'
func (p *Parser) parseTypeItem(pubSpan source.Span, public bool) (ast.ItemID, bool) {
	kw := p.advance() // 'type'
	start := kw.Span
	if public {
		start = pubSpan
	}

	name, nameSpan, ok := p.parseIdent(diag.SynExpectIdentifier, "expected type name")
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.Assign, diag.SynExpectEquals, "expected '=' after type name"); !ok {
		return ast.NoItemID, false
	}
	target, ok := p.parseType()
	if !ok {
		return ast.NoItemID, false
	}
	p.expectSemicolon("type declaration")
	return p.tree.Items.NewType(p.spanFrom(start), ast.TypeItem{
		Name:     name,
		NameSpan: nameSpan,
		Public:   public,
		Target:   target,
	}), true
}
