package parser

import (
	"nyanc/internal/ast"
	"nyanc/internal/diag"
	"nyanc/internal/source"
	"nyanc/internal/token"
)

// parseLetDecl: 'let' 'mut'? IDENT (':' type)? '=' expr ';'
func (p *Parser) parseLetDecl() (ast.LetDecl, source.Span, bool) {
	kw := p.advance() // 'let'
	var decl ast.LetDecl
	if p.at(token.KwMut) {
		p.advance()
		decl.Mut = true
	}

	name, nameSpan, ok := p.parseIdent(diag.SynExpectIdentifier, "expected name after 'let'")
	if !ok {
		return decl, p.spanFrom(kw.Span), false
	}
	decl.Name, decl.NameSpan = name, nameSpan

	if p.at(token.Colon) {
		p.advance()
		ty, ok := p.parseType()
		decl.Type = ty
		if !ok {
			return decl, p.spanFrom(kw.Span), false
		}
	}

	if _, ok := p.expect(token.Assign, diag.SynExpectEquals, "expected '=' in let binding"); !ok {
		return decl, p.spanFrom(kw.Span), false
	}
	decl.Value = p.parseExpr()
	p.expectSemicolon("let binding")
	return decl, p.spanFrom(kw.Span), true
}

func (p *Parser) parseLetItem() (ast.ItemID, bool) {
	decl, sp, ok := p.parseLetDecl()
	if !ok {
		return ast.NoItemID, false
	}
	return p.tree.Items.NewLet(sp, decl), true
}
