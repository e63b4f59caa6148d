package parser

import (
	"nyanc/internal/ast"
	"nyanc/internal/diag"
	"nyanc/internal/token"
)

// parseType: path | '[' type ']' | '&' type.
// На ошибке возвращает TypeBad узел и false.
func (p *Parser) parseType() (ast.TypeID, bool) {
	tok := p.ts.Peek()
	switch tok.Kind {
	case token.Ident:
		path, ok := p.parsePath(diag.SynExpectIdentifier)
		if !ok {
			return p.tree.NewType(ast.TypeBad, p.spanFrom(tok.Span), ast.NoPathID, ast.NoTypeID), false
		}
		return p.tree.NewType(ast.TypePath, p.spanFrom(tok.Span), path, ast.NoTypeID), true

	case token.LBracket:
		p.advance()
		elem, ok := p.parseType()
		if !ok {
			return p.tree.NewType(ast.TypeBad, p.spanFrom(tok.Span), ast.NoPathID, elem), false
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close slice type"); !ok {
			return p.tree.NewType(ast.TypeBad, p.spanFrom(tok.Span), ast.NoPathID, elem), false
		}
		return p.tree.NewType(ast.TypeSlice, p.spanFrom(tok.Span), ast.NoPathID, elem), true

	case token.Amp:
		p.advance()
		elem, ok := p.parseType()
		kind := ast.TypeRef
		if !ok {
			kind = ast.TypeBad
		}
		return p.tree.NewType(kind, p.spanFrom(tok.Span), ast.NoPathID, elem), ok
	}

	p.err(diag.SynExpectType, "expected type, got "+describe(tok))
	return p.tree.NewType(ast.TypeBad, tok.Span, ast.NoPathID, ast.NoTypeID), false
}
