package parser

import (
	"nyanc/internal/ast"
	"nyanc/internal/diag"
	"nyanc/internal/source"
	"nyanc/internal/token"
)

// parsePath разбирает IDENT ('::' IDENT)*. segCode — код ошибки для
// пропущенного сегмента после '::'.
func (p *Parser) parsePath(segCode diag.Code) (ast.PathID, bool) {
	first, firstSpan, ok := p.parseIdent(diag.SynExpectIdentifier, "expected identifier")
	if !ok {
		return ast.NoPathID, false
	}
	segs := []source.Symbol{first}
	spans := []source.Span{firstSpan}
	for p.at(token.ColonColon) {
		p.advance()
		seg, sp, ok := p.parseIdent(segCode, "expected identifier after '::'")
		if !ok {
			return ast.NoPathID, false
		}
		segs = append(segs, seg)
		spans = append(spans, sp)
	}
	return p.tree.NewPath(firstSpan.Cover(spans[len(spans)-1]), segs, spans), true
}
