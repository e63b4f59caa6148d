package parser

import (
	"nyanc/internal/ast"
	"nyanc/internal/diag"
	"nyanc/internal/source"
	"nyanc/internal/token"
)

// parseImportItem: `import a::b::c;` или `import a::b as x;`
func (p *Parser) parseImportItem() (ast.ItemID, bool) {
	kw := p.advance() // 'import'

	if !p.at(token.Ident) {
		p.err(diag.SynExpectModuleSeg, "expected module path after 'import', got "+describe(p.ts.Peek()))
		return ast.NoItemID, false
	}
	path, ok := p.parsePath(diag.SynExpectModuleSeg)
	if !ok {
		return ast.NoItemID, false
	}

	alias := source.NoSymbol
	if p.at(token.KwAs) {
		p.advance()
		name, _, ok := p.parseIdent(diag.SynExpectIdentAfterAs, "expected identifier after 'as'")
		if !ok {
			return ast.NoItemID, false
		}
		alias = name
	}

	// путь уже известен; пропущенная ';' не мешает сохранить импорт
	p.expectSemicolon("import")
	return p.tree.Items.NewImport(p.spanFrom(kw.Span), ast.ImportItem{Path: path, Alias: alias}), true
}
