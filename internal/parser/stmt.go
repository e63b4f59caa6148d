package parser

import (
	"nyanc/internal/ast"
	"nyanc/internal/diag"
	"nyanc/internal/token"
)

// parseBlock: '{' stmt* '}'. Вызывающий гарантирует, что текущий токен '{'.
// Незакрытый блок обрывается на EOF или на стартере следующего item.
func (p *Parser) parseBlock() ast.StmtID {
	open := p.advance() // '{'
	var stmts []ast.StmtID
	for !p.at(token.RBrace) {
		if p.at(token.EOF) || (p.atOr(token.KwFn, token.KwImport, token.KwType, token.KwPub)) {
			p.report(diag.SynUnclosedBrace, diag.SevError, open.Span,
				"unclosed '{', got "+describe(p.ts.Peek()))
			return p.tree.Stmts.NewBlock(p.spanFrom(open.Span), stmts)
		}
		before := p.consumed
		start := p.ts.Peek().Span
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncStmt(before)
			stmt = p.tree.Stmts.NewBad(p.spanFrom(start))
		}
		stmts = append(stmts, stmt)
	}
	p.advance() // '}'
	return p.tree.Stmts.NewBlock(p.spanFrom(open.Span), stmts)
}

// resyncStmt прокручивает до ';' (съедает) или '}' (оставляет блоку).
func (p *Parser) resyncStmt(before int) {
	if p.consumed == before && !p.atOr(token.EOF, token.RBrace) {
		p.advance()
	}
	for !p.atOr(token.EOF, token.RBrace) {
		if isTopLevelStarter(p.ts.Peek().Kind) && p.ts.Peek().Kind != token.KwLet {
			return
		}
		if p.advance().Kind == token.Semicolon {
			return
		}
	}
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	tok := p.ts.Peek()
	switch tok.Kind {
	case token.KwLet:
		decl, sp, ok := p.parseLetDecl()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.tree.Stmts.NewLet(sp, decl), true

	case token.KwReturn:
		p.advance()
		value := ast.NoExprID
		if !p.atOr(token.Semicolon, token.RBrace) {
			value = p.parseExpr()
		}
		p.expectSemicolon("return")
		return p.tree.Stmts.NewReturn(p.spanFrom(tok.Span), value), true

	case token.KwIf:
		return p.parseIf()

	case token.KwWhile:
		p.advance()
		cond := p.parseExpr()
		if !p.at(token.LBrace) {
			p.err(diag.SynExpectBlock, "expected '{' after while condition, got "+describe(p.ts.Peek()))
			return ast.NoStmtID, false
		}
		body := p.parseBlock()
		return p.tree.Stmts.NewWhile(p.spanFrom(tok.Span), cond, body), true

	case token.LBrace:
		return p.parseBlock(), true

	case token.Semicolon:
		// пустой оператор
		p.advance()
		return p.tree.Stmts.NewBlock(tok.Span, nil), true
	}

	target := p.parseExpr()
	if p.tree.Exprs.Get(target).Kind == ast.ExprBad && !p.at(token.Semicolon) {
		return ast.NoStmtID, false
	}
	if p.at(token.Assign) {
		p.advance()
		value := p.parseExpr()
		p.expectSemicolon("assignment")
		return p.tree.Stmts.NewAssign(p.spanFrom(tok.Span), target, value), true
	}
	p.expectSemicolon("expression")
	return p.tree.Stmts.NewExpr(p.spanFrom(tok.Span), target), true
}

// parseIf: 'if' expr block ('else' (block | if))?
func (p *Parser) parseIf() (ast.StmtID, bool) {
	kw := p.advance() // 'if'
	cond := p.parseExpr()
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectBlock, "expected '{' after if condition, got "+describe(p.ts.Peek()))
		return ast.NoStmtID, false
	}
	then := p.parseBlock()

	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		switch {
		case p.at(token.KwIf):
			nested, ok := p.parseIf()
			if !ok {
				return ast.NoStmtID, false
			}
			els = nested
		case p.at(token.LBrace):
			els = p.parseBlock()
		default:
			p.err(diag.SynExpectBlock, "expected '{' or 'if' after 'else', got "+describe(p.ts.Peek()))
			return ast.NoStmtID, false
		}
	}
	return p.tree.Stmts.NewIf(p.spanFrom(kw.Span), cond, then, els), true
}
