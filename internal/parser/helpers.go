package parser

import (
	"fmt"

	"nyanc/internal/diag"
	"nyanc/internal/source"
	"nyanc/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.ts.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
		p.consumed++
	}
	return tok
}

// spanFrom покрывает всё от start до последнего съеденного токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	if p.lastSpan.End < start.Start {
		return start.At()
	}
	return start.Cover(p.lastSpan)
}

// diagnosticSpan — на EOF указываем сразу за последним токеном,
// иначе на сам токен.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.ts.Peek()
	if peek.Kind == token.EOF && p.consumed > 0 {
		return p.lastSpan.At()
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagnosticSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// expectSemicolon ставит диагностику сразу после предыдущего токена — туда,
// куда ';' надо вставить.
func (p *Parser) expectSemicolon(after string) bool {
	if p.at(token.Semicolon) {
		p.advance()
		return true
	}
	p.report(diag.SynExpectSemicolon, diag.SevError, p.lastSpan.At(), "expected ';' after "+after)
	return false
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.diagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.env.Reporter == nil {
		return
	}
	if sev == diag.SevError {
		p.errors++
		if p.env.MaxErrors > 0 && p.errors > p.env.MaxErrors {
			if !p.capped {
				p.capped = true
				p.env.Reporter.Report(diag.SynTooManyErrors, diag.SevInfo, sp,
					fmt.Sprintf("too many syntax errors (limit %d), further errors suppressed", p.env.MaxErrors), nil)
			}
			return
		}
	}
	p.env.Reporter.Report(code, sev, sp, msg, nil)
}

// parseIdent ожидает Ident и интернирует его.
func (p *Parser) parseIdent(code diag.Code, msg string) (source.Symbol, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.env.Strings.Intern(tok.Text), tok.Span, true
	}
	p.err(code, msg+", got "+describe(p.ts.Peek()))
	return source.NoSymbol, p.diagnosticSpan(), false
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return fmt.Sprintf("identifier %q", tok.Text)
	}
	if tok.Text != "" {
		return fmt.Sprintf("%q", tok.Text)
	}
	return tok.Kind.String()
}
