package lexer

import (
	"fmt"

	"nyanc/internal/diag"
	"nyanc/internal/token"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Token.Text — ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, _ := lx.peekRune()
	if r < utf8RuneSelf {
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		if !isIdentStartRune(r) {
			// не буква: одна руна → Invalid, лексинг продолжается
			lx.bumpRune()
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", r))
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.bumpRune()
	}
	for {
		r2, sz2 := lx.peekRune()
		if sz2 == 0 {
			break
		}
		if r2 < utf8RuneSelf {
			if !isIdentContinueByte(byte(r2)) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
