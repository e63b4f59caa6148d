package lexer

import (
	"nyanc/internal/diag"
	"nyanc/internal/token"
)

// Поддержка: 0, 123, 1_000, 0x..., 0b..., 0o..., 1.5, 1e-3, 2.5e+10.
// Ошибочные формы репортятся, токен всё равно завершается.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'x', 'X':
			lx.cursor.Bump()
			return lx.finishRadix(start, isHex, "hexadecimal")
		case 'b', 'B':
			lx.cursor.Bump()
			return lx.finishRadix(start, func(b byte) bool { return b == '0' || b == '1' }, "binary")
		case 'o', 'O':
			lx.cursor.Bump()
			return lx.finishRadix(start, func(b byte) bool { return b >= '0' && b <= '7' }, "octal")
		}
	}

	lx.eatDigits()

	// дробная часть только если за точкой цифра: "1.foo" — это вызов метода
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump()
		lx.eatDigits()
		kind = token.FloatLit
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			lx.cursor.Reset(mark)
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "missing exponent digits")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.eatDigits()
		kind = token.FloatLit
	}

	return lx.finishNumber(start, kind)
}

func (lx *Lexer) eatDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) finishRadix(start Mark, digit func(byte) bool, name string) token.Token {
	n := 0
	for b := lx.cursor.Peek(); digit(b) || b == '_'; b = lx.cursor.Peek() {
		if b != '_' {
			n++
		}
		lx.cursor.Bump()
	}
	if n == 0 {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "expected "+name+" digits")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	return lx.finishNumber(start, token.IntLit)
}

// finishNumber rejects identifier characters glued to a literal ("12abc").
func (lx *Lexer) finishNumber(start Mark, kind token.Kind) token.Token {
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "invalid suffix on number literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
