package lexer

import (
	"nyanc/internal/diag"
	"nyanc/internal/token"
)

// collectLeadingTrivia складывает в hold всё незначащее перед токеном:
// пробелы/табы/\r одним TriviaSpace, подряд идущие \n одним TriviaNewline,
// "//" до конца строки и вложенные "/* */".
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\r':
			for b2 := lx.cursor.Peek(); b2 == ' ' || b2 == '\t' || b2 == '\r'; b2 = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		case b == '/':
			if lx.scanComment() {
				continue
			}
		}
		return
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

// scanComment съедает комментарий, если он начинается в текущей позиции.
// Одиночный '/' оставляет на месте (это оператор).
func (lx *Lexer) scanComment() bool {
	start := lx.cursor.Mark()
	_, b1, ok := lx.cursor.Peek2()
	if !ok {
		return false
	}
	switch b1 {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.pushTrivia(token.TriviaLineComment, start)
		return true

	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		depth := 1
		for !lx.cursor.EOF() && depth > 0 {
			if lx.try2('/', '*') {
				depth++
				continue
			}
			if lx.try2('*', '/') {
				depth--
				continue
			}
			lx.cursor.Bump()
		}
		if depth > 0 {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		lx.pushTrivia(token.TriviaBlockComment, start)
		return true
	}
	return false
}
