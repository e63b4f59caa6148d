package lexer

import (
	"nyanc/internal/diag"
	"nyanc/internal/source"
	"nyanc/internal/token"
)

// Lexer turns one file's text into tokens. It never stops on bad input:
// problems are reported and lexing resumes with the next byte.
type Lexer struct {
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

func New(file source.FileID, text string, opts Options) *Lexer {
	return &Lexer{
		cursor: NewCursor(file, text),
		opts:   opts,
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	// Leading из hold к EOF не приклеиваем
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan is a zero-width span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.cursor.File, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return lx.cursor.Text[sp.Start:sp.End]
}

// Frontend adapts the lexer to the compilation database.
type Frontend struct{}

// Lex returns a lazy token stream over text.
func (Frontend) Lex(file source.FileID, text string, r diag.Reporter) token.Stream {
	return New(file, text, Options{Reporter: r})
}
