package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"nyanc/internal/diag"
	"nyanc/internal/lexer"
	"nyanc/internal/source"
	"nyanc/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func (r *testReporter) messages() []string {
	out := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return out
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	rep := &testReporter{}
	return lexer.New(source.FileID(0), input, lexer.Options{Reporter: rep}), rep
}

// collectKinds возвращает виды токенов без завершающего EOF
func collectKinds(t *testing.T, input string) ([]token.Token, *testReporter) {
	t.Helper()
	lx, rep := makeTestLexer(input)
	toks := token.Collect(lx)
	if last := toks[len(toks)-1]; last.Kind != token.EOF {
		t.Fatalf("stream does not end with EOF: %v", last.Kind)
	}
	return toks[:len(toks)-1], rep
}

func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	toks, rep := collectKinds(t, input)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s\nerrors: %v",
			len(expected), len(toks), input, tokensToString(toks), rep.messages())
	}
	for i, tok := range toks {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
}

func expectSingleToken(t *testing.T, input string, kind token.Kind, text string) {
	t.Helper()
	lx, rep := makeTestLexer(input)
	tok := lx.Next()
	if tok.Kind != kind {
		t.Errorf("expected kind %v, got %v (errors: %v)", kind, tok.Kind, rep.messages())
	}
	if tok.Text != text {
		t.Errorf("expected text %q, got %q", text, tok.Text)
	}
	if next := lx.Next(); next.Kind != token.EOF {
		t.Errorf("expected EOF after %q, got %v(%q)", input, next.Kind, next.Text)
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func TestIdentifiersAndKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"foo", token.Ident},
		{"_bar", token.Ident},
		{"x123", token.Ident},
		{"Fn", token.Ident},
		{"идентификатор", token.Ident},
		{"λx", token.Ident},
		{"fn", token.KwFn},
		{"let", token.KwLet},
		{"mut", token.KwMut},
		{"if", token.KwIf},
		{"else", token.KwElse},
		{"while", token.KwWhile},
		{"return", token.KwReturn},
		{"import", token.KwImport},
		{"as", token.KwAs},
		{"type", token.KwType},
		{"pub", token.KwPub},
		{"true", token.KwTrue},
		{"false", token.KwFalse},
		{"nothing", token.NothingLit},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"0", token.IntLit},
		{"123", token.IntLit},
		{"1_000", token.IntLit},
		{"0xDEAD_beef", token.IntLit},
		{"0b1010", token.IntLit},
		{"0o777", token.IntLit},
		{"3.14", token.FloatLit},
		{"1e10", token.FloatLit},
		{"2.5e-3", token.FloatLit},
		{"7E+2", token.FloatLit},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestNumberFollowedByMember(t *testing.T) {
	expectTokens(t, "1.foo", []token.Kind{token.IntLit, token.Dot, token.Ident})
}

func TestBadNumbers(t *testing.T) {
	for _, input := range []string{"0x", "0b2", "12abc", "1e"} {
		t.Run(input, func(t *testing.T) {
			lx, rep := makeTestLexer(input)
			tok := lx.Next()
			if tok.Kind != token.Invalid {
				t.Fatalf("expected Invalid, got %v(%q)", tok.Kind, tok.Text)
			}
			if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexBadNumber {
				t.Fatalf("expected one LexBadNumber, got %v", rep.messages())
			}
		})
	}
}

func TestStrings(t *testing.T) {
	expectSingleToken(t, `"hello"`, token.StringLit, `"hello"`)
	expectSingleToken(t, `"a\"b"`, token.StringLit, `"a\"b"`)
	expectSingleToken(t, `""`, token.StringLit, `""`)
}

func TestUnterminatedString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		rest  []token.Kind
	}{
		{"eof", `"abc`, nil},
		{"newline", "\"abc\nx", []token.Kind{token.Ident}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, rep := collectKinds(t, tt.input)
			if toks[0].Kind != token.Invalid {
				t.Fatalf("expected Invalid first, got %s", tokensToString(toks))
			}
			if len(toks)-1 != len(tt.rest) {
				t.Fatalf("unexpected tail: %s", tokensToString(toks))
			}
			codes := rep.codes()
			if len(codes) != 1 || codes[0] != diag.LexUnterminatedString {
				t.Fatalf("expected LexUnterminatedString, got %v", rep.messages())
			}
		})
	}
}

func TestOperators(t *testing.T) {
	expectTokens(t, ":: -> && || == != <= >= + - * / % = ! < > & : ; , . ( ) { } [ ]", []token.Kind{
		token.ColonColon, token.Arrow, token.AndAnd, token.OrOr,
		token.EqEq, token.BangEq, token.LtEq, token.GtEq,
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Assign, token.Bang, token.Lt, token.Gt, token.Amp,
		token.Colon, token.Semicolon, token.Comma, token.Dot,
		token.LParen, token.RParen, token.LBrace, token.RBrace, token.LBracket, token.RBracket,
	})
}

func TestUnknownCharacters(t *testing.T) {
	toks, rep := collectKinds(t, "a | b @ ☃ c")
	want := []token.Kind{token.Ident, token.Invalid, token.Ident, token.Invalid, token.Invalid, token.Ident}
	if len(toks) != len(want) {
		t.Fatalf("got %s", tokensToString(toks))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: expected %v, got %v", i, k, toks[i].Kind)
		}
	}
	if toks[4].Text != "☃" {
		t.Errorf("multibyte invalid token text = %q", toks[4].Text)
	}
	if n := len(rep.diagnostics); n != 3 {
		t.Errorf("expected 3 diagnostics, got %v", rep.messages())
	}
	for _, c := range rep.codes() {
		if c != diag.LexUnknownChar {
			t.Errorf("unexpected code %s", c.ID())
		}
	}
}

func TestTriviaAttachedAsLeading(t *testing.T) {
	lx, rep := makeTestLexer("// head\n  /* a /* nested */ b */ x")
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Text != "x" {
		t.Fatalf("expected Ident x, got %v(%q)", tok.Kind, tok.Text)
	}
	kinds := make([]token.TriviaKind, 0, len(tok.Leading))
	for _, tr := range tok.Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []token.TriviaKind{
		token.TriviaLineComment, token.TriviaNewline, token.TriviaSpace,
		token.TriviaBlockComment, token.TriviaSpace,
	}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Fatalf("leading trivia = %v, want %v", kinds, want)
	}
	if got := tok.Leading[3].Text; got != "/* a /* nested */ b */" {
		t.Errorf("block comment text = %q", got)
	}
	if len(rep.diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", rep.messages())
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	toks, rep := collectKinds(t, "x /* /* */")
	if len(toks) != 1 {
		t.Fatalf("got %s", tokensToString(toks))
	}
	codes := rep.codes()
	if len(codes) != 1 || codes[0] != diag.LexUnterminatedBlockComment {
		t.Fatalf("expected LexUnterminatedBlockComment, got %v", rep.messages())
	}
}

func TestSpans(t *testing.T) {
	toks, _ := collectKinds(t, "let  xy = 42;")
	want := []struct{ start, end uint32 }{{0, 3}, {5, 7}, {8, 9}, {10, 12}, {12, 13}}
	if len(toks) != len(want) {
		t.Fatalf("got %s", tokensToString(toks))
	}
	for i, w := range want {
		if toks[i].Span.Start != w.start || toks[i].Span.End != w.end {
			t.Errorf("token %d span = %d..%d, want %d..%d", i, toks[i].Span.Start, toks[i].Span.End, w.start, w.end)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next after peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second = %q", n.Text)
	}
	for range 3 {
		if n := lx.Next(); n.Kind != token.EOF {
			t.Fatalf("expected sticky EOF, got %v", n.Kind)
		}
	}
}

func TestFrontendNilReporter(t *testing.T) {
	ts := lexer.Frontend{}.Lex(source.FileID(3), "@", nil)
	tok := ts.Next()
	if tok.Kind != token.Invalid || tok.Span.File != 3 {
		t.Fatalf("unexpected token %v span %v", tok.Kind, tok.Span)
	}
}
