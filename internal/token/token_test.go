package token_test

import (
	"testing"

	"nyanc/internal/source"
	"nyanc/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestClassification(t *testing.T) {
	lits := []token.Kind{token.NothingLit, token.IntLit, token.FloatLit, token.StringLit, token.KwTrue}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.KwFn, token.KwImport, token.KwFalse} {
		if !tok(k).IsKeyword() {
			t.Fatalf("%v should be keyword", k)
		}
	}
	for _, k := range []token.Kind{token.Plus, token.ColonColon, token.RBracket} {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	if tok(token.Ident).IsKeyword() || tok(token.IntLit).IsPunctOrOp() {
		t.Fatal("misclassified token")
	}
}

func TestLookupKeyword(t *testing.T) {
	if k, ok := token.LookupKeyword("import"); !ok || k != token.KwImport {
		t.Fatalf("import: got %v,%v", k, ok)
	}
	if _, ok := token.LookupKeyword("Import"); ok {
		t.Fatal("keywords are case-sensitive")
	}
	if k, ok := token.LookupKeyword("nothing"); !ok || k != token.NothingLit {
		t.Fatalf("nothing: got %v,%v", k, ok)
	}
}

func TestKindString(t *testing.T) {
	if token.ColonColon.String() != "::" || token.KwFn.String() != "fn" {
		t.Fatal("unexpected kind names")
	}
}

func TestSliceStream(t *testing.T) {
	s := token.NewSliceStream([]token.Token{
		{Kind: token.Ident, Text: "a", Span: source.Span{Start: 0, End: 1}},
		{Kind: token.Semicolon, Text: ";", Span: source.Span{Start: 1, End: 2}},
	})
	if s.Peek().Kind != token.Ident {
		t.Fatal("peek must not consume")
	}
	toks := token.Collect(s)
	if len(toks) != 3 || toks[2].Kind != token.EOF {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
	if toks[2].Span.Start != 2 {
		t.Fatalf("implicit EOF must sit at end of last token, got %v", toks[2].Span)
	}
	if s.Next().Kind != token.EOF {
		t.Fatal("stream must stay at EOF")
	}
}
