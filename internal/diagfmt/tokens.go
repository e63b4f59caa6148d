package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"nyanc/internal/source"
	"nyanc/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, sm *source.Manager) error {
	var sb strings.Builder
	for i, tok := range tokens {
		startPos, endPos := sm.Resolve(tok.Span)

		fmt.Fprintf(&sb, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(&sb, " %q", tok.Text)
		}
		fmt.Fprintf(&sb, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		if leading := triviaKinds(tok); len(leading) > 0 {
			fmt.Fprintf(&sb, " (leading: %s)", strings.Join(leading, ", "))
		}
		sb.WriteByte('\n')

		if tok.Kind == token.EOF {
			break
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Span:    tok.Span,
			Leading: triviaKinds(tok),
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func triviaKinds(tok token.Token) []string {
	if len(tok.Leading) == 0 {
		return nil // без пустых массивов в JSON
	}
	out := make([]string, 0, len(tok.Leading))
	for _, tr := range tok.Leading {
		out = append(out, tr.Kind.String())
	}
	return out
}
