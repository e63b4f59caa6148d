package testkit

import (
	"strings"
	"testing"

	"nyanc/internal/ast"
	"nyanc/internal/source"
)

func TestCheckSpanInvariants(t *testing.T) {
	const text = "let a = 1;\nlet b = 2;\n"
	build := func(spans ...source.Span) (*ast.Tree, ast.ModuleID) {
		tree := ast.NewTree(3, ast.Hints{})
		root := tree.NewModule(source.Span{File: 3, Start: 0, End: uint32(len(text))})
		for _, sp := range spans {
			tree.PushItem(root, tree.Items.NewBad(sp))
		}
		return tree, root
	}

	tests := []struct {
		name  string
		spans []source.Span
		want  string
	}{
		{"ok", []source.Span{{File: 3, Start: 0, End: 10}, {File: 3, Start: 11, End: 21}}, ""},
		{"empty item", []source.Span{{File: 3, Start: 4, End: 4}}, "empty span"},
		{"foreign file", []source.Span{{File: 9, Start: 0, End: 3}}, "file mismatch"},
		{"outside", []source.Span{{File: 3, Start: 20, End: 40}}, "outside module span"},
		{"overlap", []source.Span{{File: 3, Start: 0, End: 10}, {File: 3, Start: 5, End: 12}}, "overlaps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, root := build(tt.spans...)
			err := CheckSpanInvariants(tree, root, text)
			switch {
			case tt.want == "" && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case tt.want != "" && (err == nil || !strings.Contains(err.Error(), tt.want)):
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}

	for _, root := range []ast.ModuleID{0, 1, 7} {
		err := CheckSpanInvariants(ast.NewTree(3, ast.Hints{}), root, text)
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("root %d: err = %v, want module not found", root, err)
		}
	}
	if err := CheckSpanInvariants(nil, 1, text); err == nil {
		t.Error("nil tree must fail")
	}
}
