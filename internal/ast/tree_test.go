package ast

import (
	"slices"
	"testing"

	"nyanc/internal/source"
)

func TestTreeImportsAndPaths(t *testing.T) {
	strs := source.NewInterner()
	tree := NewTree(source.FileID(2), Hints{})
	mod := tree.NewModule(source.Span{File: 2, Start: 0, End: 40})

	std := strs.Intern("std")
	io := strs.Intern("io")
	p := tree.NewPath(source.Span{File: 2, Start: 7, End: 14}, []source.Symbol{std, io}, nil)
	imp := tree.Items.NewImport(source.Span{File: 2, Start: 0, End: 15}, ImportItem{Path: p})
	tree.PushItem(mod, imp)

	let := tree.Items.NewLet(source.Span{File: 2, Start: 16, End: 26}, LetDecl{
		Name:  strs.Intern("x"),
		Value: tree.Exprs.NewLiteral(source.Span{File: 2, Start: 24, End: 25}, LitInt, strs.Intern("1")),
	})
	tree.PushItem(mod, let)

	refs := tree.Imports(mod)
	if len(refs) != 1 || refs[0].Item != imp {
		t.Fatalf("imports = %+v", refs)
	}
	if got := tree.PathSegments(refs[0].Import.Path, strs); !slices.Equal(got, []string{"std", "io"}) {
		t.Fatalf("segments = %v", got)
	}
	if _, ok := tree.Items.Import(let); ok {
		t.Fatalf("let item must not read as import")
	}
	if d, ok := tree.Items.Let(let); !ok || strs.Lookup(d.Name) != "x" {
		t.Fatalf("let payload lost")
	}
	// module, 2 items, 1 expr, 1 path
	if n := tree.NodeCount(); n != 5 {
		t.Fatalf("NodeCount = %d, want 5", n)
	}
}

func TestTreeModuleLookupPanicsOnForeignID(t *testing.T) {
	tree := NewTree(source.FileID(0), Hints{})
	tree.NewModule(source.Span{})
	defer func() {
		if _, ok := recover().(*IdentityError); !ok {
			t.Fatalf("expected *IdentityError panic")
		}
	}()
	tree.Module(ModuleID(3))
}

func TestKindStrings(t *testing.T) {
	if ExprBad.String() != "Bad" || StmtWhile.String() != "While" || ItemImport.String() != "Import" {
		t.Fatalf("kind names drifted")
	}
	if OpLe.String() != "<=" || OpRef.String() != "&" {
		t.Fatalf("operator names drifted")
	}
}
