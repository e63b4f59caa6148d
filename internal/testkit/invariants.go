package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"nyanc/internal/ast"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed module:
// 1) the module span starts at 0 and ends at the end of text
// 2) every item span is non-empty, belongs to tree.File and lies inside the module span
// 3) items follow in source order without overlapping
func CheckSpanInvariants(tree *ast.Tree, root ast.ModuleID, text string) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	// Get паникует на чужих id, поэтому диапазон проверяем заранее
	if root == 0 || uint32(root) > tree.Modules.Len() {
		return fmt.Errorf("module %d not found (tree holds %d)", root, tree.Modules.Len())
	}
	mod := tree.Module(root)

	lenText, err := safecast.Conv[uint32](len(text))
	if err != nil {
		return fmt.Errorf("len text overflow: %w", err)
	}
	if mod.Span.Start != 0 || mod.Span.End != lenText {
		return fmt.Errorf("module span %v does not cover the text (len %d)", mod.Span, lenText)
	}
	if mod.Span.File != tree.File {
		return fmt.Errorf("module span points to different file id: got=%d want=%d", mod.Span.File, tree.File)
	}

	var prevEnd uint32
	for i, id := range mod.Items {
		if id == 0 || uint32(id) > tree.Items.Arena.Len() {
			return fmt.Errorf("item %d has unknown id=%d", i, id)
		}
		item := tree.Items.Get(id)
		sp := item.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty span of item %d (%s): %v", i, item.Kind, sp)
		}
		if sp.File != tree.File {
			return fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, tree.File)
		}
		if sp.Start < mod.Span.Start || sp.End > mod.Span.End {
			return fmt.Errorf("item span %v is outside module span %v", sp, mod.Span)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("item %d (%s) span %v overlaps the previous item", i, item.Kind, sp)
		}
		prevEnd = sp.End
	}
	return nil
}
