package ast

import "nyanc/internal/source"

// Hints задают начальные ёмкости арен; нули заменяются дефолтами.
type Hints struct{ Items, Stmts, Exprs uint }

// Tree is the syntax arena of one module. Node ids are plain indices into
// its arenas and are only meaningful together with the Tree that made them.
type Tree struct {
	File    source.FileID
	Strings *source.Interner // откуда пришли Symbol в узлах; задаёт владелец дерева
	Modules *Arena[Module]
	Items   *Items
	Stmts   *Stmts
	Exprs   *Exprs
	Types   *Arena[Type]
	Paths   *Arena[Path]
}

func NewTree(file source.FileID, hints Hints) *Tree {
	if hints.Items == 0 {
		hints.Items = 1 << 5
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Tree{
		File:    file,
		Modules: NewArena[Module]("module", 1),
		Items:   NewItems(hints.Items),
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Types:   NewArena[Type]("type", hints.Items),
		Paths:   NewArena[Path]("path", hints.Exprs),
	}
}

// NodeCount is the number of nodes of every kind allocated so far.
func (t *Tree) NodeCount() int {
	return int(t.Modules.Len()) +
		int(t.Items.Arena.Len()) +
		int(t.Stmts.Arena.Len()) +
		int(t.Exprs.Arena.Len()) +
		int(t.Types.Len()) +
		int(t.Paths.Len())
}
