package ast

import "nyanc/internal/source"

// Module — корневой узел файла: список top-level items в порядке исходника.
type Module struct {
	Span  source.Span
	Items []ItemID
}

func (t *Tree) NewModule(sp source.Span) ModuleID {
	return ModuleID(t.Modules.Allocate(Module{Span: sp}))
}

func (t *Tree) Module(id ModuleID) *Module {
	return t.Modules.Get(uint32(id))
}

func (t *Tree) PushItem(mod ModuleID, item ItemID) {
	m := t.Module(mod)
	m.Items = append(m.Items, item)
}

// ImportRef pairs an import item with its id.
type ImportRef struct {
	Item   ItemID
	Span   source.Span
	Import *ImportItem
}

// Imports lists the import items of mod in source order.
func (t *Tree) Imports(mod ModuleID) []ImportRef {
	m := t.Module(mod)
	if m == nil {
		return nil
	}
	var out []ImportRef
	for _, id := range m.Items {
		if imp, ok := t.Items.Import(id); ok {
			out = append(out, ImportRef{Item: id, Span: t.Items.Get(id).Span, Import: imp})
		}
	}
	return out
}
