package ast

import "nyanc/internal/source"

type TypeKind uint8

const (
	TypeBad   TypeKind = iota
	TypePath           // Foo, std::Bar
	TypeSlice          // [T]
	TypeRef            // &T
)

var typeKindNames = [...]string{
	TypeBad:   "Bad",
	TypePath:  "Path",
	TypeSlice: "Slice",
	TypeRef:   "Ref",
}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return "TypeKind(?)"
}

// Type — синтаксис типа. Path задан для TypePath, Elem для Slice/Ref.
type Type struct {
	Kind TypeKind
	Span source.Span
	Path PathID
	Elem TypeID
}

func (t *Tree) NewType(kind TypeKind, sp source.Span, path PathID, elem TypeID) TypeID {
	return TypeID(t.Types.Allocate(Type{Kind: kind, Span: sp, Path: path, Elem: elem}))
}

func (t *Tree) Type(id TypeID) *Type {
	return t.Types.Get(uint32(id))
}
