package ast

import "nyanc/internal/source"

type ItemKind uint8

const (
	ItemBad ItemKind = iota
	ItemImport
	ItemFn
	ItemLet
	ItemType
)

var itemKindNames = [...]string{
	ItemBad:    "Bad",
	ItemImport: "Import",
	ItemFn:     "Fn",
	ItemLet:    "Let",
	ItemType:   "Type",
}

func (k ItemKind) String() string {
	if int(k) < len(itemKindNames) {
		return itemKindNames[k]
	}
	return "ItemKind(?)"
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// ImportItem: `import a::b as c;`. Alias is NoSymbol without `as`.
type ImportItem struct {
	Path  PathID
	Alias source.Symbol
}

type FnParam struct {
	Name source.Symbol
	Span source.Span
	Type TypeID
}

type FnItem struct {
	Name     source.Symbol
	NameSpan source.Span
	Public   bool
	Params   []FnParam
	Result   TypeID // NoTypeID без `->`
	Body     StmtID // StmtBlock
}

// LetDecl is shared by top-level and block-level `let`.
type LetDecl struct {
	Name     source.Symbol
	NameSpan source.Span
	Mut      bool
	Type     TypeID
	Value    ExprID
}

type TypeItem struct {
	Name     source.Symbol
	NameSpan source.Span
	Public   bool
	Target   TypeID
}

// Items manages allocation of top-level items.
type Items struct {
	Arena   *Arena[Item]
	Imports *Arena[ImportItem]
	Fns     *Arena[FnItem]
	Lets    *Arena[LetDecl]
	Types   *Arena[TypeItem]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 5
	}
	return &Items{
		Arena:   NewArena[Item]("item", capHint),
		Imports: NewArena[ImportItem]("import", capHint),
		Fns:     NewArena[FnItem]("fn", capHint),
		Lets:    NewArena[LetDecl]("let", capHint),
		Types:   NewArena[TypeItem]("type item", capHint),
	}
}

func (i *Items) new(kind ItemKind, sp source.Span, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{Kind: kind, Span: sp, Payload: payload}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// NewBad records a span the parser could not make sense of.
func (i *Items) NewBad(sp source.Span) ItemID {
	return i.new(ItemBad, sp, NoPayloadID)
}

func (i *Items) NewImport(sp source.Span, imp ImportItem) ItemID {
	return i.new(ItemImport, sp, PayloadID(i.Imports.Allocate(imp)))
}

func (i *Items) NewFn(sp source.Span, fn FnItem) ItemID {
	fn.Params = append([]FnParam(nil), fn.Params...)
	return i.new(ItemFn, sp, PayloadID(i.Fns.Allocate(fn)))
}

func (i *Items) NewLet(sp source.Span, let LetDecl) ItemID {
	return i.new(ItemLet, sp, PayloadID(i.Lets.Allocate(let)))
}

func (i *Items) NewType(sp source.Span, ty TypeItem) ItemID {
	return i.new(ItemType, sp, PayloadID(i.Types.Allocate(ty)))
}

// Import returns the ImportItem for the given ItemID, or nil/false if it is
// not an import.
func (i *Items) Import(id ItemID) (*ImportItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemImport {
		return nil, false
	}
	return i.Imports.Get(uint32(item.Payload)), true
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

func (i *Items) Let(id ItemID) (*LetDecl, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemLet {
		return nil, false
	}
	return i.Lets.Get(uint32(item.Payload)), true
}

func (i *Items) TypeDecl(id ItemID) (*TypeItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemType {
		return nil, false
	}
	return i.Types.Get(uint32(item.Payload)), true
}
