package ast

import "nyanc/internal/source"

type ExprKind uint8

const (
	ExprBad ExprKind = iota
	ExprPath
	ExprLit
	ExprBinary
	ExprUnary
	ExprCall
	ExprMember
	ExprIndex
	ExprGroup
)

var exprKindNames = [...]string{
	ExprBad:    "Bad",
	ExprPath:   "Path",
	ExprLit:    "Lit",
	ExprBinary: "Binary",
	ExprUnary:  "Unary",
	ExprCall:   "Call",
	ExprMember: "Member",
	ExprIndex:  "Index",
	ExprGroup:  "Group",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "ExprKind(?)"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitTrue
	LitFalse
	LitNothing
)

type ExprPathData struct {
	Path PathID
}

// ExprLitData хранит исходное написание литерала (кавычки строк включены).
type ExprLitData struct {
	Kind  LitKind
	Value source.Symbol
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprMemberData struct {
	Target ExprID
	Field  source.Symbol
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

type ExprGroupData struct {
	Inner ExprID
}

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Paths    *Arena[ExprPathData]
	Literals *Arena[ExprLitData]
	Binaries *Arena[ExprBinaryData]
	Unaries  *Arena[ExprUnaryData]
	Calls    *Arena[ExprCallData]
	Members  *Arena[ExprMemberData]
	Indices  *Arena[ExprIndexData]
	Groups   *Arena[ExprGroupData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr]("expr", capHint),
		Paths:    NewArena[ExprPathData]("path expr", capHint),
		Literals: NewArena[ExprLitData]("literal", capHint),
		Binaries: NewArena[ExprBinaryData]("binary", capHint),
		Unaries:  NewArena[ExprUnaryData]("unary", capHint),
		Calls:    NewArena[ExprCallData]("call", capHint),
		Members:  NewArena[ExprMemberData]("member", capHint),
		Indices:  NewArena[ExprIndexData]("index", capHint),
		Groups:   NewArena[ExprGroupData]("group", capHint),
	}
}

func (e *Exprs) new(kind ExprKind, sp source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: sp, Payload: payload}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewBad stands in for an expression that failed to parse.
func (e *Exprs) NewBad(sp source.Span) ExprID {
	return e.new(ExprBad, sp, NoPayloadID)
}

func (e *Exprs) NewPath(sp source.Span, path PathID) ExprID {
	return e.new(ExprPath, sp, PayloadID(e.Paths.Allocate(ExprPathData{Path: path})))
}

func (e *Exprs) NewLiteral(sp source.Span, kind LitKind, value source.Symbol) ExprID {
	return e.new(ExprLit, sp, PayloadID(e.Literals.Allocate(ExprLitData{Kind: kind, Value: value})))
}

func (e *Exprs) NewBinary(sp source.Span, op BinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, sp, PayloadID(e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})))
}

func (e *Exprs) NewUnary(sp source.Span, op UnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, sp, PayloadID(e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})))
}

func (e *Exprs) NewCall(sp source.Span, callee ExprID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Callee: callee, Args: append([]ExprID(nil), args...)})
	return e.new(ExprCall, sp, PayloadID(payload))
}

func (e *Exprs) NewMember(sp source.Span, target ExprID, field source.Symbol) ExprID {
	return e.new(ExprMember, sp, PayloadID(e.Members.Allocate(ExprMemberData{Target: target, Field: field})))
}

func (e *Exprs) NewIndex(sp source.Span, target, index ExprID) ExprID {
	return e.new(ExprIndex, sp, PayloadID(e.Indices.Allocate(ExprIndexData{Target: target, Index: index})))
}

func (e *Exprs) NewGroup(sp source.Span, inner ExprID) ExprID {
	return e.new(ExprGroup, sp, PayloadID(e.Groups.Allocate(ExprGroupData{Inner: inner})))
}

func (e *Exprs) Path(id ExprID) (*ExprPathData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprPath {
		return nil, false
	}
	return e.Paths.Get(uint32(ex.Payload)), true
}

func (e *Exprs) Literal(id ExprID) (*ExprLitData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(ex.Payload)), true
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(ex.Payload)), true
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(ex.Payload)), true
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(ex.Payload)), true
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprMember {
		return nil, false
	}
	return e.Members.Get(uint32(ex.Payload)), true
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(ex.Payload)), true
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprGroup {
		return nil, false
	}
	return e.Groups.Get(uint32(ex.Payload)), true
}
