package ast

import "nyanc/internal/source"

type StmtKind uint8

const (
	StmtBad StmtKind = iota
	StmtBlock
	StmtLet
	StmtExpr
	StmtAssign
	StmtReturn
	StmtIf
	StmtWhile
)

var stmtKindNames = [...]string{
	StmtBad:    "Bad",
	StmtBlock:  "Block",
	StmtLet:    "Let",
	StmtExpr:   "Expr",
	StmtAssign: "Assign",
	StmtReturn: "Return",
	StmtIf:     "If",
	StmtWhile:  "While",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "StmtKind(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type BlockStmt struct {
	Stmts []StmtID
}

type ExprStmt struct {
	Expr ExprID
}

type AssignStmt struct {
	Target ExprID
	Value  ExprID
}

type ReturnStmt struct {
	Value ExprID // NoExprID для голого return
}

type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID // блок, вложенный if или NoStmtID
}

type WhileStmt struct {
	Cond ExprID
	Body StmtID
}

// Stmts manages allocation of statements.
type Stmts struct {
	Arena   *Arena[Stmt]
	Blocks  *Arena[BlockStmt]
	Lets    *Arena[LetDecl]
	Exprs   *Arena[ExprStmt]
	Assigns *Arena[AssignStmt]
	Returns *Arena[ReturnStmt]
	Ifs     *Arena[IfStmt]
	Whiles  *Arena[WhileStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Stmts{
		Arena:   NewArena[Stmt]("stmt", capHint),
		Blocks:  NewArena[BlockStmt]("block", capHint),
		Lets:    NewArena[LetDecl]("let", capHint),
		Exprs:   NewArena[ExprStmt]("expr stmt", capHint),
		Assigns: NewArena[AssignStmt]("assign", capHint),
		Returns: NewArena[ReturnStmt]("return", capHint),
		Ifs:     NewArena[IfStmt]("if", capHint),
		Whiles:  NewArena[WhileStmt]("while", capHint),
	}
}

func (s *Stmts) new(kind StmtKind, sp source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: sp, Payload: payload}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewBad(sp source.Span) StmtID {
	return s.new(StmtBad, sp, NoPayloadID)
}

func (s *Stmts) NewBlock(sp source.Span, stmts []StmtID) StmtID {
	payload := s.Blocks.Allocate(BlockStmt{Stmts: append([]StmtID(nil), stmts...)})
	return s.new(StmtBlock, sp, PayloadID(payload))
}

func (s *Stmts) NewLet(sp source.Span, let LetDecl) StmtID {
	return s.new(StmtLet, sp, PayloadID(s.Lets.Allocate(let)))
}

func (s *Stmts) NewExpr(sp source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, sp, PayloadID(s.Exprs.Allocate(ExprStmt{Expr: expr})))
}

func (s *Stmts) NewAssign(sp source.Span, target, value ExprID) StmtID {
	return s.new(StmtAssign, sp, PayloadID(s.Assigns.Allocate(AssignStmt{Target: target, Value: value})))
}

func (s *Stmts) NewReturn(sp source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, sp, PayloadID(s.Returns.Allocate(ReturnStmt{Value: value})))
}

func (s *Stmts) NewIf(sp source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, sp, PayloadID(s.Ifs.Allocate(IfStmt{Cond: cond, Then: then, Else: els})))
}

func (s *Stmts) NewWhile(sp source.Span, cond ExprID, body StmtID) StmtID {
	return s.new(StmtWhile, sp, PayloadID(s.Whiles.Allocate(WhileStmt{Cond: cond, Body: body})))
}

func (s *Stmts) Block(id StmtID) *BlockStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtBlock {
		return nil
	}
	return s.Blocks.Get(uint32(st.Payload))
}

func (s *Stmts) Let(id StmtID) *LetDecl {
	st := s.Get(id)
	if st == nil || st.Kind != StmtLet {
		return nil
	}
	return s.Lets.Get(uint32(st.Payload))
}

func (s *Stmts) Expr(id StmtID) *ExprStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr {
		return nil
	}
	return s.Exprs.Get(uint32(st.Payload))
}

func (s *Stmts) Assign(id StmtID) *AssignStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtAssign {
		return nil
	}
	return s.Assigns.Get(uint32(st.Payload))
}

func (s *Stmts) Return(id StmtID) *ReturnStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtReturn {
		return nil
	}
	return s.Returns.Get(uint32(st.Payload))
}

func (s *Stmts) If(id StmtID) *IfStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtIf {
		return nil
	}
	return s.Ifs.Get(uint32(st.Payload))
}

func (s *Stmts) While(id StmtID) *WhileStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtWhile {
		return nil
	}
	return s.Whiles.Get(uint32(st.Payload))
}
