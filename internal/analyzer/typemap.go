package analyzer

import (
	"sync"

	"nyanc/internal/ast"
	"nyanc/internal/source"
)

// TypeRef — непрозрачный дескриптор типа; 0 значит "не выведен".
type TypeRef uint32

const NoTypeRef TypeRef = 0

// NodeKey identifies an expression across the session: expression ids are
// only unique inside one file's Tree.
type NodeKey struct {
	File source.FileID
	Expr ast.ExprID
}

// TypeMap is a side table from expression nodes to their types. It relies
// on AST returning the same Tree for a file, so keys stay meaningful.
type TypeMap struct {
	mu    sync.RWMutex
	types map[NodeKey]TypeRef
}

func NewTypeMap() *TypeMap {
	return &TypeMap{types: make(map[NodeKey]TypeRef)}
}

func (m *TypeMap) Set(file source.FileID, expr ast.ExprID, ty TypeRef) {
	m.mu.Lock()
	m.types[NodeKey{File: file, Expr: expr}] = ty
	m.mu.Unlock()
}

func (m *TypeMap) Get(file source.FileID, expr ast.ExprID) (TypeRef, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ty, ok := m.types[NodeKey{File: file, Expr: expr}]
	return ty, ok
}

func (m *TypeMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.types)
}
