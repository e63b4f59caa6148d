package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena хранит узлы одного вида; индексы 1-based, 0 означает "нет узла".
type Arena[T any] struct {
	kind string
	data []T
}

// NewArena creates an arena with capacity capHint; kind names the node
// family in identity errors.
func NewArena[T any](kind string, capHint uint) *Arena[T] {
	return &Arena[T]{
		kind: kind,
		data: make([]T, 0, capHint),
	}
}

// Возвращает индекс нового элемента (1-based).
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	idx, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("ast: %s arena overflow: %w", a.kind, err))
	}
	return idx
}

// Get returns a pointer into the arena. Index 0 yields nil; an index the
// arena never handed out panics with *IdentityError.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 {
		return nil
	}
	if int(index) > len(a.data) {
		panic(&IdentityError{Kind: a.kind, Index: index, Len: a.Len()})
	}
	return &a.data[index-1]
}

// READONLY
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("ast: %s arena overflow: %w", a.kind, err))
	}
	return n
}
