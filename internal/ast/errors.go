package ast

import "fmt"

// IdentityError is the panic value for a node id that does not belong to
// the arena it was looked up in.
type IdentityError struct {
	Kind  string
	Index uint32
	Len   uint32
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("ast: %s id %d out of range (arena holds %d)", e.Kind, e.Index, e.Len)
}
