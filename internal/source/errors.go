package source

import (
	"errors"
	"fmt"
)

// ErrInvalidUTF8 is returned by Load when file content is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("source is not valid UTF-8")

// LoadError describes a failed Load. The cause is reachable through errors.Is/As,
// so callers can test for fs.ErrNotExist, fs.ErrPermission or ErrInvalidUTF8.
type LoadError struct {
	Op   string // "canonicalize", "read" или "decode"
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IdentityError is the panic value raised when an identity (Symbol or FileID)
// is used against a table that did not produce it.
// This is a programming error in the caller, never a data condition.
type IdentityError struct {
	Kind string // "symbol" или "file"
	ID   uint64
	Len  int
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("invalid %s id %d (table holds %d entries)", e.Kind, e.ID, e.Len)
}
