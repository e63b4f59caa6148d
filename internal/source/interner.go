package source

import (
	"fmt"
	"slices"
	"sync"

	"fortio.org/safecast"
)

// Symbol is the stable identity of an interned string.
type Symbol uint32

// NoSymbol is bound to the empty string in every Interner.
const NoSymbol Symbol = 0

// Interner maps strings to Symbols and back.
// Symbols are assigned sequentially and stay valid for the Interner's lifetime.
type Interner struct {
	mu    sync.RWMutex
	byID  []string          // индекс -> строка (byID[0] = "" для NoSymbol)
	index map[string]Symbol // строка -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]Symbol{"": NoSymbol},
	}
}

// Intern returns the symbol of s, allocating a new one on first sight.
func (i *Interner) Intern(s string) Symbol {
	i.mu.RLock()
	id, ok := i.index[s]
	i.mu.RUnlock()
	if ok {
		return id
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	// повторная проверка: между RUnlock и Lock строку мог вставить другой вызов
	if id, ok := i.index[s]; ok {
		return id
	}

	// Собственная копия, чтобы не держать чужой буфер (например, весь исходник).
	cpy := string([]byte(s))
	next, err := safecast.Conv[uint32](len(i.byID))
	if err != nil {
		panic(fmt.Errorf("interner overflow: %w", err))
	}
	id = Symbol(next)
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternBytes is Intern for byte slices; b is copied.
func (i *Interner) InternBytes(b []byte) Symbol {
	return i.Intern(string(b))
}

// Lookup returns the exact text of id.
// It panics with *IdentityError if id was not produced by this Interner.
func (i *Interner) Lookup(id Symbol) string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if int(id) >= len(i.byID) {
		panic(&IdentityError{Kind: "symbol", ID: uint64(id), Len: len(i.byID)})
	}
	return i.byID[id]
}

// Has reports whether id is valid for this Interner.
func (i *Interner) Has(id Symbol) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return int(id) < len(i.byID)
}

// Len returns the number of interned strings, NoSymbol included.
func (i *Interner) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.byID)
}

// Snapshot returns a copy of all strings indexed by symbol.
func (i *Interner) Snapshot() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.byID)
}
