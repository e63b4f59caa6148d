package trace

import "time"

// Kind различает начало, конец спана и одиночную точку.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindPoint:
		return "point"
	}
	return "unknown"
}

// Scope is the granularity of an event; coarser scopes have lower values.
type Scope uint8

const (
	// ScopeSession: one CLI command, i.e. the lifetime of a Database.
	ScopeSession Scope = iota + 1
	// ScopeFile: loading a file, lexing and parsing it on a cache miss.
	ScopeFile
	// ScopeQuery: single database queries such as cache hits and resolutions.
	ScopeQuery
)

var scopeNames = [...]string{ScopeSession: "session", ScopeFile: "file", ScopeQuery: "query"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Attr is one key/value annotation. Attrs keep insertion order.
type Attr struct {
	Key   string
	Value string
}

// Event is a single record produced by Begin, End or Point.
type Event struct {
	Seq    uint64 // порядковый номер в процессе
	Time   time.Time
	Kind   Kind
	Scope  Scope
	Span   uint64 // 0 для точек
	Parent uint64 // 0 у корневых событий
	Name   string // "ast", "load", "resolve", "nyanc parse"...
	Detail string
	Attrs  []Attr
}

// Attr returns the last value stored under key.
func (e *Event) Attr(key string) (string, bool) {
	for i := len(e.Attrs) - 1; i >= 0; i-- {
		if e.Attrs[i].Key == key {
			return e.Attrs[i].Value, true
		}
	}
	return "", false
}
