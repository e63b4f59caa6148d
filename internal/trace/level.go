package trace

import (
	"fmt"
	"strings"
)

// Level controls how much of a session is traced.
type Level uint8

const (
	LevelOff    Level = iota // ничего
	LevelError               // file events, kept in the ring and dumped on failure
	LevelPhase               // session boundaries only
	LevelDetail              // + loads and parse misses
	LevelDebug               // + every query, cache hits included
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// widest scope each level lets through
var levelScope = [...]Scope{LevelError: ScopeFile, LevelPhase: ScopeSession, LevelDetail: ScopeFile, LevelDebug: ScopeQuery}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names printed by Level.String; "" means off.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return LevelOff, nil
	}
	for l, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass at level l.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelScope) {
		return false
	}
	return scope != 0 && scope <= levelScope[l]
}
