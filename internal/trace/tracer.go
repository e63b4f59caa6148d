package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives events. Implementations must be safe for concurrent use:
// the database emits from every goroutine that queries it.
type Tracer interface {
	Emit(ev *Event)
	Level() Level
	Close() error
}

// Enabled reports whether t records events of scope.
func Enabled(t Tracer, scope Scope) bool {
	return t != nil && t.Level().ShouldEmit(scope)
}

// StorageMode says where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // kept in memory, dumped on failure
	ModeBoth
)

var modeNames = map[string]StorageMode{"stream": ModeStream, "ring": ModeRing, "both": ModeBoth}

func (m StorageMode) String() string {
	for name, mode := range modeNames {
		if mode == m {
			return name
		}
	}
	return "unknown"
}

// ParseMode accepts stream, ring and both; "" means stream.
func ParseMode(s string) (StorageMode, error) {
	if s == "" {
		return ModeStream, nil
	}
	if m, ok := modeNames[strings.ToLower(s)]; ok {
		return m, nil
	}
	return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config describes the tracer of one CLI session.
type Config struct {
	Level      Level
	Mode       StorageMode // LevelError always implies ModeRing
	Format     Format
	Output     io.Writer // если nil, пишем в OutputPath
	OutputPath string    // "" или "-" означает stderr
	RingSize   int       // 4096 by default
}

// Session is the tracer built from a Config plus its ring, if any, so a
// failing command can dump what happened just before the failure.
type Session struct {
	Tracer Tracer
	Ring   *Ring
}

// Close releases the session's outputs.
func (s Session) Close() error {
	if s.Tracer == nil {
		return nil
	}
	return s.Tracer.Close()
}

// New builds the tracer described by cfg.
func New(cfg Config) (Session, error) {
	if cfg.Level == LevelOff {
		return Session{Tracer: Nop}, nil
	}
	mode := cfg.Mode
	if mode == 0 {
		mode = ModeStream
	}
	if cfg.Level == LevelError {
		mode = ModeRing
	}

	var s Session
	if mode == ModeRing || mode == ModeBoth {
		s.Ring = NewRing(cfg.RingSize, cfg.Level)
	}
	if mode == ModeRing {
		s.Tracer = s.Ring
		return s, nil
	}
	if mode != ModeStream && mode != ModeBoth {
		return Session{}, fmt.Errorf("unknown storage mode: %v", mode)
	}

	w, closer, err := openOutput(cfg)
	if err != nil {
		return Session{}, err
	}
	stream := NewStream(w, closer, cfg.Level, formatFor(cfg.Format, cfg.OutputPath))
	if s.Ring == nil {
		s.Tracer = stream
	} else {
		s.Tracer = Fanout(stream, s.Ring)
	}
	return s, nil
}

// openOutput returns the writer plus the closer the stream owns; stderr
// and caller-supplied writers are never closed.
func openOutput(cfg Config) (io.Writer, io.Closer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return os.Stderr, nil, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, f, nil
}
