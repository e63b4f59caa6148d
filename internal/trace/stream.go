package trace

import (
	"io"
	"sync"
)

// Stream writes every accepted event straight to w.
type Stream struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	level  Level
	format Format
	err    error // первая ошибка записи, вернём из Close
}

// NewStream creates a stream tracer. closer may be nil when w is not owned.
func NewStream(w io.Writer, closer io.Closer, level Level, format Format) *Stream {
	if format == FormatAuto {
		format = FormatText
	}
	return &Stream{w: w, closer: closer, level: level, format: format}
}

func (t *Stream) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	line := Encode(ev, t.format)
	t.mu.Lock()
	defer t.mu.Unlock()
	// ошибка трассировки не должна ронять компиляцию
	if _, err := t.w.Write(line); err != nil && t.err == nil {
		t.err = err
	}
}

func (t *Stream) Level() Level { return t.level }

// Close reports the first write error and closes an owned output.
func (t *Stream) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.err
	if t.closer != nil {
		if cerr := t.closer.Close(); err == nil {
			err = cerr
		}
		t.closer = nil
	}
	return err
}
