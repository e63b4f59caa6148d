package trace

import (
	"io"
	"slices"
	"sync"
)

// Ring keeps the most recent events in memory.
type Ring struct {
	mu    sync.Mutex
	buf   []Event
	total uint64 // сколько событий принято за всё время
	level Level
}

// NewRing creates a ring holding size events (4096 when size <= 0).
func NewRing(size int, level Level) *Ring {
	if size <= 0 {
		size = 4096
	}
	return &Ring{buf: make([]Event, size), level: level}
}

func (r *Ring) Emit(ev *Event) {
	if !r.level.ShouldEmit(ev.Scope) {
		return
	}
	r.mu.Lock()
	r.buf[r.total%uint64(len(r.buf))] = *ev
	r.total++
	r.mu.Unlock()
}

func (r *Ring) Level() Level { return r.level }
func (r *Ring) Close() error { return nil }

// Events returns the retained events, oldest first.
func (r *Ring) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	size := uint64(len(r.buf))
	if r.total <= size {
		return slices.Clone(r.buf[:r.total])
	}
	at := r.total % size
	return slices.Concat(r.buf[at:], r.buf[:at])
}

// Overwritten is the number of events pushed out by newer ones.
func (r *Ring) Overwritten() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total - min(r.total, uint64(len(r.buf)))
}

// Filter narrows a ring dump. The zero Filter keeps everything.
type Filter struct {
	// MaxScope drops events finer than it; 0 means no limit.
	MaxScope Scope
	// Paths keeps only events whose "path" attribute is listed. Events
	// without a path (session spans, load begins) always pass.
	Paths []string
}

// Match reports whether ev passes f.
func (f Filter) Match(ev *Event) bool {
	if f.MaxScope != 0 && ev.Scope > f.MaxScope {
		return false
	}
	if len(f.Paths) == 0 {
		return true
	}
	path, ok := ev.Attr("path")
	return !ok || slices.Contains(f.Paths, path)
}

// Dump writes the retained events that pass f and returns how many it wrote.
func (r *Ring) Dump(w io.Writer, format Format, f Filter) (int, error) {
	if format == FormatAuto {
		format = FormatText
	}
	n := 0
	for _, ev := range r.Events() {
		if !f.Match(&ev) {
			continue
		}
		if _, err := w.Write(Encode(&ev, format)); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
