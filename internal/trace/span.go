package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// emit stamps the sequence number and hands ev to t.
func emit(t Tracer, ev *Event) {
	ev.Seq = seqCounter.Add(1)
	ev.Time = time.Now()
	t.Emit(ev)
}

// Span is an open begin/end pair. A span from a disabled tracer is inert:
// every method is a no-op and ID is 0.
type Span struct {
	t      Tracer
	id     uint64
	parent uint64
	scope  Scope
	name   string
	start  time.Time
	attrs  []Attr
}

// Begin opens a span under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !Enabled(t, scope) {
		return &Span{}
	}
	sp := &Span{t: t, id: spanCounter.Add(1), parent: parent, scope: scope, name: name, start: time.Now()}
	emit(t, &Event{Kind: KindBegin, Scope: scope, Span: sp.id, Parent: parent, Name: name})
	return sp
}

// With attaches key=value. Attributes set before End appear on the end
// event; "path" is also what ring dumps filter on.
func (s *Span) With(key, value string) *Span {
	if s == nil || s.t == nil {
		return s
	}
	s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	return s
}

// End closes the span and returns its duration. Calling End twice emits
// nothing the second time.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.t == nil {
		return 0
	}
	dur := time.Since(s.start)
	attrs := append(s.attrs, Attr{Key: "dur", Value: dur.Round(time.Microsecond).String()})
	emit(s.t, &Event{Kind: KindEnd, Scope: s.scope, Span: s.id, Parent: s.parent, Name: s.name, Detail: detail, Attrs: attrs})
	s.t = nil
	return dur
}

// ID is 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under parent. kv alternates keys and
// values; a dangling key is ignored.
func Point(t Tracer, scope Scope, name string, parent uint64, detail string, kv ...string) {
	if !Enabled(t, scope) {
		return
	}
	var attrs []Attr
	for i := 0; i+1 < len(kv); i += 2 {
		attrs = append(attrs, Attr{Key: kv[i], Value: kv[i+1]})
	}
	emit(t, &Event{Kind: KindPoint, Scope: scope, Parent: parent, Name: name, Detail: detail, Attrs: attrs})
}
