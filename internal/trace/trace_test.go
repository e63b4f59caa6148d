package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeSession, false},
		{LevelError, ScopeFile, true},
		{LevelError, ScopeQuery, false},
		{LevelPhase, ScopeSession, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeQuery, false},
		{LevelDebug, ScopeQuery, true},
		{LevelDebug, 0, false},
		{Level(42), ScopeSession, false},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseHelpers(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel = %v, %v", l, err)
	}
	if l, err := ParseLevel(""); err != nil || l != LevelOff {
		t.Fatalf("ParseLevel(\"\") = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil || !strings.Contains(err.Error(), "off|error|phase|detail|debug") {
		t.Fatalf("expected error listing the levels, got %v", err)
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat = %v, %v", f, err)
	}
	if m, err := ParseMode("Both"); err != nil || m != ModeBoth || m.String() != "both" {
		t.Fatalf("ParseMode = %v, %v", m, err)
	}
	if ScopeQuery.String() != "query" || Scope(0).String() != "unknown" {
		t.Fatalf("scope names: %s %s", ScopeQuery, Scope(0))
	}
	if formatFor(FormatAuto, "out.jsonl") != FormatNDJSON || formatFor(FormatAuto, "out.log") != FormatText {
		t.Fatalf("auto format must follow the extension")
	}
}

func TestStreamText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStream(&buf, nil, LevelDetail, FormatText)

	sp := Begin(tr, ScopeFile, "ast", 0)
	sp.With("path", "/p/a.ny").With("nodes", "12")
	sp.End("parsed")
	sp.End("again") // повторный End молчит
	Point(tr, ScopeQuery, "ast.hit", sp.ID(), "") // отфильтруется на detail

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "[file] → ast") {
		t.Errorf("begin line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "← ast (parsed) {path=/p/a.ny, nodes=12, dur=") {
		t.Errorf("end line = %q, attributes must keep insertion order", lines[1])
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestStreamReportsWriteErrorOnClose(t *testing.T) {
	tr := NewStream(failWriter{}, nil, LevelDebug, FormatText)
	Point(tr, ScopeQuery, "resolve", 0, "miss")
	Point(tr, ScopeQuery, "resolve", 0, "miss")
	if err := tr.Close(); err == nil || err.Error() != "disk full" {
		t.Fatalf("Close = %v, want the first write error", err)
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStream(&buf, nil, LevelDebug, FormatNDJSON)
	Point(tr, ScopeQuery, "resolve", 7, "miss", "module", "a::b", "dangling")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["kind"] != "point" || got["scope"] != "query" || got["name"] != "resolve" || got["detail"] != "miss" {
		t.Fatalf("unexpected event: %v", got)
	}
	if got["parent"] != float64(7) {
		t.Fatalf("parent = %v", got["parent"])
	}
	attrs, ok := got["attrs"].(map[string]any)
	if !ok || attrs["module"] != "a::b" || len(attrs) != 1 {
		t.Fatalf("attrs = %v", got["attrs"])
	}
}

func TestSeqIsMonotonic(t *testing.T) {
	ring := NewRing(8, LevelDebug)
	for range 4 {
		Point(ring, ScopeQuery, "p", 0, "")
	}
	events := ring.Events()
	for i := 1; i < len(events); i++ {
		if events[i].Seq <= events[i-1].Seq {
			t.Fatalf("seq not increasing: %d then %d", events[i-1].Seq, events[i].Seq)
		}
	}
}

func TestRingWraps(t *testing.T) {
	ring := NewRing(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeQuery, name, 0, "")
	}
	events := ring.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if names := events[0].Name + events[1].Name + events[2].Name; names != "cde" {
		t.Fatalf("ring order = %q, want cde", names)
	}
	if n := ring.Overwritten(); n != 2 {
		t.Fatalf("Overwritten = %d, want 2", n)
	}

	var buf bytes.Buffer
	n, err := ring.Dump(&buf, FormatText, Filter{})
	if err != nil || n != 3 || strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump = %d %q %v", n, buf.String(), err)
	}
}

func TestRingDumpFilter(t *testing.T) {
	ring := NewRing(32, LevelDebug)
	session := Begin(ring, ScopeSession, "nyanc parse", 0)
	Begin(ring, ScopeFile, "ast", session.ID()).With("path", "/p/ok.ny").End("")
	Begin(ring, ScopeFile, "ast", session.ID()).With("path", "/p/bad.ny").End("")
	Point(ring, ScopeQuery, "ast.hit", session.ID(), "", "path", "/p/bad.ny")
	session.End("failed")

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{}, []string{"→nyanc parse", "→ast", "←ast:/p/ok.ny", "→ast", "←ast:/p/bad.ny", "•ast.hit:/p/bad.ny", "←nyanc parse"}},
		{"file scope", Filter{MaxScope: ScopeFile}, []string{"→nyanc parse", "→ast", "←ast:/p/ok.ny", "→ast", "←ast:/p/bad.ny", "←nyanc parse"}},
		{"failing file", Filter{MaxScope: ScopeFile, Paths: []string{"/p/bad.ny"}}, []string{"→nyanc parse", "→ast", "→ast", "←ast:/p/bad.ny", "←nyanc parse"}},
	}
	marks := map[Kind]string{KindBegin: "→", KindEnd: "←", KindPoint: "•"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, ev := range ring.Events() {
				if !tt.filter.Match(&ev) {
					continue
				}
				s := marks[ev.Kind] + ev.Name
				if p, ok := ev.Attr("path"); ok {
					s += ":" + p
				}
				got = append(got, s)
			}
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Fatalf("got  %v\nwant %v", got, tt.want)
			}
		})
	}
}

func TestNewSessions(t *testing.T) {
	s, err := New(Config{Level: LevelOff})
	if err != nil || Enabled(s.Tracer, ScopeSession) || s.Ring != nil {
		t.Fatalf("off level must give Nop, got %+v, %v", s, err)
	}

	s, err = New(Config{Level: LevelError, Mode: ModeStream})
	if err != nil || s.Ring == nil || s.Tracer != Tracer(s.Ring) {
		t.Fatalf("error level must force the ring, got %+v, %v", s, err)
	}

	var buf bytes.Buffer
	s, err = New(Config{Level: LevelDetail, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(s.Tracer, ScopeFile, "load", 0).End("")
	if len(s.Ring.Events()) != 2 || strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("both mode must feed stream and ring: ring=%d out=%q", len(s.Ring.Events()), buf.String())
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestStartNestsSpans(t *testing.T) {
	ring := NewRing(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	ctx, outer := Start(ctx, ScopeSession, "session")
	if ParentID(ctx) != outer.ID() {
		t.Fatalf("ParentID = %d, want %d", ParentID(ctx), outer.ID())
	}
	_, inner := Start(ctx, ScopeFile, "ast")
	inner.End("")
	outer.End("")

	events := ring.Events()
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[1].Name != "ast" || events[1].Parent != outer.ID() {
		t.Fatalf("inner span parent = %d, want %d", events[1].Parent, outer.ID())
	}
	if FromContext(context.Background()) != Nop || ParentID(context.Background()) != 0 {
		t.Fatalf("empty context must yield Nop and no parent")
	}
}

func TestInertSpan(t *testing.T) {
	sp := Begin(Nop, ScopeSession, "x", 0)
	if sp.ID() != 0 || sp.With("k", "v").End("") != 0 {
		t.Fatalf("span of a disabled tracer must be inert")
	}
	_, sp = Start(context.Background(), ScopeSession, "x")
	if sp.ID() != 0 {
		t.Fatalf("Start without a tracer must be inert")
	}
}
