package trace

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Format selects how events are rendered.
type Format uint8

const (
	FormatAuto   Format = iota // by output file extension
	FormatText                 // one line per event for humans
	FormatNDJSON               // one JSON object per line
)

// ParseFormat accepts auto, text, ndjson and json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// formatFor resolves FormatAuto: .ndjson and .jsonl files get NDJSON.
func formatFor(f Format, path string) Format {
	if f != FormatAuto {
		return f
	}
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".jsonl") {
		return FormatNDJSON
	}
	return FormatText
}

// Encode renders ev as one line, newline included.
func Encode(ev *Event, f Format) []byte {
	if f == FormatNDJSON {
		return encodeJSON(ev)
	}
	return encodeText(ev)
}

type jsonEvent struct {
	Seq    uint64            `json:"seq"`
	Time   string            `json:"time"`
	Kind   string            `json:"kind"`
	Scope  string            `json:"scope"`
	Span   uint64            `json:"span,omitempty"`
	Parent uint64            `json:"parent,omitempty"`
	Name   string            `json:"name"`
	Detail string            `json:"detail,omitempty"`
	Attrs  map[string]string `json:"attrs,omitempty"`
}

func encodeJSON(ev *Event) []byte {
	j := jsonEvent{
		Seq:    ev.Seq,
		Time:   ev.Time.Format(time.RFC3339Nano),
		Kind:   ev.Kind.String(),
		Scope:  ev.Scope.String(),
		Span:   ev.Span,
		Parent: ev.Parent,
		Name:   ev.Name,
		Detail: ev.Detail,
	}
	if len(ev.Attrs) > 0 {
		j.Attrs = make(map[string]string, len(ev.Attrs))
		for _, a := range ev.Attrs {
			j.Attrs[a.Key] = a.Value
		}
	}
	data, err := json.Marshal(j)
	if err != nil {
		data = fmt.Appendf(nil, `{"seq":%d,"error":%q}`, ev.Seq, err.Error())
	}
	return append(data, '\n')
}

var kindMarks = [...]string{KindBegin: "→", KindEnd: "←", KindPoint: "•"}

// #seq [scope] → name (detail) {k=v, ...}
func encodeText(ev *Event) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%-5d [%s] ", ev.Seq, ev.Scope)
	if ev.Parent != 0 {
		sb.WriteString("  ")
	}
	if int(ev.Kind) < len(kindMarks) && kindMarks[ev.Kind] != "" {
		sb.WriteString(kindMarks[ev.Kind])
		sb.WriteByte(' ')
	}
	sb.WriteString(ev.Name)
	if ev.Detail != "" {
		fmt.Fprintf(&sb, " (%s)", ev.Detail)
	}
	for i, a := range ev.Attrs {
		if i == 0 {
			sb.WriteString(" {")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(a.Key + "=" + a.Value)
	}
	if len(ev.Attrs) > 0 {
		sb.WriteByte('}')
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
