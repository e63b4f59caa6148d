package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"nyanc/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders diagnostics one per line in a stable order:
//
//	<severity> <CODE> <path>:<line>:<col> <message>
//
// Paths are shown relative to baseDir when possible. Notes follow as "note"
// entries when includeNotes is set.
func FormatShort(diags []Diagnostic, sm *source.Manager, baseDir string, includeNotes bool) string {
	if sm == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for _, d := range diags {
		if loc, ok := resolveSpan(sm, baseDir, d.Primary); ok {
			rendered = append(rendered, shortDiagnostic{
				Severity: d.Severity.Label(),
				Code:     d.Code.ID(),
				Path:     loc.Path,
				Line:     loc.Line,
				Column:   loc.Column,
				Message:  sanitizeMessage(d.Message),
			})
		}
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			nloc, ok := resolveSpan(sm, baseDir, note.Span)
			if !ok {
				continue
			}
			rendered = append(rendered, shortDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Path:     nloc.Path,
				Line:     nloc.Line,
				Column:   nloc.Column,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveSpan(sm *source.Manager, baseDir string, span source.Span) (resolvedSpan, bool) {
	path, ok := sm.Path(span.File)
	if !ok {
		return resolvedSpan{}, false
	}
	start, _ := sm.Resolve(span)
	return resolvedSpan{
		Path:   DisplayPath(path, baseDir),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

// DisplayPath shortens path relative to baseDir when it lies inside it.
func DisplayPath(path, baseDir string) string {
	if baseDir != "" && filepath.IsAbs(path) {
		if rel, err := filepath.Rel(baseDir, path); err == nil && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
