package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"nyanc/internal/diag"
	"nyanc/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note *color.Color
	gutter, caret, bold   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgGreen),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее). Для каждой печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строки контекста и подчёркивание ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, sm *source.Manager, opts PrettyOpts) error {
	if bag == nil || sm == nil {
		return nil
	}
	pal := newPalette(opts.Color)
	var sb strings.Builder
	for i, d := range bag.Items() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writeDiagnostic(&sb, d, sm, opts, pal)
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(&sb, "\n%s\n", pal.info.Sprintf("... %d more diagnostics not shown (limit %d)", dropped, bag.Cap()))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeDiagnostic(sb *strings.Builder, d diag.Diagnostic, sm *source.Manager, opts PrettyOpts, pal palette) {
	path, ok := sm.Path(d.Primary.File)
	if !ok {
		fmt.Fprintf(sb, "%s %s: %s\n", pal.severity(d.Severity).Sprint(d.Severity), d.Code.ID(), d.Message)
		return
	}
	start, _ := sm.Resolve(d.Primary)
	fmt.Fprintf(sb, "%s:%d:%d: %s %s: %s\n",
		pal.bold.Sprint(formatPath(path, opts.PathMode, opts.BaseDir)),
		start.Line, start.Col,
		pal.severity(d.Severity).Sprint(d.Severity),
		d.Code.ID(),
		d.Message)
	writeSnippet(sb, sm, d.Primary, opts.Context, pal)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		notePath, ok := sm.Path(n.Span.File)
		if !ok {
			fmt.Fprintf(sb, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
			continue
		}
		ns, _ := sm.Resolve(n.Span)
		fmt.Fprintf(sb, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
			formatPath(notePath, opts.PathMode, opts.BaseDir), ns.Line, ns.Col, n.Msg)
	}
}

// writeSnippet печатает строку span'а с номером и подчёркиванием.
// Многострочный span подчёркивается до конца первой строки.
func writeSnippet(sb *strings.Builder, sm *source.Manager, sp source.Span, context int8, pal palette) {
	f := sm.File(sp.File)
	start, end := sm.Resolve(sp)

	first := start.Line
	if context > 0 {
		if uint32(context) >= first {
			first = 1
		} else {
			first -= uint32(context)
		}
	}
	gutterWidth := len(fmt.Sprint(start.Line))

	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(sb, "%s %s\n",
			pal.gutter.Sprintf("%*d |", gutterWidth, ln),
			expandTabs(f.LineText(ln)))
	}

	line := f.LineText(start.Line)
	from := min(int(start.Col-1), len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col-1), len(line))
	}
	to = max(to, from)

	pad := runewidth.StringWidth(expandTabs(line[:from]))
	width := max(runewidth.StringWidth(expandTabs(line[from:to])), 1)
	fmt.Fprintf(sb, "%s %s%s\n",
		pal.gutter.Sprint(strings.Repeat(" ", gutterWidth)+" |"),
		strings.Repeat(" ", pad),
		pal.caret.Sprint("^"+strings.Repeat("~", width-1)))
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
