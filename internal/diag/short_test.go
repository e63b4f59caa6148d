package diag

import (
	"testing"

	"nyanc/internal/source"
)

func TestFormatShort(t *testing.T) {
	sm := source.NewManager()
	file := sm.AddVirtual("/workspace/pkg/sample.ny", "a\nb\n")

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     ProjImportCycle,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"},
			},
		},
	}

	expected := "error SYN2001 pkg/sample.ny:1:1 first line second\n" +
		"note SYN2001 pkg/sample.ny:2:1 note line\n" +
		"warning PRJ5004 pkg/sample.ny:2:1 another"

	if got := FormatShort(diags, sm, "/workspace", true); got != expected {
		t.Fatalf("unexpected diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortSkipsUnknownFiles(t *testing.T) {
	sm := source.NewManager()
	diags := []Diagnostic{NewError(IOLoadFileError, source.Span{File: 7}, "boom")}
	if got := FormatShort(diags, sm, "", false); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
