package diag

import (
	"sync"
	"testing"

	"nyanc/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}

	r.Report(SynUnexpectedToken, SevWarning, source.Span{}, "w", nil)
	if bag.HasErrors() {
		t.Fatal("warning must not count as error")
	}
	if !bag.HasWarnings() {
		t.Fatal("expected warning")
	}
	r.Report(SynExpectSemicolon, SevError, source.Span{}, "e", nil)
	r.Report(SynExpectSemicolon, SevError, source.Span{}, "dropped", nil)

	if bag.Len() != 2 {
		t.Fatalf("limit not enforced: len=%d", bag.Len())
	}
	if bag.Dropped() != 1 {
		t.Fatalf("expected one dropped diagnostic, got %d", bag.Dropped())
	}
	if !bag.HasErrors() {
		t.Fatal("expected error")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(0)
	bag.Add(NewError(SynExpectSemicolon, source.Span{File: 1, Start: 5, End: 6}, "b"))
	bag.Add(NewError(SynUnexpectedToken, source.Span{File: 0, Start: 9, End: 9}, "a"))
	bag.Add(New(SevWarning, SynUnexpectedToken, source.Span{File: 0, Start: 1, End: 2}, "w"))
	bag.Add(NewError(SynExpectSemicolon, source.Span{File: 1, Start: 5, End: 6}, "b again"))

	bag.Dedup()
	if bag.Len() != 3 {
		t.Fatalf("dedup: expected 3 items, got %d", bag.Len())
	}
	bag.Sort()
	items := bag.Items()
	if items[0].Message != "w" || items[1].Message != "a" || items[2].Message != "b" {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestBagConcurrentAdd(t *testing.T) {
	bag := NewBag(0)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				bag.Add(NewError(UnknownCode, source.Span{}, "x"))
			}
		}()
	}
	wg.Wait()
	if bag.Len() != 800 {
		t.Fatalf("expected 800 diagnostics, got %d", bag.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 0, Start: 1, End: 2}
	r.Report(SynExpectIdentifier, SevError, sp, "x", nil)
	r.Report(SynExpectIdentifier, SevError, sp, "x", nil)
	r.Report(SynExpectIdentifier, SevError, sp, "y", nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, ProjMissingModule, source.Span{}, "module not found").
		WithNote(source.Span{Start: 1, End: 2}, "imported here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one emitted diagnostic, got %d", bag.Len())
	}
	if got := bag.Items()[0]; len(got.Notes) != 1 || got.Code != ProjMissingModule {
		t.Fatalf("unexpected diagnostic: %+v", got)
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynUnexpectedToken: "SYN2001",
		IOLoadFileError:    "IO4001",
		ProjMissingModule:  "PRJ5002",
		UnknownCode:        "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if Code(1999).Title() != "Unknown error" {
		t.Error("unknown codes must fall back to UnknownCode title")
	}
}
