package source

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// buildLineIndex records the offset of every '\n' in text.
func buildLineIndex(text string) []uint32 {
	out := make([]uint32, 0, strings.Count(text, "\n"))
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("line offset overflow: %w", err))
			}
			out = append(out, off)
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// бинпоиск: находим число переводов строки строго до off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := lo // 0-based

	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}
	ln, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{Line: ln, Col: off - startOff + 1}
}

// LineText returns line lineNum (1-based) of f without its newline.
// Out-of-range lines yield "".
func (f *File) LineText(lineNum uint32) string {
	if lineNum == 0 || int(lineNum) > len(f.LineIdx)+1 {
		return ""
	}
	var start uint32
	if lineNum > 1 {
		start = f.LineIdx[lineNum-2] + 1
	}
	end, err := safecast.Conv[uint32](len(f.Text))
	if err != nil {
		panic(fmt.Errorf("len text overflow: %w", err))
	}
	if int(lineNum) <= len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	}
	if start > end {
		return ""
	}
	return f.Text[start:end]
}
