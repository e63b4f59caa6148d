package ast

import "nyanc/internal/source"

// Path is a `a::b::c` name. Segments and SegSpans are parallel.
type Path struct {
	Span     source.Span
	Segments []source.Symbol
	SegSpans []source.Span
}

func (t *Tree) NewPath(sp source.Span, segs []source.Symbol, segSpans []source.Span) PathID {
	return PathID(t.Paths.Allocate(Path{
		Span:     sp,
		Segments: append([]source.Symbol(nil), segs...),
		SegSpans: append([]source.Span(nil), segSpans...),
	}))
}

func (t *Tree) Path(id PathID) *Path {
	return t.Paths.Get(uint32(id))
}

// PathSegments spells the segments of a path through strs.
func (t *Tree) PathSegments(id PathID, strs *source.Interner) []string {
	p := t.Path(id)
	if p == nil {
		return nil
	}
	out := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		out[i] = strs.Lookup(s)
	}
	return out
}
