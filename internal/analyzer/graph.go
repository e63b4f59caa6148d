package analyzer

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"

	"nyanc/internal/ast"
	"nyanc/internal/diag"
	"nyanc/internal/source"
)

// NodeID — индекс модуля в Graph.Files (порядок обнаружения, root = 0).
type NodeID uint32

// Import is one resolved import edge.
type Import struct {
	From source.FileID
	To   source.FileID
	Item ast.ItemID
	Span source.Span
	Path string // a::b::c
}

// MissingImport is an import that ResolveModule could not locate.
type MissingImport struct {
	From source.FileID
	Item ast.ItemID
	Span source.Span
	Path string
}

// Graph is the import graph reachable from a root file.
type Graph struct {
	Root    source.FileID
	Files   []source.FileID
	Index   map[source.FileID]NodeID
	Edges   [][]NodeID // Edges[from] = []to, отсортированы, без дублей
	Indeg   []int
	Imports []Import
	Missing []MissingImport
	Topo    *Topo
}

// Imports walks the import items reachable from root. Every discovered
// module is parsed through db.AST exactly once; unresolved imports are
// reported as ProjMissingModule errors, self-imports as ProjSelfImport, and
// each module taking part in a cycle gets a ProjImportCycle warning.
func Imports(db DB, root source.FileID) *Graph {
	g := &Graph{
		Root:  root,
		Index: make(map[source.FileID]NodeID),
	}
	rep := diag.BagReporter{Bag: db.Diagnostics()}
	g.node(root)

	// очередь вместо рекурсии: циклы A↔B просто находят уже известный узел
	for next := 0; next < len(g.Files); next++ {
		file := g.Files[next]
		from := NodeID(next)
		parsed := db.AST(file)
		seen := make(map[NodeID]struct{})

		for _, ref := range parsed.Tree.Imports(parsed.Root) {
			segs := parsed.Tree.PathSegments(ref.Import.Path, parsed.Tree.Strings)
			spelled := strings.Join(segs, "::")

			to, ok := db.ResolveModule(file, segs)
			if !ok {
				g.Missing = append(g.Missing, MissingImport{From: file, Item: ref.Item, Span: ref.Span, Path: spelled})
				diag.ReportError(rep, diag.ProjMissingModule, ref.Span,
					fmt.Sprintf("module %q not found", spelled)).
					WithNote(ref.Span, "looked for "+strings.Join(segs, "/")+source.Extension+" next to this file").
					Emit()
				continue
			}
			if to == file {
				rep.Report(diag.ProjSelfImport, diag.SevError, ref.Span,
					fmt.Sprintf("module %q imports itself", spelled), nil)
				continue
			}

			g.Imports = append(g.Imports, Import{From: file, To: to, Item: ref.Item, Span: ref.Span, Path: spelled})
			toID := g.node(to)
			if _, dup := seen[toID]; dup {
				continue
			}
			seen[toID] = struct{}{}
			g.Edges[from] = append(g.Edges[from], toID)
			g.Indeg[toID]++
		}
		slices.Sort(g.Edges[from])
	}

	g.Topo = ToposortKahn(g)
	g.reportCycles(rep)
	return g
}

// node returns the id of file, registering it on first sight.
func (g *Graph) node(file source.FileID) NodeID {
	if id, ok := g.Index[file]; ok {
		return id
	}
	id, err := safecast.Conv[NodeID](len(g.Files))
	if err != nil {
		panic(fmt.Errorf("module id overflow: %w", err))
	}
	g.Index[file] = id
	g.Files = append(g.Files, file)
	g.Edges = append(g.Edges, nil)
	g.Indeg = append(g.Indeg, 0)
	return id
}

// Deps lists the files file imports directly, in node order.
func (g *Graph) Deps(file source.FileID) []source.FileID {
	id, ok := g.Index[file]
	if !ok {
		return nil
	}
	out := make([]source.FileID, 0, len(g.Edges[id]))
	for _, to := range g.Edges[id] {
		out = append(out, g.Files[to])
	}
	return out
}

// reaches reports whether to is reachable from from.
func (g *Graph) reaches(from, to NodeID) bool {
	seen := make([]bool, len(g.Files))
	stack := []NodeID{from}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == to {
			return true
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, g.Edges[n]...)
	}
	return false
}

// reportCycles warns once per module on its first import that lies on a
// cycle (the imported module can reach the importer back). Modules that are
// merely downstream of a cycle stay quiet.
func (g *Graph) reportCycles(rep diag.Reporter) {
	if g.Topo == nil || !g.Topo.Cyclic {
		return
	}
	reported := make(map[source.FileID]struct{})
	for _, imp := range g.Imports {
		if _, done := reported[imp.From]; done {
			continue
		}
		if !g.reaches(g.Index[imp.To], g.Index[imp.From]) {
			continue
		}
		reported[imp.From] = struct{}{}
		rep.Report(diag.ProjImportCycle, diag.SevWarning, imp.Span,
			fmt.Sprintf("import of %q closes an import cycle", imp.Path), nil)
	}
}
