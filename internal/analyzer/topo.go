package analyzer

import "slices"

type Topo struct {
	Order   []NodeID   // импортирующие раньше импортируемых
	Batches [][]NodeID // волны независимых модулей
	Cyclic  bool
	Cycles  []NodeID // не упорядоченные узлы: циклы и всё, что от них зависит
}

// ToposortKahn orders the graph by Kahn's algorithm; whatever cannot be
// ordered is left in Cycles.
func ToposortKahn(g *Graph) *Topo {
	nodeCount := len(g.Edges)
	indeg := make([]int, nodeCount)
	copy(indeg, g.Indeg)

	topo := &Topo{Order: make([]NodeID, 0, nodeCount)}

	current := make([]NodeID, 0, nodeCount)
	for i := range nodeCount {
		if indeg[i] == 0 {
			current = append(current, NodeID(i))
		}
	}

	for len(current) > 0 {
		batch := slices.Clone(current)
		topo.Batches = append(topo.Batches, batch)

		var next []NodeID
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			for _, to := range g.Edges[id] {
				indeg[to]--
				if indeg[to] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(topo.Order) != nodeCount {
		topo.Cyclic = true
		for i := range nodeCount {
			if indeg[i] > 0 {
				topo.Cycles = append(topo.Cycles, NodeID(i))
			}
		}
	}
	return topo
}

// BuildOrder returns files so that every module comes after the modules it
// imports. Nil when the graph has a cycle.
func (g *Graph) BuildOrder() []NodeID {
	if g.Topo == nil || g.Topo.Cyclic {
		return nil
	}
	out := slices.Clone(g.Topo.Order)
	slices.Reverse(out)
	return out
}
