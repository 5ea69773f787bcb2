// File: components.go
// Role: Intersection graph, connected components and leaves.

package grid

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/crossgrid/graph"
	"github.com/katalvlaran/crossgrid/wordbank"
)

// IntersectionGraph returns the graph whose vertices are placed slot ids
// and whose edges join words sharing a cell.
//
// If a cell names a slot that is no longer placed, a warning is logged and
// the graph is built from cells recomputed from the placements instead.
//
// Complexity: O(F + tiles·64) for F filled cells.
func (g *Grid) IntersectionGraph() *graph.Graph {
	src := g
	if at, s, bad := g.danglingOwner(); bad {
		g.cfg.log.Warn("cell references a missing word slot; recomputing cells from placements",
			zap.Int("row", at.Row),
			zap.Int("col", at.Col),
			zap.Int("slot", int(s)),
			zap.Int("placed", g.PlacedCount()))
		src = g.rebuilt()
	}

	gr := graph.New()
	for _, p := range src.Placements() {
		_ = gr.AddVertex(int(p.Slot))
	}
	for _, p := range src.Placements() {
		if p.Dir != wordbank.Across {
			continue
		}
		for i := 0; i < p.Len; i++ {
			d := src.get(p.At(i)).owner(p.Dir.Perpendicular())
			if d == NoSlot || gr.HasEdge(int(p.Slot), int(d)) {
				continue
			}
			_ = gr.AddEdge(int(p.Slot), int(d))
		}
	}
	return gr
}

// ConnectedComponents partitions the placed slot ids into groups joined by
// intersections. Groups are sorted internally and ordered by smallest id.
func (g *Grid) ConnectedComponents() [][]SlotID {
	comps := g.IntersectionGraph().Components()
	out := make([][]SlotID, len(comps))
	for i, c := range comps {
		out[i] = make([]SlotID, len(c))
		for j, v := range c {
			out[i][j] = SlotID(v)
		}
	}
	return out
}

// Leaves returns the placed slots crossed by exactly one other word.
func (g *Grid) Leaves() []SlotID {
	ls := g.IntersectionGraph().Leaves()
	out := make([]SlotID, len(ls))
	for i, v := range ls {
		out[i] = SlotID(v)
	}
	return out
}

// WordAt returns the placement occupying slot s.
func (g *Grid) WordAt(s SlotID) (Placement, bool) {
	if s < 0 || int(s) >= len(g.slots) || !g.slots[s].used {
		return Placement{}, false
	}
	return g.placement(s), true
}

func (g *Grid) danglingOwner() (Coord, SlotID, bool) {
	for _, ca := range g.allCells() {
		for _, s := range [2]SlotID{ca.Cell.Across, ca.Cell.Down} {
			if s == NoSlot {
				continue
			}
			if int(s) >= len(g.slots) || !g.slots[s].used {
				return ca.At, s, true
			}
		}
	}
	return Coord{}, NoSlot, false
}

// rebuilt returns a grid with identical placements and slot ids whose cells
// are recomputed from scratch.
func (g *Grid) rebuilt() *Grid {
	ng := &Grid{
		bank:   g.bank,
		cfg:    g.cfg,
		tiles:  make(map[tileKey]*tile),
		owned:  make(map[tileKey]struct{}),
		slots:  make([]slot, len(g.slots)),
		byWord: make(map[wordbank.ID]SlotID, len(g.byWord)),
		bounds: emptyRect,
	}
	copy(ng.slots, g.slots)
	for _, c := range g.cfg.blocked {
		s := ng.get(c)
		s.blocked = true
		ng.set(c, s)
	}
	for _, p := range ng.Placements() {
		ng.byWord[p.Word] = p.Slot
		ng.write(p, g.bank.Word(p.Word).Text)
		ng.bounds = ng.bounds.Union(p.Span())
	}
	ng.freeze()
	return ng
}
