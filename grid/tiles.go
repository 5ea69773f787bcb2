// File: tiles.go
// Role: Copy-on-write tiled cell storage.
// Determinism:
//   - allCells walks tiles in sorted key order; map order never leaks out.
// AI-HINT (file):
//   - A grid may write only to tiles listed in owned; owned is nil once the
//     grid is returned to a caller, so any stray write panics loudly.

package grid

import (
	"cmp"
	"slices"

	"github.com/katalvlaran/crossgrid/wordbank"
)

const (
	tileShift = 3
	tileSize  = 1 << tileShift
	tileMask  = tileSize - 1
)

type tileKey struct{ r, c int }

// cellState stores owners as slot+1 so the zero value is an empty cell.
type cellState struct {
	letter  byte
	blocked bool
	across  int32
	down    int32
}

type tile [tileSize * tileSize]cellState

// locate maps a coordinate to its tile and index. Arithmetic shifts and
// masks floor correctly for negative coordinates.
func locate(at Coord) (tileKey, int) {
	k := tileKey{r: at.Row >> tileShift, c: at.Col >> tileShift}
	return k, (at.Row&tileMask)<<tileShift | at.Col&tileMask
}

func (k tileKey) origin() Coord { return Coord{Row: k.r << tileShift, Col: k.c << tileShift} }

func (s cellState) owner(d wordbank.Direction) SlotID {
	if d == wordbank.Down {
		return SlotID(s.down - 1)
	}
	return SlotID(s.across - 1)
}

func (s *cellState) setOwner(d wordbank.Direction, id SlotID) {
	if d == wordbank.Down {
		s.down = int32(id) + 1
		return
	}
	s.across = int32(id) + 1
}

func (s cellState) empty() bool { return s == cellState{} }

func (s cellState) view() Cell {
	return Cell{Letter: s.letter, Blocked: s.blocked, Across: s.owner(wordbank.Across), Down: s.owner(wordbank.Down)}
}

func (g *Grid) get(at Coord) cellState {
	k, i := locate(at)
	t := g.tiles[k]
	if t == nil {
		return cellState{}
	}
	return t[i]
}

// set writes one cell, copying the tile first if it is still shared.
func (g *Grid) set(at Coord, s cellState) {
	k, i := locate(at)
	t := g.tiles[k]
	if _, mine := g.owned[k]; !mine {
		nt := new(tile)
		if t != nil {
			*nt = *t
		}
		g.tiles[k] = nt
		g.owned[k] = struct{}{}
		t = nt
	}
	t[i] = s
}

// allCells returns every non-empty cell in reading order.
func (g *Grid) allCells() []CellAt {
	keys := make([]tileKey, 0, len(g.tiles))
	for k := range g.tiles {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b tileKey) int {
		if r := cmp.Compare(a.r, b.r); r != 0 {
			return r
		}
		return cmp.Compare(a.c, b.c)
	})

	var out []CellAt
	for _, k := range keys {
		t := g.tiles[k]
		o := k.origin()
		for i, s := range t {
			if s.empty() {
				continue
			}
			out = append(out, CellAt{At: o.Add(i>>tileShift, i&tileMask), Cell: s.view()})
		}
	}
	slices.SortFunc(out, func(a, b CellAt) int { return a.At.Compare(b.At) })
	return out
}
