// File: grid.go
// Role: The Grid value, construction, cloning and read-only queries.
// Concurrency:
//   - A returned Grid is never mutated again; all methods are safe for
//     concurrent use.

package grid

import (
	"slices"
	"strings"

	"github.com/katalvlaran/crossgrid/wordbank"
)

type slot struct {
	word  wordbank.ID
	start Coord
	dir   wordbank.Direction
	len   int
	used  bool
}

// Grid is an immutable crossword layout over a word bank.
type Grid struct {
	bank  *wordbank.Bank
	cfg   *config
	tiles map[tileKey]*tile
	owned map[tileKey]struct{} // non-nil only while the grid is being built

	slots  []slot
	byWord map[wordbank.ID]SlotID

	bounds    Rect
	filled    int
	crossings int
}

// New returns an empty grid over bank. A nil bank behaves as an empty one.
//
// Complexity: O(len(blocked)).
func New(bank *wordbank.Bank, opts ...Option) *Grid {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	if bank == nil {
		bank = &wordbank.Bank{}
	}
	g := &Grid{
		bank:   bank,
		cfg:    cfg,
		tiles:  make(map[tileKey]*tile),
		owned:  make(map[tileKey]struct{}),
		byWord: make(map[wordbank.ID]SlotID),
		bounds: emptyRect,
	}
	for _, c := range cfg.blocked {
		s := g.get(c)
		s.blocked = true
		g.set(c, s)
	}
	g.freeze()
	return g
}

// clone returns a writable copy sharing every tile with g.
//
// Complexity: O(tiles + placed words).
func (g *Grid) clone() *Grid {
	ng := &Grid{
		bank:      g.bank,
		cfg:       g.cfg,
		tiles:     make(map[tileKey]*tile, len(g.tiles)),
		owned:     make(map[tileKey]struct{}),
		slots:     slices.Clone(g.slots),
		byWord:    make(map[wordbank.ID]SlotID, len(g.byWord)),
		bounds:    g.bounds,
		filled:    g.filled,
		crossings: g.crossings,
	}
	for k, t := range g.tiles {
		ng.tiles[k] = t
	}
	for w, s := range g.byWord {
		ng.byWord[w] = s
	}
	return ng
}

func (g *Grid) freeze() { g.owned = nil }

// Bank returns the word bank the grid draws from.
func (g *Grid) Bank() *wordbank.Bank { return g.bank }

// Adjacency returns the adjacency rule in force.
func (g *Grid) Adjacency() Adjacency { return g.cfg.adjacency }

// Bounds returns the bounding rectangle of letter cells.
func (g *Grid) Bounds() Rect { return g.bounds }

// Dimensions returns the rows and columns of Bounds; (0, 0) when empty.
func (g *Grid) Dimensions() (rows, cols int) { return g.bounds.Rows(), g.bounds.Cols() }

// FilledCells returns the number of letter cells.
func (g *Grid) FilledCells() int { return g.filled }

// Intersections returns the number of cells shared by an across and a down word.
func (g *Grid) Intersections() int { return g.crossings }

// PlacedCount returns the number of placed words.
func (g *Grid) PlacedCount() int { return len(g.byWord) }

// IsPlaced reports whether the word is on the grid.
func (g *Grid) IsPlaced(id wordbank.ID) bool {
	_, ok := g.byWord[id]
	return ok
}

// Cell returns the cell at c. Cells outside any tile are empty.
func (g *Grid) Cell(c Coord) Cell { return g.get(c).view() }

func (g *Grid) placement(s SlotID) Placement {
	sl := g.slots[s]
	return Placement{Slot: s, Word: sl.word, Start: sl.start, Dir: sl.dir, Len: sl.len}
}

// Placements returns the placed words ordered by slot id.
//
// Complexity: O(slots).
func (g *Grid) Placements() []Placement {
	out := make([]Placement, 0, len(g.byWord))
	for i, sl := range g.slots {
		if sl.used {
			out = append(out, g.placement(SlotID(i)))
		}
	}
	return out
}

// PlacementOf returns the placement of a word, if placed.
func (g *Grid) PlacementOf(id wordbank.ID) (Placement, bool) {
	s, ok := g.byWord[id]
	if !ok {
		return Placement{}, false
	}
	return g.placement(s), true
}

// Unplaced returns the bank ids not yet on the grid, ascending.
func (g *Grid) Unplaced() []wordbank.ID {
	out := make([]wordbank.ID, 0, g.bank.Len()-len(g.byWord))
	for i := 0; i < g.bank.Len(); i++ {
		if !g.IsPlaced(wordbank.ID(i)) {
			out = append(out, wordbank.ID(i))
		}
	}
	return out
}

// Snapshot is a comparable, order-stable copy of a grid's contents.
type Snapshot struct {
	Placements []Placement
	Cells      []CellAt
}

// Snapshot returns every placement and every non-empty cell.
func (g *Grid) Snapshot() Snapshot {
	return Snapshot{Placements: g.Placements(), Cells: g.allCells()}
}

// Key returns the letters of the bounding rectangle, one line per row, with
// '.' for empty cells and '#' for blocks. Grids that differ only by
// translation share a key.
//
// Complexity: O(rows*cols).
func (g *Grid) Key() string {
	if g.bounds.Empty() {
		return ""
	}
	var b strings.Builder
	b.Grow(g.bounds.Area() + g.bounds.Rows())
	for r := g.bounds.Min.Row; r <= g.bounds.Max.Row; r++ {
		if r > g.bounds.Min.Row {
			b.WriteByte('\n')
		}
		for c := g.bounds.Min.Col; c <= g.bounds.Max.Col; c++ {
			s := g.get(Coord{Row: r, Col: c})
			switch {
			case s.letter != 0:
				b.WriteByte(s.letter)
			case s.blocked:
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

func (g *Grid) String() string { return g.Key() }
