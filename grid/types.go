// File: types.go
// Role: Coordinates, rectangles, placements and the public cell view.

package grid

import (
	"cmp"
	"fmt"

	"github.com/katalvlaran/crossgrid/wordbank"
)

// Coord is a (row, col) cell coordinate. Rows grow downward.
type Coord struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Add returns c shifted by (dr, dc).
func (c Coord) Add(dr, dc int) Coord { return Coord{Row: c.Row + dr, Col: c.Col + dc} }

// Compare orders coordinates by row, then column (reading order).
func (c Coord) Compare(o Coord) int {
	if r := cmp.Compare(c.Row, o.Row); r != 0 {
		return r
	}
	return cmp.Compare(c.Col, o.Col)
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Rect is an inclusive rectangle. A Rect with Max before Min is empty.
type Rect struct {
	Min Coord `json:"min" yaml:"min"`
	Max Coord `json:"max" yaml:"max"`
}

var emptyRect = Rect{Min: Coord{Row: 1, Col: 1}}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool { return r.Max.Row < r.Min.Row || r.Max.Col < r.Min.Col }

// Rows returns the height, 0 when empty.
func (r Rect) Rows() int {
	if r.Empty() {
		return 0
	}
	return r.Max.Row - r.Min.Row + 1
}

// Cols returns the width, 0 when empty.
func (r Rect) Cols() int {
	if r.Empty() {
		return 0
	}
	return r.Max.Col - r.Min.Col + 1
}

// Area returns Rows*Cols.
func (r Rect) Area() int { return r.Rows() * r.Cols() }

// Contains reports whether c lies within r.
func (r Rect) Contains(c Coord) bool {
	return !r.Empty() && c.Row >= r.Min.Row && c.Row <= r.Max.Row && c.Col >= r.Min.Col && c.Col <= r.Max.Col
}

// Union returns the smallest rectangle covering r and o.
func (r Rect) Union(o Rect) Rect {
	switch {
	case r.Empty():
		return o
	case o.Empty():
		return r
	}
	return Rect{
		Min: Coord{Row: min(r.Min.Row, o.Min.Row), Col: min(r.Min.Col, o.Min.Col)},
		Max: Coord{Row: max(r.Max.Row, o.Max.Row), Col: max(r.Max.Col, o.Max.Col)},
	}
}

// SlotID identifies a placed word inside one Grid's arena. Slot ids are
// small, reused after removal, and meaningless across grids.
type SlotID int

// NoSlot marks an absent owner.
const NoSlot SlotID = -1

// Placement is one placed word.
type Placement struct {
	Slot  SlotID             `json:"slot" yaml:"slot"`
	Word  wordbank.ID        `json:"word" yaml:"word"`
	Start Coord              `json:"start" yaml:"start"`
	Dir   wordbank.Direction `json:"dir" yaml:"dir"`
	Len   int                `json:"len" yaml:"len"`
}

// At returns the coordinate of the i-th letter.
func (p Placement) At(i int) Coord {
	dr, dc := p.Dir.Step()
	return p.Start.Add(dr*i, dc*i)
}

// End returns the coordinate of the last letter.
func (p Placement) End() Coord { return p.At(p.Len - 1) }

// Span returns the rectangle covered by the word.
func (p Placement) Span() Rect { return Rect{Min: p.Start, Max: p.End()} }

// Covers reports whether the word passes through c.
func (p Placement) Covers(c Coord) bool { return p.Span().Contains(c) }

// Cell is the public view of one grid cell.
type Cell struct {
	Letter  byte   // 0 when empty
	Blocked bool   // permanently unusable
	Across  SlotID // across owner or NoSlot
	Down    SlotID // down owner or NoSlot
}

// Empty reports whether the cell holds neither a letter nor a block.
func (c Cell) Empty() bool { return c.Letter == 0 && !c.Blocked }

// IsIntersection reports whether two words cross at the cell.
func (c Cell) IsIntersection() bool { return c.Across != NoSlot && c.Down != NoSlot }

// Owner returns the owner in direction d.
func (c Cell) Owner(d wordbank.Direction) SlotID {
	if d == wordbank.Down {
		return c.Down
	}
	return c.Across
}

// CellAt pairs a coordinate with its cell.
type CellAt struct {
	At   Coord
	Cell Cell
}
