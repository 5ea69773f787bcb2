// Package grid is the crossword layout data structure and its placement
// engine.
//
// A Grid is an immutable value: Place and Remove return a new Grid and leave
// the receiver untouched, so grids can be shared between goroutines without
// locking. Cells live in fixed-size tiles keyed by tile coordinate; a clone
// shares every tile with its parent and copies a tile only when it writes to
// it, so a child grid costs O(tiles touched) rather than O(area).
//
// Placed words are kept in an arena and addressed by a small integer SlotID.
// Each letter cell records at most one across owner and one down owner; an
// intersection is a cell with both. The intersection graph (slot ids joined
// by shared cells) is derived on demand.
//
// Placement legality:
//
//   - a word is placed at most once;
//   - its direction satisfies the word's constraint and the layout stays
//     within the optional maximum size;
//   - every covered cell is empty or already holds the same letter, and is
//     not blocked;
//   - no illegal adjacency is introduced (see Adjacency).
//
// Coordinates are unbounded signed integers; the first word is usually
// placed at the origin and later words may extend in any direction.
package grid
