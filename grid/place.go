// File: place.go
// Role: Placement validation, Place and Remove.
// Determinism:
//   - Checks run in a fixed order and report the first failing kind.

package grid

import (
	"fmt"

	"github.com/katalvlaran/crossgrid/wordbank"
)

// Place returns a new grid with the word placed starting at at in
// direction dir. The receiver is unchanged.
//
// Errors (all *PlacementError, checked in this order):
//   - ErrUnknownWord: id is not in the bank.
//   - ErrDuplicateWord: the word is already placed.
//   - ErrOutOfBounds: dir is not Across/Down, violates the word's
//     constraint, or the layout would exceed the maximum size.
//   - ErrLetterConflict: a covered cell is blocked or holds another letter.
//   - ErrIllegalAdjacency: the word would touch letters it does not cross.
//
// Complexity: O(L) checks for a word of length L, plus O(tiles) for the clone.
func (g *Grid) Place(id wordbank.ID, at Coord, dir wordbank.Direction) (*Grid, error) {
	p := Placement{Slot: NoSlot, Word: id, Start: at, Dir: dir}
	if !g.bank.Valid(id) {
		return nil, &PlacementError{Kind: ErrUnknownWord, Word: id, At: at, Dir: dir}
	}
	w := g.bank.Word(id)
	p.Len = w.Len()
	fail := func(kind error, reason string) (*Grid, error) {
		return nil, &PlacementError{Kind: kind, Word: id, Text: w.Text, At: at, Dir: dir, Reason: reason}
	}

	if g.IsPlaced(id) {
		return fail(ErrDuplicateWord, "")
	}
	if dir != wordbank.Across && dir != wordbank.Down {
		return fail(ErrOutOfBounds, "direction must be across or down")
	}
	if !w.Required.Allows(dir) {
		return fail(ErrOutOfBounds, "word must run "+w.Required.String())
	}
	if reason := g.checkSize(p); reason != "" {
		return fail(ErrOutOfBounds, reason)
	}
	if reason := g.checkLetters(p, w.Text); reason != "" {
		return fail(ErrLetterConflict, reason)
	}
	if reason := g.checkAdjacency(p); reason != "" {
		return fail(ErrIllegalAdjacency, reason)
	}

	ng := g.clone()
	p.Slot = ng.allocSlot()
	ng.slots[p.Slot] = slot{word: id, start: at, dir: dir, len: p.Len, used: true}
	ng.byWord[id] = p.Slot
	ng.write(p, w.Text)
	ng.bounds = ng.bounds.Union(p.Span())
	ng.freeze()
	return ng, nil
}

// Remove returns a new grid without the word. Cells shared with a crossing
// word keep their letter and lose only this owner. Trailing free slots are
// trimmed, so removing the most recent placement restores the previous grid.
//
// Removing a word that crosses several others can leave letters touching
// with no word running through both: two kept crossing cells side by side,
// or parallel words whose only shared crossing was the removed word. Such
// a removal is rejected and the receiver stays valid. Removing a leaf never
// is.
//
// Errors: ErrNotPlaced, or a *PlacementError of kind ErrIllegalAdjacency.
//
// Complexity: O(L + placed words + cells of the crossed words).
func (g *Grid) Remove(id wordbank.ID) (*Grid, error) {
	s, ok := g.byWord[id]
	if !ok {
		return nil, fmt.Errorf("%w: word %d", ErrNotPlaced, id)
	}
	ng := g.clone()
	p := ng.placement(s)
	perp := p.Dir.Perpendicular()
	var crossed []SlotID
	for i := 0; i < p.Len; i++ {
		c := p.At(i)
		st := ng.get(c)
		st.setOwner(p.Dir, NoSlot)
		if z := st.owner(perp); z == NoSlot {
			st.letter = 0
			ng.filled--
		} else {
			crossed = append(crossed, z)
			ng.crossings--
		}
		ng.set(c, st)
	}
	if a, b, bad := ng.exposed(crossed, p.Dir); bad {
		return nil, &PlacementError{
			Kind:   ErrIllegalAdjacency,
			Word:   id,
			Text:   g.bank.Word(id).Text,
			At:     p.Start,
			Dir:    p.Dir,
			Reason: fmt.Sprintf("removal leaves %s and %s touching with no word through both", a, b),
		}
	}
	ng.slots[s] = slot{}
	delete(ng.byWord, id)
	for len(ng.slots) > 0 && !ng.slots[len(ng.slots)-1].used {
		ng.slots = ng.slots[:len(ng.slots)-1]
	}
	ng.bounds = emptyRect
	for _, q := range ng.Placements() {
		ng.bounds = ng.bounds.Union(q.Span())
	}
	ng.freeze()
	return ng, nil
}

// allocSlot returns the lowest free slot, growing the arena if needed.
func (g *Grid) allocSlot() SlotID {
	for i, sl := range g.slots {
		if !sl.used {
			return SlotID(i)
		}
	}
	g.slots = append(g.slots, slot{})
	return SlotID(len(g.slots) - 1)
}

// write stamps the word's letters and owner into its cells.
func (g *Grid) write(p Placement, text string) {
	for i := 0; i < p.Len; i++ {
		c := p.At(i)
		st := g.get(c)
		if st.letter == 0 {
			st.letter = text[i]
			g.filled++
		} else {
			g.crossings++
		}
		st.setOwner(p.Dir, p.Slot)
		g.set(c, st)
	}
}

func (g *Grid) checkSize(p Placement) string {
	if g.cfg.maxRows == 0 && g.cfg.maxCols == 0 {
		return ""
	}
	r := g.bounds.Union(p.Span())
	if g.cfg.maxRows > 0 && r.Rows() > g.cfg.maxRows {
		return fmt.Sprintf("layout would be %d rows, limit %d", r.Rows(), g.cfg.maxRows)
	}
	if g.cfg.maxCols > 0 && r.Cols() > g.cfg.maxCols {
		return fmt.Sprintf("layout would be %d columns, limit %d", r.Cols(), g.cfg.maxCols)
	}
	return ""
}

func (g *Grid) checkLetters(p Placement, text string) string {
	for i := 0; i < p.Len; i++ {
		c := p.At(i)
		st := g.get(c)
		if st.blocked {
			return fmt.Sprintf("cell %s is blocked", c)
		}
		if st.letter != 0 && st.letter != text[i] {
			return fmt.Sprintf("cell %s holds %c, word needs %c", c, st.letter, text[i])
		}
	}
	return ""
}

// checkAdjacency applies the end-cap, colinear and side-neighbour rules.
func (g *Grid) checkAdjacency(p Placement) string {
	dr, dc := p.Dir.Step()
	if before := p.Start.Add(-dr, -dc); g.get(before).letter != 0 {
		return fmt.Sprintf("cell %s before the word holds a letter", before)
	}
	if after := p.End().Add(dr, dc); g.get(after).letter != 0 {
		return fmt.Sprintf("cell %s after the word holds a letter", after)
	}

	perp := p.Dir.Perpendicular()
	pr, pc := perp.Step()
	var parallel []SlotID
	for i := 0; i < p.Len; i++ {
		c := p.At(i)
		st := g.get(c)
		if st.owner(p.Dir) != NoSlot {
			return fmt.Sprintf("cell %s already carries a %s word", c, p.Dir)
		}
		cross := st.owner(perp)
		for _, nb := range [2]Coord{c.Add(-pr, -pc), c.Add(pr, pc)} {
			ns := g.get(nb)
			if ns.letter == 0 {
				continue
			}
			if cross != NoSlot && ns.owner(perp) == cross {
				continue // the crossing word runs through both cells
			}
			if g.cfg.adjacency == AdjacencySharedCrossing && ns.owner(perp) == NoSlot {
				parallel = append(parallel, ns.owner(p.Dir))
				continue
			}
			return fmt.Sprintf("cell %s touches letter %c at %s", c, ns.letter, nb)
		}
	}
	for _, y := range parallel {
		if !g.sharesCrossing(p, y) {
			return fmt.Sprintf("runs alongside %q with no word crossing both", g.bank.Word(g.slots[y].word).Text)
		}
	}
	return ""
}

// sharesCrossing reports whether some word already crossing p's cells also
// crosses the placed word y.
func (g *Grid) sharesCrossing(p Placement, y SlotID) bool {
	perp := p.Dir.Perpendicular()
	for i := 0; i < p.Len; i++ {
		z := g.get(p.At(i)).owner(perp)
		if z == NoSlot {
			continue
		}
		zp := g.placement(z)
		for j := 0; j < zp.Len; j++ {
			if g.get(zp.At(j)).owner(p.Dir) == y {
				return true
			}
		}
	}
	return false
}

// exposed checks every letter beside the cells of the crossed words along
// d, the direction of a word just cleared, and returns the first pair the
// adjacency rules no longer allow.
func (g *Grid) exposed(crossed []SlotID, d wordbank.Direction) (Coord, Coord, bool) {
	dr, dc := d.Step()
	for _, z := range crossed {
		zp := g.placement(z)
		for i := 0; i < zp.Len; i++ {
			c := zp.At(i)
			for _, nb := range [2]Coord{c.Add(-dr, -dc), c.Add(dr, dc)} {
				if g.get(nb).letter != 0 && !g.touchAllowed(c, nb, d) {
					return c, nb, true
				}
			}
		}
	}
	return Coord{}, Coord{}, false
}

// touchAllowed reports whether the letters at a and b, neighbours along d,
// may touch: a word running d covers both, or under shared-crossing they
// sit on parallel words that some d word crosses.
func (g *Grid) touchAllowed(a, b Coord, d wordbank.Direction) bool {
	sa, sb := g.get(a), g.get(b)
	if o := sa.owner(d); o != NoSlot && o == sb.owner(d) {
		return true
	}
	if g.cfg.adjacency != AdjacencySharedCrossing {
		return false
	}
	if sa.owner(d) != NoSlot && sb.owner(d) != NoSlot {
		return false
	}
	perp := d.Perpendicular()
	y1, y2 := sa.owner(perp), sb.owner(perp)
	if y1 == NoSlot || y2 == NoSlot || y1 == y2 {
		return false
	}
	return g.sharesCrossing(g.placement(y1), y2)
}
