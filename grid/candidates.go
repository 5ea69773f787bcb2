// File: candidates.go
// Role: Attachment points for a word against the current layout.
// Determinism:
//   - Anchors are visited in reading order, letter indices ascending.

package grid

import (
	"iter"
	"slices"

	"github.com/katalvlaran/crossgrid/wordbank"
)

// Candidate is a position at which a word would cross an existing word.
type Candidate struct {
	Word   wordbank.ID
	Start  Coord
	Dir    wordbank.Direction
	Anchor Coord // the existing letter the word would cross
	Index  int   // index of the crossing letter within the word
}

// Candidates is the finite sequence of attachment points for one word.
// Positions are enumerated up front (cheap arithmetic); legality is only
// evaluated by Legal, one Place at a time.
type Candidates struct {
	items []Candidate
}

// Len returns the number of candidate positions.
func (c Candidates) Len() int { return len(c.items) }

// At returns the i-th candidate; it panics when i is out of range.
func (c Candidates) At(i int) Candidate { return c.items[i] }

// All yields every candidate in order.
func (c Candidates) All() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for _, it := range c.items {
			if !yield(it) {
				return
			}
		}
	}
}

// Legal yields only candidates that g accepts, paired with the grid that
// results from placing them.
func (c Candidates) Legal(g *Grid) iter.Seq2[Candidate, *Grid] {
	return func(yield func(Candidate, *Grid) bool) {
		for _, it := range c.items {
			ng, err := g.Place(it.Word, it.Start, it.Dir)
			if err != nil {
				continue
			}
			if !yield(it, ng) {
				return
			}
		}
	}
}

// CandidatePositions lists the positions where the word could cross an
// anchor: a letter cell owned in exactly one direction whose letter occurs
// in the word. The word is laid perpendicular to the anchor's owner and
// must be allowed to run that way. A placed or unknown word has none.
//
// Complexity: O(F + K·L) for F filled cells and K anchors.
func (g *Grid) CandidatePositions(id wordbank.ID) Candidates {
	if !g.bank.Valid(id) || g.IsPlaced(id) {
		return Candidates{}
	}
	w := g.bank.Word(id)

	type anchor struct {
		at  Coord
		dir wordbank.Direction
	}
	var anchors []anchor
	for _, p := range g.Placements() {
		perp := p.Dir.Perpendicular()
		for i := 0; i < p.Len; i++ {
			c := p.At(i)
			if g.get(c).owner(perp) == NoSlot {
				anchors = append(anchors, anchor{at: c, dir: perp})
			}
		}
	}
	slices.SortFunc(anchors, func(a, b anchor) int { return a.at.Compare(b.at) })

	var items []Candidate
	for _, a := range anchors {
		if !w.Required.Allows(a.dir) {
			continue
		}
		letter := g.get(a.at).letter
		dr, dc := a.dir.Step()
		for i := 0; i < len(w.Text); i++ {
			if w.Text[i] != letter {
				continue
			}
			items = append(items, Candidate{
				Word:   id,
				Start:  a.at.Add(-dr*i, -dc*i),
				Dir:    a.dir,
				Anchor: a.at,
				Index:  i,
			})
		}
	}
	return Candidates{items: items}
}
