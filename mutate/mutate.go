// Package mutate produces child grids from a parent by small random moves.
//
// Two moves exist: AddWord places an unplaced word across an existing
// letter, and RemoveWord prunes a leaf of the intersection graph. Every
// random draw goes through an explicit *rand.Rand over slices built in a
// fixed order, so the same source always yields the same move.
package mutate

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/crossgrid/grid"
	"github.com/katalvlaran/crossgrid/rng"
	"github.com/katalvlaran/crossgrid/wordbank"
)

var (
	// ErrNoMove is returned when neither move kind can be drawn.
	ErrNoMove = errors.New("mutate: no move available")

	// ErrComplete is returned when a placement is drawn but every word is
	// already on the grid.
	ErrComplete = errors.New("mutate: every word is placed")

	// ErrNoCandidate is returned when a placement is drawn but no attempt
	// fits the grid.
	ErrNoCandidate = errors.New("mutate: no word fits the grid")
)

// Move is one atomic transformation of a grid.
type Move interface {
	Apply(g *grid.Grid) (*grid.Grid, error)
	String() string
}

// AddWord places Word at At running Dir.
type AddWord struct {
	Word wordbank.ID
	At   grid.Coord
	Dir  wordbank.Direction
}

// Apply implements Move.
func (m AddWord) Apply(g *grid.Grid) (*grid.Grid, error) { return g.Place(m.Word, m.At, m.Dir) }

func (m AddWord) String() string { return fmt.Sprintf("add #%d %s at %s", m.Word, m.Dir, m.At) }

// RemoveWord takes Word off the grid.
type RemoveWord struct {
	Word wordbank.ID
}

// Apply implements Move.
func (m RemoveWord) Apply(g *grid.Grid) (*grid.Grid, error) { return g.Remove(m.Word) }

func (m RemoveWord) String() string { return fmt.Sprintf("remove #%d", m.Word) }

// Options weight the move kinds and bound the placements tried per move.
type Options struct {
	PlaceWeight float64
	PruneWeight float64
	MaxAttempts int // placements tried by one AddWord draw
}

// DefaultOptions draws three placements for every prune.
func DefaultOptions() Options {
	return Options{PlaceWeight: 3, PruneWeight: 1, MaxAttempts: 64}
}

// RandomMove draws one legal move for g.
//
// The kind is drawn by weight. Pruning is only offered when more than one
// word is placed and the intersection graph has a leaf; the placement
// weight always takes part, so on a complete grid a drawn placement yields
// ErrComplete instead of forcing a prune. A placement shuffles every
// attempt (each unplaced word at each candidate position, or at the origin
// on an empty grid) and returns the first of at most o.MaxAttempts that g
// accepts, or of all of them when MaxAttempts < 1.
//
// Errors: ErrNoMove, ErrComplete, ErrNoCandidate.
func RandomMove(g *grid.Grid, r *rand.Rand, o Options) (Move, error) {
	mv, _, _, err := draw(g, r, o.MaxAttempts, o)
	return mv, err
}

// attempt is one untested placement.
type attempt struct {
	word wordbank.ID
	at   grid.Coord
	dir  wordbank.Direction
}

// draw is RandomMove that also returns the grid the move produces and the
// placement attempts it spent. limit < 1 tries every attempt.
func draw(g *grid.Grid, r *rand.Rand, limit int, o Options) (Move, *grid.Grid, Stats, error) {
	var leaves []grid.SlotID
	if g.PlacedCount() > 1 {
		leaves = g.Leaves()
	}
	weights := []float64{o.PlaceWeight, 0}
	if len(leaves) > 0 {
		weights[1] = o.PruneWeight
	}
	if weights[0] <= 0 && weights[1] <= 0 {
		return nil, nil, Stats{}, ErrNoMove
	}

	if rng.Weighted(r, weights) == 1 {
		p, _ := g.WordAt(leaves[rng.Pick(r, len(leaves))])
		mv := RemoveWord{Word: p.Word}
		ng, err := mv.Apply(g)
		if err != nil {
			return nil, nil, Stats{Attempts: 1, Failed: 1}, err
		}
		return mv, ng, Stats{Attempts: 1, Applied: 1}, nil
	}
	return place(g, r, limit)
}

// place tries shuffled placement attempts until one is accepted.
func place(g *grid.Grid, r *rand.Rand, limit int) (Move, *grid.Grid, Stats, error) {
	unplaced := g.Unplaced()
	if len(unplaced) == 0 {
		return nil, nil, Stats{}, ErrComplete
	}
	attempts := attempts(g, unplaced)
	rng.Shuffle(attempts, r)

	var st Stats
	for _, a := range attempts {
		if limit > 0 && st.Attempts >= limit {
			break
		}
		st.Attempts++
		mv := AddWord{Word: a.word, At: a.at, Dir: a.dir}
		ng, err := mv.Apply(g)
		if err != nil {
			st.Failed++
			continue
		}
		st.Applied = 1
		return mv, ng, st, nil
	}
	return nil, nil, st, fmt.Errorf("%w: %d attempts rejected", ErrNoCandidate, st.Attempts)
}

// attempts lists placements in word id order, then candidate order.
func attempts(g *grid.Grid, unplaced []wordbank.ID) []attempt {
	var out []attempt
	if g.PlacedCount() == 0 {
		for _, id := range unplaced {
			for _, d := range []wordbank.Direction{wordbank.Across, wordbank.Down} {
				if g.Bank().Word(id).Required.Allows(d) {
					out = append(out, attempt{word: id, dir: d})
				}
			}
		}
		return out
	}
	for _, id := range unplaced {
		for c := range g.CandidatePositions(id).All() {
			out = append(out, attempt{word: c.Word, at: c.Start, dir: c.Dir})
		}
	}
	return out
}
