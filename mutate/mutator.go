package mutate

import (
	"math/rand"

	"github.com/katalvlaran/crossgrid/grid"
)

// Stats counts the work of one or more moves.
type Stats struct {
	Attempts int // placements and removals tried
	Failed   int // tries rejected by the grid
	Applied  int // moves that changed the grid
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Attempts += o.Attempts
	s.Failed += o.Failed
	s.Applied += o.Applied
}

// Mutator applies random moves. It holds no mutable state and may be
// shared between goroutines.
type Mutator struct {
	opts Options
}

// NewMutator returns a Mutator; a non-positive MaxAttempts means one
// placement per move.
func NewMutator(o Options) *Mutator {
	if o.MaxAttempts < 1 {
		o.MaxAttempts = 1
	}
	return &Mutator{opts: o}
}

// Options returns the mutator's settings.
func (m *Mutator) Options() Options { return m.opts }

// Mutate draws and applies one move. On error g itself is returned with a
// nil Move; the error is one of RandomMove's.
func (m *Mutator) Mutate(g *grid.Grid, r *rand.Rand) (*grid.Grid, Move, Stats, error) {
	mv, ng, st, err := draw(g, r, m.opts.MaxAttempts, m.opts)
	if err != nil {
		return g, nil, st, err
	}
	return ng, mv, st, nil
}

// MutateN applies up to n successive moves. The sequence ends early at the
// first move that cannot be made: a placement with no fitting attempt, or
// a placement drawn on a complete grid.
func (m *Mutator) MutateN(g *grid.Grid, r *rand.Rand, n int) (*grid.Grid, Stats) {
	var total Stats
	for i := 0; i < n; i++ {
		ng, _, st, err := m.Mutate(g, r)
		total.Add(st)
		if err != nil {
			break
		}
		g = ng
	}
	return g, total
}

// Fill places random words until every word is placed or none fits. Each
// placement tries every attempt, so a grid returned by Fill has no legal
// AddWord left.
//
// Complexity: O(W) placements, each O(A) attempts for W words and A
// candidate positions.
func (m *Mutator) Fill(g *grid.Grid, r *rand.Rand) (*grid.Grid, Stats) {
	var total Stats
	for {
		_, ng, st, err := place(g, r, 0)
		total.Add(st)
		if err != nil {
			return g, total
		}
		g = ng
	}
}
