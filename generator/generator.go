// Package generator evolves a population of grids toward higher fitness.
//
// Two populations are kept. Ancestors are partial layouts that breed: each
// round every child picks an ancestor by fitness-proportional selection and
// applies up to moves_between_scores mutations, stopping early at the first
// placement that does not fit; ancestors and children then compete for
// num_per_gen places. Every surviving ancestor is then completed by
// placing words until none fits, and the completed grids compete with the
// previous completed population. The best completed grid is the result.
//
// The run stops when the best completed score has not improved for
// patience rounds, after max_rounds rounds, or when the context is
// cancelled between rounds.
//
// Determinism: child i of round r draws everything from the sub-stream
// rng.Stream(seed, r, i), the completion of survivor i from
// rng.Stream(seed, r, fillStream, i), and initial member i from
// rng.Stream(seed, 0, i). Work is written to its own index and merged after
// a barrier, so the result depends only on the seed, the words and the
// configuration, never on the number of workers or their scheduling.
package generator

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/crossgrid/config"
	"github.com/katalvlaran/crossgrid/grid"
	"github.com/katalvlaran/crossgrid/mutate"
	"github.com/katalvlaran/crossgrid/rng"
	"github.com/katalvlaran/crossgrid/score"
	"github.com/katalvlaran/crossgrid/wordbank"
)

// ErrSeedGrid indicates a seed grid built over a different word bank.
var ErrSeedGrid = errors.New("generator: seed grid uses a different word bank")

// Member is one scored grid of a population.
type Member struct {
	Grid      *grid.Grid
	Score     float64
	Breakdown score.Breakdown
	Seq       int // discovery order, unique within its population
}

// fillStream separates completion streams from child streams of a round.
const fillStream = 1 << 32

// Result is the outcome of Run.
type Result struct {
	RunID     string
	Best      *grid.Grid
	Breakdown score.Breakdown
	Trace     []float64 // best completed score after initialization and after each round
	Rounds    int
	State     State
	Moves     mutate.Stats
}

// Score returns the best fitness.
func (r Result) Score() float64 { return r.Breakdown.Total }

// Option configures a Generator.
type Option func(*Generator)

// WithLogger routes run logs to l. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("generator: WithLogger(nil)")
	}
	return func(g *Generator) { g.log = l }
}

// WithObserver adds a round observer.
func WithObserver(o Observer) Option {
	if o == nil {
		panic("generator: WithObserver(nil)")
	}
	return func(g *Generator) { g.observers = append(g.observers, o) }
}

// WithSeedGrid starts every initial member from s instead of an empty grid.
// s must be built over the generator's bank, for example by grid.Parse.
func WithSeedGrid(s *grid.Grid) Option {
	return func(g *Generator) { g.seedGrid = s }
}

// Generator runs the evolutionary search. It holds no per-run state; Run
// may be called repeatedly and yields the same layout each time.
type Generator struct {
	bank      *wordbank.Bank
	cfg       config.Config
	log       *zap.Logger
	observers []Observer
	seedGrid  *grid.Grid
	mut       *mutate.Mutator
	workers   int
}

// New validates cfg and returns a ready Generator. A nil bank is treated as
// empty.
//
// Errors: config.ErrConfiguration, ErrSeedGrid.
func New(bank *wordbank.Bank, cfg config.Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if bank == nil {
		bank = &wordbank.Bank{}
	}
	g := &Generator{
		bank:    bank,
		cfg:     cfg,
		log:     zap.NewNop(),
		mut:     mutate.NewMutator(cfg.MutateOptions()),
		workers: cfg.EffectiveWorkers(),
	}
	for _, o := range opts {
		o(g)
	}
	if g.seedGrid == nil {
		g.seedGrid = grid.New(bank, cfg.GridOptions()...)
	} else if g.seedGrid.Bank() != bank {
		return nil, ErrSeedGrid
	}
	return g, nil
}

// Config returns the validated configuration.
func (g *Generator) Config() config.Config { return g.cfg }

// Run executes the search. On cancellation the best grid found so far is
// returned together with ctx.Err().
func (g *Generator) Run(ctx context.Context) (Result, error) {
	runID := uuid.NewString()
	log := g.log.With(zap.String("run_id", runID))
	log.Info("generation started",
		zap.Int("words", g.bank.Len()),
		zap.Int64("seed", g.cfg.Seed),
		zap.Int("num_per_gen", g.cfg.NumPerGen),
		zap.Int("num_children", g.cfg.NumChildren),
		zap.Int("max_rounds", g.cfg.MaxRounds),
		zap.Int("patience", g.cfg.Patience),
		zap.Int("workers", g.workers))
	if g.bank.Len() == 0 {
		log.Warn("word bank is empty; the layout will stay empty")
	}

	res := Result{RunID: runID, State: Initializing}
	start := time.Now()
	pop, moves := g.initialize()
	pop, dups := g.selectNext(pop, nil)
	res.State = Evaluating
	done, fillDups, fillMoves := g.complete(nil, pop, 0)
	moves.Add(fillMoves)
	res.Moves.Add(moves)
	res.Trace = append(res.Trace, done[0].Score)
	g.notify(log, summarize(runID, 0, Evaluating, pop, done, 0, dups+fillDups, false, moves, time.Since(start)))

	stale := 0
	for round := 1; ; round++ {
		if err := ctx.Err(); err != nil {
			res.State = Cancelled
			g.finish(log, &res, done[0])
			log.Warn("generation cancelled", zap.Int("rounds", res.Rounds), zap.Error(err))
			return res, err
		}

		start = time.Now()
		res.State = Evolving
		children, moves := g.evolve(pop, round)

		res.State = Selecting
		prevBest := done[0].Score
		pop, dups = g.selectNext(pop, children)
		done, fillDups, fillMoves = g.complete(done, pop, round)
		moves.Add(fillMoves)
		res.Moves.Add(moves)
		improved := done[0].Score > prevBest
		if improved {
			stale = 0
		} else {
			stale++
		}
		res.Rounds = round
		res.Trace = append(res.Trace, done[0].Score)

		switch {
		case stale >= g.cfg.Patience:
			res.State = Converged
		case round >= g.cfg.MaxRounds:
			res.State = RoundLimitReached
		}
		g.notify(log, summarize(runID, round, res.State, pop, done, len(children), dups+fillDups, improved, moves, time.Since(start)))
		if res.State.Terminal() {
			break
		}
	}

	g.finish(log, &res, done[0])
	log.Info("generation finished",
		zap.Stringer("state", res.State),
		zap.Int("rounds", res.Rounds),
		zap.Float64("best", res.Breakdown.Total),
		zap.Int("placed", res.Best.PlacedCount()),
		zap.Int("failed_moves", res.Moves.Failed))
	return res, nil
}

func (g *Generator) finish(log *zap.Logger, res *Result, best Member) {
	res.Best = best.Grid
	res.Breakdown = best.Breakdown
	log.Debug("best layout", zap.String("grid", best.Grid.Key()), zap.Int("seq", best.Seq))
}

// initialize builds num_per_gen members, each from its own stream.
func (g *Generator) initialize() ([]Member, mutate.Stats) {
	n := g.cfg.NumPerGen
	pop := make([]Member, n)
	stats := make([]mutate.Stats, n)
	g.parallel(n, func(i int) {
		r := rng.Stream(g.cfg.Seed, 0, uint64(i))
		child, st := g.mut.MutateN(g.seedGrid, r, g.cfg.EffectiveInitialMoves())
		pop[i] = g.member(child, i)
		stats[i] = st
	})
	return pop, sum(stats)
}

// evolve produces num_children children of pop for the given round.
func (g *Generator) evolve(pop []Member, round int) ([]Member, mutate.Stats) {
	weights := fitnessWeights(pop)
	n := g.cfg.NumChildren
	base := g.cfg.NumPerGen + (round-1)*n
	children := make([]Member, n)
	stats := make([]mutate.Stats, n)
	g.parallel(n, func(i int) {
		r := rng.Stream(g.cfg.Seed, uint64(round), uint64(i))
		parent := pop[rng.Weighted(r, weights)]
		child, st := g.mut.MutateN(parent.Grid, r, g.cfg.MovesBetweenScores)
		children[i] = g.member(child, base+i)
		stats[i] = st
	})
	return children, sum(stats)
}

// complete fills every ancestor until no word fits and merges the results
// into the previous completed population.
func (g *Generator) complete(prev, pop []Member, round int) ([]Member, int, mutate.Stats) {
	n := len(pop)
	base := round * g.cfg.NumPerGen
	fills := make([]Member, n)
	stats := make([]mutate.Stats, n)
	g.parallel(n, func(i int) {
		r := rng.Stream(g.cfg.Seed, uint64(round), fillStream, uint64(i))
		full, st := g.mut.Fill(pop[i].Grid, r)
		fills[i] = g.member(full, base+i)
		stats[i] = st
	})
	next, dups := g.selectNext(prev, fills)
	return next, dups, sum(stats)
}

func (g *Generator) member(gr *grid.Grid, seq int) Member {
	b := score.Evaluate(gr, g.bank.Len(), g.cfg.Weights)
	return Member{Grid: gr, Score: b.Total, Breakdown: b, Seq: seq}
}

// parallel runs fn(0..n-1) on at most g.workers goroutines and waits for
// all of them. fn must only write to its own index.
func (g *Generator) parallel(n int, fn func(i int)) {
	var eg errgroup.Group
	eg.SetLimit(g.workers)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = eg.Wait()
}

func (g *Generator) notify(log *zap.Logger, s RoundStats) {
	log.Debug("round complete",
		zap.Int("round", s.Round),
		zap.Stringer("state", s.State),
		zap.Float64("best", s.Best),
		zap.Float64("mean", s.Mean),
		zap.Float64("ancestor_best", s.AncestorBest),
		zap.Int("population", s.Population),
		zap.Int("duplicates", s.Duplicates),
		zap.Int("failed_moves", s.Moves.Failed),
		zap.Duration("took", s.Duration))
	for _, o := range g.observers {
		o.ObserveRound(s)
	}
}

// summarize describes a round by its completed population; AncestorBest
// tracks the breeding population.
func summarize(runID string, round int, st State, pop, done []Member, children, dups int, improved bool, moves mutate.Stats, took time.Duration) RoundStats {
	s := RoundStats{
		RunID:        runID,
		Round:        round,
		State:        st,
		Best:         done[0].Score,
		Worst:        done[len(done)-1].Score,
		AncestorBest: pop[0].Score,
		Population:   len(done),
		Children:     children,
		Duplicates:   dups,
		Improved:     improved,
		BestPlaced:   done[0].Grid.PlacedCount(),
		Moves:        moves,
		Duration:     took,
	}
	for _, m := range done {
		s.Mean += m.Score
	}
	s.Mean /= float64(len(done))
	return s
}

func sum(stats []mutate.Stats) mutate.Stats {
	var total mutate.Stats
	for _, s := range stats {
		total.Add(s)
	}
	return total
}
