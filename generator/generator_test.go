package generator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/crossgrid/config"
	"github.com/katalvlaran/crossgrid/generator"
	"github.com/katalvlaran/crossgrid/grid"
	"github.com/katalvlaran/crossgrid/wordbank"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var animals = []string{"CAT", "CAR", "ART", "RAT", "TAR", "ARC", "ACT", "TRACE", "CRATE", "REACT"}

type GeneratorSuite struct {
	suite.Suite
	bank *wordbank.Bank
	cfg  config.Config
}

func (s *GeneratorSuite) SetupTest() {
	s.bank = wordbank.MustFromStrings(animals...)
	s.cfg = config.Default()
	s.cfg.MaxRounds = 8
	s.cfg.Patience = 8
}

func (s *GeneratorSuite) run(cfg config.Config, opts ...generator.Option) generator.Result {
	gen, err := generator.New(s.bank, cfg, opts...)
	s.Require().NoError(err)
	res, err := gen.Run(context.Background())
	s.Require().NoError(err)
	return res
}

func (s *GeneratorSuite) TestReproducibleAcrossWorkerCounts() {
	one := s.cfg
	one.Workers = 1
	many := s.cfg
	many.Workers = 8

	a := s.run(one)
	b := s.run(many)
	c := s.run(many)

	s.Equal(a.Trace, b.Trace)
	s.Equal(b.Trace, c.Trace)
	s.Empty(cmp.Diff(a.Best.Snapshot(), b.Best.Snapshot()))
	s.Equal(a.Breakdown, b.Breakdown)
	s.Equal(a.Moves, b.Moves)
	s.NotEqual(a.RunID, b.RunID)
}

func (s *GeneratorSuite) TestTraceIsMonotoneAndComplete() {
	res := s.run(s.cfg)
	s.Len(res.Trace, res.Rounds+1)
	for i := 1; i < len(res.Trace); i++ {
		s.GreaterOrEqual(res.Trace[i], res.Trace[i-1], "elitist selection never loses the best")
	}
	s.Equal(res.Trace[len(res.Trace)-1], res.Score())
	s.LessOrEqual(res.Rounds, s.cfg.MaxRounds)
	s.True(res.State.Terminal())
}

func (s *GeneratorSuite) TestRoundLimit() {
	cfg := s.cfg
	cfg.MaxRounds = 3
	cfg.Patience = 10
	res := s.run(cfg)
	s.Equal(generator.RoundLimitReached, res.State)
	s.Equal(3, res.Rounds)
}

func (s *GeneratorSuite) TestObserverSeesEveryRound() {
	var rounds []generator.RoundStats
	res := s.run(s.cfg, generator.WithObserver(generator.ObserverFunc(func(rs generator.RoundStats) {
		rounds = append(rounds, rs)
	})))

	s.Require().Len(rounds, res.Rounds+1)
	for i, rs := range rounds {
		s.Equal(i, rs.Round)
		s.Equal(res.RunID, rs.RunID)
		s.Equal(res.Trace[i], rs.Best)
		s.LessOrEqual(rs.Worst, rs.Mean+1e-9)
		s.LessOrEqual(rs.Mean, rs.Best+1e-9)
	}
	s.Equal(generator.Evaluating, rounds[0].State)
	s.Zero(rounds[0].Children)
	s.Equal(s.cfg.NumChildren, rounds[1].Children)
	s.Equal(res.State, rounds[len(rounds)-1].State)
}

func (s *GeneratorSuite) TestBestIsComplete() {
	res := s.run(s.cfg)
	s.Positive(res.Best.PlacedCount())
	for _, id := range res.Best.Unplaced() {
		for c := range res.Best.CandidatePositions(id).Legal(res.Best) {
			s.Failf("word still fits", "%s at %s %s", s.bank.Word(id).Text, c.Start, c.Dir)
		}
	}
}

func (s *GeneratorSuite) TestLogsCarryRunID() {
	core, logs := observer.New(zap.InfoLevel)
	res := s.run(s.cfg, generator.WithLogger(zap.New(core)))

	finished := logs.FilterMessage("generation finished").All()
	s.Require().Len(finished, 1)
	s.Equal(res.RunID, finished[0].ContextMap()["run_id"])
	s.Equal(res.State.String(), finished[0].ContextMap()["state"])
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorSuite))
}

func TestNew_FailsFastOnBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.NumChildren = 0
	called := false
	_, err := generator.New(wordbank.MustFromStrings("CAT"), cfg,
		generator.WithObserver(generator.ObserverFunc(func(generator.RoundStats) { called = true })))

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfiguration)
	var ce *config.Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "num_children", ce.Field)
	assert.False(t, called)
}

func TestNew_SeedGridFromOtherBank(t *testing.T) {
	other := grid.New(wordbank.MustFromStrings("DOG"))
	_, err := generator.New(wordbank.MustFromStrings("CAT"), config.Default(), generator.WithSeedGrid(other))
	assert.ErrorIs(t, err, generator.ErrSeedGrid)
}

func TestRun_EmptyBankTerminates(t *testing.T) {
	cfg := config.Default()
	gen, err := generator.New(nil, cfg)
	require.NoError(t, err)

	res, err := gen.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, generator.Converged, res.State)
	assert.Equal(t, cfg.Patience, res.Rounds)
	assert.Zero(t, res.Best.PlacedCount())
	assert.Zero(t, res.Score())
}

func TestRun_FindsFullyCrossedLayout(t *testing.T) {
	bank := wordbank.MustFromStrings("CAT", "CAR", "ART")
	for _, seed := range []int64{0, 1, 7, 42} {
		cfg := config.Default()
		cfg.Seed = seed
		gen, err := generator.New(bank, cfg)
		require.NoError(t, err)

		res, err := gen.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, res.Best.PlacedCount(), "seed %d:\n%s", seed, res.Best)
		assert.Len(t, res.Best.ConnectedComponents(), 1)
		assert.Equal(t, 2, res.Best.Intersections())
	}
}

func TestRun_SeedGridIsKept(t *testing.T) {
	bank := wordbank.MustFromStrings("CAT", "CAR", "ART", "TAR")
	seed, err := grid.New(bank).Place(0, grid.Coord{}, wordbank.Across)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.PruneWeight = 0
	gen, err := generator.New(bank, cfg, generator.WithSeedGrid(seed))
	require.NoError(t, err)
	res, err := gen.Run(context.Background())
	require.NoError(t, err)

	p, ok := res.Best.PlacementOf(0)
	require.True(t, ok, "CAT is never pruned")
	assert.Equal(t, grid.Coord{}, p.Start)
}

func TestRun_ParsedSeedGrid(t *testing.T) {
	bank := wordbank.MustFromStrings("CAT", "CAR", "ART", "TAR")
	cfg := config.Default()
	cfg.PruneWeight = 0
	seed, err := grid.Parse(bank, "CAT\nA..\nR..", cfg.GridOptions()...)
	require.NoError(t, err)

	gen, err := generator.New(bank, cfg, generator.WithSeedGrid(seed))
	require.NoError(t, err)
	res, err := gen.Run(context.Background())
	require.NoError(t, err)

	for _, text := range []string{"CAT", "CAR"} {
		id, _ := bank.Lookup(text)
		want, _ := seed.PlacementOf(id)
		got, ok := res.Best.PlacementOf(id)
		require.True(t, ok, "%s stays placed", text)
		assert.Equal(t, want.Start, got.Start)
		assert.Equal(t, want.Dir, got.Dir)
	}
}

func TestRun_CancelledBeforeFirstRound(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen, err := generator.New(wordbank.MustFromStrings(animals...), config.Default())
	require.NoError(t, err)
	res, err := gen.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, generator.Cancelled, res.State)
	assert.Zero(t, res.Rounds)
	require.NotNil(t, res.Best)
	assert.Len(t, res.Trace, 1)
}

func TestRun_CancelledAtRoundBoundary(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Default()
	cfg.Patience = 100
	cfg.MaxRounds = 100
	stop := generator.ObserverFunc(func(rs generator.RoundStats) {
		if rs.Round == 2 {
			cancel()
		}
	})
	gen, err := generator.New(wordbank.MustFromStrings(animals...), cfg, generator.WithObserver(stop))
	require.NoError(t, err)

	res, err := gen.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, generator.Cancelled, res.State)
	assert.Equal(t, 2, res.Rounds, "the round in flight completes")
	assert.Len(t, res.Trace, 3)
	assert.Greater(t, res.Score(), 0.0)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "round-limit-reached", generator.RoundLimitReached.String())
	assert.Equal(t, "unknown", generator.State(42).String())
	assert.False(t, generator.Selecting.Terminal())
	assert.True(t, generator.Cancelled.Terminal())
}
