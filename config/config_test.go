package config_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crossgrid/config"
	"github.com/katalvlaran/crossgrid/grid"
	"github.com/katalvlaran/crossgrid/score"
)

func TestDefault_IsValid(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 15, c.NumPerGen)
	assert.Equal(t, 4, c.MovesBetweenScores)
	assert.Equal(t, 15, c.NumChildren)
	assert.Equal(t, 20, c.MaxRounds)
	assert.Equal(t, int64(13), c.Seed)
	assert.Equal(t, score.DefaultWeights(), c.Weights)
	assert.True(t, c.Dedupe)
}

func TestParse_OverridesOnlyGivenKeys(t *testing.T) {
	c, err := config.Parse(strings.NewReader(`
num_children: 30
weight_num_cycles: 250.5
adjacency: shared-crossing
dedupe: false
`))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 30, c.NumChildren)
	assert.Equal(t, 250.5, c.NumCycles)
	assert.Equal(t, grid.AdjacencySharedCrossing, c.Adjacency)
	assert.False(t, c.Dedupe)
	assert.Equal(t, 15, c.NumPerGen, "untouched keys keep their default")
	assert.Equal(t, 500.0, c.PropIntersect)
}

func TestParse_Empty(t *testing.T) {
	c, err := config.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}

func TestParse_Rejects(t *testing.T) {
	for name, src := range map[string]string{
		"unknown key":   "num_childs: 3\n",
		"bad adjacency": "adjacency: loose\n",
		"wrong type":    "max_rounds: many\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse(strings.NewReader(src))
			assert.ErrorIs(t, err, config.ErrConfiguration)
		})
	}
}

func TestValidate_ReportsFieldValueRule(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*config.Config)
		field string
		rule  string
	}{
		{"zero population", func(c *config.Config) { c.NumPerGen = 0 }, "num_per_gen", "gte=1"},
		{"zero rounds", func(c *config.Config) { c.MaxRounds = 0 }, "max_rounds", "gte=1"},
		{"zero patience", func(c *config.Config) { c.Patience = 0 }, "patience", "gte=1"},
		{"negative workers", func(c *config.Config) { c.Workers = -2 }, "workers", "gte=0"},
		{"initial moves below sentinel", func(c *config.Config) { c.InitialMoves = -2 }, "initial_moves", "gte=-1"},
		{"negative weight", func(c *config.Config) { c.PropFilled = -1 }, "weight_prop_filled", "gte=0"},
		{"infinite weight", func(c *config.Config) { c.NumCycles = math.Inf(1) }, "weight_num_cycles", "finite"},
		{"no placements", func(c *config.Config) { c.PlaceWeight = 0 }, "place_weight", "gt=0"},
		{"bad adjacency", func(c *config.Config) { c.Adjacency = 9 }, "adjacency", "oneof=strict shared-crossing"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := config.Default()
			tc.edit(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrConfiguration)

			var ce *config.Error
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.field, ce.Field)
			assert.Equal(t, tc.rule, ce.Rule)
		})
	}
}

func TestValidate_NaNWeight(t *testing.T) {
	c := config.Default()
	c.WordsPlaced = math.NaN()
	assert.ErrorIs(t, c.Validate(), config.ErrConfiguration)
}

func TestYAML_RoundTrip(t *testing.T) {
	c := config.Default()
	c.Seed = 99
	c.MaxRows = 12
	c.Adjacency = grid.AdjacencySharedCrossing

	data, err := c.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "adjacency: shared-crossing")
	assert.Contains(t, string(data), "weight_prop_intersect: 500")

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	back, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDerivedOptions(t *testing.T) {
	c := config.Default()
	c.Workers = 3
	assert.Equal(t, 3, c.EffectiveWorkers())
	c.Workers = 0
	assert.GreaterOrEqual(t, c.EffectiveWorkers(), 1)

	mo := c.MutateOptions()
	assert.Equal(t, 3.0, mo.PlaceWeight)
	assert.Equal(t, 1.0, mo.PruneWeight)
	assert.Equal(t, 64, mo.MaxAttempts)

	assert.Equal(t, c.MovesBetweenScores, c.EffectiveInitialMoves(), "initial moves follow moves_between_scores")
	c.MovesBetweenScores = 7
	assert.Equal(t, 7, c.EffectiveInitialMoves())
	c.InitialMoves = 0
	assert.Zero(t, c.EffectiveInitialMoves())
	c.InitialMoves = 2
	assert.Equal(t, 2, c.EffectiveInitialMoves())

	assert.Len(t, c.GridOptions(), 1)
	c.MaxCols = 10
	assert.Len(t, c.GridOptions(), 2)
}
