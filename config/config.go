// Package config holds the flat option set of a generation run: loading
// from YAML, defaults, and validation.
//
// Every option has a default (see Default) and can be overridden on its own.
// Validate must pass before a run starts; the generator calls it itself.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/crossgrid/grid"
	"github.com/katalvlaran/crossgrid/mutate"
	"github.com/katalvlaran/crossgrid/rng"
	"github.com/katalvlaran/crossgrid/score"
)

// Config is the complete parameter set of one run.
type Config struct {
	NumPerGen          int   `yaml:"num_per_gen" json:"num_per_gen" validate:"gte=1"`
	MovesBetweenScores int   `yaml:"moves_between_scores" json:"moves_between_scores" validate:"gte=1"`
	NumChildren        int   `yaml:"num_children" json:"num_children" validate:"gte=1"`
	MaxRounds          int   `yaml:"max_rounds" json:"max_rounds" validate:"gte=1"`
	Patience           int   `yaml:"patience" json:"patience" validate:"gte=1"`
	Seed               int64 `yaml:"seed" json:"seed"`

	// Workers is the size of the child evaluation pool; 0 means GOMAXPROCS.
	Workers int `yaml:"workers" json:"workers" validate:"gte=0"`
	// InitialMoves is the move budget of each initial member; -1 means
	// MovesBetweenScores.
	InitialMoves int `yaml:"initial_moves" json:"initial_moves" validate:"gte=-1"`
	MaxAttempts  int `yaml:"max_attempts" json:"max_attempts" validate:"gte=1"`

	PlaceWeight float64 `yaml:"place_weight" json:"place_weight" validate:"gte=0,finite"`
	PruneWeight float64 `yaml:"prune_weight" json:"prune_weight" validate:"gte=0,finite"`

	Dedupe    bool           `yaml:"dedupe" json:"dedupe"`
	MaxRows   int            `yaml:"max_rows" json:"max_rows" validate:"gte=0"`
	MaxCols   int            `yaml:"max_cols" json:"max_cols" validate:"gte=0"`
	Adjacency grid.Adjacency `yaml:"adjacency" json:"adjacency"`

	score.Weights `yaml:",inline"`
}

// Default returns the stock parameters.
func Default() Config {
	mo := mutate.DefaultOptions()
	return Config{
		NumPerGen:          15,
		MovesBetweenScores: 4,
		NumChildren:        15,
		MaxRounds:          20,
		Patience:           5,
		Seed:               rng.DefaultSeed,
		Workers:            0,
		InitialMoves:       -1,
		MaxAttempts:        mo.MaxAttempts,
		PlaceWeight:        mo.PlaceWeight,
		PruneWeight:        mo.PruneWeight,
		Dedupe:             true,
		Adjacency:          grid.AdjacencyStrict,
		Weights:            score.DefaultWeights(),
	}
}

// Parse decodes YAML over the defaults. Unknown keys are rejected. The
// result is not validated.
func Parse(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return c, nil
}

// Load reads, parses and validates a YAML file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("config: %w", err)
	}
	c, err := Parse(bytes.NewReader(data))
	if err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// YAML encodes c with every option spelled out.
func (c Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// EffectiveWorkers resolves Workers, mapping 0 to GOMAXPROCS.
func (c Config) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// EffectiveInitialMoves resolves InitialMoves, mapping -1 to
// MovesBetweenScores.
func (c Config) EffectiveInitialMoves() int {
	if c.InitialMoves < 0 {
		return c.MovesBetweenScores
	}
	return c.InitialMoves
}

// MutateOptions returns the mutator settings.
func (c Config) MutateOptions() mutate.Options {
	return mutate.Options{PlaceWeight: c.PlaceWeight, PruneWeight: c.PruneWeight, MaxAttempts: c.MaxAttempts}
}

// GridOptions returns the options for empty grids of this run.
func (c Config) GridOptions() []grid.Option {
	opts := []grid.Option{grid.WithAdjacency(c.Adjacency)}
	if c.MaxRows > 0 || c.MaxCols > 0 {
		opts = append(opts, grid.WithMaxSize(c.MaxRows, c.MaxCols))
	}
	return opts
}
