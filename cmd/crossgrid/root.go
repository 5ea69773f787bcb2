package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/crossgrid/config"
	"github.com/katalvlaran/crossgrid/grid"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	verbose    bool
	configPath string
	adjacency  string
	flags      config.Config // flag values; only changed flags are applied

	log *zap.Logger
}

func newRootCmd(a *app) *cobra.Command {
	a.flags = config.Default()
	a.adjacency = a.flags.Adjacency.String()
	ownLogger := a.log == nil

	root := &cobra.Command{
		Use:          "crossgrid",
		Short:        "Evolve compact, well-connected crossword grids",
		SilenceUsage: true,
		Long: `crossgrid places words from a list on an unbounded grid and improves the
layout with a seeded genetic search. The same seed, words and parameters
always produce the same grid.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !ownLogger {
				return nil
			}
			zc := zap.NewProductionConfig()
			if a.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")

	d := &a.flags
	pf.IntVar(&d.NumPerGen, "num-per-gen", d.NumPerGen, "population size kept after each round")
	pf.IntVar(&d.MovesBetweenScores, "moves-between-scores", d.MovesBetweenScores, "mutations applied to each child")
	pf.IntVar(&d.NumChildren, "num-children", d.NumChildren, "children bred per round")
	pf.IntVar(&d.MaxRounds, "max-rounds", d.MaxRounds, "upper bound on rounds")
	pf.IntVar(&d.Patience, "patience", d.Patience, "rounds without improvement before stopping")
	pf.Int64Var(&d.Seed, "seed", d.Seed, "random seed")
	pf.IntVar(&d.Workers, "workers", d.Workers, "child evaluation workers (0 = GOMAXPROCS)")
	pf.IntVar(&d.InitialMoves, "initial-moves", d.InitialMoves, "moves applied to each initial member; -1 uses --moves-between-scores")
	pf.IntVar(&d.MaxAttempts, "max-attempts", d.MaxAttempts, "placements tried per add-word move before giving up")
	pf.Float64Var(&d.PlaceWeight, "place-weight", d.PlaceWeight, "relative weight of add-word moves")
	pf.Float64Var(&d.PruneWeight, "prune-weight", d.PruneWeight, "relative weight of leaf-removal moves")
	pf.BoolVar(&d.Dedupe, "dedupe", d.Dedupe, "drop population members with identical layouts")
	pf.IntVar(&d.MaxRows, "max-rows", d.MaxRows, "maximum grid height (0 = unbounded)")
	pf.IntVar(&d.MaxCols, "max-cols", d.MaxCols, "maximum grid width (0 = unbounded)")
	pf.StringVar(&a.adjacency, "adjacency", a.adjacency, "adjacency rule: strict or shared-crossing")
	pf.Float64Var(&d.NonSquare, "weight-non-square", d.NonSquare, "penalty weight for non-square bounds")
	pf.Float64Var(&d.PropFilled, "weight-prop-filled", d.PropFilled, "weight of the filled-cell proportion")
	pf.Float64Var(&d.PropIntersect, "weight-prop-intersect", d.PropIntersect, "weight of the intersection proportion")
	pf.Float64Var(&d.NumCycles, "weight-num-cycles", d.NumCycles, "weight of intersection-graph cycles")
	pf.Float64Var(&d.NumIntersect, "weight-num-intersect", d.NumIntersect, "weight of the intersection count")
	pf.Float64Var(&d.WordsPlaced, "weight-words-placed", d.WordsPlaced, "weight of the placed-word count")

	root.AddCommand(newGenerateCmd(a), newConfigCmd(a))
	return root
}

// overrides maps each configuration flag to the field it sets.
var overrides = []struct {
	flag  string
	apply func(dst *config.Config, src config.Config)
}{
	{"num-per-gen", func(d *config.Config, s config.Config) { d.NumPerGen = s.NumPerGen }},
	{"moves-between-scores", func(d *config.Config, s config.Config) { d.MovesBetweenScores = s.MovesBetweenScores }},
	{"num-children", func(d *config.Config, s config.Config) { d.NumChildren = s.NumChildren }},
	{"max-rounds", func(d *config.Config, s config.Config) { d.MaxRounds = s.MaxRounds }},
	{"patience", func(d *config.Config, s config.Config) { d.Patience = s.Patience }},
	{"seed", func(d *config.Config, s config.Config) { d.Seed = s.Seed }},
	{"workers", func(d *config.Config, s config.Config) { d.Workers = s.Workers }},
	{"initial-moves", func(d *config.Config, s config.Config) { d.InitialMoves = s.InitialMoves }},
	{"max-attempts", func(d *config.Config, s config.Config) { d.MaxAttempts = s.MaxAttempts }},
	{"place-weight", func(d *config.Config, s config.Config) { d.PlaceWeight = s.PlaceWeight }},
	{"prune-weight", func(d *config.Config, s config.Config) { d.PruneWeight = s.PruneWeight }},
	{"dedupe", func(d *config.Config, s config.Config) { d.Dedupe = s.Dedupe }},
	{"max-rows", func(d *config.Config, s config.Config) { d.MaxRows = s.MaxRows }},
	{"max-cols", func(d *config.Config, s config.Config) { d.MaxCols = s.MaxCols }},
	{"weight-non-square", func(d *config.Config, s config.Config) { d.NonSquare = s.NonSquare }},
	{"weight-prop-filled", func(d *config.Config, s config.Config) { d.PropFilled = s.PropFilled }},
	{"weight-prop-intersect", func(d *config.Config, s config.Config) { d.PropIntersect = s.PropIntersect }},
	{"weight-num-cycles", func(d *config.Config, s config.Config) { d.NumCycles = s.NumCycles }},
	{"weight-num-intersect", func(d *config.Config, s config.Config) { d.NumIntersect = s.NumIntersect }},
	{"weight-words-placed", func(d *config.Config, s config.Config) { d.WordsPlaced = s.WordsPlaced }},
}

// effectiveConfig layers the defaults, the --config file and the flags the
// user set, then validates the result.
func (a *app) effectiveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return cfg, err
		}
	}
	fs := cmd.Flags()
	for _, o := range overrides {
		if fs.Changed(o.flag) {
			o.apply(&cfg, a.flags)
		}
	}
	if fs.Changed("adjacency") {
		adj, err := grid.ParseAdjacency(a.adjacency)
		if err != nil {
			return cfg, &config.Error{Field: "adjacency", Value: a.adjacency, Rule: "oneof=strict shared-crossing"}
		}
		cfg.Adjacency = adj
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	a.log.Debug("configuration resolved",
		zap.String("file", a.configPath),
		zap.Int64("seed", cfg.Seed),
		zap.Stringer("adjacency", cfg.Adjacency))
	return cfg, nil
}
