// Package crossgrid lays out crossword grids from a list of words.
//
// Words are placed on an unbounded two-dimensional grid, across or down,
// crossing each other where letters agree. A seeded genetic search breeds
// mutated copies of the best layouts, scores them and keeps the fittest,
// so the same seed, words and parameters always give the same grid.
//
// The module is organized as small packages, bottom-up:
//
//	rng/       seeding contract and derived sub-streams
//	graph/     undirected integer graph: components, cycle rank, leaves
//	wordbank/  word list loading and normalization
//	grid/      immutable copy-on-write grid with placement legality
//	score/     weighted fitness with a per-metric breakdown
//	mutate/    random add-word and prune-leaf moves
//	config/    run parameters, YAML loading and validation
//	generator/ population search state machine
//	metrics/   Prometheus observer for generation rounds
//	render/    text, styled and structured (JSON/YAML) output
//	cmd/crossgrid  the command line front end
//
// Quick example:
//
//	bank := wordbank.MustFromStrings("CAT", "CAR", "ART")
//	gen, _ := generator.New(bank, config.Default())
//	res, _ := gen.Run(ctx)
//	fmt.Println(render.Framed(res.Best)) // for example:
//
//	######
//	##CAT#
//	##A###
//	#ART##
//	######
package crossgrid
