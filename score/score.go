// Package score computes the fitness of a grid.
//
// Fitness is a weighted sum of six dimensionless metrics:
//
//	prop_filled    letter cells / bounding-rectangle cells
//	prop_intersect placed words crossing at least one other / placed words
//	num_cycles     cycle rank of the intersection graph / bank size
//	num_intersect  intersection cells / bank size
//	words_placed   placed words / bank size
//	non_square     (max(r,c)² − r·c) / max(r,c)², subtracted
//
// Count terms are divided by the bank size, a constant for the whole run, so
// placing a word that adds an intersection can never lower them. An empty
// grid scores 0. Evaluate is pure.
package score

import (
	"github.com/katalvlaran/crossgrid/grid"
)

// Metric names, also used as the breakdown keys in exports.
const (
	NonSquare     = "non_square"
	PropFilled    = "prop_filled"
	PropIntersect = "prop_intersect"
	NumCycles     = "num_cycles"
	NumIntersect  = "num_intersect"
	WordsPlaced   = "words_placed"
)

// Weights are the non-negative multipliers of each metric.
type Weights struct {
	NonSquare     float64 `yaml:"weight_non_square" json:"weight_non_square" validate:"gte=0,finite"`
	PropFilled    float64 `yaml:"weight_prop_filled" json:"weight_prop_filled" validate:"gte=0,finite"`
	PropIntersect float64 `yaml:"weight_prop_intersect" json:"weight_prop_intersect" validate:"gte=0,finite"`
	NumCycles     float64 `yaml:"weight_num_cycles" json:"weight_num_cycles" validate:"gte=0,finite"`
	NumIntersect  float64 `yaml:"weight_num_intersect" json:"weight_num_intersect" validate:"gte=0,finite"`
	WordsPlaced   float64 `yaml:"weight_words_placed" json:"weight_words_placed" validate:"gte=0,finite"`
}

// DefaultWeights favour intersections and cycles far above fill.
func DefaultWeights() Weights {
	return Weights{
		NonSquare:     2,
		PropFilled:    10,
		PropIntersect: 500,
		NumCycles:     1000,
		NumIntersect:  100,
		WordsPlaced:   10,
	}
}

// Term is one metric's contribution.
type Term struct {
	Metric   string  `json:"metric" yaml:"metric"`
	Raw      float64 `json:"raw" yaml:"raw"`
	Weight   float64 `json:"weight" yaml:"weight"`
	Weighted float64 `json:"weighted" yaml:"weighted"` // signed: non_square is negative
}

// Breakdown lists every term in a fixed order and their sum.
type Breakdown struct {
	Terms []Term  `json:"terms" yaml:"terms"`
	Total float64 `json:"total" yaml:"total"`
}

// Term returns the named term, if present.
func (b Breakdown) Term(metric string) (Term, bool) {
	for _, t := range b.Terms {
		if t.Metric == metric {
			return t, true
		}
	}
	return Term{}, false
}

// Raw holds the unweighted metrics of a grid.
type Raw struct {
	NonSquare     float64
	PropFilled    float64
	PropIntersect float64
	NumCycles     float64
	NumIntersect  float64
	WordsPlaced   float64
}

// Measure computes the unweighted metrics. bankSize below the number of
// placed words is raised to it.
//
// Complexity: O(F + W) for F filled cells and W placed words.
func Measure(g *grid.Grid, bankSize int) Raw {
	placed := g.PlacedCount()
	if placed == 0 {
		return Raw{}
	}
	n := float64(max(bankSize, placed))

	ig := g.IntersectionGraph()
	crossing := 0
	for _, v := range ig.Vertices() {
		if d, _ := ig.Degree(v); d > 0 {
			crossing++
		}
	}

	rows, cols := g.Dimensions()
	side := float64(max(rows, cols))
	area := float64(rows * cols)

	return Raw{
		NonSquare:     (side*side - area) / (side * side),
		PropFilled:    float64(g.FilledCells()) / area,
		PropIntersect: float64(crossing) / float64(placed),
		NumCycles:     float64(ig.CycleRank()) / n,
		NumIntersect:  float64(g.Intersections()) / n,
		WordsPlaced:   float64(placed) / n,
	}
}

// Evaluate returns the weighted breakdown of g.
func Evaluate(g *grid.Grid, bankSize int, w Weights) Breakdown {
	r := Measure(g, bankSize)
	terms := []Term{
		{Metric: NonSquare, Raw: r.NonSquare, Weight: w.NonSquare, Weighted: -w.NonSquare * r.NonSquare},
		{Metric: PropFilled, Raw: r.PropFilled, Weight: w.PropFilled, Weighted: w.PropFilled * r.PropFilled},
		{Metric: PropIntersect, Raw: r.PropIntersect, Weight: w.PropIntersect, Weighted: w.PropIntersect * r.PropIntersect},
		{Metric: NumCycles, Raw: r.NumCycles, Weight: w.NumCycles, Weighted: w.NumCycles * r.NumCycles},
		{Metric: NumIntersect, Raw: r.NumIntersect, Weight: w.NumIntersect, Weighted: w.NumIntersect * r.NumIntersect},
		{Metric: WordsPlaced, Raw: r.WordsPlaced, Weight: w.WordsPlaced, Weighted: w.WordsPlaced * r.WordsPlaced},
	}
	total := 0.0
	for _, t := range terms {
		total += t.Weighted
	}
	return Breakdown{Terms: terms, Total: total}
}

// Score returns the fitness of g.
func Score(g *grid.Grid, bankSize int, w Weights) float64 {
	return Evaluate(g, bankSize, w).Total
}
