package generator

import (
	"time"

	"github.com/katalvlaran/crossgrid/mutate"
)

// RoundStats summarizes one completed round. Round 0 is the initial
// population. Scores and sizes describe the completed population.
type RoundStats struct {
	RunID        string
	Round        int
	State        State // Selecting, or the terminal state if the run stops here
	Best         float64
	Mean         float64
	Worst        float64
	AncestorBest float64 // best score of the breeding population
	Population   int
	Children     int
	Duplicates   int // members dropped by grid-key deduplication
	Improved     bool
	BestPlaced   int
	Moves        mutate.Stats
	Duration     time.Duration
}

// Observer receives round summaries. Calls come from the goroutine running
// Run, in round order.
type Observer interface {
	ObserveRound(RoundStats)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(RoundStats)

// ObserveRound implements Observer.
func (f ObserverFunc) ObserveRound(s RoundStats) { f(s) }
