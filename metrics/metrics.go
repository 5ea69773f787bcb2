// Package metrics exports generation progress as Prometheus metrics.
//
// A Recorder registers its collectors on the Registerer it is given (never
// the global default) and implements generator.Observer, so it is wired in
// with generator.WithObserver. All metric operations are safe for
// concurrent use.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/crossgrid/generator"
)

const namespace = "crossgrid"

// Recorder holds the generation collectors.
type Recorder struct {
	Rounds          *prometheus.CounterVec
	BestFitness     prometheus.Gauge
	MeanFitness     prometheus.Gauge
	AncestorFitness prometheus.Gauge
	PlacedWords     prometheus.Gauge
	Children        prometheus.Counter
	Duplicates      prometheus.Counter
	Moves           *prometheus.CounterVec
	RoundDuration   prometheus.Histogram
}

// NewRecorder creates the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		Rounds: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_total",
			Help:      "Completed generation rounds by resulting state",
		}, []string{"state"}),
		BestFitness: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_fitness",
			Help:      "Best fitness among completed grids",
		}),
		MeanFitness: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mean_fitness",
			Help:      "Mean fitness of the completed grids",
		}),
		AncestorFitness: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ancestor_best_fitness",
			Help:      "Best fitness in the breeding population",
		}),
		PlacedWords: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_placed_words",
			Help:      "Words placed in the best grid",
		}),
		Children: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "children_total",
			Help:      "Child grids produced",
		}),
		Duplicates: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_total",
			Help:      "Population members dropped as duplicate layouts",
		}),
		Moves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Mutation moves by outcome",
		}, []string{"outcome"}),
		RoundDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "round_duration_seconds",
			Help:      "Wall time of one generation round",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		}),
	}
}

// ObserveRound implements generator.Observer.
func (r *Recorder) ObserveRound(s generator.RoundStats) {
	r.Rounds.WithLabelValues(s.State.String()).Inc()
	r.BestFitness.Set(s.Best)
	r.MeanFitness.Set(s.Mean)
	r.AncestorFitness.Set(s.AncestorBest)
	r.PlacedWords.Set(float64(s.BestPlaced))
	r.Children.Add(float64(s.Children))
	r.Duplicates.Add(float64(s.Duplicates))
	r.Moves.WithLabelValues("applied").Add(float64(s.Moves.Applied))
	r.Moves.WithLabelValues("failed").Add(float64(s.Moves.Failed))
	r.RoundDuration.Observe(s.Duration.Seconds())
}

var _ generator.Observer = (*Recorder)(nil)
