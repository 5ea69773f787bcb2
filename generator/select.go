package generator

import (
	"cmp"
	"slices"
)

// selectNext merges parents and children into the next population: optional
// deduplication by grid key keeping the earliest discovery, then ranking by
// score (higher first), filled cells (fewer first) and discovery order, then
// truncation to num_per_gen. It returns the number of duplicates dropped.
//
// Complexity: O(m log m + m·A) for m members of bounding area A.
func (g *Generator) selectNext(parents, children []Member) ([]Member, int) {
	all := make([]Member, 0, len(parents)+len(children))
	all = append(all, parents...)
	all = append(all, children...)

	dups := 0
	if g.cfg.Dedupe {
		slices.SortFunc(all, func(a, b Member) int { return cmp.Compare(a.Seq, b.Seq) })
		seen := make(map[string]struct{}, len(all))
		kept := all[:0]
		for _, m := range all {
			k := m.Grid.Key()
			if _, dup := seen[k]; dup {
				dups++
				continue
			}
			seen[k] = struct{}{}
			kept = append(kept, m)
		}
		all = kept
	}

	slices.SortFunc(all, rank)
	if len(all) > g.cfg.NumPerGen {
		all = all[:g.cfg.NumPerGen]
	}
	return all, dups
}

func rank(a, b Member) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Grid.FilledCells(), b.Grid.FilledCells()); c != 0 {
		return c
	}
	return cmp.Compare(a.Seq, b.Seq)
}

// fitnessWeights turns scores into selection weights. When every score is
// positive the scores are used as they are. Otherwise they are shifted so
// the worst member weighs 1/len(pop) of the spread and can still be drawn.
// Equal scores give equal weights and rng.Weighted draws uniformly.
func fitnessWeights(pop []Member) []float64 {
	lo, hi := pop[0].Score, pop[0].Score
	for _, m := range pop[1:] {
		lo = min(lo, m.Score)
		hi = max(hi, m.Score)
	}
	w := make([]float64, len(pop))
	if lo > 0 {
		for i, m := range pop {
			w[i] = m.Score
		}
		return w
	}
	floor := (hi - lo) / float64(len(pop))
	for i, m := range pop {
		w[i] = m.Score - lo + floor
	}
	return w
}
