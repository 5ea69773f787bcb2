// Package rng centralizes deterministic random generation for the search.
//
// Seeding contract:
//   - A run owns exactly one top-level seed (config.Config.Seed).
//   - Every sampling point receives an explicit *rand.Rand; nothing reads the
//     global math/rand source and nothing relies on map iteration order.
//   - Parallel work derives its stream with Stream(seed, keys...), where keys
//     are stable identifiers such as (phase, round, child index). The derived
//     stream depends only on the seed and the keys, never on which worker runs
//     the task or in which order tasks are scheduled.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Never share one across goroutines;
//     derive one per task instead.
package rng

import "math/rand"

// DefaultSeed is used when callers pass seed==0.
const DefaultSeed int64 = 13

// FromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the provided seed verbatim.
//
// Complexity: O(1).
func FromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new 64-bit
// seed with a SplitMix64 finalizer, so neighbouring stream ids give
// uncorrelated seeds.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// Stream returns an independent deterministic RNG for the key path
// seed → keys[0] → keys[1] → ... The same (seed, keys) always yields the
// same sequence.
//
// Complexity: O(len(keys)).
func Stream(seed int64, keys ...uint64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	s := seed
	for _, k := range keys {
		s = DeriveSeed(s, k)
	}
	return rand.New(rand.NewSource(s))
}

// Pick returns a uniformly drawn index in [0, n). n must be positive.
func Pick(r *rand.Rand, n int) int {
	return r.Intn(n)
}

// Shuffle performs an in-place Fisher–Yates shuffle of a using r.
//
// Complexity: O(n) time, O(1) extra space.
func Shuffle[T any](a []T, r *rand.Rand) {
	for i := len(a) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// Weighted draws an index with probability proportional to weights[i].
// Negative weights count as zero. When every weight is zero the draw is
// uniform. Returns -1 for an empty slice.
//
// Complexity: O(n).
func Weighted(r *rand.Rand, weights []float64) int {
	if len(weights) == 0 {
		return -1
	}
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return r.Intn(len(weights))
	}
	x := r.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if x < w {
			return i
		}
		x -= w
	}
	// floating-point residue lands on the last positive weight
	return last
}
