// Package rng provides a deterministic per-match pseudo-random source.
//
// Situational and matchup modeling needs "randomness" that is stable for a
// given match id, so repeated evaluations of the same match produce the
// same flavor. The generator is an xorshift64* stream seeded from an
// FNV-1a hash of the match id plus a per-consumer salt.
package rng

import "github.com/segmentio/fasthash/fnv1a"

// Rand is a small deterministic generator. Not safe for concurrent use;
// callers create one per evaluation.
type Rand struct {
	state uint64
}

// New returns a generator keyed by a stable id and a salt that separates
// independent consumers of the same match.
func New(id, salt string) *Rand {
	h := fnv1a.HashString64(id)
	h = fnv1a.AddString64(h, salt)
	if h == 0 {
		h = 0x9e3779b97f4a7c15
	}
	return &Rand{state: h}
}

func (r *Rand) next() uint64 {
	x := r.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.state = x
	return x * 0x2545f4914f6cdd1d
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.next()>>11) / (1 << 53)
}

// Range returns a value in [min, max).
func (r *Rand) Range(min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// Intn returns a value in [0, n). n must be positive.
func (r *Rand) Intn(n int) int {
	return int(r.Float64() * float64(n))
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.Float64() < p
}
