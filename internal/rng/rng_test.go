package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterministicForSameKey(t *testing.T) {
	a := New("match-123", "weather")
	b := New("match-123", "weather")
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestSaltsSeparateStreams(t *testing.T) {
	a := New("match-123", "weather")
	b := New("match-123", "matchup")
	assert.NotEqual(t, a.Float64(), b.Float64())
}

func TestDifferentIDsDiffer(t *testing.T) {
	a := New("match-1", "weather")
	b := New("match-2", "weather")
	assert.NotEqual(t, a.Float64(), b.Float64())
}

func TestRangeBounds(t *testing.T) {
	r := New("match-123", "bounds")
	for i := 0; i < 1000; i++ {
		v := r.Range(-5, 5)
		assert.GreaterOrEqual(t, v, -5.0)
		assert.Less(t, v, 5.0)
	}
}

func TestIntnBounds(t *testing.T) {
	r := New("match-123", "intn")
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := r.Intn(4)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 4)
		seen[v] = true
	}
	assert.Len(t, seen, 4, "all buckets should be reachable")
}
