package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
)

func cachedMatch(id, algorithmID string) *models.Match {
	return &models.Match{
		ID:       id,
		HomeTeam: models.Team{ID: "h", Name: "Home"},
		AwayTeam: models.Team{ID: "a", Name: "Away"},
		Prediction: &models.Prediction{
			AlgorithmID: algorithmID,
			Recommended: models.SideHome,
			Confidence:  62.5,
		},
	}
}

func TestPutFirstWriteWins(t *testing.T) {
	pc := New(time.Minute, 10, nil)

	first := pc.Put(cachedMatch("m1", "primary"), 0)
	require.NotNil(t, first)

	// A second write for the same match and algorithm is ignored.
	second := pc.Put(cachedMatch("m1", "primary"), 0)
	assert.Same(t, first, second)

	entry := pc.Get(Key{MatchID: "m1", AlgorithmID: "primary"})
	require.NotNil(t, entry)
	assert.Equal(t, 62.5, entry.Match.Prediction.Confidence)
}

func TestKeysSeparateAlgorithms(t *testing.T) {
	pc := New(time.Minute, 10, nil)
	pc.Put(cachedMatch("m1", "primary"), 0)
	pc.Put(cachedMatch("m1", "ml_power_index"), 0)

	assert.True(t, pc.HasCached(Key{MatchID: "m1", AlgorithmID: "primary"}))
	assert.True(t, pc.HasCached(Key{MatchID: "m1", AlgorithmID: "ml_power_index"}))
	assert.False(t, pc.HasCached(Key{MatchID: "m1", AlgorithmID: "value_pick_finder"}))
	assert.Equal(t, 2, pc.ItemCount())
}

func TestPutWithoutPredictionUsesPrimaryKey(t *testing.T) {
	pc := New(time.Minute, 10, nil)

	m := cachedMatch("m1", "")
	m.Prediction = nil
	require.NotNil(t, pc.Put(m, 0))

	assert.True(t, pc.HasCached(Key{MatchID: "m1", AlgorithmID: models.AlgorithmPrimary}))
}

func TestEntryExpiry(t *testing.T) {
	pc := New(time.Minute, 10, nil)
	pc.Put(cachedMatch("m1", "primary"), 10*time.Millisecond)

	key := Key{MatchID: "m1", AlgorithmID: "primary"}
	require.True(t, pc.HasCached(key))

	time.Sleep(20 * time.Millisecond)
	assert.False(t, pc.HasCached(key))
	assert.Nil(t, pc.Get(key))
}

func TestCapacityEvictsOldest(t *testing.T) {
	pc := New(time.Minute, 10, nil)
	for i := 0; i < 11; i++ {
		pc.Put(cachedMatch(fmt.Sprintf("m%d", i), "primary"), 0)
	}

	// The oldest entry was evicted to make room.
	assert.False(t, pc.HasCached(Key{MatchID: "m0", AlgorithmID: "primary"}))
	assert.True(t, pc.HasCached(Key{MatchID: "m10", AlgorithmID: "primary"}))
	assert.LessOrEqual(t, pc.ItemCount(), 10)
}

func TestClearResetsStats(t *testing.T) {
	pc := New(time.Minute, 10, nil)
	pc.Put(cachedMatch("m1", "primary"), 0)
	pc.Get(Key{MatchID: "m1", AlgorithmID: "primary"})
	pc.Get(Key{MatchID: "missing", AlgorithmID: "primary"})

	hits, misses, ratio := pc.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.InDelta(t, 0.5, ratio, 1e-9)

	pc.Clear()
	assert.Zero(t, pc.ItemCount())
	hits, misses, _ = pc.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestSweepRemovesExpired(t *testing.T) {
	pc := New(time.Minute, 10, nil)
	pc.Put(cachedMatch("m1", "primary"), 10*time.Millisecond)
	pc.Put(cachedMatch("m2", "primary"), time.Minute)

	time.Sleep(20 * time.Millisecond)
	removed := pc.Sweep()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, pc.ItemCount())
}

func TestPutRejectsIncompleteInput(t *testing.T) {
	pc := New(time.Minute, 10, nil)
	assert.Nil(t, pc.Put(nil, 0))
	assert.Nil(t, pc.Put(&models.Match{}, 0))
}
