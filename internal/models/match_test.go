package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMatch() *Match {
	return &Match{
		ID:       "m1",
		HomeTeam: Team{ID: "h", Name: "Hawks"},
		AwayTeam: Team{ID: "a", Name: "Bulls"},
		Odds:     &Odds{Home: 1.9, Away: 2.1},
	}
}

func TestWithPredictionIsNonDestructive(t *testing.T) {
	original := testMatch()
	annotated := original.WithPrediction(&Prediction{AlgorithmID: AlgorithmPrimary})

	require.NotNil(t, annotated.Prediction)
	assert.Nil(t, original.Prediction, "source match must not be mutated")
	assert.Equal(t, original.ID, annotated.ID)
	assert.Same(t, original.Odds, annotated.Odds)
}

func TestTitleAndTeam(t *testing.T) {
	m := testMatch()
	assert.Equal(t, "Bulls @ Hawks", m.Title())
	assert.Equal(t, "Hawks", m.Team(SideHome).Name)
	assert.Equal(t, "Bulls", m.Team(SideAway).Name)
	assert.Empty(t, m.Team(SideDraw).Name)
}

func TestImpliedProbability(t *testing.T) {
	odds := &Odds{Home: 2.0, Away: 0}
	assert.InDelta(t, 0.5, odds.ImpliedProbability(SideHome), 1e-9)
	assert.Zero(t, odds.ImpliedProbability(SideAway))

	var nilOdds *Odds
	assert.Zero(t, nilOdds.ImpliedProbability(SideHome))
}

func TestQuotesByTime(t *testing.T) {
	now := time.Now()
	odds := &Odds{LiveOdds: []BookQuote{
		{Sportsbook: "b", UpdatedAt: now},
		{Sportsbook: "a", UpdatedAt: now.Add(-time.Hour)},
	}}

	sorted := odds.QuotesByTime()
	require.Len(t, sorted, 2)
	assert.Equal(t, "a", sorted[0].Sportsbook)
	assert.Equal(t, "b", odds.LiveOdds[0].Sportsbook, "source slice untouched")
}

func TestSideOpposite(t *testing.T) {
	assert.Equal(t, SideAway, SideHome.Opposite())
	assert.Equal(t, SideHome, SideAway.Opposite())
	assert.Equal(t, SideDraw, SideDraw.Opposite())
}
