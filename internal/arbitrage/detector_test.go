package arbitrage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
)

func twoBookMatch(id string, homeA, awayA, homeB, awayB float64) *models.Match {
	return &models.Match{
		ID: id,
		Odds: &models.Odds{
			LiveOdds: []models.BookQuote{
				{Sportsbook: "alpha", Home: homeA, Away: awayA},
				{Sportsbook: "beta", Home: homeB, Away: awayB},
			},
		},
	}
}

func TestDetectProfitableTwoWay(t *testing.T) {
	d := NewDetector(nil)
	// Best home 2.10 at alpha, best away 2.10 at beta.
	m := twoBookMatch("m1", 2.10, 1.75, 1.78, 2.10)

	opp, err := d.Detect(m)
	require.NoError(t, err)
	assert.InDelta(t, 95.238, opp.ArbitragePercentage, 0.01)
	assert.True(t, opp.IsProfitable())
	assert.InDelta(t, 5.0, opp.PotentialProfit, 0.01)
	assert.Equal(t, "alpha", opp.BestHome.Sportsbook)
	assert.Equal(t, "beta", opp.BestAway.Sportsbook)
	assert.Equal(t, "two-way", opp.Market)
}

func TestDetectNoArbitrage(t *testing.T) {
	d := NewDetector(nil)
	m := twoBookMatch("m1", 1.80, 1.80, 1.78, 1.79)

	opp, err := d.Detect(m)
	require.NoError(t, err)
	assert.False(t, opp.IsProfitable())
	assert.Greater(t, opp.ArbitragePercentage, 100.0)
	assert.Zero(t, opp.PotentialProfit)
}

func TestDetectRequiresTwoBooks(t *testing.T) {
	d := NewDetector(nil)

	_, err := d.Detect(&models.Match{ID: "m1"})
	assert.ErrorIs(t, err, models.ErrInsufficientBooks)

	single := &models.Match{ID: "m1", Odds: &models.Odds{
		LiveOdds: []models.BookQuote{{Sportsbook: "alpha", Home: 2.0, Away: 2.0}},
	}}
	_, err = d.Detect(single)
	assert.ErrorIs(t, err, models.ErrInsufficientBooks)
}

func TestDetectThreeWayMarket(t *testing.T) {
	d := NewDetector(nil)
	m := &models.Match{
		ID: "m1",
		Odds: &models.Odds{
			LiveOdds: []models.BookQuote{
				{Sportsbook: "alpha", Home: 3.4, Away: 3.5, Draw: 3.2},
				{Sportsbook: "beta", Home: 3.5, Away: 3.4, Draw: 3.3},
			},
		},
	}

	opp, err := d.Detect(m)
	require.NoError(t, err)
	assert.Equal(t, "three-way", opp.Market)
	require.NotNil(t, opp.BestDraw)
	assert.Equal(t, 3.3, opp.BestDraw.Odds)
	// 1/3.5 + 1/3.5 + 1/3.3 < 1: profitable.
	assert.True(t, opp.IsProfitable())
}

func TestScanAllFiltersUnprofitable(t *testing.T) {
	d := NewDetector(nil)
	matches := []*models.Match{
		twoBookMatch("arb", 2.10, 1.75, 1.78, 2.10),
		twoBookMatch("efficient", 1.80, 1.80, 1.78, 1.79),
		{ID: "no-odds"},
	}

	found := d.ScanAll(matches)
	require.Len(t, found, 1)
	assert.Equal(t, "arb", found[0].MatchID)
}
