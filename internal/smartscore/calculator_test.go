package smartscore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/cache"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/engine"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/league"
	applogger "github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/logger"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
)

func newCalculator() *Calculator {
	log := applogger.NewLogger("error")
	return NewCalculator(engine.New(cache.New(time.Minute, 100, log), nil, log), log)
}

func scoredMatch(id string, lg league.League) *models.Match {
	return &models.Match{
		ID:     id,
		League: lg,
		HomeTeam: models.Team{
			ID: "h", Name: "Home", Record: "50-25",
			RecentForm: []models.FormResult{models.FormWin, models.FormWin, models.FormWin},
		},
		AwayTeam: models.Team{
			ID: "a", Name: "Away", Record: "30-45",
			RecentForm: []models.FormResult{models.FormLoss, models.FormLoss, models.FormLoss, models.FormLoss},
		},
		Odds: &models.Odds{
			Home: 1.9,
			Away: 2.0,
			LiveOdds: []models.BookQuote{
				{Sportsbook: "alpha", Home: 1.92, Away: 1.98, UpdatedAt: time.Now().Add(-2 * time.Hour)},
				{Sportsbook: "beta", Home: 1.88, Away: 2.02, UpdatedAt: time.Now()},
			},
		},
	}
}

func TestScoreWithinBounds(t *testing.T) {
	calc := newCalculator()
	for i := 0; i < 20; i++ {
		score, err := calc.Score(context.Background(), scoredMatch(fmt.Sprintf("m%d", i), league.NBA))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score.Overall, 0.0)
		assert.LessOrEqual(t, score.Overall, 100.0)
	}
}

func TestScoreHasAllSixFactors(t *testing.T) {
	calc := newCalculator()
	score, err := calc.Score(context.Background(), scoredMatch("m1", league.NFL))
	require.NoError(t, err)

	for _, factor := range []string{FactorMomentum, FactorValue, FactorMovement, FactorWeather, FactorInjuries, FactorArbitrage} {
		assert.Contains(t, score.Components, factor)
		assert.Contains(t, score.Factors, factor)
		assert.GreaterOrEqual(t, score.Components[factor], 0.0)
		assert.LessOrEqual(t, score.Components[factor], 100.0)
	}
}

func TestScoreRecommendationThresholds(t *testing.T) {
	tests := []struct {
		overall float64
		action  string
	}{
		{80, models.ActionStrong},
		{65, models.ActionModerate},
		{50, models.ActionNeutral},
		{30, models.ActionAvoid},
	}
	for _, tt := range tests {
		rec := recommend(tt.overall, map[string]float64{FactorMomentum: 70, FactorValue: 45}, false)
		assert.Equal(t, tt.action, rec.Action, "overall %.0f", tt.overall)
		assert.Equal(t, FactorMomentum, rec.KeyFactor, "largest deviation from neutral wins")
	}
}

func TestRecommendSkipsAbsentArbitrage(t *testing.T) {
	components := map[string]float64{
		FactorMomentum:  62,
		FactorValue:     55,
		FactorMovement:  48,
		FactorWeather:   50,
		FactorInjuries:  50,
		FactorArbitrage: 0,
	}

	rec := recommend(62, components, false)
	assert.Equal(t, FactorMomentum, rec.KeyFactor,
		"a zero arbitrage component must not outrank factors that contributed")

	rec = recommend(70, components, true)
	assert.Equal(t, FactorArbitrage, rec.KeyFactor)
}

func TestScoreKeyFactorIgnoresMissingArbitrage(t *testing.T) {
	calc := newCalculator()
	for i := 0; i < 10; i++ {
		score, err := calc.Score(context.Background(), scoredMatch(fmt.Sprintf("kf%d", i), league.NBA))
		require.NoError(t, err)
		require.False(t, score.HasArbitrageOpportunity)
		assert.NotEqual(t, FactorArbitrage, score.Recommendation.KeyFactor)
		assert.NotEmpty(t, score.Recommendation.KeyFactor)
	}
}

func TestScoreDegradesWithoutOdds(t *testing.T) {
	calc := newCalculator()
	m := scoredMatch("no-odds", league.NBA)
	m.Odds = nil

	score, err := calc.Score(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, 50.0, score.Components[FactorValue])
	assert.Equal(t, 0.0, score.Components[FactorArbitrage])
	assert.False(t, score.HasArbitrageOpportunity)
}

func TestScoreFlagsArbitrage(t *testing.T) {
	calc := newCalculator()
	m := scoredMatch("arb", league.NBA)
	m.Odds.LiveOdds = []models.BookQuote{
		{Sportsbook: "alpha", Home: 2.10, Away: 1.75},
		{Sportsbook: "beta", Home: 1.78, Away: 2.10},
	}

	score, err := calc.Score(context.Background(), m)
	require.NoError(t, err)
	assert.True(t, score.HasArbitrageOpportunity)
	assert.GreaterOrEqual(t, score.Components[FactorArbitrage], 60.0)
}

func TestScoreRequiresMatchID(t *testing.T) {
	calc := newCalculator()
	_, err := calc.Score(context.Background(), nil)
	assert.ErrorIs(t, err, models.ErrMatchIDRequired)
}

func TestMomentumFactorStreaks(t *testing.T) {
	m := scoredMatch("m1", league.MLB)
	score, _ := momentumFactor(m, &models.Prediction{Confidence: 55})
	// Home on a 3-win streak (+12), away on a 4-loss streak (+12 more).
	assert.Greater(t, score, 50.0)
}

func TestWeatherFactorDomeIsNeutral(t *testing.T) {
	m := scoredMatch("m1", league.NBA)
	score, explanation := weatherFactor(m)
	assert.Equal(t, 55.0, score)
	assert.NotEmpty(t, explanation)
}
