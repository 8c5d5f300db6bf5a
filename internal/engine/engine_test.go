package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/cache"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/league"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
)

func newTestEngine() *Engine {
	return New(cache.New(time.Minute, 100, nil), nil, nil)
}

func match(id string, lg league.League, home, away models.Team) *models.Match {
	home.ID, home.Name = "h", "Home"
	away.ID, away.Name = "a", "Away"
	return &models.Match{ID: id, League: lg, HomeTeam: home, AwayTeam: away}
}

func TestPredictNeutralDefaultsToHome(t *testing.T) {
	eng := newTestEngine()
	m := match("m1", league.Unknown, models.Team{}, models.Team{})

	p, err := eng.Predict(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Equal(t, models.SideHome, p.Recommended, "50 exactly ties to home")
	assert.Equal(t, 50.0, p.Confidence)
}

func TestPredictFavorsStrongerHome(t *testing.T) {
	eng := newTestEngine()
	strong := models.Team{
		Record:     "60-20",
		RecentForm: []models.FormResult{models.FormWin, models.FormWin, models.FormWin},
	}
	weak := models.Team{
		Record:     "20-60",
		RecentForm: []models.FormResult{models.FormLoss, models.FormLoss, models.FormLoss},
	}
	m := match("m1", league.NBA, strong, weak)

	p, err := eng.Predict(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Equal(t, models.SideHome, p.Recommended)
	assert.GreaterOrEqual(t, p.Confidence, 40.0)
	assert.LessOrEqual(t, p.Confidence, 85.0)
	require.NotNil(t, p.ProjectedScore)
	assert.Greater(t, p.ProjectedScore.Home, p.ProjectedScore.Away)
}

func TestPredictFavorsStrongerAway(t *testing.T) {
	eng := newTestEngine()
	weak := models.Team{Record: "15-65", RecentForm: []models.FormResult{models.FormLoss, models.FormLoss, models.FormLoss, models.FormLoss}}
	strong := models.Team{Record: "65-15", RecentForm: []models.FormResult{models.FormWin, models.FormWin, models.FormWin, models.FormWin}}
	m := match("m1", league.NBA, weak, strong)

	p, err := eng.Predict(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Equal(t, models.SideAway, p.Recommended)
}

func TestPredictIsIdempotent(t *testing.T) {
	eng := newTestEngine()
	m := match("m1", league.NFL, models.Team{Record: "10-6"}, models.Team{Record: "8-8"})

	first, err := eng.Predict(context.Background(), m, nil)
	require.NoError(t, err)
	second, err := eng.Predict(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Same(t, first, second, "repeat invocations return the cached object")
}

func TestPredictHeadToHeadShiftsConfidence(t *testing.T) {
	eng := newTestEngine()
	base, err := eng.Predict(context.Background(),
		match("m1", league.NHL, models.Team{Record: "40-40"}, models.Team{Record: "40-40"}), nil)
	require.NoError(t, err)

	dominant, err := eng.Predict(context.Background(),
		match("m2", league.NHL, models.Team{Record: "40-40"}, models.Team{Record: "40-40"}),
		&HeadToHead{HomeWins: 9, AwayWins: 1})
	require.NoError(t, err)

	assert.Greater(t, dominant.Confidence, base.Confidence)
}

func TestPredictRequiresMatchID(t *testing.T) {
	eng := newTestEngine()
	_, err := eng.Predict(context.Background(), nil, nil)
	assert.ErrorIs(t, err, models.ErrMatchIDRequired)

	_, err = eng.Predict(context.Background(), &models.Match{}, nil)
	assert.ErrorIs(t, err, models.ErrMatchIDRequired)
}

func TestPredictMLBRouting(t *testing.T) {
	eng := newTestEngine()
	m := match("m1", league.MLB, models.Team{Record: "95-45"}, models.Team{Record: "55-85"})

	p, err := eng.Predict(context.Background(), m, &HeadToHead{HomeWins: 4, AwayWins: 1})
	require.NoError(t, err)
	assert.Equal(t, models.SideHome, p.Recommended)
	assert.GreaterOrEqual(t, p.Confidence, 45.0)
	assert.LessOrEqual(t, p.Confidence, 75.0)
	require.NotNil(t, p.ProjectedScore)
	assert.GreaterOrEqual(t, p.ProjectedScore.Home, 0.0)
}

func TestPredictMLBIsDeterministicPreCache(t *testing.T) {
	// Two engines, same match id: the seeded jitter must agree.
	m1 := match("mlb-42", league.MLB, models.Team{Record: "81-81"}, models.Team{Record: "81-81"})
	m2 := match("mlb-42", league.MLB, models.Team{Record: "81-81"}, models.Team{Record: "81-81"})

	p1, err := newTestEngine().Predict(context.Background(), m1, nil)
	require.NoError(t, err)
	p2, err := newTestEngine().Predict(context.Background(), m2, nil)
	require.NoError(t, err)

	assert.Equal(t, p1.Confidence, p2.Confidence)
	assert.Equal(t, p1.Recommended, p2.Recommended)
}
