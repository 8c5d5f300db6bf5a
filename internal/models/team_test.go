package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWinPct(t *testing.T) {
	team := Team{Record: "41-31"}
	pct, ok := team.WinPct()
	require.True(t, ok)
	assert.InDelta(t, 41.0/72.0, pct, 1e-9)

	_, ok = Team{Record: ""}.WinPct()
	assert.False(t, ok)

	_, ok = Team{Record: "garbage"}.WinPct()
	assert.False(t, ok)

	_, ok = Team{Record: "0-0"}.WinPct()
	assert.False(t, ok)
}

func TestRecentWinRate(t *testing.T) {
	team := Team{RecentForm: []FormResult{FormWin, FormWin, FormLoss, FormLoss, FormLoss}}

	rate, ok := team.RecentWinRate(0)
	require.True(t, ok)
	assert.InDelta(t, 0.4, rate, 1e-9)

	rate, ok = team.RecentWinRate(2)
	require.True(t, ok)
	assert.InDelta(t, 1.0, rate, 1e-9)

	_, ok = Team{}.RecentWinRate(5)
	assert.False(t, ok)
}

func TestStreaks(t *testing.T) {
	assert.Equal(t, 3, Team{RecentForm: []FormResult{FormLoss, FormLoss, FormLoss, FormWin}}.LosingStreak())
	assert.Equal(t, 0, Team{RecentForm: []FormResult{FormWin, FormLoss}}.LosingStreak())
	assert.Equal(t, 2, Team{RecentForm: []FormResult{FormWin, FormWin, FormLoss}}.WinStreak())
}

func TestStatFallback(t *testing.T) {
	team := Team{Stats: map[string]float64{"pace": 101.5}}
	assert.Equal(t, 101.5, team.Stat("pace", 100))
	assert.Equal(t, 100.0, team.Stat("missing", 100))
}
