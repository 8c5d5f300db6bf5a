package backtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applogger "github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/logger"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
)

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	eng, err := NewEngine(cfg, applogger.NewLogger("error"))
	require.NoError(t, err)
	return eng
}

func pickAt(day int, confidence, odds float64, won bool) HistoricalPick {
	return HistoricalPick{
		Date:       time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		MatchTitle: "Away @ Home",
		Prediction: models.SideHome,
		Confidence: confidence,
		Odds:       odds,
		Won:        won,
	}
}

func TestReplayFlatStaking(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinConfidence = 0
	eng := newTestEngine(t, cfg)

	picks := []HistoricalPick{
		pickAt(0, 60, 2.0, true),  // +10
		pickAt(1, 60, 2.0, false), // -10
		pickAt(2, 60, 1.5, true),  // +5
	}

	records, summary, err := eng.Replay(context.Background(), picks)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, 1010.0, records[0].BankrollAfter)
	assert.Equal(t, 1000.0, records[1].BankrollAfter)
	assert.Equal(t, 1005.0, records[2].BankrollAfter)

	assert.Equal(t, 3, summary.TotalBets)
	assert.InDelta(t, 5.0, summary.TotalProfit, 1e-9)
	assert.InDelta(t, 2.0/3.0, summary.WinRate, 1e-9)
	assert.InDelta(t, 5.0/30.0, summary.ROI, 1e-9)
	assert.Equal(t, 1005.0, summary.FinalBankroll)
}

func TestReplayFiltersLowConfidence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinConfidence = 55
	eng := newTestEngine(t, cfg)

	picks := []HistoricalPick{
		pickAt(0, 50, 2.0, true), // filtered
		pickAt(1, 60, 2.0, true),
		pickAt(2, 60, 1.0, true), // no payout, filtered
	}

	records, summary, err := eng.Replay(context.Background(), picks)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, summary.TotalBets)
}

func TestReplayStopsOnExhaustedBankroll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialBankroll = 15
	cfg.FlatStake = 10
	cfg.MinConfidence = 0
	eng := newTestEngine(t, cfg)

	picks := []HistoricalPick{
		pickAt(0, 60, 2.0, false), // bankroll 5
		pickAt(1, 60, 2.0, false), // stake capped at 5, bankroll 0, stop
		pickAt(2, 60, 2.0, true),  // never reached
	}

	records, _, err := eng.Replay(context.Background(), picks)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 0.0, records[1].BankrollAfter)
}

func TestReplayCommission(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinConfidence = 0
	cfg.CommissionRate = 0.05
	eng := newTestEngine(t, cfg)

	records, _, err := eng.Replay(context.Background(), []HistoricalPick{pickAt(0, 60, 2.0, true)})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 9.5, records[0].Profit, 1e-9)
}

func TestReplayKellyStaking(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StakingPlan = StakeKelly
	cfg.MinConfidence = 0
	eng := newTestEngine(t, cfg)

	// Positive edge sizes a stake; negative edge stakes nothing.
	records, _, err := eng.Replay(context.Background(), []HistoricalPick{
		pickAt(0, 60, 2.0, true),
		pickAt(1, 40, 2.0, true),
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Greater(t, records[0].Stake, 0.0)
}

func TestSummarizeStreaksAndDrawdown(t *testing.T) {
	records := []BetRecord{
		{Result: ResultWon, Stake: 10, Profit: 10, BankrollAfter: 110},
		{Result: ResultWon, Stake: 10, Profit: 10, BankrollAfter: 120},
		{Result: ResultLost, Stake: 10, Profit: -10, BankrollAfter: 110},
		{Result: ResultLost, Stake: 10, Profit: -10, BankrollAfter: 100},
		{Result: ResultLost, Stake: 10, Profit: -10, BankrollAfter: 90},
		{Result: ResultWon, Stake: 10, Profit: 10, BankrollAfter: 100},
	}

	summary := Summarize(records, 100)
	assert.Equal(t, 2, summary.LongestWinStreak)
	assert.Equal(t, 3, summary.LongestLoseStreak)
	assert.InDelta(t, 0.25, summary.MaxDrawdown, 1e-9, "peak 120 to trough 90")
	assert.Equal(t, 100.0, summary.FinalBankroll)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, 500)
	assert.Zero(t, summary.TotalBets)
	assert.Equal(t, 500.0, summary.FinalBankroll)
}

func TestNewEngineRejectsBadBankroll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialBankroll = 0
	_, err := NewEngine(cfg, nil)
	assert.Error(t, err)
}
