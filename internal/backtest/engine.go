// Package backtest replays historical picks under a staking plan and
// estimates strategy profitability and variance.
package backtest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/algorithms"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/metrics"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
)

// StakingPlan selects how stakes are sized.
type StakingPlan string

const (
	StakeFlat       StakingPlan = "flat"
	StakePercentage StakingPlan = "percentage"
	StakeKelly      StakingPlan = "kelly"
)

// Config configures a replay.
type Config struct {
	InitialBankroll float64     `mapstructure:"initial_bankroll" validate:"gt=0"`
	StakingPlan     StakingPlan `mapstructure:"staking_plan" validate:"oneof=flat percentage kelly"`
	FlatStake       float64     `mapstructure:"flat_stake"`
	StakePercent    float64     `mapstructure:"stake_percent"`
	KellyFraction   float64     `mapstructure:"kelly_fraction"`
	MinConfidence   float64     `mapstructure:"min_confidence"`
	CommissionRate  float64     `mapstructure:"commission_rate" validate:"gte=0,lte=0.1"`
}

// DefaultConfig returns a conservative flat-stake configuration.
func DefaultConfig() Config {
	return Config{
		InitialBankroll: 1000,
		StakingPlan:     StakeFlat,
		FlatStake:       10,
		StakePercent:    0.02,
		KellyFraction:   algorithms.QuarterKelly,
		MinConfidence:   55,
	}
}

// HistoricalPick is one settled prediction supplied by the caller.
type HistoricalPick struct {
	Date       time.Time   `json:"date"`
	MatchTitle string      `json:"matchTitle"`
	Prediction models.Side `json:"prediction"`
	Confidence float64     `json:"confidence"`
	Odds       float64     `json:"odds"`
	Won        bool        `json:"won"`
}

// BetRecord is the flat bet-history row produced per simulated wager.
type BetRecord struct {
	Date          time.Time   `json:"date"`
	MatchTitle    string      `json:"matchTitle"`
	Prediction    models.Side `json:"prediction"`
	Confidence    float64     `json:"confidence"`
	Stake         float64     `json:"stake"`
	Result        string      `json:"result"`
	Profit        float64     `json:"profit"`
	BankrollAfter float64     `json:"bankrollAfter"`
	Odds          float64     `json:"odds"`
}

// Bet results.
const (
	ResultWon  = "won"
	ResultLost = "lost"
)

// Summary aggregates a replay.
type Summary struct {
	RunID             string  `json:"runId,omitempty"`
	TotalBets         int     `json:"totalBets"`
	TotalProfit       float64 `json:"totalProfit"`
	WinRate           float64 `json:"winRate"`
	ROI               float64 `json:"roi"`
	MaxDrawdown       float64 `json:"maxDrawdown"`
	LongestWinStreak  int     `json:"longestWinStreak"`
	LongestLoseStreak int     `json:"longestLoseStreak"`
	FinalBankroll     float64 `json:"finalBankroll"`
}

// Engine replays picks.
type Engine struct {
	config Config
	logger *logrus.Logger
}

// NewEngine creates a backtest engine.
func NewEngine(cfg Config, logger *logrus.Logger) (*Engine, error) {
	if cfg.InitialBankroll <= 0 {
		return nil, fmt.Errorf("initial bankroll must be positive")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{config: cfg, logger: logger}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Replay walks the picks in order, sizing each stake from the current
// bankroll, and returns the bet history plus summary aggregates. Money
// arithmetic runs in decimal so long replays do not drift.
func (e *Engine) Replay(ctx context.Context, picks []HistoricalPick) ([]BetRecord, Summary, error) {
	_ = ctx
	metrics.BacktestRunsTotal.Inc()

	bankroll := decimal.NewFromFloat(e.config.InitialBankroll)
	var records []BetRecord

	for _, pick := range picks {
		if pick.Confidence < e.config.MinConfidence || pick.Odds <= 1 {
			continue
		}
		stake := e.stakeFor(pick, bankroll)
		if stake.LessThanOrEqual(decimal.Zero) {
			continue
		}
		if stake.GreaterThan(bankroll) {
			stake = bankroll
		}

		profit := e.settle(pick, stake)
		bankroll = bankroll.Add(profit)

		record := BetRecord{
			Date:          pick.Date,
			MatchTitle:    pick.MatchTitle,
			Prediction:    pick.Prediction,
			Confidence:    pick.Confidence,
			Stake:         stake.Round(2).InexactFloat64(),
			Result:        ResultLost,
			Profit:        profit.Round(2).InexactFloat64(),
			BankrollAfter: bankroll.Round(2).InexactFloat64(),
			Odds:          pick.Odds,
		}
		if pick.Won {
			record.Result = ResultWon
		}
		records = append(records, record)

		if bankroll.LessThanOrEqual(decimal.Zero) {
			e.logger.Warn("Bankroll exhausted, stopping replay")
			break
		}
	}

	summary := Summarize(records, e.config.InitialBankroll)
	summary.RunID = uuid.NewString()
	e.logger.WithFields(logrus.Fields{
		"run":    summary.RunID,
		"bets":   summary.TotalBets,
		"profit": summary.TotalProfit,
		"roi":    summary.ROI,
	}).Info("Backtest replay complete")
	return records, summary, nil
}

func (e *Engine) stakeFor(pick HistoricalPick, bankroll decimal.Decimal) decimal.Decimal {
	switch e.config.StakingPlan {
	case StakePercentage:
		return bankroll.Mul(decimal.NewFromFloat(e.config.StakePercent))
	case StakeKelly:
		fraction := algorithms.KellyFraction(pick.Confidence/100, pick.Odds, e.config.KellyFraction)
		return bankroll.Mul(decimal.NewFromFloat(fraction))
	default:
		return decimal.NewFromFloat(e.config.FlatStake)
	}
}

func (e *Engine) settle(pick HistoricalPick, stake decimal.Decimal) decimal.Decimal {
	if !pick.Won {
		return stake.Neg()
	}
	profit := stake.Mul(decimal.NewFromFloat(pick.Odds - 1))
	if e.config.CommissionRate > 0 {
		profit = profit.Sub(profit.Mul(decimal.NewFromFloat(e.config.CommissionRate)))
	}
	return profit
}

// Summarize computes the aggregate view of a bet history.
func Summarize(records []BetRecord, initialBankroll float64) Summary {
	summary := Summary{FinalBankroll: initialBankroll}
	if len(records) == 0 {
		return summary
	}

	wins := 0
	totalStaked := 0.0
	peak := initialBankroll
	maxDrawdown := 0.0
	winStreak, loseStreak := 0, 0

	for _, record := range records {
		totalStaked += record.Stake
		summary.TotalProfit += record.Profit

		if record.Result == ResultWon {
			wins++
			winStreak++
			loseStreak = 0
		} else {
			loseStreak++
			winStreak = 0
		}
		if winStreak > summary.LongestWinStreak {
			summary.LongestWinStreak = winStreak
		}
		if loseStreak > summary.LongestLoseStreak {
			summary.LongestLoseStreak = loseStreak
		}

		if record.BankrollAfter > peak {
			peak = record.BankrollAfter
		}
		if peak > 0 {
			drawdown := (peak - record.BankrollAfter) / peak
			if drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	summary.TotalBets = len(records)
	summary.WinRate = float64(wins) / float64(len(records))
	if totalStaked > 0 {
		summary.ROI = summary.TotalProfit / totalStaked
	}
	summary.MaxDrawdown = maxDrawdown
	summary.FinalBankroll = records[len(records)-1].BankrollAfter
	return summary
}
