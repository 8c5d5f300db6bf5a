// Package main provides the entry point for the backtesting CLI tool.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/backtest"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/config"
	applogger "github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/logger"
)

var (
	configFile string
	picksFile  string
	outputFile string
	staking    string
	bankroll   float64
	iterations int
	seed       int64
	resample   bool

	logger *logrus.Logger
	cfg    *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&picksFile, "picks", "p", "", "Path to settled picks JSON file (required)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output path for results (default stdout)")
	rootCmd.PersistentFlags().StringVar(&staking, "staking", "", "Override staking plan: flat, percentage, kelly")
	rootCmd.PersistentFlags().Float64Var(&bankroll, "bankroll", 0, "Override initial bankroll")

	montecarloCmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "Number of Monte Carlo iterations")
	montecarloCmd.Flags().Int64Var(&seed, "seed", 0, "PRNG seed (0 uses wall-clock)")
	montecarloCmd.Flags().BoolVar(&resample, "resample-outcomes", false, "Redraw outcomes from confidence instead of shuffling observed results")
}

var rootCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay settled picks under a staking plan",
	Long:  `Replay a settled pick history to measure profitability, drawdown and streaks, or resample it with Monte Carlo to estimate risk.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if picksFile == "" {
			return fmt.Errorf("--picks is required")
		}
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logger = applogger.NewLogger(cfg.App.LogLevel)
		return nil
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay picks chronologically",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReplay(context.Background())
	},
}

var montecarloCmd = &cobra.Command{
	Use:   "montecarlo",
	Short: "Resample the replayed history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMonteCarlo(context.Background())
	},
}

func main() {
	rootCmd.AddCommand(replayCmd, montecarloCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func buildConfig() backtest.Config {
	btCfg := backtest.DefaultConfig()
	btCfg.InitialBankroll = cfg.Backtest.InitialBankroll
	if cfg.Backtest.StakingPlan != "" {
		btCfg.StakingPlan = backtest.StakingPlan(cfg.Backtest.StakingPlan)
	}
	if cfg.Backtest.FlatStake > 0 {
		btCfg.FlatStake = cfg.Backtest.FlatStake
	}
	if cfg.Backtest.StakePercent > 0 {
		btCfg.StakePercent = cfg.Backtest.StakePercent
	}
	if cfg.Backtest.KellyFraction > 0 {
		btCfg.KellyFraction = cfg.Backtest.KellyFraction
	}
	btCfg.MinConfidence = cfg.Backtest.MinConfidence
	btCfg.CommissionRate = cfg.Backtest.CommissionRate

	if staking != "" {
		btCfg.StakingPlan = backtest.StakingPlan(staking)
	}
	if bankroll > 0 {
		btCfg.InitialBankroll = bankroll
	}
	return btCfg
}

func readPicks() ([]backtest.HistoricalPick, error) {
	data, err := os.ReadFile(picksFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read picks file: %w", err)
	}

	var picks []backtest.HistoricalPick
	if err := json.Unmarshal(data, &picks); err != nil {
		return nil, fmt.Errorf("failed to parse picks JSON: %w", err)
	}
	return picks, nil
}

func runReplay(ctx context.Context) error {
	picks, err := readPicks()
	if err != nil {
		return err
	}

	btCfg := buildConfig()
	eng, err := backtest.NewEngine(btCfg, logger)
	if err != nil {
		return err
	}

	records, summary, err := eng.Replay(ctx, picks)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"bets":    summary.TotalBets,
		"winRate": summary.WinRate,
		"roi":     summary.ROI,
	}).Info("Replay finished")

	return writeResult(struct {
		Summary backtest.Summary     `json:"summary"`
		History []backtest.BetRecord `json:"history"`
	}{summary, records})
}

func runMonteCarlo(ctx context.Context) error {
	picks, err := readPicks()
	if err != nil {
		return err
	}

	btCfg := buildConfig()
	eng, err := backtest.NewEngine(btCfg, logger)
	if err != nil {
		return err
	}

	records, _, err := eng.Replay(ctx, picks)
	if err != nil {
		return err
	}

	mcIterations := cfg.Backtest.MonteCarloIterations
	if iterations > 0 {
		mcIterations = iterations
	}

	result, err := backtest.RunMonteCarlo(ctx, records, backtest.MonteCarloConfig{
		Iterations:       mcIterations,
		Seed:             seed,
		InitialBankroll:  btCfg.InitialBankroll,
		ResampleOutcomes: resample,
	})
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"iterations":   result.Iterations,
		"meanReturn":   result.MeanReturn,
		"probOfProfit": result.ProbabilityOfProfit,
	}).Info("Monte Carlo finished")

	return writeResult(result)
}

func writeResult(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outputFile, data, 0o644)
}
