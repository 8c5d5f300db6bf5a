package backtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func winHeavyRecords() []BetRecord {
	var records []BetRecord
	for i := 0; i < 20; i++ {
		record := BetRecord{Stake: 10, Odds: 2.0, Confidence: 70, Result: ResultWon}
		if i%4 == 3 {
			record.Result = ResultLost
		}
		records = append(records, record)
	}
	return records
}

func TestMonteCarloDeterministicWithSeed(t *testing.T) {
	ctx := context.Background()
	cfg := MonteCarloConfig{Iterations: 200, Seed: 42, InitialBankroll: 1000}

	first, err := RunMonteCarlo(ctx, winHeavyRecords(), cfg)
	require.NoError(t, err)
	second, err := RunMonteCarlo(ctx, winHeavyRecords(), cfg)
	require.NoError(t, err)

	assert.Equal(t, first.MeanReturn, second.MeanReturn)
	assert.Equal(t, first.Distribution, second.Distribution)
}

func TestMonteCarloProfitableHistory(t *testing.T) {
	result, err := RunMonteCarlo(context.Background(), winHeavyRecords(),
		MonteCarloConfig{Iterations: 500, Seed: 7, InitialBankroll: 1000})
	require.NoError(t, err)

	// 15 wins and 5 losses at evens: +100 regardless of order.
	assert.Greater(t, result.MeanReturn, 0.0)
	assert.Equal(t, 1.0, result.ProbabilityOfProfit)
	assert.Zero(t, result.ProbabilityOfRuin)
	assert.Len(t, result.Distribution, 500)
	assert.Contains(t, result.Percentiles, "p50")
}

func TestMonteCarloResampledOutcomesVary(t *testing.T) {
	result, err := RunMonteCarlo(context.Background(), winHeavyRecords(),
		MonteCarloConfig{Iterations: 500, Seed: 7, InitialBankroll: 1000, ResampleOutcomes: true})
	require.NoError(t, err)

	// Redrawing outcomes from confidence produces a spread of endings.
	assert.Greater(t, result.StdReturn, 0.0)
	assert.GreaterOrEqual(t, result.VaR95, -1.0)
	assert.LessOrEqual(t, result.ProbabilityOfProfit, 1.0)
}

func TestMonteCarloRequiresRecords(t *testing.T) {
	_, err := RunMonteCarlo(context.Background(), nil, MonteCarloConfig{})
	assert.Error(t, err)
}
