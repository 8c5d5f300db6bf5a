package backtest

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// MonteCarloConfig configures the resampling run.
type MonteCarloConfig struct {
	Iterations      int
	Seed            int64
	InitialBankroll float64
	// ResampleOutcomes redraws each bet's result from its confidence
	// instead of replaying the observed result in shuffled order.
	ResampleOutcomes bool
}

// MonteCarloResult holds the resampled profit/drawdown distribution.
type MonteCarloResult struct {
	Iterations          int                `json:"iterations"`
	MeanReturn          float64            `json:"meanReturn"`
	StdReturn           float64            `json:"stdReturn"`
	VaR95               float64            `json:"var95"`
	VaR99               float64            `json:"var99"`
	ProbabilityOfProfit float64            `json:"probabilityOfProfit"`
	ProbabilityOfRuin   float64            `json:"probabilityOfRuin"`
	Percentiles         map[string]float64 `json:"percentiles"`
	Distribution        []float64          `json:"distribution"`
}

// RunMonteCarlo resamples a replayed bet history: each iteration
// shuffles the bet order (and optionally redraws outcomes by
// confidence) and walks the bankroll forward.
func RunMonteCarlo(ctx context.Context, records []BetRecord, cfg MonteCarloConfig) (MonteCarloResult, error) {
	_ = ctx
	if len(records) == 0 {
		return MonteCarloResult{}, fmt.Errorf("no bet records to resample")
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1000
	}
	if cfg.InitialBankroll <= 0 {
		cfg.InitialBankroll = records[0].BankrollAfter - records[0].Profit
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(seed))
	distribution := make([]float64, cfg.Iterations)
	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}

	for iteration := 0; iteration < cfg.Iterations; iteration++ {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		bankroll := cfg.InitialBankroll
		for _, idx := range order {
			record := records[idx]
			won := record.Result == ResultWon
			if cfg.ResampleOutcomes {
				won = rng.Float64() < record.Confidence/100
			}
			if won {
				bankroll += record.Stake * (record.Odds - 1)
			} else {
				bankroll -= record.Stake
			}
			if bankroll <= 0 {
				bankroll = 0
				break
			}
		}
		distribution[iteration] = bankroll
	}

	sorted := append([]float64{}, distribution...)
	sort.Float64s(sorted)

	initial := cfg.InitialBankroll
	result := MonteCarloResult{
		Iterations:          cfg.Iterations,
		MeanReturn:          (stat.Mean(sorted, nil) - initial) / initial,
		StdReturn:           stat.StdDev(sorted, nil) / initial,
		VaR95:               (stat.Quantile(0.05, stat.Empirical, sorted, nil) - initial) / initial,
		VaR99:               (stat.Quantile(0.01, stat.Empirical, sorted, nil) - initial) / initial,
		ProbabilityOfProfit: fractionAbove(sorted, initial),
		ProbabilityOfRuin:   fractionAtOrBelow(sorted, 0),
		Percentiles: map[string]float64{
			"p10": stat.Quantile(0.10, stat.Empirical, sorted, nil),
			"p50": stat.Quantile(0.50, stat.Empirical, sorted, nil),
			"p90": stat.Quantile(0.90, stat.Empirical, sorted, nil),
		},
		Distribution: distribution,
	}
	return result, nil
}

func fractionAbove(sorted []float64, threshold float64) float64 {
	count := 0
	for _, v := range sorted {
		if v > threshold {
			count++
		}
	}
	return float64(count) / float64(len(sorted))
}

func fractionAtOrBelow(sorted []float64, threshold float64) float64 {
	count := 0
	for _, v := range sorted {
		if v <= threshold {
			count++
		}
	}
	return float64(count) / float64(len(sorted))
}
