package algorithms

import (
	"context"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/strength"
)

// MLPowerIndex reweights the base prediction around recency-biased form,
// net-rating matchup advantage and a simulated time-series momentum
// term, then pulls extreme values back toward the mean. The "ML" is a
// heuristic reweighting, not a trained model.
type MLPowerIndex struct {
	deps Deps
}

const (
	powerFloor = 40.0
	powerCeil  = 85.0

	// Recent three games carry 1.5x the weight of the full-sample
	// difference; the combined form signal is scaled by 0.6.
	recentFormBias  = 1.5
	formSignalScale = 0.6
	formPointScale  = 10.0

	matchupScale = 0.1

	// Bayesian pull-to-mean: compress the tails at 0.7.
	compressHigh = 70.0
	compressLow  = 45.0
	compressRate = 0.7
)

// NewMLPowerIndex creates the variant.
func NewMLPowerIndex(deps Deps) *MLPowerIndex {
	return &MLPowerIndex{deps: deps}
}

// ID returns the algorithm identifier.
func (a *MLPowerIndex) ID() string {
	return models.AlgorithmMLPower
}

// Predict derives the power-index confidence for a match.
func (a *MLPowerIndex) Predict(ctx context.Context, match *models.Match) (*models.Prediction, error) {
	if match == nil || match.ID == "" {
		return nil, models.ErrMatchIDRequired
	}
	if locked := a.deps.cached(match.ID, a.ID()); locked != nil {
		return locked, nil
	}
	if _, err := a.deps.Engine.Predict(ctx, match, nil); err != nil {
		return nil, err
	}

	score := 50.0
	score += a.formComponent(match)
	score += a.matchupComponent(match)
	score += timeSeriesMomentum(match.HomeTeam.RecentForm) - timeSeriesMomentum(match.AwayTeam.RecentForm)
	score += match.League.Profile().PowerCalibration

	side, raw := pickFromAxis(score)
	raw = pullToMean(raw)

	prediction := a.deps.finalize(match, a.ID(), side, raw, powerFloor, powerCeil)
	a.deps.lock(match, prediction)
	return prediction, nil
}

// formComponent combines the full-sample form difference with a
// recency-biased 3-game subsample.
func (a *MLPowerIndex) formComponent(match *models.Match) float64 {
	fullHome, okFH := strength.WeightedFormWinPct(match.HomeTeam.RecentForm)
	fullAway, okFA := strength.WeightedFormWinPct(match.AwayTeam.RecentForm)
	if !okFH || !okFA {
		return 0
	}
	recentHome, _ := strength.WeightedFormWinPct(truncateForm(match.HomeTeam.RecentForm, 3))
	recentAway, _ := strength.WeightedFormWinPct(truncateForm(match.AwayTeam.RecentForm, 3))

	recentDiff := recentHome - recentAway
	fullDiff := fullHome - fullAway
	return (recentDiff*recentFormBias + fullDiff) * formSignalScale * formPointScale
}

// matchupComponent is the offense/defense net-rating advantage.
func (a *MLPowerIndex) matchupComponent(match *models.Match) float64 {
	home := strength.Compute(match.HomeTeam)
	away := strength.Compute(match.AwayTeam)
	netHome := home.Offense - away.Defense
	netAway := away.Offense - home.Defense
	return (netHome - netAway) * matchupScale
}

// timeSeriesMomentum is a weighted sum over the last five results, most
// recent weighted highest, scaled onto roughly +/-6 points.
func timeSeriesMomentum(form []models.FormResult) float64 {
	form = truncateForm(form, 5)
	if len(form) == 0 {
		return 0
	}
	weighted := 0.0
	totalWeight := 0.0
	n := len(form)
	for i, result := range form {
		weight := float64(n - i)
		totalWeight += weight
		if result == models.FormWin {
			weighted += weight
		} else {
			weighted -= weight
		}
	}
	return weighted / totalWeight * 6
}

func pullToMean(raw float64) float64 {
	switch {
	case raw > compressHigh:
		return compressHigh + (raw-compressHigh)*compressRate
	case raw < compressLow:
		return compressLow + (raw-compressLow)*compressRate
	}
	return raw
}

func truncateForm(form []models.FormResult, n int) []models.FormResult {
	if len(form) > n {
		return form[:n]
	}
	return form
}
