// Package algorithms implements the three specialized prediction
// variants. Each starts from the cached base prediction, re-derives
// confidence with its own weighting scheme, runs the raw value through
// confidence calibration, and is locked per match id like the base model.
package algorithms

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/cache"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/calibration"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/engine"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/injury"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/metrics"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
)

// Algorithm is one prediction variant.
type Algorithm interface {
	ID() string
	Predict(ctx context.Context, match *models.Match) (*models.Prediction, error)
}

// Deps carries the collaborators shared by all variants.
type Deps struct {
	Engine      *engine.Engine
	Calibration *calibration.Service
	// Injuries is optional; a nil resolver means the record-derived
	// fallback is always used.
	Injuries *injury.Resolver
	Logger   *logrus.Logger
}

// All constructs the three variants in their canonical order.
func All(deps Deps) []Algorithm {
	return []Algorithm{
		NewMLPowerIndex(deps),
		NewValuePickFinder(deps),
		NewStatisticalEdge(deps),
	}
}

// cached returns the locked prediction for this variant if one is live.
func (d Deps) cached(matchID, algorithmID string) *models.Prediction {
	entry := d.Engine.Cache().Get(cache.Key{MatchID: matchID, AlgorithmID: algorithmID})
	if entry == nil || entry.Match.Prediction == nil {
		return nil
	}
	return entry.Match.Prediction
}

// lock writes the variant's prediction through the cache and schedules
// persistence.
func (d Deps) lock(match *models.Match, prediction *models.Prediction) {
	d.Engine.Cache().Put(match.WithPrediction(prediction), 0)
	if p := d.Engine.Persister(); p != nil {
		p.MarkDirty()
	}
	metrics.PredictionsComputedTotal.WithLabelValues(prediction.AlgorithmID).Inc()
}

// finalize calibrates a raw confidence, clamps it to the variant's
// bounds, and fills the value fields derived from the calibrated number.
func (d Deps) finalize(match *models.Match, algorithmID string, side models.Side, raw, floor, ceil float64) *models.Prediction {
	result := d.Calibration.Calibrate(algorithmID, raw)
	confidence := clamp(result.AdjustedConfidence, floor, ceil)

	if result.IsPaused {
		metrics.AlgorithmPaused.WithLabelValues(algorithmID).Set(1)
	} else {
		metrics.AlgorithmPaused.WithLabelValues(algorithmID).Set(0)
	}

	prediction := &models.Prediction{
		AlgorithmID:   algorithmID,
		Recommended:   side,
		Confidence:    round1(confidence),
		RawConfidence: round1(raw),
		Calibration: &models.CalibrationInfo{
			Multiplier:     result.Multiplier,
			MeetsThreshold: result.MeetsThreshold,
			IsPaused:       result.IsPaused,
		},
		PredictedAt: time.Now(),
	}

	trueProb := prediction.Confidence / 100
	prediction.TrueProbability = trueProb
	if odds := match.Odds.Price(side); odds > 1 {
		ev := ExpectedValue(trueProb, odds)
		prediction.ExpectedValue = ev
		prediction.EVPercentage = ev * 100
		prediction.KellyStake = KellyFraction(trueProb, odds, QuarterKelly)
	}
	return prediction
}

// QuarterKelly is the default fractional-Kelly multiplier.
const QuarterKelly = 0.25

// ExpectedValue returns the expected profit per unit staked:
// trueProb*(decimalOdds-1) - (1-trueProb).
func ExpectedValue(trueProb, decimalOdds float64) float64 {
	if decimalOdds <= 1 {
		return 0
	}
	return trueProb*(decimalOdds-1) - (1 - trueProb)
}

// KellyFraction returns the fraction of bankroll to stake under
// fractional Kelly. Zero whenever the edge is not positive.
func KellyFraction(trueProb, decimalOdds, fraction float64) float64 {
	if trueProb <= 0 || decimalOdds <= 1 {
		return 0
	}
	if ExpectedValue(trueProb, decimalOdds) <= 0 {
		return 0
	}
	b := decimalOdds - 1
	kelly := (b*trueProb - (1 - trueProb)) / b
	if kelly <= 0 {
		return 0
	}
	if fraction <= 0 {
		fraction = QuarterKelly
	}
	return kelly * fraction
}

// homeAxis maps a prediction onto a home-centered scale: >50 favors the
// home side, <50 the away side.
func homeAxis(p *models.Prediction) float64 {
	if p.Recommended == models.SideHome {
		return p.Confidence
	}
	return 100 - p.Confidence
}

// pickFromAxis converts a home-axis score back into a side and a raw
// confidence in that side.
func pickFromAxis(score float64) (models.Side, float64) {
	if score >= 50 {
		return models.SideHome, score
	}
	return models.SideAway, 100 - score
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
