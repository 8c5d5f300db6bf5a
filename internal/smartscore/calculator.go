// Package smartscore combines six independent signal factors into a
// single 0-100 composite with a textual recommendation.
package smartscore

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/arbitrage"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/engine"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/metrics"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
)

// Factor names used in the components and factors maps.
const (
	FactorMomentum  = "momentum"
	FactorValue     = "value"
	FactorMovement  = "oddsMovement"
	FactorWeather   = "weather"
	FactorInjuries  = "injuries"
	FactorArbitrage = "arbitrage"
)

// Fixed factor weights; they sum to 1.0.
var weights = map[string]float64{
	FactorMomentum:  0.20,
	FactorValue:     0.20,
	FactorMovement:  0.20,
	FactorWeather:   0.15,
	FactorInjuries:  0.15,
	FactorArbitrage: 0.10,
}

// Recommendation thresholds on the composite.
const (
	strongThreshold   = 75.0
	moderateThreshold = 60.0
	avoidThreshold    = 35.0
)

// Calculator computes smart scores.
type Calculator struct {
	engine   *engine.Engine
	detector *arbitrage.Detector
	logger   *logrus.Logger
}

// NewCalculator creates a calculator sharing the base engine's cache
// discipline for the underlying prediction.
func NewCalculator(eng *engine.Engine, logger *logrus.Logger) *Calculator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Calculator{
		engine:   eng,
		detector: arbitrage.NewDetector(logger),
		logger:   logger,
	}
}

// Score computes the composite for one match. Missing inputs degrade to
// each factor's neutral value; the calculator itself never fails.
func (c *Calculator) Score(ctx context.Context, match *models.Match) (*models.SmartScore, error) {
	if match == nil || match.ID == "" {
		return nil, models.ErrMatchIDRequired
	}

	prediction, err := c.engine.Predict(ctx, match, nil)
	if err != nil {
		return nil, err
	}

	components := make(map[string]float64, len(weights))
	explanations := make(map[string]string, len(weights))

	add := func(name string, score float64, explanation string) {
		components[name] = round1(score)
		explanations[name] = explanation
	}

	momentumScore, momentumWhy := momentumFactor(match, prediction)
	add(FactorMomentum, momentumScore, momentumWhy)
	valueScore, valueWhy := valueFactor(match, prediction)
	add(FactorValue, valueScore, valueWhy)
	movementScore, movementWhy := movementFactor(match, prediction)
	add(FactorMovement, movementScore, movementWhy)
	weatherScore, weatherWhy := weatherFactor(match)
	add(FactorWeather, weatherScore, weatherWhy)
	injuryScore, injuryWhy := injuryFactor(match)
	add(FactorInjuries, injuryScore, injuryWhy)

	arbScore, arbExplanation, hasArb := c.arbitrageFactor(match)
	add(FactorArbitrage, arbScore, arbExplanation)

	overall := 0.0
	for name, score := range components {
		overall += score * weights[name]
	}
	overall = round1(overall)

	smartScore := &models.SmartScore{
		Overall:                 overall,
		Components:              components,
		Factors:                 explanations,
		Recommendation:          recommend(overall, components, hasArb),
		HasArbitrageOpportunity: hasArb,
	}
	metrics.SmartScoresComputedTotal.Inc()
	return smartScore, nil
}

func (c *Calculator) arbitrageFactor(match *models.Match) (float64, string, bool) {
	opportunity, err := c.detector.Detect(match)
	if err != nil || !opportunity.IsProfitable() {
		return 0, "no arbitrage opportunity", false
	}
	return scoreArbitrage(opportunity), fmt.Sprintf("%.2f%% guaranteed profit across %d books",
		opportunity.PotentialProfit, len(opportunity.Sportsbooks)), true
}

// recommend derives the textual advice, citing the factor sitting
// furthest from neutral. The arbitrage component is excluded when no
// opportunity exists: its baseline is 0, not 50, and a factor that
// contributed nothing must not be cited as the key one.
func recommend(overall float64, components map[string]float64, hasArb bool) models.ScoreRecommendation {
	keyFactor := ""
	keyDistance := -1.0
	for name, score := range components {
		if name == FactorArbitrage && !hasArb {
			continue
		}
		distance := math.Abs(score - 50)
		if distance > keyDistance {
			keyDistance = distance
			keyFactor = name
		}
	}

	rec := models.ScoreRecommendation{KeyFactor: keyFactor}
	switch {
	case overall >= strongThreshold:
		rec.Action = models.ActionStrong
		rec.Reason = fmt.Sprintf("composite %.0f driven by %s", overall, keyFactor)
	case overall >= moderateThreshold:
		rec.Action = models.ActionModerate
		rec.Reason = fmt.Sprintf("composite %.0f with %s leading", overall, keyFactor)
	case overall <= avoidThreshold:
		rec.Action = models.ActionAvoid
		rec.Reason = fmt.Sprintf("composite %.0f dragged down by %s", overall, keyFactor)
	default:
		rec.Action = models.ActionNeutral
		rec.Reason = fmt.Sprintf("composite %.0f, no decisive factor", overall)
	}
	return rec
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
