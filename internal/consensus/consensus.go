// Package consensus compares the algorithm variants' recommended sides
// against the primary prediction to produce an agreement rating.
package consensus

import (
	"math"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
)

// Agreement levels.
const (
	LevelHigh       = "high"
	LevelMedium     = "medium"
	LevelLow        = "low"
	LevelConflicted = "conflicted"
)

const lowRate = 1.0 / 3.0

// Validate counts how many variants agree with the primary's side.
func Validate(primary *models.Prediction, variants []*models.Prediction) *models.AlgorithmValidation {
	validation := &models.AlgorithmValidation{
		AlgorithmsCompared: len(variants),
		AgreementLevel:     LevelConflicted,
	}
	if primary == nil || len(variants) == 0 {
		return validation
	}

	agreeing := 0
	for _, variant := range variants {
		if variant != nil && variant.Recommended == primary.Recommended {
			agreeing++
		}
	}

	rate := float64(agreeing) / float64(len(variants))
	validation.AlgorithmsAgreeing = agreeing
	validation.AgreementRate = rate
	validation.ConsensusScore = int(math.Round(rate * 100))
	validation.AgreementLevel = level(rate)
	return validation
}

func level(rate float64) string {
	switch {
	case rate == 1.0:
		return LevelHigh
	case rate >= 0.66:
		return LevelMedium
	case math.Abs(rate-lowRate) < 1e-9:
		return LevelLow
	}
	return LevelConflicted
}
