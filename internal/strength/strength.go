// Package strength derives offense, defense and momentum scalars from a
// team's win-loss record and recent-form sequence.
package strength

import (
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
)

const (
	baseline = 50.0

	offenseMin = 30.0
	offenseMax = 95.0
	defenseMin = 30.0
	defenseMax = 95.0

	momentumMin = 20.0
	momentumMax = 95.0
)

// Strength holds the derived scalars for one team. All values sit on a
// 0-100 scale centered at 50.
type Strength struct {
	Offense  float64
	Defense  float64
	Momentum float64
}

// Sum returns the offense+defense strength sum used by the base engine.
func (s Strength) Sum() float64 {
	return s.Offense + s.Defense
}

// Compute derives a team's strength scalars. Missing record or form
// degrades to the neutral baseline rather than erroring.
func Compute(team models.Team) Strength {
	s := Strength{Offense: baseline, Defense: baseline, Momentum: baseline}

	if winPct, ok := team.WinPct(); ok {
		shift := (winPct*100 - 50) * 0.4
		s.Offense = clamp(baseline+shift, offenseMin, offenseMax)
		s.Defense = clamp(baseline+shift, defenseMin, defenseMax)
	}

	if weighted, ok := WeightedFormWinPct(team.RecentForm); ok {
		shift := (weighted*100 - 50) * 1.0
		s.Momentum = clamp(baseline+shift, momentumMin, momentumMax)
	}

	// Explicit ratings from the stats map override the record-derived
	// values when the ingestion layer supplies them.
	if v, ok := team.Stats["offensiveRating"]; ok {
		s.Offense = clamp(v, offenseMin, offenseMax)
	}
	if v, ok := team.Stats["defensiveRating"]; ok {
		s.Defense = clamp(v, defenseMin, defenseMax)
	}

	return s
}

// WeightedFormWinPct returns the recency-weighted win rate over the form
// sequence, most recent games weighted most heavily. The second return is
// false when no form is available.
func WeightedFormWinPct(form []models.FormResult) (float64, bool) {
	if len(form) == 0 {
		return 0, false
	}
	totalWeight := 0.0
	weightedWins := 0.0
	n := len(form)
	for i, result := range form {
		// Form is most-recent first: index 0 carries the largest weight.
		weight := float64(n - i)
		totalWeight += weight
		if result == models.FormWin {
			weightedWins += weight
		}
	}
	if totalWeight <= 0 {
		return 0, false
	}
	return weightedWins / totalWeight, true
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
