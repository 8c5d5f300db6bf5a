// Package projector projects numeric final scores from team strengths and
// home advantage.
package projector

import (
	"math"
	"math/rand"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/league"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/strength"
)

const jitterSpread = 0.05 // +/-5%

// Project returns the projected score for both sides. The jitter is
// wall-clock seeded; projections run once per match before the result is
// cached, so reproducibility is owned by the cache layer.
func Project(lg league.League, home, away strength.Strength, homeAdvantage float64) (homeScore, awayScore float64) {
	profile := lg.Profile()
	homeScore = projectSide(profile, home.Offense, away.Defense, homeAdvantage/100)
	awayScore = projectSide(profile, away.Offense, home.Defense, 0)
	return homeScore, awayScore
}

func projectSide(profile league.Profile, offense, opponentDefense, advantageFactor float64) float64 {
	// Offense-vs-defense edge as a small fractional adjustment around the
	// league base score.
	edge := (offense - opponentDefense) / 250

	score := profile.BaseScore * (1 + edge + advantageFactor)
	score *= 1 + (rand.Float64()*2-1)*jitterSpread
	if score < 0 {
		score = 0
	}
	return roundTo(score, profile.ScorePrecision)
}

func roundTo(v float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	return math.Round(v*scale) / scale
}
