package strength

import (
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/league"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
)

const (
	hotWinRate  = 0.60
	coldWinRate = 0.40

	// Regression toward the mean: hot teams need less of the baseline
	// boost, struggling teams lean on it more.
	hotScale  = 0.8
	coldScale = 1.2
)

// HomeAdvantage returns the league baseline home boost adjusted by the
// home team's recent win rate.
func HomeAdvantage(lg league.League, home models.Team) float64 {
	base := lg.Profile().HomeAdvantage

	rate, ok := home.RecentWinRate(0)
	if !ok {
		// A team with neither record nor form stays at the neutral start.
		if _, hasRecord := home.WinPct(); !hasRecord {
			return 0
		}
		return base
	}
	switch {
	case rate > hotWinRate:
		return base * hotScale
	case rate < coldWinRate:
		return base * coldScale
	}
	return base
}
