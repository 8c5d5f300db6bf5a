// Package weather models game-day weather impact. Indoor sports and dome
// venues are unaffected; outdoor sports get deterministic per-match
// conditions so repeated evaluations of the same match agree.
package weather

import (
	"fmt"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/rng"
)

// Conditions describes the modeled weather for one match.
type Conditions struct {
	TempF        float64 `json:"tempF"`
	WindMPH      float64 `json:"windMph"`
	PrecipChance float64 `json:"precipChance"`
	Dome         bool    `json:"dome"`
	Summary      string  `json:"summary"`
}

// Lookup returns the modeled conditions for a match, keyed by league and
// match id.
func Lookup(match *models.Match) Conditions {
	if !match.League.Profile().OutdoorWeather {
		return Conditions{TempF: 72, Dome: true, Summary: "indoor"}
	}

	r := rng.New(match.ID, "weather")
	cond := Conditions{
		TempF:        r.Range(20, 95),
		WindMPH:      r.Range(0, 25),
		PrecipChance: r.Float64(),
	}
	cond.Summary = summarize(cond)
	return cond
}

// ImpactScore maps conditions onto [-1, 1]. Negative values disrupt
// scoring and favor the underdog side; zero for domes and indoor sports.
func ImpactScore(match *models.Match) float64 {
	cond := Lookup(match)
	if cond.Dome {
		return 0
	}

	impact := 0.0
	if cond.WindMPH > 15 {
		impact -= (cond.WindMPH - 15) / 10 * 0.4
	}
	if cond.PrecipChance > 0.5 {
		impact -= (cond.PrecipChance - 0.5) * 0.8
	}
	switch {
	case cond.TempF < 32:
		impact -= (32 - cond.TempF) / 32 * 0.5
	case cond.TempF > 90:
		impact -= (cond.TempF - 90) / 20 * 0.3
	case cond.TempF >= 60 && cond.TempF <= 78:
		// Mild conditions help the better-prepared side slightly.
		impact += 0.1
	}

	if impact < -1 {
		impact = -1
	}
	if impact > 1 {
		impact = 1
	}
	return impact
}

func summarize(c Conditions) string {
	switch {
	case c.PrecipChance > 0.7:
		return fmt.Sprintf("likely precipitation, %.0fmph wind", c.WindMPH)
	case c.WindMPH > 18:
		return fmt.Sprintf("windy, %.0fF", c.TempF)
	case c.TempF < 32:
		return "freezing"
	default:
		return fmt.Sprintf("clear, %.0fF", c.TempF)
	}
}
