package smartscore

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/league"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/weather"
)

// momentumFactor scores form streaks and prediction confidence tiers.
// NBA and NHL schedules make streaks more meaningful, so those leagues
// get an amplifier.
func momentumFactor(match *models.Match, prediction *models.Prediction) (float64, string) {
	score := 50.0

	homeStreak := streakPoints(match.HomeTeam)
	awayStreak := streakPoints(match.AwayTeam)
	score += homeStreak - awayStreak

	switch {
	case prediction.Confidence >= 70:
		score += 10
	case prediction.Confidence >= 60:
		score += 5
	}

	if match.League == league.NBA || match.League == league.NHL {
		score = 50 + (score-50)*1.15
	}
	score = clampScore(score)
	return score, fmt.Sprintf("home streak %+.0f vs away %+.0f, confidence %.0f",
		homeStreak, awayStreak, prediction.Confidence)
}

func streakPoints(team models.Team) float64 {
	if wins := team.WinStreak(); wins > 0 {
		switch {
		case wins >= 5:
			return 18
		case wins >= 3:
			return 12
		}
		return float64(wins) * 3
	}
	if losses := team.LosingStreak(); losses > 0 {
		switch {
		case losses >= 5:
			return -18
		case losses >= 3:
			return -12
		}
		return float64(losses) * -3
	}
	return 0
}

// valueFactor scores the odds-implied edge on the picked side plus the
// odds-shopping spread across books. Missing odds leave the factor at
// its pre-adjustment neutral value.
func valueFactor(match *models.Match, prediction *models.Prediction) (float64, string) {
	score := 50.0
	if match.Odds == nil {
		return score, "no odds available"
	}

	implied := match.Odds.ImpliedProbability(prediction.Recommended)
	edge := 0.0
	if implied > 0 {
		edge = prediction.Confidence/100 - implied
		score += edge * 100 * 0.8
	}

	// Price variance across books means shopping captures extra value.
	if spread := bookSpread(match.Odds, prediction.Recommended); spread > 0 {
		score += math.Min(spread*40, 10)
	}

	score = clampScore(score)
	return score, fmt.Sprintf("model edge %+.1f%% over implied probability", edge*100)
}

func bookSpread(odds *models.Odds, side models.Side) float64 {
	var prices []float64
	for _, quote := range odds.LiveOdds {
		if price := quote.Price(side); price > 1 {
			prices = append(prices, price)
		}
	}
	if len(prices) < 2 {
		return 0
	}
	return stat.StdDev(prices, nil)
}

// movementFactor scores line-movement direction and magnitude for the
// picked side, with a reverse-line-movement bonus. Swings are bounded at
// +/-20 points.
func movementFactor(match *models.Match, prediction *models.Prediction) (float64, string) {
	score := 50.0
	quotes := match.Odds.QuotesByTime()
	if len(quotes) < 2 {
		return score, "no line-movement history"
	}

	side := prediction.Recommended
	var first, last float64
	for _, quote := range quotes {
		price := quote.Price(side)
		if price <= 1 {
			continue
		}
		if first == 0 {
			first = price
		}
		last = price
	}
	if first == 0 || last == 0 {
		return score, "no prices for the picked side"
	}

	// Implied-probability shift toward the pick, in points.
	shift := (1/last - 1/first) * 100
	score += math.Max(math.Min(shift*4, 20), -20)

	explanation := fmt.Sprintf("line moved %+.1f implied points on the pick", shift)
	favorite := presumedFavorite(match.Odds)
	if favorite != "" && favorite != side && shift > 1 {
		score += 8
		explanation += ", reverse line movement"
	}

	return clampScore(score), explanation
}

func presumedFavorite(odds *models.Odds) models.Side {
	if odds == nil || odds.Home <= 1 || odds.Away <= 1 {
		return ""
	}
	if odds.Home < odds.Away {
		return models.SideHome
	}
	return models.SideAway
}

// weatherFactor is sport-specific: heavy for outdoor NFL/MLB games,
// near-neutral for domes, deterministic per match id.
func weatherFactor(match *models.Match) (float64, string) {
	cond := weather.Lookup(match)
	if cond.Dome {
		return 55, "indoor venue, conditions stable"
	}

	impact := weather.ImpactScore(match)
	scale := 20.0
	if match.League != league.NFL && match.League != league.MLB {
		scale = 8
	}
	score := clampScore(50 + impact*scale)
	return score, cond.Summary
}

// injuryFactor uses the record-based losing-streak proxy: each team on a
// qualifying skid costs 10 points off a healthy baseline.
func injuryFactor(match *models.Match) (float64, string) {
	score := 70.0
	qualifying := 0
	for _, team := range []models.Team{match.HomeTeam, match.AwayTeam} {
		if team.LosingStreak() >= 3 {
			score -= 10
			qualifying++
		}
	}
	if qualifying == 0 {
		return score, "no injury concerns indicated"
	}
	return clampScore(score), fmt.Sprintf("%d team(s) on a qualifying losing streak", qualifying)
}

// scoreArbitrage tiers the baseline by opportunity quality with a bonus
// for outsized profit.
func scoreArbitrage(opportunity *models.ArbitrageOpportunity) float64 {
	profit := opportunity.PotentialProfit
	score := 0.0
	switch {
	case profit >= 2:
		score = 90
	case profit >= 0.5:
		score = 75
	case profit > 0:
		score = 60
	}
	if profit > 3 {
		score += 10
	}
	return clampScore(score)
}
