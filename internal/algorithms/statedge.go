package algorithms

import (
	"context"
	"fmt"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/injury"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/rng"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/weather"
)

// StatisticalEdge blends the base prediction with weather, injury and
// seeded situational/matchup modeling. Situational and matchup
// adjustments are deliberately bidirectional so neither side picks up a
// systematic bias. The variant also emits structured analysis factors,
// readable reasoning, a risk tier and warning flags.
type StatisticalEdge struct {
	deps Deps
}

const (
	edgeFloor = 35.0
	edgeCeil  = 90.0

	baseWeight        = 0.35
	weatherWeight     = 0.15
	injuryWeight      = 0.20
	situationalWeight = 0.18
	matchupWeight     = 0.12

	// Normalization spans for the weather and injury terms.
	weatherSpan = 15.0
	injurySpan  = 20.0

	factorSpan = 15.0
)

// NewStatisticalEdge creates the variant.
func NewStatisticalEdge(deps Deps) *StatisticalEdge {
	return &StatisticalEdge{deps: deps}
}

// ID returns the algorithm identifier.
func (a *StatisticalEdge) ID() string {
	return models.AlgorithmStatEdge
}

// Predict derives the situational-edge confidence for a match.
func (a *StatisticalEdge) Predict(ctx context.Context, match *models.Match) (*models.Prediction, error) {
	if match == nil || match.ID == "" {
		return nil, models.ErrMatchIDRequired
	}
	if locked := a.deps.cached(match.ID, a.ID()); locked != nil {
		return locked, nil
	}
	base, err := a.deps.Engine.Predict(ctx, match, nil)
	if err != nil {
		return nil, err
	}

	var reasoning []string
	var warnings []string

	baseSigned := homeAxis(base)
	reasoning = append(reasoning, fmt.Sprintf("base model favors %s at %.1f", base.Recommended, base.Confidence))

	weatherAdj := a.weatherComponent(match, baseSigned, &reasoning)
	injuryAdj := a.injuryComponent(ctx, match, &reasoning, &warnings)
	situationalAdj := a.situationalComponent(match, &reasoning, &warnings)
	matchupAdj := a.matchupComponent(match, baseSigned, &reasoning, &warnings)

	score := 50 +
		(baseSigned-50)*baseWeight +
		weatherAdj*weatherWeight +
		injuryAdj*injuryWeight +
		situationalAdj*situationalWeight +
		matchupAdj*matchupWeight

	side, raw := pickFromAxis(score)

	prediction := a.deps.finalize(match, a.ID(), side, raw, edgeFloor, edgeCeil)
	prediction.AnalysisFactors = map[string]float64{
		"base":        round1(baseSigned),
		"weather":     round1(weatherAdj),
		"injury":      round1(injuryAdj),
		"situational": round1(situationalAdj),
		"matchup":     round1(matchupAdj),
	}
	prediction.DetailedReasoning = reasoning
	prediction.WarningFlags = warnings
	prediction.RiskLevel = riskTier(prediction.Confidence)

	a.deps.lock(match, prediction)
	return prediction, nil
}

// weatherComponent normalizes weather impact onto +/-15 home-axis
// points. Disruptive conditions drag the favored side toward the pack.
func (a *StatisticalEdge) weatherComponent(match *models.Match, baseSigned float64, reasoning *[]string) float64 {
	impact := weather.ImpactScore(match)
	if impact == 0 {
		return 0
	}
	favoriteSign := 1.0
	if baseSigned > 50 {
		favoriteSign = -1.0
	}
	adj := impact * weatherSpan
	if impact < 0 {
		// Disruption works against whoever the base model favors.
		adj = -impact * weatherSpan * favoriteSign
	}
	cond := weather.Lookup(match)
	*reasoning = append(*reasoning, fmt.Sprintf("weather (%s) adjustment %.1f", cond.Summary, adj))
	return clamp(adj, -weatherSpan, weatherSpan)
}

// injuryComponent normalizes the injury-severity differential onto
// +/-20 home-axis points. Provider failures degrade inside the resolver.
func (a *StatisticalEdge) injuryComponent(ctx context.Context, match *models.Match, reasoning *[]string, warnings *[]string) float64 {
	resolver := a.deps.Injuries
	if resolver == nil {
		resolver = injury.NewResolver(nil, a.deps.Logger)
	}
	homeReport := resolver.Resolve(ctx, match.HomeTeam)
	awayReport := resolver.Resolve(ctx, match.AwayTeam)

	if homeReport.KeyPlayersOut+awayReport.KeyPlayersOut >= 2 {
		*warnings = append(*warnings, "multiple key players out")
	}

	adj := (awayReport.Severity() - homeReport.Severity()) * injurySpan
	if adj != 0 {
		*reasoning = append(*reasoning, fmt.Sprintf("injury differential %.1f (home %d out, away %d out)",
			adj, homeReport.KeyPlayersOut, awayReport.KeyPlayersOut))
	}
	return clamp(adj, -injurySpan, injurySpan)
}

// situationalComponent models schedule spots: rest, back-to-backs,
// travel, trap/lookahead/letdown/revenge games, time zones and the
// road-warrior trio. Seeded by match id, bidirectional by construction.
func (a *StatisticalEdge) situationalComponent(match *models.Match, reasoning *[]string, warnings *[]string) float64 {
	r := rng.New(match.ID, "situational")
	adj := 0.0

	restDiff := r.Intn(5) - 2 // days, positive favors home
	adj += float64(restDiff) * 1.5
	if restDiff != 0 {
		*reasoning = append(*reasoning, fmt.Sprintf("rest differential %+d days", restDiff))
	}

	if r.Chance(0.15) {
		adj -= 4
		*warnings = append(*warnings, "home team on a back-to-back")
	}
	if r.Chance(0.15) {
		adj += 4
		*warnings = append(*warnings, "away team on a back-to-back")
	}

	travelMiles := r.Range(0, 2500)
	if travelMiles > 2000 {
		adj += 3
		*warnings = append(*warnings, "away team on cross-country travel")
	}

	adj += scheduleSpot(r, reasoning, warnings)

	timezoneShift := r.Intn(4) // hours against the road team
	adj += float64(timezoneShift) * 1.0

	// Stochastic road/home texture; each flag favors the away side.
	if r.Chance(0.20) {
		adj -= 4
		*reasoning = append(*reasoning, "away team profiles as a road warrior")
	}
	if r.Chance(0.15) {
		adj -= 5
		*reasoning = append(*reasoning, "home team has struggled at home")
	}
	if r.Chance(0.10) {
		adj -= 3
		*reasoning = append(*reasoning, "road favorite spot")
	}

	return clamp(adj, -factorSpan, factorSpan)
}

// scheduleSpot classifies the home team's spot in the schedule.
func scheduleSpot(r *rng.Rand, reasoning *[]string, warnings *[]string) float64 {
	switch r.Intn(8) {
	case 0:
		*warnings = append(*warnings, "trap game spot for the home team")
		return -5
	case 1:
		*reasoning = append(*reasoning, "lookahead spot for the home team")
		return -3
	case 2:
		*reasoning = append(*reasoning, "letdown spot for the home team")
		return -4
	case 3:
		*reasoning = append(*reasoning, "revenge spot for the home team")
		return 4
	}
	return 0
}

// matchupComponent models pace, style clash, head-to-head edge and
// strength of schedule. Seeded by match id.
func (a *StatisticalEdge) matchupComponent(match *models.Match, baseSigned float64, reasoning *[]string, warnings *[]string) float64 {
	r := rng.New(match.ID, "matchup")
	adj := 0.0

	adj += r.Range(-4, 4) // pace advantage
	adj += r.Range(-3, 3) // head-to-head edge
	adj += r.Range(-3, 3) // strength-of-schedule differential

	if r.Chance(0.20) {
		// Style clash raises variance: pull the lead back toward even.
		adj += (50 - baseSigned) * 0.1
		*warnings = append(*warnings, "style clash raises outcome variance")
	}
	if r.Chance(0.12) {
		adj -= 4
		*reasoning = append(*reasoning, "elite road team")
	}
	if r.Chance(0.10) {
		adj -= 3
		*reasoning = append(*reasoning, "weak home venue")
	}

	return clamp(adj, -factorSpan, factorSpan)
}

func riskTier(confidence float64) models.RiskLevel {
	switch {
	case confidence >= 70:
		return models.RiskLow
	case confidence >= 55:
		return models.RiskMedium
	}
	return models.RiskHigh
}
