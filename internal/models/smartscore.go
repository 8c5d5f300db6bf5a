package models

// SmartScore is the six-factor composite annotation for a match.
type SmartScore struct {
	// Overall is the weighted composite on a 0-100 scale.
	Overall float64 `json:"overall"`
	// Components maps factor name to its 0-100 sub-score.
	Components map[string]float64 `json:"components"`
	// Factors maps factor name to a human-readable explanation.
	Factors map[string]string `json:"factors"`

	Recommendation          ScoreRecommendation `json:"recommendation"`
	HasArbitrageOpportunity bool                `json:"hasArbitrageOpportunity"`
}

// ScoreRecommendation is the textual advice derived from the composite.
type ScoreRecommendation struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
	// KeyFactor names the largest-magnitude contributing factor.
	KeyFactor string `json:"keyFactor"`
}

// Smart-score recommendation actions.
const (
	ActionStrong   = "strong_play"
	ActionModerate = "moderate_play"
	ActionNeutral  = "neutral"
	ActionAvoid    = "avoid"
)

// ArbitrageOpportunity describes a detected cross-book arbitrage. It is
// computed on demand and never persisted.
type ArbitrageOpportunity struct {
	MatchID string `json:"matchId"`
	// Market is "two-way" or "three-way".
	Market string `json:"market"`

	BestHome BookPrice  `json:"bestHome"`
	BestAway BookPrice  `json:"bestAway"`
	BestDraw *BookPrice `json:"bestDraw,omitempty"`

	// ArbitragePercentage is the implied-probability sum times 100.
	// Values under 100 indicate a profitable combination.
	ArbitragePercentage float64 `json:"arbitragePercentage"`
	// PotentialProfit is the guaranteed return percentage on total stake.
	PotentialProfit float64  `json:"potentialProfit"`
	Sportsbooks     []string `json:"sportsbooks"`
}

// BookPrice pairs a sportsbook with its best quoted decimal price.
type BookPrice struct {
	Sportsbook string  `json:"sportsbook"`
	Odds       float64 `json:"odds"`
}

// IsProfitable reports whether the combination beats the 100% line.
func (a *ArbitrageOpportunity) IsProfitable() bool {
	return a != nil && a.ArbitragePercentage > 0 && a.ArbitragePercentage < 100
}
