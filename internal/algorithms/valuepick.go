package algorithms

import (
	"context"

	"gonum.org/v1/gonum/stat"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/arbitrage"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/rng"
)

// ValuePickFinder scores how much market value the base pick carries:
// odds-implied edge, closing-line value, line-movement regression,
// reverse line movement, arbitrage presence and a contrarian signal.
// It keeps the base pick's side and re-derives only the confidence.
type ValuePickFinder struct {
	deps     Deps
	detector *arbitrage.Detector
}

const (
	valueFloor = 40.0
	valueCeil  = 85.0

	oddsValueScale = 0.4
	clvScale       = 1.5
	// Slope of implied probability over time. Increasing odds (falling
	// implied probability) on the picked side means improving value, so
	// the negative scale turns a falling slope into a positive signal.
	movementSlopeScale = -15.0

	reverseLineMoveBonus = 6.0
	arbitrageBonus       = 8.0
	contrarianBonus      = 4.0

	publicSkewThreshold = 70.0
	rlmMinShift         = 0.01
)

// NewValuePickFinder creates the variant.
func NewValuePickFinder(deps Deps) *ValuePickFinder {
	return &ValuePickFinder{deps: deps, detector: arbitrage.NewDetector(deps.Logger)}
}

// ID returns the algorithm identifier.
func (a *ValuePickFinder) ID() string {
	return models.AlgorithmValuePick
}

// Predict derives the value confidence for a match.
func (a *ValuePickFinder) Predict(ctx context.Context, match *models.Match) (*models.Prediction, error) {
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

	side := base.Recommended
	score := 50.0

	// Odds-implied value: how far the model probability sits above the
	// market's implied probability for the picked side.
	if implied := match.Odds.ImpliedProbability(side); implied > 0 {
		edge := base.Confidence/100 - implied
		score += edge * 100 * oddsValueScale
	}

	quotes := match.Odds.QuotesByTime()
	score += closingLineValue(quotes, side) * clvScale
	score += movementSlope(quotes, side) * movementSlopeScale

	publicSide := presumedPublicSide(match.Odds)
	if reverseLineMovement(quotes, side, publicSide) {
		score += reverseLineMoveBonus
	}

	score += match.League.Profile().MarketEfficiency

	if opportunity, detectErr := a.detector.Detect(match); detectErr == nil && opportunity.IsProfitable() {
		score += arbitrageBonus
	}

	// Simulated public-betting skew: fade the public when a heavy
	// majority sits on the other side.
	r := rng.New(match.ID, "public")
	publicPct := r.Range(50, 95)
	if publicPct > publicSkewThreshold && publicSide != "" && publicSide != side {
		score += contrarianBonus
	}

	prediction := a.deps.finalize(match, a.ID(), side, score, valueFloor, valueCeil)
	a.deps.lock(match, prediction)
	return prediction, nil
}

// closingLineValue is the implied-probability change in points between
// the first and last quote for the side. Positive means the market moved
// toward the pick.
func closingLineValue(quotes []models.BookQuote, side models.Side) float64 {
	first, last, ok := firstLastPrices(quotes, side)
	if !ok {
		return 0
	}
	return (1/last - 1/first) * 100
}

// movementSlope is the linear-regression slope of the picked side's
// implied probability over time, in probability per hour.
func movementSlope(quotes []models.BookQuote, side models.Side) float64 {
	var xs, ys []float64
	var start = -1.0
	for _, quote := range quotes {
		price := quote.Price(side)
		if price <= 1 {
			continue
		}
		hours := float64(quote.UpdatedAt.UnixNano()) / float64(3600e9)
		if start < 0 {
			start = hours
		}
		xs = append(xs, hours-start)
		ys = append(ys, 1/price)
	}
	if len(xs) < 2 || xs[len(xs)-1] == xs[0] {
		return 0
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope
}

// reverseLineMovement reports whether the line moved toward the pick
// while the presumed public side is the other one.
func reverseLineMovement(quotes []models.BookQuote, pick, publicSide models.Side) bool {
	if publicSide == "" || publicSide == pick {
		return false
	}
	first, last, ok := firstLastPrices(quotes, pick)
	if !ok {
		return false
	}
	return (1/last - 1/first) > rlmMinShift
}

// presumedPublicSide is the current favorite: the public
// disproportionately backs the shorter price.
func presumedPublicSide(odds *models.Odds) models.Side {
	if odds == nil || odds.Home <= 1 || odds.Away <= 1 {
		return ""
	}
	if odds.Home < odds.Away {
		return models.SideHome
	}
	return models.SideAway
}

func firstLastPrices(quotes []models.BookQuote, side models.Side) (first, last float64, ok bool) {
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
	return first, last, first > 0 && last > 0 && len(quotes) >= 2
}
