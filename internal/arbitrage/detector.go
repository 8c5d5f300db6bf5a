// Package arbitrage scans multi-sportsbook quotes for outcome
// combinations whose implied probabilities sum below 100%.
package arbitrage

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/metrics"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
)

// Detector finds cross-book arbitrage opportunities.
type Detector struct {
	logger *logrus.Logger
}

// NewDetector creates a detector.
func NewDetector(logger *logrus.Logger) *Detector {
	if logger == nil {
		logger = logrus.New()
	}
	return &Detector{logger: logger}
}

// Detect returns the best-price arbitrage read for one match, or
// models.ErrInsufficientBooks when fewer than two books quote it.
func (d *Detector) Detect(match *models.Match) (*models.ArbitrageOpportunity, error) {
	if match.Odds == nil {
		return nil, models.ErrInsufficientBooks
	}
	books := match.Odds.Sportsbooks()
	if len(books) < 2 {
		return nil, models.ErrInsufficientBooks
	}

	bestHome := bestPrice(match.Odds.LiveOdds, models.SideHome)
	bestAway := bestPrice(match.Odds.LiveOdds, models.SideAway)
	if bestHome.Odds <= 1 || bestAway.Odds <= 1 {
		return nil, models.ErrInsufficientBooks
	}

	opportunity := &models.ArbitrageOpportunity{
		MatchID:     match.ID,
		Market:      "two-way",
		BestHome:    bestHome,
		BestAway:    bestAway,
		Sportsbooks: books,
	}

	impliedSum := 1/bestHome.Odds + 1/bestAway.Odds
	if bestDraw := bestPrice(match.Odds.LiveOdds, models.SideDraw); bestDraw.Odds > 1 {
		opportunity.Market = "three-way"
		opportunity.BestDraw = &bestDraw
		impliedSum += 1 / bestDraw.Odds
	}

	opportunity.ArbitragePercentage = impliedSum * 100
	if opportunity.IsProfitable() {
		opportunity.PotentialProfit = potentialProfit(opportunity.ArbitragePercentage)
		metrics.ArbitrageOpportunitiesTotal.Inc()
		d.logger.WithFields(logrus.Fields{
			"match":  match.ID,
			"pct":    opportunity.ArbitragePercentage,
			"profit": opportunity.PotentialProfit,
		}).Info("Arbitrage opportunity detected")
	}
	return opportunity, nil
}

// ScanAll detects opportunities across a slate of matches, returning only
// the profitable ones.
func (d *Detector) ScanAll(matches []*models.Match) []*models.ArbitrageOpportunity {
	var found []*models.ArbitrageOpportunity
	for _, match := range matches {
		opportunity, err := d.Detect(match)
		if err != nil {
			continue
		}
		if opportunity.IsProfitable() {
			found = append(found, opportunity)
		}
	}
	return found
}

func bestPrice(quotes []models.BookQuote, side models.Side) models.BookPrice {
	best := models.BookPrice{}
	for _, quote := range quotes {
		price := quote.Price(side)
		if price > best.Odds {
			best = models.BookPrice{Sportsbook: quote.Sportsbook, Odds: price}
		}
	}
	return best
}

// potentialProfit computes (100/pct - 1) * 100 with exact decimal
// arithmetic, rounded to two places for display.
func potentialProfit(arbitragePercentage float64) float64 {
	pct := decimal.NewFromFloat(arbitragePercentage)
	if pct.IsZero() {
		return 0
	}
	hundred := decimal.NewFromInt(100)
	profit := hundred.Div(pct).Sub(decimal.NewFromInt(1)).Mul(hundred)
	return profit.Round(2).InexactFloat64()
}
