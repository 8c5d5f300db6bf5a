package models

import (
	"sort"
	"time"
)

// BookQuote is a single sportsbook's quote for a match at a point in time.
// Multiple quotes for the same match represent different books and/or
// different times; line-movement readers and the arbitrage detector slice
// the same list differently.
type BookQuote struct {
	Sportsbook string    `json:"sportsbook" validate:"required"`
	Home       float64   `json:"home,omitempty"`
	Away       float64   `json:"away,omitempty"`
	Draw       float64   `json:"draw,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Price returns the quoted decimal price for a side, 0 when not quoted.
func (q BookQuote) Price(side Side) float64 {
	switch side {
	case SideHome:
		return q.Home
	case SideAway:
		return q.Away
	case SideDraw:
		return q.Draw
	}
	return 0
}

// Odds carries the current consensus decimal prices for a match plus the
// raw per-book quote history.
type Odds struct {
	Home     float64     `json:"home,omitempty"`
	Away     float64     `json:"away,omitempty"`
	Draw     float64     `json:"draw,omitempty"`
	LiveOdds []BookQuote `json:"liveOdds,omitempty"`
}

// Price returns the consensus decimal price for a side, 0 when absent.
func (o *Odds) Price(side Side) float64 {
	if o == nil {
		return 0
	}
	switch side {
	case SideHome:
		return o.Home
	case SideAway:
		return o.Away
	case SideDraw:
		return o.Draw
	}
	return 0
}

// ImpliedProbability returns 1/price for a side, 0 when the price is
// missing or invalid.
func (o *Odds) ImpliedProbability(side Side) float64 {
	price := o.Price(side)
	if price <= 1 {
		return 0
	}
	return 1.0 / price
}

// QuotesByTime returns the live quotes sorted oldest first. The original
// slice is not modified.
func (o *Odds) QuotesByTime() []BookQuote {
	if o == nil || len(o.LiveOdds) == 0 {
		return nil
	}
	sorted := append([]BookQuote{}, o.LiveOdds...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.Before(sorted[j].UpdatedAt)
	})
	return sorted
}

// Sportsbooks returns the distinct book names present in the quote history.
func (o *Odds) Sportsbooks() []string {
	if o == nil {
		return nil
	}
	seen := make(map[string]bool)
	var books []string
	for _, q := range o.LiveOdds {
		if q.Sportsbook == "" || seen[q.Sportsbook] {
			continue
		}
		seen[q.Sportsbook] = true
		books = append(books, q.Sportsbook)
	}
	return books
}
