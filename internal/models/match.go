package models

import (
	"time"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/league"
)

// MatchStatus represents the lifecycle state of a match.
type MatchStatus string

const (
	StatusScheduled MatchStatus = "scheduled"
	StatusLive      MatchStatus = "live"
	StatusFinished  MatchStatus = "finished"
)

// Score is a projected or final score for both sides.
type Score struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// Match is the engine's primary input record. The engine never mutates a
// Match it is handed; annotations are attached to shallow copies via the
// With* builders.
type Match struct {
	ID        string        `json:"id" validate:"required"`
	League    league.League `json:"league"`
	HomeTeam  Team          `json:"homeTeam" validate:"required"`
	AwayTeam  Team          `json:"awayTeam" validate:"required"`
	StartTime time.Time     `json:"startTime"`
	Status    MatchStatus   `json:"status"`
	Odds      *Odds         `json:"odds,omitempty"`
	// Score holds the final score once Status is finished.
	Score *Score `json:"score,omitempty"`

	// Engine annotations. Additive and non-destructive: all other fields
	// are exactly what the ingestion collaborator supplied.
	Prediction *Prediction          `json:"prediction,omitempty"`
	SmartScore *SmartScore          `json:"smartScore,omitempty"`
	Validation *AlgorithmValidation `json:"algorithmValidation,omitempty"`
}

// Title returns a display title for the match.
func (m *Match) Title() string {
	return m.AwayTeam.Name + " @ " + m.HomeTeam.Name
}

// Team returns the team playing the given side. Draw has no team and
// returns the zero Team.
func (m *Match) Team(side Side) Team {
	switch side {
	case SideHome:
		return m.HomeTeam
	case SideAway:
		return m.AwayTeam
	}
	return Team{}
}

// WithPrediction returns a shallow copy of the match carrying the
// prediction annotation. Nested team and odds records are shared, never
// copied: they are read-only by contract.
func (m *Match) WithPrediction(p *Prediction) *Match {
	annotated := *m
	annotated.Prediction = p
	return &annotated
}

// WithSmartScore returns a shallow copy carrying the smart-score
// annotation.
func (m *Match) WithSmartScore(s *SmartScore) *Match {
	annotated := *m
	annotated.SmartScore = s
	return &annotated
}

// WithValidation returns a shallow copy carrying the cross-algorithm
// consensus annotation.
func (m *Match) WithValidation(v *AlgorithmValidation) *Match {
	annotated := *m
	annotated.Validation = v
	return &annotated
}
