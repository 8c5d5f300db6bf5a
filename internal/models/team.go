package models

import (
	"strconv"
	"strings"
)

// FormResult is a single game outcome in a team's recent-form sequence.
type FormResult string

const (
	FormWin  FormResult = "W"
	FormLoss FormResult = "L"
)

// Team represents one side of a match. Teams are produced by the data
// ingestion collaborator and are read-only to the engine.
type Team struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Abbreviation string `json:"abbreviation,omitempty"`
	// Record is the team's season win-loss record, e.g. "41-31".
	Record string `json:"record,omitempty"`
	// RecentForm lists recent game results, most recent first.
	RecentForm []FormResult `json:"recentForm,omitempty"`
	// Stats optionally carries offensive/defensive ratings keyed by name.
	Stats map[string]float64 `json:"stats,omitempty"`
}

// WinPct parses the Record string and returns the season win percentage.
// The second return is false when no parseable record is present.
func (t Team) WinPct() (float64, bool) {
	parts := strings.SplitN(strings.TrimSpace(t.Record), "-", 2)
	if len(parts) != 2 {
		return 0, false
	}
	wins, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	losses, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	total := wins + losses
	if total <= 0 {
		return 0, false
	}
	return float64(wins) / float64(total), true
}

// RecentWinRate returns the unweighted win rate over up to n most recent
// games. The second return is false when no form is available.
func (t Team) RecentWinRate(n int) (float64, bool) {
	form := t.RecentForm
	if len(form) == 0 {
		return 0, false
	}
	if n > 0 && len(form) > n {
		form = form[:n]
	}
	wins := 0
	for _, r := range form {
		if r == FormWin {
			wins++
		}
	}
	return float64(wins) / float64(len(form)), true
}

// LosingStreak returns the length of the current losing streak, counted
// from the most recent game.
func (t Team) LosingStreak() int {
	streak := 0
	for _, r := range t.RecentForm {
		if r != FormLoss {
			break
		}
		streak++
	}
	return streak
}

// WinStreak returns the length of the current winning streak.
func (t Team) WinStreak() int {
	streak := 0
	for _, r := range t.RecentForm {
		if r != FormWin {
			break
		}
		streak++
	}
	return streak
}

// Stat returns a named rating from the Stats map with a fallback default.
func (t Team) Stat(name string, def float64) float64 {
	if v, ok := t.Stats[name]; ok {
		return v
	}
	return def
}
