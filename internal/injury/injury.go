// Package injury resolves per-team injury reports. The real lookup is an
// external HTTP collaborator; every failure degrades to a synchronous
// record-derived heuristic so a prediction is always produced.
package injury

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/metrics"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
)

// Report describes a team's injury situation.
type Report struct {
	TeamID        string   `json:"teamId"`
	KeyPlayersOut int      `json:"keyPlayersOut"`
	Descriptions  []string `json:"descriptions,omitempty"`
	// Source is "provider" for real lookups, "fallback" for the heuristic.
	Source string `json:"source"`
}

// Severity maps the report onto [0, 1], where 1 is a heavily depleted
// roster.
func (r Report) Severity() float64 {
	severity := float64(r.KeyPlayersOut) * 0.25
	if severity > 1 {
		severity = 1
	}
	return severity
}

// Service is the external injury-report collaborator contract.
type Service interface {
	Lookup(ctx context.Context, team models.Team) (Report, error)
}

// Resolver wraps a Service with the mandatory fallback path.
type Resolver struct {
	service Service
	logger  *logrus.Logger
}

// NewResolver creates a resolver. A nil service means the fallback is
// always used.
func NewResolver(service Service, logger *logrus.Logger) *Resolver {
	if logger == nil {
		logger = logrus.New()
	}
	return &Resolver{service: service, logger: logger}
}

// Resolve returns the best available report for a team. Provider errors
// are logged, counted and swallowed; the caller always gets a report.
func (r *Resolver) Resolve(ctx context.Context, team models.Team) Report {
	if r.service != nil {
		report, err := r.service.Lookup(ctx, team)
		if err == nil {
			report.Source = "provider"
			return report
		}
		r.logger.WithError(err).WithField("team", team.ID).
			Warn("Injury lookup failed, using record-derived fallback")
		metrics.InjuryLookupFallbacksTotal.Inc()
	}
	return Fallback(team)
}

// Fallback derives an injury proxy from the team's recent results: a
// sustained losing streak often tracks roster attrition.
func Fallback(team models.Team) Report {
	report := Report{TeamID: team.ID, Source: "fallback"}
	streak := team.LosingStreak()
	switch {
	case streak >= 5:
		report.KeyPlayersOut = 2
		report.Descriptions = []string{"extended losing streak suggests multiple absences"}
	case streak >= 3:
		report.KeyPlayersOut = 1
		report.Descriptions = []string{"losing streak suggests a key absence"}
	}
	return report
}
