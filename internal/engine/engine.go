// Package engine implements the base prediction model: a neutral-start
// confidence built from team strength, home advantage, head-to-head
// history and momentum, locked per match id through the prediction cache.
package engine

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/cache"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/league"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/metrics"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/projector"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/strength"
)

// Confidence bounds for the generic model.
const (
	confidenceFloor = 40.0
	confidenceCeil  = 85.0
	neutralStart    = 50.0
)

// Factor weights, applied in order.
const (
	strengthWeight   = 0.25
	headToHeadWeight = 0.25
	momentumWeight   = 0.20
)

// HeadToHead carries optional prior-meeting history between the two
// teams, supplied by the ingestion collaborator.
type HeadToHead struct {
	HomeWins int `json:"homeWins"`
	AwayWins int `json:"awayWins"`
}

// Total returns the number of prior meetings.
func (h *HeadToHead) Total() int {
	if h == nil {
		return 0
	}
	return h.HomeWins + h.AwayWins
}

// Engine is the base prediction model.
type Engine struct {
	cache     *cache.PredictionCache
	persister *cache.Persister
	logger    *logrus.Logger
}

// New creates the base engine. The persister is optional; when present,
// every fresh prediction schedules a debounced store write.
func New(pc *cache.PredictionCache, persister *cache.Persister, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{cache: pc, persister: persister, logger: logger}
}

// Predict returns the locked prediction for a match, computing it on the
// first call and serving the cached object on every later call within
// the TTL window. MLB matches are routed to the run-differential model.
func (e *Engine) Predict(ctx context.Context, match *models.Match, h2h *HeadToHead) (*models.Prediction, error) {
	if match == nil || match.ID == "" {
		return nil, models.ErrMatchIDRequired
	}

	key := cache.Key{MatchID: match.ID, AlgorithmID: models.AlgorithmPrimary}
	if entry := e.cache.Get(key); entry != nil && entry.Match.Prediction != nil {
		return entry.Match.Prediction, nil
	}

	var prediction *models.Prediction
	if match.League == league.MLB {
		prediction = e.predictMLB(match, h2h)
	} else {
		prediction = e.predictGeneric(match, h2h)
	}

	e.cache.Put(match.WithPrediction(prediction), 0)
	if e.persister != nil {
		e.persister.MarkDirty()
	}
	metrics.PredictionsComputedTotal.WithLabelValues(models.AlgorithmPrimary).Inc()

	e.logger.WithFields(logrus.Fields{
		"match":       match.ID,
		"recommended": prediction.Recommended,
		"confidence":  prediction.Confidence,
	}).Debug("Base prediction computed")
	return prediction, nil
}

// Cache exposes the prediction cache for the algorithm variants, which
// share the same lock discipline.
func (e *Engine) Cache() *cache.PredictionCache {
	return e.cache
}

// Persister exposes the optional persistence hook.
func (e *Engine) Persister() *cache.Persister {
	return e.persister
}

func (e *Engine) predictGeneric(match *models.Match, h2h *HeadToHead) *models.Prediction {
	home := strength.Compute(match.HomeTeam)
	away := strength.Compute(match.AwayTeam)

	// Neutral start: no inherent home bias. Everything below is an
	// explicit, bounded adjustment.
	confidence := neutralStart

	confidence += (home.Sum() - away.Sum()) * strengthWeight

	homeAdvantage := strength.HomeAdvantage(match.League, match.HomeTeam)
	confidence += homeAdvantage

	if total := h2h.Total(); total > 0 {
		historicalHomeWinPct := float64(h2h.HomeWins) / float64(total)
		confidence += (historicalHomeWinPct*100 - 50) * headToHeadWeight
	}

	confidence += (home.Momentum - away.Momentum) * momentumWeight

	recommended := models.SideHome
	if confidence < neutralStart {
		recommended = models.SideAway
	}
	confidence = clamp(math.Abs(confidence), confidenceFloor, confidenceCeil)

	homeScore, awayScore := projector.Project(match.League, home, away, homeAdvantage)

	return &models.Prediction{
		AlgorithmID:    models.AlgorithmPrimary,
		Recommended:    recommended,
		Confidence:     round1(confidence),
		ProjectedScore: &models.Score{Home: homeScore, Away: awayScore},
		PredictedAt:    time.Now(),
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
