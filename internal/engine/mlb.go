package engine

import (
	"math"
	"time"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/rng"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/strength"
)

// Baseball carries high outcome variance, so the MLB model uses a
// narrower confidence window and a deliberate tie-breaking jitter.
const (
	mlbConfidenceFloor = 45.0
	mlbConfidenceCeil  = 75.0

	mlbWinPctWeight     = 25.0
	mlbRunDiffWeight    = 0.15
	mlbFormWeight       = 5.0
	mlbHeadToHeadWeight = 15.0
	// Baseball's park advantage is historically weak.
	mlbHomeField = 1.0
	mlbJitter    = 2.0

	mlbMinMeetings = 3

	// Neutral expected runs per side.
	mlbBaseRuns = 4.1
)

// predictMLB models baseball on run differentials instead of the generic
// strength sums. Same neutral start and cache-lock discipline as the
// generic model.
func (e *Engine) predictMLB(match *models.Match, h2h *HeadToHead) *models.Prediction {
	confidence := neutralStart

	homeWinPct, homeOK := match.HomeTeam.WinPct()
	awayWinPct, awayOK := match.AwayTeam.WinPct()
	if !homeOK {
		homeWinPct = 0.5
	}
	if !awayOK {
		awayWinPct = 0.5
	}
	confidence += (homeWinPct - awayWinPct) * mlbWinPctWeight

	// Pythagorean-expectation proxy: season win percentage mapped onto a
	// run-differential scale.
	homeRunDiff := runDifferential(homeWinPct)
	awayRunDiff := runDifferential(awayWinPct)
	confidence += (homeRunDiff - awayRunDiff) * mlbRunDiffWeight

	homeForm, homeFormOK := strength.WeightedFormWinPct(match.HomeTeam.RecentForm)
	awayForm, awayFormOK := strength.WeightedFormWinPct(match.AwayTeam.RecentForm)
	if homeFormOK && awayFormOK {
		confidence += (homeForm - awayForm) * mlbFormWeight
	}

	if h2h.Total() >= mlbMinMeetings {
		h2hHomePct := float64(h2h.HomeWins) / float64(h2h.Total())
		confidence += (h2hHomePct - 0.5) * mlbHeadToHeadWeight
	}

	confidence += mlbHomeField

	// Symmetric jitter breaks ties; seeded by match id so the pre-cache
	// value is reproducible.
	r := rng.New(match.ID, "mlb")
	confidence += r.Range(-mlbJitter, mlbJitter)

	recommended := models.SideHome
	if confidence < neutralStart {
		recommended = models.SideAway
	}
	confidence = clamp(math.Abs(confidence), mlbConfidenceFloor, mlbConfidenceCeil)

	return &models.Prediction{
		AlgorithmID: models.AlgorithmPrimary,
		Recommended: recommended,
		Confidence:  round1(confidence),
		ProjectedScore: &models.Score{
			Home: projectRuns(homeRunDiff, r),
			Away: projectRuns(awayRunDiff, r),
		},
		PredictedAt: time.Now(),
	}
}

func runDifferential(winPct float64) float64 {
	return (winPct - 0.5) * 120
}

// projectRuns derives expected runs from the run-differential factor
// plus independent noise per side.
func projectRuns(runDiff float64, r *rng.Rand) float64 {
	runs := mlbBaseRuns + runDiff/30 + r.Range(-0.8, 0.8)
	if runs < 0 {
		runs = 0
	}
	return math.Round(runs)
}
