package models

import "time"

// Side is the recommended outcome of a match.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
	SideDraw Side = "draw"
)

// Opposite returns the opposing side. Draw is its own opposite.
func (s Side) Opposite() Side {
	switch s {
	case SideHome:
		return SideAway
	case SideAway:
		return SideHome
	}
	return s
}

// Algorithm identifiers used across the engine, the calibration loop and
// the cross-algorithm validator.
const (
	AlgorithmPrimary   = "primary"
	AlgorithmMLPower   = "ml_power_index"
	AlgorithmValuePick = "value_pick_finder"
	AlgorithmStatEdge  = "statistical_edge"
)

// CalibrationInfo records how an algorithm's raw confidence was adjusted
// by the calibration feedback loop.
type CalibrationInfo struct {
	Multiplier     float64 `json:"multiplier"`
	MeetsThreshold bool    `json:"meetsThreshold"`
	IsPaused       bool    `json:"isPaused"`
}

// RiskLevel tiers a prediction by calibrated confidence.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Prediction is the output of any prediction algorithm for one match.
// Once written through the prediction cache it is immutable for the
// lifetime of the cache entry: a cache hit returns the original object
// unchanged even if the algorithm would now produce a different number.
type Prediction struct {
	AlgorithmID string  `json:"algorithmId" validate:"required"`
	Recommended Side    `json:"recommended" validate:"required,oneof=home away draw"`
	Confidence  float64 `json:"confidence" validate:"required,gte=35,lte=90"`
	// RawConfidence is the pre-calibration value; zero when the algorithm
	// does not calibrate.
	RawConfidence float64          `json:"rawConfidence,omitempty"`
	Calibration   *CalibrationInfo `json:"calibration,omitempty"`

	ExpectedValue   float64 `json:"expectedValue,omitempty"`
	EVPercentage    float64 `json:"evPercentage,omitempty"`
	TrueProbability float64 `json:"trueProbability,omitempty"`
	KellyStake      float64 `json:"kellyStake,omitempty"`

	ProjectedScore *Score `json:"projectedScore,omitempty"`

	// Statistical Edge extras.
	AnalysisFactors   map[string]float64 `json:"analysisFactors,omitempty"`
	DetailedReasoning []string           `json:"detailedReasoning,omitempty"`
	RiskLevel         RiskLevel          `json:"riskLevel,omitempty"`
	WarningFlags      []string           `json:"warningFlags,omitempty"`

	PredictedAt time.Time `json:"predictedAt"`
}

// AlgorithmValidation is the cross-algorithm consensus annotation.
type AlgorithmValidation struct {
	AgreementRate      float64 `json:"agreementRate"`
	AgreementLevel     string  `json:"agreementLevel"`
	ConsensusScore     int     `json:"consensusScore"`
	AlgorithmsAgreeing int     `json:"algorithmsAgreeing"`
	AlgorithmsCompared int     `json:"algorithmsCompared"`
}
