package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	applogger "github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/logger"
)

func record(s *Service, id string, correct, incorrect int) {
	for i := 0; i < correct; i++ {
		s.RecordOutcome(id, true)
	}
	for i := 0; i < incorrect; i++ {
		s.RecordOutcome(id, false)
	}
}

func TestCalibratePassthroughBelowMinSamples(t *testing.T) {
	s := New(applogger.NewLogger("error"))
	record(s, "algo", 3, 2)

	result := s.Calibrate("algo", 60)
	assert.Equal(t, 60.0, result.AdjustedConfidence)
	assert.Equal(t, 1.0, result.Multiplier)
	assert.False(t, result.MeetsThreshold)
	assert.False(t, result.IsPaused)
}

func TestCalibrateBoostsAccurateAlgorithm(t *testing.T) {
	s := New(applogger.NewLogger("error"), WithMinSamples(10))
	record(s, "algo", 8, 2) // 80% accuracy

	result := s.Calibrate("algo", 60)
	assert.True(t, result.MeetsThreshold)
	assert.InDelta(t, 1.15, result.Multiplier, 1e-9, "0.8 accuracy clamps at the ceiling")
	assert.InDelta(t, 69.0, result.AdjustedConfidence, 1e-9)
}

func TestCalibratePenalizesAndPauses(t *testing.T) {
	s := New(applogger.NewLogger("error"), WithMinSamples(10), WithPauseThreshold(0.45))
	record(s, "algo", 4, 6) // 40% accuracy, below pause threshold

	result := s.Calibrate("algo", 60)
	assert.True(t, result.IsPaused)
	assert.InDelta(t, 0.94, result.Multiplier, 1e-9)
	assert.Less(t, result.AdjustedConfidence, 60.0)
}

func TestMultiplierFloor(t *testing.T) {
	s := New(applogger.NewLogger("error"), WithMinSamples(10))
	record(s, "algo", 0, 10)

	result := s.Calibrate("algo", 60)
	assert.InDelta(t, 0.85, result.Multiplier, 1e-9)
}

func TestWindowSlides(t *testing.T) {
	s := New(applogger.NewLogger("error"), WithWindowSize(10), WithMinSamples(5))
	record(s, "algo", 0, 10) // old losses
	record(s, "algo", 10, 0) // recent wins push the losses out

	accuracy, samples := s.Accuracy("algo")
	assert.Equal(t, 10, samples)
	assert.Equal(t, 1.0, accuracy)
}

func TestAccuracyEmptyWindow(t *testing.T) {
	s := New(nil)
	accuracy, samples := s.Accuracy("missing")
	assert.Zero(t, accuracy)
	assert.Zero(t, samples)
}
