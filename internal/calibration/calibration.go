// Package calibration adjusts raw algorithm confidence by recent
// real-world accuracy, and pauses algorithms whose accuracy has fallen
// below an acceptable floor.
package calibration

import (
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	defaultWindowSize     = 40
	defaultMinSamples     = 10
	defaultPauseThreshold = 0.45

	// Multiplier bounds. A perfectly average algorithm keeps 1.0; sustained
	// over/under-performance moves the multiplier a bounded amount.
	multiplierFloor = 0.85
	multiplierCeil  = 1.15
)

// Result is the adjustment contract consumed by the algorithm variants.
type Result struct {
	AdjustedConfidence float64 `json:"adjustedConfidence"`
	RawConfidence      float64 `json:"rawConfidence"`
	Multiplier         float64 `json:"multiplier"`
	MeetsThreshold     bool    `json:"meetsThreshold"`
	IsPaused           bool    `json:"isPaused"`
}

// Service tracks per-algorithm accuracy over a sliding outcome window and
// derives a confidence multiplier from it.
type Service struct {
	mu      sync.RWMutex
	windows map[string]*window

	windowSize     int
	minSamples     int
	pauseThreshold float64
	logger         *logrus.Logger
}

type window struct {
	outcomes []bool // true = graded correct
}

// Option configures a Service.
type Option func(*Service)

// WithWindowSize overrides the sliding window length.
func WithWindowSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.windowSize = n
		}
	}
}

// WithMinSamples overrides the minimum graded sample count before the
// multiplier departs from 1.0.
func WithMinSamples(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minSamples = n
		}
	}
}

// WithPauseThreshold overrides the accuracy floor below which an
// algorithm is paused.
func WithPauseThreshold(t float64) Option {
	return func(s *Service) {
		if t > 0 && t < 1 {
			s.pauseThreshold = t
		}
	}
}

// New creates a calibration service.
func New(logger *logrus.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	s := &Service{
		windows:        make(map[string]*window),
		windowSize:     defaultWindowSize,
		minSamples:     defaultMinSamples,
		pauseThreshold: defaultPauseThreshold,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calibrate applies the performance-derived multiplier for an algorithm
// to a raw confidence. Callers clamp the adjusted value to their own
// bounds afterward.
func (s *Service) Calibrate(algorithmID string, rawConfidence float64) Result {
	accuracy, samples := s.Accuracy(algorithmID)

	result := Result{
		RawConfidence: rawConfidence,
		Multiplier:    1.0,
	}
	if samples < s.minSamples {
		result.AdjustedConfidence = rawConfidence
		return result
	}

	result.MeetsThreshold = true
	// Center the multiplier on 1.0 at 50% accuracy; each accuracy point
	// moves it 0.6 of a point, bounded.
	result.Multiplier = clampMultiplier(1.0 + (accuracy-0.5)*0.6)
	result.AdjustedConfidence = rawConfidence * result.Multiplier

	if accuracy < s.pauseThreshold {
		result.IsPaused = true
		s.logger.WithFields(logrus.Fields{
			"algorithm": algorithmID,
			"accuracy":  accuracy,
			"samples":   samples,
		}).Warn("Algorithm paused: recent accuracy below threshold")
	}
	return result
}

// RecordOutcome grades one settled pick for an algorithm, feeding the
// accuracy window.
func (s *Service) RecordOutcome(algorithmID string, correct bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[algorithmID]
	if !ok {
		w = &window{}
		s.windows[algorithmID] = w
	}
	w.outcomes = append(w.outcomes, correct)
	if len(w.outcomes) > s.windowSize {
		w.outcomes = w.outcomes[len(w.outcomes)-s.windowSize:]
	}
}

// Accuracy returns the window accuracy and graded sample count for an
// algorithm. No samples yields (0, 0).
func (s *Service) Accuracy(algorithmID string) (float64, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.windows[algorithmID]
	if !ok || len(w.outcomes) == 0 {
		return 0, 0
	}
	correct := 0
	for _, c := range w.outcomes {
		if c {
			correct++
		}
	}
	return float64(correct) / float64(len(w.outcomes)), len(w.outcomes)
}

func clampMultiplier(m float64) float64 {
	if m < multiplierFloor {
		return multiplierFloor
	}
	if m > multiplierCeil {
		return multiplierCeil
	}
	return m
}
