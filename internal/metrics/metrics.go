// Package metrics provides the centralized Prometheus metrics registry
// for the prediction engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsComputedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "betsmart",
		Name:      "predictions_computed_total",
		Help:      "Total number of predictions computed, by algorithm",
	}, []string{"algorithm"})
	PredictionCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "betsmart",
		Name:      "prediction_cache_hits_total",
		Help:      "Total number of prediction cache hits",
	})
	PredictionCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "betsmart",
		Name:      "prediction_cache_misses_total",
		Help:      "Total number of prediction cache misses",
	})
	SmartScoresComputedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "betsmart",
		Name:      "smart_scores_computed_total",
		Help:      "Total number of smart scores computed",
	})
	ArbitrageOpportunitiesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "betsmart",
		Name:      "arbitrage_opportunities_total",
		Help:      "Total number of arbitrage opportunities detected",
	})
	InjuryLookupFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "betsmart",
		Name:      "injury_lookup_fallbacks_total",
		Help:      "Total number of injury lookups degraded to the record-based fallback",
	})
	BacktestRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "betsmart",
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest replays executed",
	})
)

// Gauge metrics
var (
	PredictionCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "betsmart",
		Name:      "prediction_cache_hit_ratio",
		Help:      "Prediction cache hit ratio",
	})
	PredictionCacheSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "betsmart",
		Name:      "prediction_cache_size",
		Help:      "Number of entries currently in the prediction cache",
	})
	AlgorithmPaused = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "betsmart",
		Name:      "algorithm_paused",
		Help:      "1 when the calibration loop has paused the algorithm",
	}, []string{"algorithm"})
)

// Registry returns the shared registry, registering all metrics once.
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			PredictionsComputedTotal,
			PredictionCacheHitsTotal,
			PredictionCacheMissesTotal,
			SmartScoresComputedTotal,
			ArbitrageOpportunitiesTotal,
			InjuryLookupFallbacksTotal,
			BacktestRunsTotal,
			PredictionCacheHitRatio,
			PredictionCacheSize,
			AlgorithmPaused,
		)
	})
	return registry
}

// Handler returns an HTTP handler exposing the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}
