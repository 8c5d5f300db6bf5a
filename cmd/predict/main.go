// Package main provides the entry point for the prediction CLI tool.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/algorithms"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/arbitrage"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/cache"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/calibration"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/config"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/consensus"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/engine"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/injury"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/logger"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/metrics"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/scheduler"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/smartscore"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		input      = flag.String("input", "", "Path to matches JSON file (required)")
		output     = flag.String("output", "", "Output path for annotated matches (default stdout)")
		serve      = flag.Bool("serve", false, "Keep running after the batch: metrics endpoint and cache maintenance")
	)
	flag.Parse()

	ctx := context.Background()

	cfg := loadConfig(ctx, *configPath)
	log := logger.NewLogger(cfg.App.LogLevel)

	if *input == "" {
		log.Fatal("-input is required")
	}

	st := buildStore(ctx, cfg, log)
	defer st.Close()

	pc := cache.New(time.Duration(cfg.Cache.TTLMinutes)*time.Minute, cfg.Cache.MaxSize, log)
	persister := cache.NewPersister(pc, st, time.Duration(cfg.Cache.DebounceMillis)*time.Millisecond, log)
	if err := persister.Load(ctx); err != nil {
		log.WithError(err).Warn("Failed to restore prediction cache, starting empty")
	}
	defer persister.Close(ctx)

	eng := engine.New(pc, persister, log)
	deps := algorithms.Deps{
		Engine:      eng,
		Calibration: buildCalibration(cfg, log),
		Injuries:    buildInjuryResolver(cfg, log),
		Logger:      log,
	}

	matches, headToHead, err := readMatches(*input)
	if err != nil {
		log.Fatalf("Failed to read matches: %v", err)
	}

	annotated := runPipeline(ctx, eng, deps, log, matches, headToHead)

	if err := writeOutput(*output, annotated); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	if *serve {
		runServe(ctx, cfg, pc, persister, log)
	}
}

func loadConfig(ctx context.Context, path string) *config.Config {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if err := config.LoadSecretsFromAWS(ctx, cfg); err != nil {
		logrus.Fatalf("Failed to load secrets: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func buildStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) store.Store {
	switch cfg.Store.Backend {
	case "postgres":
		st, err := store.NewPostgresStore(ctx, store.PostgresConfig{
			Host:           cfg.Store.Host,
			Port:           cfg.Store.Port,
			Name:           cfg.Store.Name,
			User:           cfg.Store.User,
			Password:       cfg.Store.Password,
			SSLMode:        cfg.Store.SSLMode,
			MaxConnections: cfg.Store.MaxConnections,
		})
		if err != nil {
			log.Fatalf("Failed to open postgres store: %v", err)
		}
		return st
	case "memory":
		return store.NewMemoryStore()
	default:
		st, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			log.Fatalf("Failed to open sqlite store: %v", err)
		}
		return st
	}
}

func buildCalibration(cfg *config.Config, log *logrus.Logger) *calibration.Service {
	return calibration.New(log,
		calibration.WithWindowSize(cfg.Calibration.WindowSize),
		calibration.WithMinSamples(cfg.Calibration.MinSamples),
		calibration.WithPauseThreshold(cfg.Calibration.PauseThreshold),
	)
}

func buildInjuryResolver(cfg *config.Config, log *logrus.Logger) *injury.Resolver {
	if cfg.Injury.URL == "" {
		return injury.NewResolver(nil, log)
	}

	httpCfg := injury.DefaultHTTPConfig()
	httpCfg.BaseURL = cfg.Injury.URL
	httpCfg.APIKey = cfg.Injury.APIKey
	if cfg.Injury.TimeoutSeconds > 0 {
		httpCfg.Timeout = time.Duration(cfg.Injury.TimeoutSeconds) * time.Second
	}
	if cfg.Injury.MaxRetries > 0 {
		httpCfg.MaxRetries = cfg.Injury.MaxRetries
	}
	if cfg.Injury.RateLimit > 0 {
		httpCfg.RateLimit = cfg.Injury.RateLimit
	}

	svc, err := injury.NewHTTPService(httpCfg, log)
	if err != nil {
		log.WithError(err).Warn("Injury provider misconfigured, using record-derived fallback")
		return injury.NewResolver(nil, log)
	}
	return injury.NewResolver(svc, log)
}

// matchInput is one input row: a match plus optional head-to-head record
// against this opponent.
type matchInput struct {
	models.Match
	HeadToHead *engine.HeadToHead `json:"headToHead,omitempty"`
}

func readMatches(path string) ([]*models.Match, map[string]*engine.HeadToHead, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read input file: %w", err)
	}

	var rows []matchInput
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, nil, fmt.Errorf("failed to parse matches JSON: %w", err)
	}

	matches := make([]*models.Match, 0, len(rows))
	h2h := make(map[string]*engine.HeadToHead)
	for i := range rows {
		m := rows[i].Match
		matches = append(matches, &m)
		if rows[i].HeadToHead != nil {
			h2h[m.ID] = rows[i].HeadToHead
		}
	}
	return matches, h2h, nil
}

func runPipeline(ctx context.Context, eng *engine.Engine, deps algorithms.Deps, log *logrus.Logger,
	matches []*models.Match, headToHead map[string]*engine.HeadToHead,
) []*models.Match {
	variants := algorithms.All(deps)
	calc := smartscore.NewCalculator(eng, log)
	detector := arbitrage.NewDetector(log)
	plog := logger.WithComponent(log, "pipeline")

	annotated := make([]*models.Match, 0, len(matches))
	for _, match := range matches {
		base, err := eng.Predict(ctx, match, headToHead[match.ID])
		if err != nil {
			plog.WithError(err).WithField("match", match.ID).Warn("Skipping match")
			continue
		}

		variantPredictions := make([]*models.Prediction, 0, len(variants))
		for _, algo := range variants {
			p, err := algo.Predict(ctx, match)
			if err != nil {
				plog.WithError(err).WithFields(logrus.Fields{
					"match":     match.ID,
					"algorithm": algo.ID(),
				}).Warn("Variant failed")
				continue
			}
			variantPredictions = append(variantPredictions, p)
		}

		validation := consensus.Validate(base, variantPredictions)

		score, err := calc.Score(ctx, match)
		if err != nil {
			plog.WithError(err).WithField("match", match.ID).Warn("Smart score failed")
		}

		out := match.WithPrediction(base)
		if score != nil {
			out = out.WithSmartScore(score)
		}
		out = out.WithValidation(validation)
		annotated = append(annotated, out)
	}

	if opportunities := detector.ScanAll(matches); len(opportunities) > 0 {
		log.WithField("count", len(opportunities)).Info("Arbitrage opportunities detected")
	}

	return annotated
}

func writeOutput(path string, matches []*models.Match) error {
	data, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(path, data, 0o644)
}

// runServe keeps the process alive serving Prometheus metrics and
// running cache maintenance until interrupted.
func runServe(ctx context.Context, cfg *config.Config, pc *cache.PredictionCache, persister *cache.Persister, log *logrus.Logger) {
	sched := scheduler.New(pc, persister, log)
	if cfg.Cache.PersistInterval > 0 {
		if err := sched.SchedulePersistence(cfg.Cache.PersistInterval); err != nil {
			log.WithError(err).Warn("Failed to schedule persistence job")
		}
	}
	if err := sched.ScheduleSweep("@every 5m"); err != nil {
		log.WithError(err).Warn("Failed to schedule sweep job")
	}
	if err := sched.Start(); err != nil {
		log.WithError(err).Warn("Scheduler not started")
	} else {
		defer sched.Stop()
	}

	if cfg.Metrics.Enabled {
		addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			log.WithField("addr", addr).Info("Serving metrics")
			if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("Metrics server stopped")
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")
}
