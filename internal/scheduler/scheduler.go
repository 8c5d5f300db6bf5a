package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/cache"
)

// Scheduler manages the background maintenance jobs of the prediction
// cache: periodic persistence flushes and expired-entry sweeps.
type Scheduler struct {
	cron      *cron.Cron
	cache     *cache.PredictionCache
	persister *cache.Persister
	logger    *logrus.Logger
	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// New creates a scheduler for the given cache and persister. The
// persister may be nil when persistence is disabled.
func New(c *cache.PredictionCache, p *cache.Persister, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		cache:     c,
		persister: p,
		logger:    logger,
		jobIDs:    make([]cron.EntryID, 0),
	}
}

// SchedulePersistence schedules a periodic flush of the cache to its
// backing store.
func (s *Scheduler) SchedulePersistence(intervalSeconds int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}
	if s.persister == nil {
		return fmt.Errorf("no persister configured")
	}
	if intervalSeconds < 5 {
		intervalSeconds = 5
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.persister.Flush(ctx); err != nil {
			s.logger.WithError(err).Warn("Scheduled cache flush failed")
		}
	}

	entryID, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", intervalSeconds), jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("interval_seconds", intervalSeconds).Info("Scheduled cache persistence job")

	return nil
}

// ScheduleSweep schedules a periodic removal of expired cache entries.
func (s *Scheduler) ScheduleSweep(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		removed := s.cache.Sweep()
		if removed > 0 {
			s.logger.WithField("removed", removed).Debug("Swept expired cache entries")
		}
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled cache sweep job")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns the time of the next scheduled job run
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}
