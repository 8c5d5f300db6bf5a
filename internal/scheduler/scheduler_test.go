package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/cache"
	applogger "github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/logger"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/store"
)

func TestSchedulerLifecycle(t *testing.T) {
	log := applogger.NewLogger("error")
	pc := cache.New(time.Minute, 10, log)
	p := cache.NewPersister(pc, store.NewMemoryStore(), 10*time.Millisecond, log)

	s := New(pc, p, log)
	require.Error(t, s.Start(), "no jobs scheduled yet")

	require.NoError(t, s.SchedulePersistence(60))
	require.NoError(t, s.ScheduleSweep("@every 1m"))

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.Error(t, s.Start(), "double start rejected")
	assert.False(t, s.NextRun().IsZero())

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	require.NoError(t, s.Stop(), "stop is idempotent")
}

func TestScheduleRejectsChangesWhileRunning(t *testing.T) {
	log := applogger.NewLogger("error")
	pc := cache.New(time.Minute, 10, log)
	p := cache.NewPersister(pc, store.NewMemoryStore(), 10*time.Millisecond, log)

	s := New(pc, p, log)
	require.NoError(t, s.ScheduleSweep("@every 1m"))
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Error(t, s.SchedulePersistence(60))
	assert.Error(t, s.ScheduleSweep("@every 1m"))
}

func TestSchedulePersistenceRequiresPersister(t *testing.T) {
	log := applogger.NewLogger("error")
	s := New(cache.New(time.Minute, 10, log), nil, log)
	assert.Error(t, s.SchedulePersistence(60))
}
