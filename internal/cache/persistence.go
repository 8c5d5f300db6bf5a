package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/store"
)

const (
	// DefaultDebounce batches writes: a burst of predictions costs one
	// store sweep once the burst goes idle.
	DefaultDebounce = 1 * time.Second
	// maxBlobSize filters pathological entries out of persistence.
	maxBlobSize = 64 * 1024
)

// Persister mirrors cache entries into an injected Store with debounced
// batch writes. Losing an unpersisted batch on process exit is accepted:
// predictions recompute and re-cache next session.
type Persister struct {
	cache    *PredictionCache
	store    store.Store
	debounce time.Duration
	logger   *logrus.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewPersister wires a cache to a store.
func NewPersister(pc *PredictionCache, st store.Store, debounce time.Duration, logger *logrus.Logger) *Persister {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Persister{cache: pc, store: st, debounce: debounce, logger: logger}
}

// Load restores previously persisted entries into the cache. A blob that
// fails to decode invalidates the whole store: the serialized format has
// no versioning guarantee, so a mismatch discards everything.
func (p *Persister) Load(ctx context.Context) error {
	type keyed struct {
		key   string
		entry *Entry
	}
	var loaded []keyed
	formatMismatch := false

	err := p.store.Iterate(ctx, func(key string, value []byte) error {
		var entry Entry
		if jsonErr := json.Unmarshal(value, &entry); jsonErr != nil || entry.Match == nil {
			formatMismatch = true
			return nil
		}
		loaded = append(loaded, keyed{key: key, entry: &entry})
		return nil
	})
	if err != nil {
		return err
	}

	if formatMismatch {
		p.logger.Warn("Prediction store format mismatch, discarding persisted cache")
		return p.discardAll(ctx)
	}

	now := time.Now()
	restored := 0
	for _, item := range loaded {
		if item.entry.Expired(now) {
			continue
		}
		remaining := item.entry.TTL - now.Sub(item.entry.Timestamp)
		if item.entry.TTL <= 0 {
			remaining = p.cache.ttl
		}
		p.cache.mu.Lock()
		p.cache.items.Set(item.key, item.entry, remaining)
		p.cache.order = append(p.cache.order, item.key)
		p.cache.mu.Unlock()
		restored++
	}
	p.logger.WithField("entries", restored).Info("Prediction cache restored from store")
	return nil
}

// MarkDirty schedules a debounced persistence sweep.
func (p *Persister) MarkDirty() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.debounce, func() {
		if err := p.Flush(context.Background()); err != nil {
			p.logger.WithError(err).Warn("Debounced cache persistence failed")
		}
	})
}

// Flush writes the current live entries to the store immediately,
// filtered to complete, non-oversized entries.
func (p *Persister) Flush(ctx context.Context) error {
	entries := p.cache.snapshot()
	for key, entry := range entries {
		if entry.Match == nil || entry.Match.Prediction == nil {
			continue
		}
		blob, err := json.Marshal(entry)
		if err != nil {
			p.logger.WithError(err).WithField("key", key).Warn("Skipping unserializable cache entry")
			continue
		}
		if len(blob) > maxBlobSize {
			p.logger.WithField("key", key).Debug("Skipping oversized cache entry")
			continue
		}
		if err := p.store.Set(ctx, key, blob); err != nil {
			return err
		}
	}
	return nil
}

// Close stops any pending debounce timer and flushes once.
func (p *Persister) Close(ctx context.Context) error {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.mu.Unlock()
	return p.Flush(ctx)
}

func (p *Persister) discardAll(ctx context.Context) error {
	var keys []string
	if err := p.store.Iterate(ctx, func(key string, _ []byte) error {
		keys = append(keys, key)
		return nil
	}); err != nil {
		return err
	}
	for _, key := range keys {
		if err := p.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
