// Package cache implements the per-match prediction lock. Within a TTL
// window every predictor invocation for the same match id returns the
// entry written by the first invocation, which is what makes the
// internally stochastic algorithms externally idempotent.
package cache

import (
	"math"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/metrics"
	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
)

const (
	// DefaultTTL is how long a locked prediction stays authoritative.
	DefaultTTL = 30 * time.Minute
	// DefaultMaxSize bounds the number of live entries.
	DefaultMaxSize = 500
	// evictFraction of the capacity is dropped, oldest first, on overflow.
	evictFraction = 0.10
)

// Key identifies one cached prediction: one match id per algorithm.
type Key struct {
	MatchID     string
	AlgorithmID string
}

// String returns the flat store key.
func (k Key) String() string {
	return k.MatchID + ":" + k.AlgorithmID
}

// Entry is the cached record: the annotated match plus lock metadata.
type Entry struct {
	Match     *models.Match `json:"match"`
	Timestamp time.Time     `json:"timestamp"`
	TTL       time.Duration `json:"ttl"`
}

// Expired reports whether the entry's own TTL window has passed.
func (e *Entry) Expired(now time.Time) bool {
	return e.TTL > 0 && now.After(e.Timestamp.Add(e.TTL))
}

// PredictionCache is the process-wide prediction lock. Construct once at
// startup and pass by reference to the engine and algorithm variants.
type PredictionCache struct {
	mu    sync.Mutex
	items *gocache.Cache
	// order tracks live keys oldest-insertion first for capacity eviction.
	order []string

	ttl     time.Duration
	maxSize int
	logger  *logrus.Logger

	hitCount  uint64
	missCount uint64
}

// New creates a prediction cache. Zero ttl or maxSize fall back to the
// defaults. Background janitors are disabled: expired entries are
// evicted lazily on read, matching the single-threaded access pattern.
func New(ttl time.Duration, maxSize int, logger *logrus.Logger) *PredictionCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &PredictionCache{
		items:   gocache.New(ttl, 0),
		ttl:     ttl,
		maxSize: maxSize,
		logger:  logger,
	}
}

// HasCached reports whether a live entry exists for the key.
func (pc *PredictionCache) HasCached(key Key) bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	_, found := pc.lookup(key)
	return found
}

// Get returns the live entry for a key, or nil. Expired entries are
// dropped on the way out.
func (pc *PredictionCache) Get(key Key) *Entry {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	entry, found := pc.lookup(key)
	if !found {
		pc.missCount++
		metrics.PredictionCacheMissesTotal.Inc()
		pc.updateMetrics()
		return nil
	}
	pc.hitCount++
	metrics.PredictionCacheHitsTotal.Inc()
	pc.updateMetrics()
	return entry
}

// Put locks an annotated match into the cache. A ttl of zero uses the
// cache default. An existing live entry for the same key is left in
// place: the first write wins for the duration of its TTL.
func (pc *PredictionCache) Put(match *models.Match, ttl time.Duration) *Entry {
	if match == nil || match.ID == "" {
		return nil
	}
	algorithmID := models.AlgorithmPrimary
	if match.Prediction != nil && match.Prediction.AlgorithmID != "" {
		algorithmID = match.Prediction.AlgorithmID
	}
	key := Key{MatchID: match.ID, AlgorithmID: algorithmID}
	if ttl <= 0 {
		ttl = pc.ttl
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()

	if existing, found := pc.lookup(key); found {
		return existing
	}

	if pc.items.ItemCount() >= pc.maxSize {
		pc.evictLocked()
	}

	entry := &Entry{Match: match, Timestamp: time.Now(), TTL: ttl}
	pc.items.Set(key.String(), entry, ttl)
	pc.order = append(pc.order, key.String())
	metrics.PredictionCacheSize.Set(float64(pc.items.ItemCount()))
	return entry
}

// Clear drops every entry and resets statistics.
func (pc *PredictionCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.items.Flush()
	pc.order = nil
	pc.hitCount = 0
	pc.missCount = 0
	metrics.PredictionCacheSize.Set(0)
}

// Sweep removes expired entries and returns how many were dropped.
func (pc *PredictionCache) Sweep() int {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	before := pc.items.ItemCount()
	pc.items.DeleteExpired()
	pc.compactOrder()
	removed := before - pc.items.ItemCount()
	if removed > 0 {
		metrics.PredictionCacheSize.Set(float64(pc.items.ItemCount()))
	}
	return removed
}

// ItemCount returns the number of entries currently held, including any
// not yet lazily evicted.
func (pc *PredictionCache) ItemCount() int {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.items.ItemCount()
}

// Stats returns hit/miss counts and the hit ratio.
func (pc *PredictionCache) Stats() (hits, misses uint64, ratio float64) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	hits = pc.hitCount
	misses = pc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// lookup must be called with pc.mu held.
func (pc *PredictionCache) lookup(key Key) (*Entry, bool) {
	raw, found := pc.items.Get(key.String())
	if !found {
		pc.dropFromOrder(key.String())
		return nil, false
	}
	entry, ok := raw.(*Entry)
	if !ok {
		pc.items.Delete(key.String())
		pc.dropFromOrder(key.String())
		return nil, false
	}
	if entry.Expired(time.Now()) {
		pc.items.Delete(key.String())
		pc.dropFromOrder(key.String())
		return nil, false
	}
	return entry, true
}

// evictLocked frees capacity: expired entries first, then the oldest
// slice of live entries by insertion timestamp. Must be called with
// pc.mu held; it never re-enters public methods, so a predictor running
// during the sweep only ever blocks on the mutex.
func (pc *PredictionCache) evictLocked() {
	pc.items.DeleteExpired()
	pc.compactOrder()
	if pc.items.ItemCount() < pc.maxSize {
		metrics.PredictionCacheSize.Set(float64(pc.items.ItemCount()))
		return
	}

	n := int(math.Ceil(float64(pc.maxSize) * evictFraction))
	if n > len(pc.order) {
		n = len(pc.order)
	}
	for _, key := range pc.order[:n] {
		pc.items.Delete(key)
	}
	pc.order = pc.order[n:]
	pc.logger.WithField("evicted", n).Debug("Prediction cache evicted oldest entries")
	metrics.PredictionCacheSize.Set(float64(pc.items.ItemCount()))
}

// compactOrder drops order entries whose backing item is gone.
func (pc *PredictionCache) compactOrder() {
	live := pc.order[:0]
	for _, key := range pc.order {
		if _, found := pc.items.Get(key); found {
			live = append(live, key)
		}
	}
	pc.order = live
}

func (pc *PredictionCache) dropFromOrder(key string) {
	for i, k := range pc.order {
		if k == key {
			pc.order = append(pc.order[:i], pc.order[i+1:]...)
			return
		}
	}
}

func (pc *PredictionCache) updateMetrics() {
	total := pc.hitCount + pc.missCount
	if total > 0 {
		metrics.PredictionCacheHitRatio.Set(float64(pc.hitCount) / float64(total))
	}
}

// snapshot returns a copy of the live entries keyed by flat key. Used by
// the persistence layer.
func (pc *PredictionCache) snapshot() map[string]*Entry {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	out := make(map[string]*Entry)
	now := time.Now()
	for key, item := range pc.items.Items() {
		entry, ok := item.Object.(*Entry)
		if !ok || entry.Expired(now) {
			continue
		}
		out[key] = entry
	}
	return out
}
