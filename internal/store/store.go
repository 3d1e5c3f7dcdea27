package store

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultStorageKey is where the whole cache is persisted as one JSON object
const DefaultStorageKey = "movie_cache_store"

// DefaultSweepInterval is how often expired entries are reclaimed
const DefaultSweepInterval = 120 * time.Second

// entry is one cached response; expiry is epoch milliseconds
type entry struct {
	Value  json.RawMessage `json:"value"`
	Expiry int64           `json:"expiry"`
}

// expired reports whether the entry is logically absent at nowMs
func (e entry) expired(nowMs int64) bool {
	return nowMs > e.Expiry
}

// Options configures a Store
type Options struct {
	// SweepInterval is the period of the background expiry sweep.
	// Zero disables the periodic sweep; the initial sweep still runs.
	SweepInterval time.Duration

	Logger *slog.Logger

	// Now overrides the clock (tests)
	Now func() time.Time
}

// Store is the durable TTL response cache. Every operation is a
// read-modify-write of the whole persisted blob; overlapping writers can lose
// an update (last writer wins). Only expired keys are ever swept, so a sweep
// racing a Save cannot drop a live entry.
type Store struct {
	backend Backend
	logger  *slog.Logger
	now     func() time.Time

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Open hydrates a Store from backend, sweeps expired entries once and starts
// the periodic sweep
func Open(backend Backend, opts Options) *Store {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Store{
		backend: backend,
		logger:  opts.Logger,
		now:     opts.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	s.RemoveExpired()

	if opts.SweepInterval > 0 {
		go s.sweepLoop(opts.SweepInterval)
	} else {
		close(s.done)
	}

	return s
}

func (s *Store) sweepLoop(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RemoveExpired()
		case <-s.stop:
			return
		}
	}
}

// Close stops the sweep and releases the backend
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done
		err = s.backend.Close()
	})
	return err
}

func (s *Store) nowMs() int64 {
	return s.now().UnixMilli()
}

// === Persistence helpers ===

// load reads the persisted blob. Missing, unreadable or corrupt data is an
// empty store (cold start).
func (s *Store) load() map[string]entry {
	entries := make(map[string]entry)

	data, err := s.backend.Load()
	if err != nil {
		s.logger.Warn("cache store unreadable, starting empty", "error", err)
		return entries
	}
	if len(data) == 0 {
		return entries
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("cache store corrupt, starting empty", "error", err)
		return make(map[string]entry)
	}
	return entries
}

// persist rewrites the whole blob. Failures are logged and dropped.
func (s *Store) persist(entries map[string]entry) {
	data, err := json.Marshal(entries)
	if err != nil {
		s.logger.Warn("failed to encode cache store", "error", err)
		return
	}
	if err := s.backend.Save(data); err != nil {
		s.logger.Warn("failed to persist cache store", "error", err)
	}
}

// === Operations ===

// Save writes or overwrites key with an entry expiring ttl from now
func (s *Store) Save(key string, value json.RawMessage, ttl time.Duration) {
	entries := s.load()
	entries[key] = entry{
		Value:  value,
		Expiry: s.now().Add(ttl).UnixMilli(),
	}
	s.persist(entries)
}

// Retrieve returns the stored value for key. An expired entry is deleted
// (written back) and reported absent.
func (s *Store) Retrieve(key string) (json.RawMessage, bool) {
	entries := s.load()

	e, ok := entries[key]
	if !ok {
		return nil, false
	}

	if e.expired(s.nowMs()) {
		delete(entries, key)
		s.persist(entries)
		s.logger.Debug("cache entry expired", "key", key)
		return nil, false
	}

	return e.Value, true
}

// InvalidateByPrefix deletes every key starting with prefix
func (s *Store) InvalidateByPrefix(prefix string) {
	entries := s.load()

	removed := 0
	for k := range entries {
		if strings.HasPrefix(k, prefix) {
			delete(entries, k)
			removed++
		}
	}

	if removed > 0 {
		s.persist(entries)
		s.logger.Debug("invalidated cache prefix", "prefix", prefix, "removed", removed)
	}
}

// ClearAll drops the entire store
func (s *Store) ClearAll() {
	if err := s.backend.Remove(); err != nil {
		s.logger.Warn("failed to clear cache store", "error", err)
	}
}

// RemoveExpired deletes all expired entries with a single rewrite
func (s *Store) RemoveExpired() {
	entries := s.load()
	now := s.nowMs()

	removed := 0
	for k, e := range entries {
		if e.expired(now) {
			delete(entries, k)
			removed++
		}
	}

	if removed > 0 {
		s.persist(entries)
		s.logger.Debug("swept expired cache entries", "removed", removed)
	}
}

// Stats describes the current cache contents
type Stats struct {
	Entries  int            `json:"entries"`
	Expired  int            `json:"expired"`
	Bytes    int            `json:"bytes"`
	ByPrefix map[string]int `json:"byPrefix"`
}

// Stats reports entry counts without evicting anything
func (s *Store) Stats(prefixes []string) Stats {
	entries := s.load()
	now := s.nowMs()

	stats := Stats{ByPrefix: make(map[string]int, len(prefixes))}
	for k, e := range entries {
		stats.Entries++
		stats.Bytes += len(k) + len(e.Value)
		if e.expired(now) {
			stats.Expired++
		}
		for _, p := range prefixes {
			if strings.HasPrefix(k, p) {
				stats.ByPrefix[p]++
				break
			}
		}
	}
	return stats
}
