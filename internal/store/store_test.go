package store

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestStore(t *testing.T, backend Backend, clock *fakeClock) *Store {
	t.Helper()
	s := Open(backend, Options{Logger: quietLogger(), Now: clock.Now})
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func persisted(t *testing.T, b Backend) map[string]entry {
	t.Helper()
	data, err := b.Load()
	require.NoError(t, err)
	entries := make(map[string]entry)
	if data != nil {
		require.NoError(t, json.Unmarshal(data, &entries))
	}
	return entries
}

func TestSaveRetrieve(t *testing.T) {
	clock := newFakeClock()
	backend := NewMemoryBackend()
	s := openTestStore(t, backend, clock)

	s.Save("trending_week_page_1", json.RawMessage(`{"page":1}`), 5*time.Minute)

	got, ok := s.Retrieve("trending_week_page_1")
	require.True(t, ok)
	assert.JSONEq(t, `{"page":1}`, string(got))

	_, ok = s.Retrieve("trending_day_page_1")
	assert.False(t, ok)

	entries := persisted(t, backend)
	require.Contains(t, entries, "trending_week_page_1")
	assert.Equal(t, clock.Now().Add(5*time.Minute).UnixMilli(), entries["trending_week_page_1"].Expiry)
}

func TestSave_Overwrites(t *testing.T) {
	s := openTestStore(t, NewMemoryBackend(), newFakeClock())

	s.Save("k", json.RawMessage(`1`), time.Minute)
	s.Save("k", json.RawMessage(`2`), time.Minute)

	got, ok := s.Retrieve("k")
	require.True(t, ok)
	assert.Equal(t, "2", string(got))
}

func TestRetrieve_ExpiryBoundary(t *testing.T) {
	clock := newFakeClock()
	backend := NewMemoryBackend()
	s := openTestStore(t, backend, clock)

	s.Save("k", json.RawMessage(`"v"`), time.Minute)

	// Exactly at expiry the entry is still live
	clock.Advance(time.Minute)
	_, ok := s.Retrieve("k")
	assert.True(t, ok)

	clock.Advance(time.Millisecond)
	_, ok = s.Retrieve("k")
	assert.False(t, ok)
	assert.NotContains(t, persisted(t, backend), "k", "expired entry is written back as deleted")

	// Repeated reads of an expired key stay absent
	_, ok = s.Retrieve("k")
	assert.False(t, ok)
}

func TestInvalidateByPrefix(t *testing.T) {
	s := openTestStore(t, NewMemoryBackend(), newFakeClock())

	s.Save("favourites_page_1", json.RawMessage(`1`), time.Minute)
	s.Save("favourites_page_2", json.RawMessage(`2`), time.Minute)
	s.Save("ratings_page_1", json.RawMessage(`3`), time.Minute)
	s.Save("trending_week_page_1", json.RawMessage(`4`), time.Minute)

	s.InvalidateByPrefix("favourites")

	_, ok := s.Retrieve("favourites_page_1")
	assert.False(t, ok)
	_, ok = s.Retrieve("favourites_page_2")
	assert.False(t, ok)
	_, ok = s.Retrieve("ratings_page_1")
	assert.True(t, ok)
	_, ok = s.Retrieve("trending_week_page_1")
	assert.True(t, ok)

	// No matches is a no-op
	s.InvalidateByPrefix("search")
	_, ok = s.Retrieve("ratings_page_1")
	assert.True(t, ok)
}

func TestClearAll(t *testing.T) {
	backend := NewMemoryBackend()
	s := openTestStore(t, backend, newFakeClock())

	s.Save("a", json.RawMessage(`1`), time.Minute)
	s.Save("b", json.RawMessage(`2`), time.Minute)
	s.ClearAll()

	_, ok := s.Retrieve("a")
	assert.False(t, ok)
	data, err := backend.Load()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCorruptBlobIsEmpty(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Save([]byte("{not json")))

	s := openTestStore(t, backend, newFakeClock())

	_, ok := s.Retrieve("anything")
	assert.False(t, ok)

	s.Save("k", json.RawMessage(`true`), time.Minute)
	got, ok := s.Retrieve("k")
	require.True(t, ok)
	assert.Equal(t, "true", string(got))
}

type failingBackend struct {
	MemoryBackend
}

func (f *failingBackend) Load() ([]byte, error) { return nil, errors.New("disk gone") }
func (f *failingBackend) Save([]byte) error    { return errors.New("disk gone") }

func TestBackendFailuresAreMisses(t *testing.T) {
	s := openTestStore(t, &failingBackend{}, newFakeClock())

	s.Save("k", json.RawMessage(`1`), time.Minute)
	_, ok := s.Retrieve("k")
	assert.False(t, ok)
}

func TestOpen_SweepsExpired(t *testing.T) {
	clock := newFakeClock()
	backend := NewMemoryBackend()

	first := Open(backend, Options{Logger: quietLogger(), Now: clock.Now})
	first.Save("old", json.RawMessage(`1`), time.Minute)
	first.Save("fresh", json.RawMessage(`2`), time.Hour)
	require.NoError(t, first.Close())

	clock.Advance(2 * time.Minute)
	openTestStore(t, backend, clock)

	entries := persisted(t, backend)
	assert.NotContains(t, entries, "old")
	assert.Contains(t, entries, "fresh")
}

func TestRemoveExpired(t *testing.T) {
	clock := newFakeClock()
	backend := NewMemoryBackend()
	s := openTestStore(t, backend, clock)

	s.Save("a", json.RawMessage(`1`), time.Minute)
	s.Save("b", json.RawMessage(`2`), 3*time.Minute)
	clock.Advance(2 * time.Minute)

	s.RemoveExpired()

	entries := persisted(t, backend)
	assert.NotContains(t, entries, "a")
	assert.Contains(t, entries, "b")
}

func TestPeriodicSweep(t *testing.T) {
	clock := newFakeClock()
	backend := NewMemoryBackend()
	s := Open(backend, Options{Logger: quietLogger(), Now: clock.Now, SweepInterval: 10 * time.Millisecond})
	defer s.Close()

	s.Save("a", json.RawMessage(`1`), time.Minute)
	clock.Advance(time.Hour)

	assert.Eventually(t, func() bool {
		data, err := backend.Load()
		if err != nil {
			return false
		}
		var entries map[string]entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return false
		}
		_, present := entries["a"]
		return !present
	}, time.Second, 10*time.Millisecond)
}

func TestClose_Idempotent(t *testing.T) {
	s := Open(NewMemoryBackend(), Options{Logger: quietLogger(), SweepInterval: time.Hour})
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

func TestStats(t *testing.T) {
	clock := newFakeClock()
	s := openTestStore(t, NewMemoryBackend(), clock)

	s.Save("favourites_page_1", json.RawMessage(`1`), time.Minute)
	s.Save("ratings_page_1", json.RawMessage(`2`), time.Hour)
	s.Save("search_dune_page_1", json.RawMessage(`3`), time.Hour)
	clock.Advance(2 * time.Minute)

	stats := s.Stats([]string{"trending", "search", "ratings", "favourites"})
	assert.Equal(t, 3, stats.Entries)
	assert.Equal(t, 1, stats.Expired)
	assert.Equal(t, 1, stats.ByPrefix["favourites"])
	assert.Equal(t, 1, stats.ByPrefix["search"])
	assert.Zero(t, stats.ByPrefix["trending"])

	// Stats does not evict
	assert.Equal(t, 3, s.Stats(nil).Entries)
}

type page struct {
	Page    int      `json:"page"`
	Results []string `json:"results"`
}

func TestTypedGetPut(t *testing.T) {
	s := openTestStore(t, NewMemoryBackend(), newFakeClock())

	require.NoError(t, Put(s, "k", &page{Page: 2, Results: []string{"a"}}, time.Minute))

	got, ok := Get[page](s, "k")
	require.True(t, ok)
	assert.Equal(t, &page{Page: 2, Results: []string{"a"}}, got)

	s.Save("bad", json.RawMessage(`"not an object"`), time.Minute)
	_, ok = Get[page](s, "bad")
	assert.False(t, ok)
}
