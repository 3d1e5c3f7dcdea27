package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/store"
)

// MockGateway is a mock implementation of domain.MovieGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Trending(ctx context.Context, window domain.TimeWindow, page int) (*domain.MoviePage, error) {
	args := m.Called(ctx, window, page)
	p, _ := args.Get(0).(*domain.MoviePage)
	return p, args.Error(1)
}

func (m *MockGateway) Search(ctx context.Context, query string, page int) (*domain.MoviePage, error) {
	args := m.Called(ctx, query, page)
	p, _ := args.Get(0).(*domain.MoviePage)
	return p, args.Error(1)
}

func (m *MockGateway) Favourites(ctx context.Context, page int) (*domain.MoviePage, error) {
	args := m.Called(ctx, page)
	p, _ := args.Get(0).(*domain.MoviePage)
	return p, args.Error(1)
}

func (m *MockGateway) RatedMovies(ctx context.Context, page int) (*domain.RatedPage, error) {
	args := m.Called(ctx, page)
	p, _ := args.Get(0).(*domain.RatedPage)
	return p, args.Error(1)
}

func (m *MockGateway) MarkFavourite(ctx context.Context, movieID int, favourite bool) (*domain.StatusResponse, error) {
	args := m.Called(ctx, movieID, favourite)
	r, _ := args.Get(0).(*domain.StatusResponse)
	return r, args.Error(1)
}

func (m *MockGateway) RateMovie(ctx context.Context, movieID int, value float64) (*domain.StatusResponse, error) {
	args := m.Called(ctx, movieID, value)
	r, _ := args.Get(0).(*domain.StatusResponse)
	return r, args.Error(1)
}

func (m *MockGateway) DeleteRating(ctx context.Context, movieID int) (*domain.StatusResponse, error) {
	args := m.Called(ctx, movieID)
	r, _ := args.Get(0).(*domain.StatusResponse)
	return r, args.Error(1)
}

// countingCache records invalidations on top of a real in-memory store
type countingCache struct {
	*store.Store

	mu            sync.Mutex
	invalidations map[string]int
}

func (c *countingCache) InvalidateByPrefix(prefix string) {
	c.mu.Lock()
	c.invalidations[prefix]++
	c.mu.Unlock()
	c.Store.InvalidateByPrefix(prefix)
}

func (c *countingCache) invalidated(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidations[prefix]
}

func (c *countingCache) has(key string) bool {
	_, ok := c.Store.Retrieve(key)
	return ok
}

var _ domain.ResponseCache = (*countingCache)(nil)

func testTTLs() TTLs {
	return TTLs{
		Trending:   5 * time.Minute,
		Search:     3 * time.Minute,
		Favourites: 10 * time.Minute,
		Ratings:    10 * time.Minute,
	}
}

func newTestService(t *testing.T, concurrency int) (*SyncService, *MockGateway, *countingCache) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.Open(store.NewMemoryBackend(), store.Options{Logger: logger})
	t.Cleanup(func() { _ = st.Close() })

	cache := &countingCache{Store: st, invalidations: make(map[string]int)}
	gw := &MockGateway{}
	svc := New(gw, cache, Options{
		TTL:             testTTLs(),
		BulkConcurrency: concurrency,
		Logger:          logger,
	})
	return svc, gw, cache
}

func ok() *domain.StatusResponse {
	return &domain.StatusResponse{Success: true, StatusCode: 1, StatusMessage: "Success."}
}

func moviePage(page, totalPages int, ids ...int) *domain.MoviePage {
	results := make([]domain.Movie, len(ids))
	for i, id := range ids {
		results[i] = domain.Movie{ID: id, Title: fmt.Sprintf("Movie %d", id)}
	}
	return &domain.MoviePage{Page: page, Results: results, TotalPages: totalPages, TotalResults: len(ids)}
}

func ratedMovie(id int, rating float64) domain.RatedMovie {
	return domain.RatedMovie{Movie: domain.Movie{ID: id, Title: "Rated"}, Rating: &rating}
}
