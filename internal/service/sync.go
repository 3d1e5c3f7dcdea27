package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/domain"
)

const defaultBulkConcurrency = 8

// TTLs holds the cache lifetime for each resource kind
type TTLs struct {
	Trending   time.Duration
	Search     time.Duration
	Favourites time.Duration
	Ratings    time.Duration
}

// TTLsFromConfig converts the configured minute values
func TTLsFromConfig(cfg config.TTLConfig) TTLs {
	return TTLs{
		Trending:   cfg.Trending(),
		Search:     cfg.Search(),
		Favourites: cfg.Favourites(),
		Ratings:    cfg.Ratings(),
	}
}

// Options configures a SyncService
type Options struct {
	TTL TTLs

	// BulkConcurrency bounds in-flight removals during clear-all
	BulkConcurrency int

	Logger *slog.Logger
}

// SyncService is the single entry point for reading and mutating trending,
// search, favourite and rating data. It reconciles the response cache, the
// provider and the in-memory favourite/rating indexes.
//
// The indexes are derived from the favourites/ratings pages fetched so far in
// this session. A movie outside those pages reports not-favourite/unrated
// until a page containing it is read; Warm primes page 1 of both.
type SyncService struct {
	gateway domain.MovieGateway
	cache   domain.ResponseCache
	logger  *slog.Logger

	ttl             TTLs
	bulkConcurrency int

	favourites *favouriteIndex
	ratings    *ratingIndex
}

// New creates a SyncService over an explicitly constructed cache
func New(gateway domain.MovieGateway, cache domain.ResponseCache, opts Options) *SyncService {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.BulkConcurrency <= 0 {
		opts.BulkConcurrency = defaultBulkConcurrency
	}

	return &SyncService{
		gateway:         gateway,
		cache:           cache,
		logger:          opts.Logger,
		ttl:             opts.TTL,
		bulkConcurrency: opts.BulkConcurrency,
		favourites:      newFavouriteIndex(),
		ratings:         newRatingIndex(),
	}
}

// IsFavourite reports whether movieID is in the favourite index
func (s *SyncService) IsFavourite(movieID int) bool {
	return s.favourites.has(movieID)
}

// GetRating returns the indexed rating for movieID, 0 when unrated
func (s *SyncService) GetRating(movieID int) float64 {
	return s.ratings.get(movieID)
}

// Warm loads page 1 of favourites and ratings so that index lookups are
// meaningful before those listings are opened. Failures are logged only.
func (s *SyncService) Warm(ctx context.Context) {
	if _, err := s.GetFavourites(ctx, 1); err != nil {
		s.logger.Warn("failed to warm favourites", "error", err)
	}
	if _, err := s.GetRatedMovies(ctx, 1); err != nil {
		s.logger.Warn("failed to warm ratings", "error", err)
	}
	s.logger.Debug("indexes warmed", "favourites", s.favourites.len(), "ratings", s.ratings.len())
}

// ClearCache drops every cached response. Indexes are untouched.
func (s *SyncService) ClearCache() {
	s.cache.ClearAll()
	s.logger.Info("cache cleared")
}

func (s *SyncService) invalidate(prefix string) {
	s.cache.InvalidateByPrefix(prefix)
}
