package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/store"
)

// cachedPage is the shared cache-or-fetch path. apply runs on both hits and
// misses so the indexes stay correct either way; on a miss its result is what
// gets cached.
func cachedPage[T any](
	ctx context.Context,
	s *SyncService,
	key string,
	ttl time.Duration,
	fetch func(ctx context.Context) (*domain.Page[T], error),
	apply func(p *domain.Page[T]),
) (*domain.Page[T], error) {
	if cached, ok := store.Get[domain.Page[T]](s.cache, key); ok {
		s.logger.Debug("cache hit", "key", key)
		if apply != nil {
			apply(cached)
		}
		return cached, nil
	}

	page, err := fetch(ctx)
	if err != nil {
		s.logger.Error("failed to fetch page", "key", key, "error", err)
		return nil, err
	}

	if apply != nil {
		apply(page)
	}

	if err := store.Put(s.cache, key, page, ttl); err != nil {
		s.logger.Warn("failed to cache page", "key", key, "error", err)
	}
	return page, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// GetTrending returns a page of trending movies for window
func (s *SyncService) GetTrending(ctx context.Context, window domain.TimeWindow, page int) (*domain.MoviePage, error) {
	page = normalizePage(page)
	return cachedPage(ctx, s, TrendingKey(window, page), s.ttl.Trending,
		func(ctx context.Context) (*domain.MoviePage, error) {
			return s.gateway.Trending(ctx, window, page)
		}, nil)
}

// Search returns a page of movies matching query. A blank query yields an
// empty page without touching the cache or the provider.
func (s *SyncService) Search(ctx context.Context, query string, page int) (*domain.MoviePage, error) {
	page = normalizePage(page)
	if strings.TrimSpace(query) == "" {
		return &domain.MoviePage{Page: page, Results: []domain.Movie{}}, nil
	}
	return cachedPage(ctx, s, SearchKey(query, page), s.ttl.Search,
		func(ctx context.Context) (*domain.MoviePage, error) {
			return s.gateway.Search(ctx, query, page)
		}, nil)
}

// GetFavourites returns a page of the account's favourites and folds it into
// the favourite index. Page 1 rebuilds the index.
func (s *SyncService) GetFavourites(ctx context.Context, page int) (*domain.MoviePage, error) {
	page = normalizePage(page)
	return cachedPage(ctx, s, FavouritesKey(page), s.ttl.Favourites,
		func(ctx context.Context) (*domain.MoviePage, error) {
			return s.gateway.Favourites(ctx, page)
		},
		func(p *domain.MoviePage) {
			ids := make([]int, len(p.Results))
			for i, m := range p.Results {
				ids[i] = m.ID
			}
			s.favourites.merge(page, ids)
		})
}

// GetRatedMovies returns a page of the account's rated movies, with
// UserRating normalized and results ordered by it (highest first). Page 1
// rebuilds the rating index.
func (s *SyncService) GetRatedMovies(ctx context.Context, page int) (*domain.RatedPage, error) {
	page = normalizePage(page)
	return cachedPage(ctx, s, RatingsKey(page), s.ttl.Ratings,
		func(ctx context.Context) (*domain.RatedPage, error) {
			return s.gateway.RatedMovies(ctx, page)
		},
		func(p *domain.RatedPage) {
			s.ratings.merge(page, normalizeRatedPage(p))
		})
}

// normalizeRatedPage sets UserRating on every result, sorts by it descending
// and returns the id->rating pairs
func normalizeRatedPage(p *domain.RatedPage) map[int]float64 {
	ratings := make(map[int]float64, len(p.Results))
	for i := range p.Results {
		r := p.Results[i].NormalizedRating()
		p.Results[i].UserRating = r
		ratings[p.Results[i].ID] = r
	}

	sort.SliceStable(p.Results, func(i, j int) bool {
		return p.Results[i].UserRating > p.Results[j].UserRating
	})
	return ratings
}
