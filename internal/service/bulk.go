package service

import (
	"context"

	"github.com/mmcdole/reel/internal/domain"
)

// ClearAllFavourites removes every favourite on the account
func (s *SyncService) ClearAllFavourites(ctx context.Context) ([]*domain.StatusResponse, error) {
	return clearAll(ctx, s, domain.OpRemoveFavourite, domain.PrefixFavourites,
		s.GetFavourites,
		func(m domain.Movie) int { return m.ID },
		func(ctx context.Context, id int) (*domain.StatusResponse, error) {
			return s.removeFavourite(ctx, id, false)
		},
		s.favourites.reset)
}

// ClearAllRatings removes every rating on the account
func (s *SyncService) ClearAllRatings(ctx context.Context) ([]*domain.StatusResponse, error) {
	return clearAll(ctx, s, domain.OpRemoveRating, domain.PrefixRatings,
		s.GetRatedMovies,
		func(m domain.RatedMovie) int { return m.ID },
		func(ctx context.Context, id int) (*domain.StatusResponse, error) {
			return s.removeRating(ctx, id, false)
		},
		s.ratings.reset)
}

// clearAll is the two-stage fan-out/fan-in behind the clear-all operations:
// read page 1 for total_pages, read the rest concurrently, then remove every
// collected id concurrently.
//
// Removal aborts on the first failure. Either way, once removal has started
// the prefix is invalidated exactly once and the index is reset, so the next
// read rebuilds both from the provider and a rerun picks up what is left.
func clearAll[T any](
	ctx context.Context,
	s *SyncService,
	op domain.MutationOp,
	prefix string,
	fetch func(ctx context.Context, page int) (*domain.Page[T], error),
	idOf func(T) int,
	remove func(ctx context.Context, id int) (*domain.StatusResponse, error),
	resetIndex func(),
) ([]*domain.StatusResponse, error) {
	first, err := fetch(ctx, 1)
	if err != nil {
		return nil, err
	}
	if first.TotalPages == 0 {
		return []*domain.StatusResponse{}, nil
	}

	rest, err := fetchRemainingPages(ctx, first.TotalPages, s.bulkConcurrency, fetch)
	if err != nil {
		return nil, err
	}

	var ids []int
	for _, page := range append([]*domain.Page[T]{first}, rest...) {
		for _, item := range page.Results {
			ids = append(ids, idOf(item))
		}
	}

	s.logger.Info("clearing collection", "op", op, "pages", first.TotalPages, "items", len(ids))

	results, succeeded, err := removeAll(ctx, ids, s.bulkConcurrency, remove)

	s.invalidate(prefix)
	resetIndex()

	if err != nil {
		s.logger.Error("clear all aborted", "op", op, "succeeded", succeeded, "total", len(ids), "error", err)
		return results, &domain.BulkError{Op: op, Total: len(ids), Succeeded: succeeded, Err: err}
	}

	s.logger.Info("cleared collection", "op", op, "removed", succeeded)
	return results, nil
}
