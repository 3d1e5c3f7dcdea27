package service

import (
	"context"

	"github.com/mmcdole/reel/internal/domain"
)

// Mutations are optimistic: the index changes before the provider call and is
// restored from the captured value if the call fails. The cache is only
// touched on success (prefix invalidation), so a failure leaves it as it was.

// AddFavourite marks movieID as a favourite
func (s *SyncService) AddFavourite(ctx context.Context, movieID int) (*domain.StatusResponse, error) {
	return s.addFavourite(ctx, movieID, true)
}

// RemoveFavourite unmarks movieID as a favourite
func (s *SyncService) RemoveFavourite(ctx context.Context, movieID int) (*domain.StatusResponse, error) {
	return s.removeFavourite(ctx, movieID, true)
}

// ToggleFavourite removes movieID if the index says it is a favourite and
// adds it otherwise. A stale index can pick the wrong direction.
func (s *SyncService) ToggleFavourite(ctx context.Context, movieID int) (*domain.StatusResponse, error) {
	if s.IsFavourite(movieID) {
		return s.RemoveFavourite(ctx, movieID)
	}
	return s.AddFavourite(ctx, movieID)
}

func (s *SyncService) addFavourite(ctx context.Context, movieID int, invalidate bool) (*domain.StatusResponse, error) {
	wasFavourite := s.favourites.has(movieID)
	s.favourites.add(movieID)

	resp, err := s.gateway.MarkFavourite(ctx, movieID, true)
	if err != nil {
		if !wasFavourite {
			s.favourites.remove(movieID)
		}
		s.logger.Warn("favourite add rolled back", "movieID", movieID, "error", err)
		return nil, &domain.MutationError{Op: domain.OpAddFavourite, MovieID: movieID, Err: err}
	}

	if invalidate {
		s.invalidate(domain.PrefixFavourites)
	}
	s.logger.Info("added favourite", "movieID", movieID)
	return resp, nil
}

func (s *SyncService) removeFavourite(ctx context.Context, movieID int, invalidate bool) (*domain.StatusResponse, error) {
	wasFavourite := s.favourites.has(movieID)
	s.favourites.remove(movieID)

	resp, err := s.gateway.MarkFavourite(ctx, movieID, false)
	if err != nil {
		if wasFavourite {
			s.favourites.add(movieID)
		}
		s.logger.Warn("favourite removal rolled back", "movieID", movieID, "error", err)
		return nil, &domain.MutationError{Op: domain.OpRemoveFavourite, MovieID: movieID, Err: err}
	}

	if invalidate {
		s.invalidate(domain.PrefixFavourites)
	}
	s.logger.Info("removed favourite", "movieID", movieID)
	return resp, nil
}

// SetRating rates movieID. A value of 0 removes the rating instead of
// sending 0 to the provider.
func (s *SyncService) SetRating(ctx context.Context, movieID int, value float64) (*domain.StatusResponse, error) {
	if value < domain.RatingUnset || value > domain.RatingMax {
		return nil, domain.ErrInvalidRating
	}
	if value == domain.RatingUnset {
		return s.RemoveRating(ctx, movieID)
	}

	previous := s.ratings.get(movieID)
	s.ratings.set(movieID, value)

	resp, err := s.gateway.RateMovie(ctx, movieID, value)
	if err != nil {
		s.ratings.restore(movieID, previous)
		s.logger.Warn("rating rolled back", "movieID", movieID, "previous", previous, "error", err)
		return nil, &domain.MutationError{Op: domain.OpSetRating, MovieID: movieID, Err: err}
	}

	s.invalidate(domain.PrefixRatings)
	s.logger.Info("rated movie", "movieID", movieID, "value", value)
	return resp, nil
}

// RemoveRating deletes the account's rating for movieID
func (s *SyncService) RemoveRating(ctx context.Context, movieID int) (*domain.StatusResponse, error) {
	return s.removeRating(ctx, movieID, true)
}

func (s *SyncService) removeRating(ctx context.Context, movieID int, invalidate bool) (*domain.StatusResponse, error) {
	previous := s.ratings.get(movieID)
	s.ratings.remove(movieID)

	resp, err := s.gateway.DeleteRating(ctx, movieID)
	if err != nil {
		s.ratings.restore(movieID, previous)
		s.logger.Warn("rating removal rolled back", "movieID", movieID, "previous", previous, "error", err)
		return nil, &domain.MutationError{Op: domain.OpRemoveRating, MovieID: movieID, Err: err}
	}

	if invalidate {
		s.invalidate(domain.PrefixRatings)
	}
	s.logger.Info("removed rating", "movieID", movieID)
	return resp, nil
}
