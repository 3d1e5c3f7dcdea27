package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/reel/internal/domain"
)

func TestClearAllFavourites_FansOutAndInvalidatesOnce(t *testing.T) {
	svc, gw, cache := newTestService(t, 4)
	ctx := context.Background()

	gw.On("Favourites", mock.Anything, 1).Return(moviePage(1, 3, 1, 2, 3, 4, 5), nil).Once()
	gw.On("Favourites", mock.Anything, 2).Return(moviePage(2, 3, 6, 7, 8, 9, 10), nil).Once()
	gw.On("Favourites", mock.Anything, 3).Return(moviePage(3, 3, 11, 12, 13), nil).Once()
	gw.On("MarkFavourite", mock.Anything, mock.AnythingOfType("int"), false).Return(ok(), nil)

	results, err := svc.ClearAllFavourites(ctx)
	require.NoError(t, err)

	assert.Len(t, results, 13)
	for _, r := range results {
		assert.True(t, r.Success)
	}
	gw.AssertNumberOfCalls(t, "MarkFavourite", 13)
	for id := 1; id <= 13; id++ {
		gw.AssertCalled(t, "MarkFavourite", mock.Anything, id, false)
	}

	assert.Equal(t, 1, cache.invalidated(domain.PrefixFavourites))
	assert.False(t, cache.has(FavouritesKey(1)))
	assert.False(t, cache.has(FavouritesKey(3)))
	assert.Zero(t, svc.favourites.len())
}

func TestClearAllRatings_FansOut(t *testing.T) {
	svc, gw, cache := newTestService(t, 2)
	ctx := context.Background()

	gw.On("RatedMovies", mock.Anything, 1).Return(&domain.RatedPage{
		Page: 1, TotalPages: 2, TotalResults: 3,
		Results: []domain.RatedMovie{ratedMovie(1, 8), ratedMovie(2, 4)},
	}, nil).Once()
	gw.On("RatedMovies", mock.Anything, 2).Return(&domain.RatedPage{
		Page: 2, TotalPages: 2, TotalResults: 3,
		Results: []domain.RatedMovie{ratedMovie(3, 6)},
	}, nil).Once()
	gw.On("DeleteRating", mock.Anything, mock.AnythingOfType("int")).Return(ok(), nil)

	results, err := svc.ClearAllRatings(ctx)
	require.NoError(t, err)

	assert.Len(t, results, 3)
	gw.AssertNumberOfCalls(t, "DeleteRating", 3)
	assert.Equal(t, 1, cache.invalidated(domain.PrefixRatings))
	assert.Zero(t, cache.invalidated(domain.PrefixFavourites))
	assert.Zero(t, svc.ratings.len())
}

func TestClearAll_NoPagesShortCircuits(t *testing.T) {
	svc, gw, cache := newTestService(t, 4)

	gw.On("RatedMovies", mock.Anything, 1).Return(&domain.RatedPage{
		Page: 1, TotalPages: 0, Results: []domain.RatedMovie{},
	}, nil).Once()

	results, err := svc.ClearAllRatings(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, results)
	assert.Empty(t, results)
	gw.AssertNotCalled(t, "DeleteRating", mock.Anything, mock.Anything)
	assert.Zero(t, cache.invalidated(domain.PrefixRatings))
}

func TestClearAll_PageFetchFailureRemovesNothing(t *testing.T) {
	svc, gw, cache := newTestService(t, 4)

	gw.On("Favourites", mock.Anything, 1).Return(moviePage(1, 2, 1, 2), nil).Once()
	gw.On("Favourites", mock.Anything, 2).Return(nil, domain.ErrProviderUnreachable).Once()

	_, err := svc.ClearAllFavourites(context.Background())
	require.ErrorIs(t, err, domain.ErrProviderUnreachable)

	gw.AssertNotCalled(t, "MarkFavourite", mock.Anything, mock.Anything, mock.Anything)
	assert.Zero(t, cache.invalidated(domain.PrefixFavourites))
}

func TestClearAll_AbortsOnFirstRemovalFailure(t *testing.T) {
	// One worker makes the abort point deterministic
	svc, gw, cache := newTestService(t, 1)
	failure := errors.New("service unavailable")

	gw.On("Favourites", mock.Anything, 1).Return(moviePage(1, 1, 1, 2, 3, 4, 5), nil).Once()
	gw.On("MarkFavourite", mock.Anything, 3, false).Return(nil, failure).Once()
	gw.On("MarkFavourite", mock.Anything, mock.AnythingOfType("int"), false).Return(ok(), nil)

	results, err := svc.ClearAllFavourites(context.Background())
	require.Error(t, err)

	var bulkErr *domain.BulkError
	require.ErrorAs(t, err, &bulkErr)
	assert.Equal(t, domain.OpRemoveFavourite, bulkErr.Op)
	assert.Equal(t, 5, bulkErr.Total)
	assert.Equal(t, 2, bulkErr.Succeeded)
	assert.ErrorIs(t, err, failure)

	assert.Len(t, results, 5)
	assert.NotNil(t, results[0])
	assert.NotNil(t, results[1])
	assert.Nil(t, results[2])
	assert.Nil(t, results[4])

	gw.AssertNumberOfCalls(t, "MarkFavourite", 3)
	assert.Equal(t, 1, cache.invalidated(domain.PrefixFavourites))
	assert.Zero(t, svc.favourites.len())
}

func TestClearAll_CancelledContext(t *testing.T) {
	svc, gw, _ := newTestService(t, 4)

	gw.On("Favourites", mock.Anything, 1).Return(moviePage(1, 1, 1, 2), nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ClearAllFavourites(ctx)
	require.ErrorIs(t, err, context.Canceled)
	gw.AssertNotCalled(t, "MarkFavourite", mock.Anything, mock.Anything, mock.Anything)
}
