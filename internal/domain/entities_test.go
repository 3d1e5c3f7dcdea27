package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeWindow(t *testing.T) {
	w, err := ParseTimeWindow("day")
	require.NoError(t, err)
	assert.Equal(t, WindowDay, w)
	assert.Equal(t, WindowWeek, w.Toggle())
	assert.Equal(t, WindowDay, WindowWeek.Toggle())

	_, err = ParseTimeWindow("month")
	assert.ErrorIs(t, err, ErrInvalidTimeWindow)
}

func TestMovieLabel(t *testing.T) {
	tests := []struct {
		name  string
		movie Movie
		year  int
		label string
	}{
		{"full date", Movie{Title: "Alien", ReleaseDate: "1979-05-25"}, 1979, "Alien (1979)"},
		{"missing date", Movie{Title: "Untitled"}, 0, "Untitled"},
		{"garbage date", Movie{Title: "X", ReleaseDate: "soon"}, 0, "X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.year, tt.movie.Year())
			assert.Equal(t, tt.label, tt.movie.Label())
		})
	}
}

func TestNormalizedRating(t *testing.T) {
	seven := 7.0
	zero := 0.0

	assert.Equal(t, 7.0, RatedMovie{Rating: &seven, UserRating: 3}.NormalizedRating())
	assert.Equal(t, 3.0, RatedMovie{Rating: &zero, UserRating: 3}.NormalizedRating())
	assert.Equal(t, 3.0, RatedMovie{UserRating: 3}.NormalizedRating())
	assert.Equal(t, 0.0, RatedMovie{}.NormalizedRating())
}

func TestPageHasNext(t *testing.T) {
	assert.True(t, (&MoviePage{Page: 1, TotalPages: 2}).HasNext())
	assert.False(t, (&MoviePage{Page: 2, TotalPages: 2}).HasNext())
	assert.False(t, (&MoviePage{Page: 1, TotalPages: 0}).HasNext())

	var nilPage *RatedPage
	assert.False(t, nilPage.HasNext())
}

func TestErrorsUnwrap(t *testing.T) {
	mutErr := &MutationError{Op: OpSetRating, MovieID: 9, Err: ErrProviderUnreachable}
	assert.ErrorIs(t, mutErr, ErrProviderUnreachable)
	assert.Equal(t, "set rating for movie 9: movie provider is unreachable", mutErr.Error())

	bulkErr := &BulkError{Op: OpRemoveRating, Total: 13, Succeeded: 4, Err: mutErr}
	assert.ErrorIs(t, bulkErr, ErrProviderUnreachable)

	var target *MutationError
	require.True(t, errors.As(bulkErr, &target))
	assert.Equal(t, 9, target.MovieID)
	assert.Contains(t, bulkErr.Error(), "after 4 of 13 removals")
}
