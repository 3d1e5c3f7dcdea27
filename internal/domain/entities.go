package domain

import (
	"fmt"
	"strconv"
)

// TimeWindow selects the trending aggregation period
type TimeWindow string

const (
	WindowDay  TimeWindow = "day"
	WindowWeek TimeWindow = "week"
)

// ParseTimeWindow validates a user-supplied window name
func ParseTimeWindow(s string) (TimeWindow, error) {
	switch TimeWindow(s) {
	case WindowDay, WindowWeek:
		return TimeWindow(s), nil
	default:
		return "", fmt.Errorf("%w: %q (want day or week)", ErrInvalidTimeWindow, s)
	}
}

// Toggle returns the other window
func (w TimeWindow) Toggle() TimeWindow {
	if w == WindowDay {
		return WindowWeek
	}
	return WindowDay
}

// Movie is provider metadata as returned by the API. The client never mutates
// these fields; favourite and rating facts are layered on top.
type Movie struct {
	Adult            bool    `json:"adult"`
	BackdropPath     string  `json:"backdrop_path"`
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	MediaType        string  `json:"media_type,omitempty"`
	OriginalLanguage string  `json:"original_language"`
	GenreIDs         []int   `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	ReleaseDate      string  `json:"release_date"`
	Video            bool    `json:"video"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
}

// Year returns the release year, or 0 when the date is missing
func (m Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// Label returns "Title (Year)" for display
func (m Movie) Label() string {
	if y := m.Year(); y > 0 {
		return fmt.Sprintf("%s (%d)", m.Title, y)
	}
	return m.Title
}

// RatedMovie is a movie from the account's rated list.
// Rating is the provider field; UserRating is the normalized value the
// client sorts and indexes by.
type RatedMovie struct {
	Movie
	Rating     *float64 `json:"rating,omitempty"`
	UserRating float64  `json:"userRating"`
}

// NormalizedRating resolves rating, then userRating, then 0.
// Zero counts as unset, matching how the account list reports unrated items.
func (r RatedMovie) NormalizedRating() float64 {
	if r.Rating != nil && *r.Rating != 0 {
		return *r.Rating
	}
	return r.UserRating
}

// Page is one page of a paginated provider listing. It is the unit of both
// caching and pagination.
type Page[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// HasNext reports whether another page follows this one
func (p *Page[T]) HasNext() bool {
	return p != nil && p.Page < p.TotalPages
}

type (
	// MoviePage is used for trending, search and favourites listings
	MoviePage = Page[Movie]
	// RatedPage is used for the account's rated movies listing
	RatedPage = Page[RatedMovie]
)

// FavouriteRequest is the body of a favourite mutation
type FavouriteRequest struct {
	MediaType string `json:"media_type"`
	MediaID   int    `json:"media_id"`
	Favorite  bool   `json:"favorite"`
}

// RatingRequest is the body of a rating mutation
type RatingRequest struct {
	Value float64 `json:"value"`
}

// StatusResponse is the provider's acknowledgement for mutations (and its
// error body shape)
type StatusResponse struct {
	Success       bool   `json:"success"`
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// Rating bounds accepted by the provider. 0 means "remove my rating".
const (
	RatingUnset = 0
	RatingMax   = 10
)
