package domain

import (
	"context"
)

// MovieGateway is the remote movie metadata provider. Pages it returns have
// the same shape as cached pages, so a cache hit and a network hit are
// interchangeable for callers.
type MovieGateway interface {
	// Trending returns a page of trending movies for the window
	Trending(ctx context.Context, window TimeWindow, page int) (*MoviePage, error)

	// Search returns a page of movies matching query
	Search(ctx context.Context, query string, page int) (*MoviePage, error)

	// Favourites returns a page of the account's favourite movies
	Favourites(ctx context.Context, page int) (*MoviePage, error)

	// RatedMovies returns a page of the account's rated movies
	RatedMovies(ctx context.Context, page int) (*RatedPage, error)

	// MarkFavourite adds (favourite=true) or removes a movie from favourites
	MarkFavourite(ctx context.Context, movieID int, favourite bool) (*StatusResponse, error)

	// RateMovie sets the account's rating for a movie
	RateMovie(ctx context.Context, movieID int, value float64) (*StatusResponse, error)

	// DeleteRating removes the account's rating for a movie
	DeleteRating(ctx context.Context, movieID int) (*StatusResponse, error)
}
