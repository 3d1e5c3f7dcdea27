package tui

import "github.com/mmcdole/reel/internal/domain"

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// PageLoadedMsg signals that a listing page is ready. Seq identifies the
// request so stale responses can be dropped.
type PageLoadedMsg struct {
	Seq          int
	Tab          Tab
	Page         int
	TotalPages   int
	TotalResults int
	Movies       []domain.Movie
}

// WarmedMsg signals that the favourite and rating indexes were primed
type WarmedMsg struct{}

// FavouriteToggledMsg signals a completed favourite mutation
type FavouriteToggledMsg struct {
	MovieID   int
	Title     string
	Favourite bool
}

// RatingSetMsg signals a completed rating mutation; Value 0 means removed
type RatingSetMsg struct {
	MovieID int
	Title   string
	Value   float64
}

// PosterOpenedMsg signals that the poster was handed to the opener
type PosterOpenedMsg struct {
	Title string
}

// ClearedMsg signals a completed clear-all
type ClearedMsg struct {
	Tab     Tab
	Removed int
}

// clearStatusMsg expires the status line set with the same id
type clearStatusMsg struct {
	id int
}
