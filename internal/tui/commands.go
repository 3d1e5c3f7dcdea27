package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/launcher"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/tmdb"
)

const (
	requestTimeout = 30 * time.Second
	bulkTimeout    = 5 * time.Minute
	statusDuration = 4 * time.Second
)

// pageRequest describes which listing page to load
type pageRequest struct {
	Seq    int
	Tab    Tab
	Window domain.TimeWindow
	Query  string
	Page   int
}

// Command factories for async operations

// LoadPageCmd loads one listing page through the sync service
func LoadPageCmd(svc *service.SyncService, req pageRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		msg := PageLoadedMsg{Seq: req.Seq, Tab: req.Tab}

		switch req.Tab {
		case TabTrending:
			p, err := svc.GetTrending(ctx, req.Window, req.Page)
			if err != nil {
				return ErrMsg{Err: err, Context: "loading trending"}
			}
			msg.Page, msg.TotalPages, msg.TotalResults, msg.Movies = p.Page, p.TotalPages, p.TotalResults, p.Results
		case TabSearch:
			p, err := svc.Search(ctx, req.Query, req.Page)
			if err != nil {
				return ErrMsg{Err: err, Context: "searching"}
			}
			msg.Page, msg.TotalPages, msg.TotalResults, msg.Movies = p.Page, p.TotalPages, p.TotalResults, p.Results
		case TabFavourites:
			p, err := svc.GetFavourites(ctx, req.Page)
			if err != nil {
				return ErrMsg{Err: err, Context: "loading favourites"}
			}
			msg.Page, msg.TotalPages, msg.TotalResults, msg.Movies = p.Page, p.TotalPages, p.TotalResults, p.Results
		case TabRatings:
			p, err := svc.GetRatedMovies(ctx, req.Page)
			if err != nil {
				return ErrMsg{Err: err, Context: "loading ratings"}
			}
			movies := make([]domain.Movie, len(p.Results))
			for i, rm := range p.Results {
				movies[i] = rm.Movie
			}
			msg.Page, msg.TotalPages, msg.TotalResults, msg.Movies = p.Page, p.TotalPages, p.TotalResults, movies
		}
		return msg
	}
}

// WarmCmd primes the favourite and rating indexes
func WarmCmd(svc *service.SyncService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		svc.Warm(ctx)
		return WarmedMsg{}
	}
}

// ToggleFavouriteCmd flips the favourite state of a movie
func ToggleFavouriteCmd(svc *service.SyncService, movie domain.Movie) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if _, err := svc.ToggleFavourite(ctx, movie.ID); err != nil {
			return ErrMsg{Err: err, Context: "updating favourite"}
		}
		return FavouriteToggledMsg{
			MovieID:   movie.ID,
			Title:     movie.Title,
			Favourite: svc.IsFavourite(movie.ID),
		}
	}
}

// SetRatingCmd rates a movie; value 0 removes the rating
func SetRatingCmd(svc *service.SyncService, movie domain.Movie, value float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if _, err := svc.SetRating(ctx, movie.ID, value); err != nil {
			return ErrMsg{Err: err, Context: "updating rating"}
		}
		return RatingSetMsg{MovieID: movie.ID, Title: movie.Title, Value: value}
	}
}

// ClearAllCmd removes every favourite or every rating
func ClearAllCmd(svc *service.SyncService, tab Tab) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), bulkTimeout)
		defer cancel()

		var (
			results []*domain.StatusResponse
			err     error
		)
		switch tab {
		case TabFavourites:
			results, err = svc.ClearAllFavourites(ctx)
		case TabRatings:
			results, err = svc.ClearAllRatings(ctx)
		default:
			return nil
		}
		if err != nil {
			return ErrMsg{Err: err, Context: "clearing " + tab.String()}
		}
		return ClearedMsg{Tab: tab, Removed: len(results)}
	}
}

// OpenPosterCmd opens the movie poster in an external viewer
func OpenPosterCmd(opener *launcher.Launcher, images tmdb.Images, movie domain.Movie) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(images.PosterURL(movie)); err != nil {
			return ErrMsg{Err: err, Context: "opening poster"}
		}
		return PosterOpenedMsg{Title: movie.Title}
	}
}

func clearStatusAfter(id int) tea.Cmd {
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}
