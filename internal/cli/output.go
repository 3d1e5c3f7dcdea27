package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/service"
)

const favouriteMark = "♥"

// movieRow is one printable line of a listing
type movieRow struct {
	movie     domain.Movie
	favourite bool
	rating    float64
}

func rowsFor(svc *service.SyncService, movies []domain.Movie) []movieRow {
	rows := make([]movieRow, len(movies))
	for i, m := range movies {
		rows[i] = movieRow{
			movie:     m,
			favourite: svc.IsFavourite(m.ID),
			rating:    svc.GetRating(m.ID),
		}
	}
	return rows
}

func ratedRows(movies []domain.RatedMovie, svc *service.SyncService) []movieRow {
	rows := make([]movieRow, len(movies))
	for i, m := range movies {
		rows[i] = movieRow{
			movie:     m.Movie,
			favourite: svc.IsFavourite(m.ID),
			rating:    m.UserRating,
		}
	}
	return rows
}

func formatRating(v float64) string {
	if v == domain.RatingUnset {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func printRows(w io.Writer, rows []movieRow) {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("ID", "", "TITLE", "SCORE", "MINE")
	for _, r := range rows {
		mark := ""
		if r.favourite {
			mark = favouriteMark
		}
		t.Row(
			strconv.Itoa(r.movie.ID),
			mark,
			r.movie.Label(),
			strconv.FormatFloat(r.movie.VoteAverage, 'f', 1, 64),
			formatRating(r.rating),
		)
	}
	fmt.Fprintln(w, t.String())
}

// pageFooter describes where a page sits in the full result set
func pageFooter(pageSize, page, totalPages, totalResults, shown int) string {
	if totalResults == 0 || shown == 0 {
		return fmt.Sprintf("page %d of %d (no results)", page, totalPages)
	}
	first := (page-1)*pageSize + 1
	last := min(first+shown-1, totalResults)
	return fmt.Sprintf("page %d of %d, %d-%d of %d", page, totalPages, first, last, totalResults)
}
