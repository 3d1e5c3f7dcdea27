package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/search"
	"github.com/spf13/cobra"
)

var (
	flagFavAdd    bool
	flagFavRemove bool
	flagYes       bool
)

var favouritesCmd = &cobra.Command{
	Use:     "favourites",
	Aliases: []string{"favorites", "favs"},
	Short:   "List favourite movies",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.svc.GetRatedMovies(ctx, 1); err != nil {
			a.logger.Warn("failed to load ratings", "error", err)
		}
		page, err := a.svc.GetFavourites(ctx, flagPage)
		if err != nil {
			return fmt.Errorf("fetching favourites: %w", err)
		}

		movies := page.Results
		if flagGrep != "" {
			movies = search.GrepMovies(flagGrep, movies)
		}

		out := cmd.OutOrStdout()
		printRows(out, rowsFor(a.svc, movies))
		fmt.Fprintln(out, pageFooter(a.cfg.Pagination.PageSize, page.Page, page.TotalPages, page.TotalResults, len(page.Results)))
		return nil
	},
}

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "List rated movies, highest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.svc.GetFavourites(ctx, 1); err != nil {
			a.logger.Warn("failed to load favourites", "error", err)
		}
		page, err := a.svc.GetRatedMovies(ctx, flagPage)
		if err != nil {
			return fmt.Errorf("fetching ratings: %w", err)
		}

		movies := page.Results
		if flagGrep != "" {
			movies = grepRated(flagGrep, movies)
		}

		out := cmd.OutOrStdout()
		printRows(out, ratedRows(movies, a.svc))
		fmt.Fprintln(out, pageFooter(a.cfg.Pagination.PageSize, page.Page, page.TotalPages, page.TotalResults, len(page.Results)))
		return nil
	},
}

// grepRated keeps matching rated movies in their rating order
func grepRated(query string, movies []domain.RatedMovie) []domain.RatedMovie {
	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}
	matched := make(map[int]bool)
	for _, idx := range search.RankTitles(query, titles) {
		matched[idx] = true
	}
	out := make([]domain.RatedMovie, 0, len(matched))
	for i, m := range movies {
		if matched[i] {
			out = append(out, m)
		}
	}
	return out
}

var favCmd = &cobra.Command{
	Use:   "fav <movie-id>",
	Short: "Toggle a movie in favourites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		movieID, err := parseMovieID(args[0])
		if err != nil {
			return err
		}
		if flagFavAdd && flagFavRemove {
			return fmt.Errorf("%w: --add and --remove are exclusive", errUsage)
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		var resp *domain.StatusResponse
		switch {
		case flagFavAdd:
			resp, err = a.svc.AddFavourite(ctx, movieID)
		case flagFavRemove:
			resp, err = a.svc.RemoveFavourite(ctx, movieID)
		default:
			a.svc.Warm(ctx)
			resp, err = a.svc.ToggleFavourite(ctx, movieID)
		}
		if err != nil {
			return err
		}

		state := "removed from"
		if a.svc.IsFavourite(movieID) {
			state = "added to"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d %s favourites (%s)\n", movieID, state, resp.StatusMessage)
		return nil
	},
}

var rateCmd = &cobra.Command{
	Use:   "rate <movie-id> <value>",
	Short: "Rate a movie from 1 to 10; 0 removes the rating",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		movieID, err := parseMovieID(args[0])
		if err != nil {
			return err
		}
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("%w: rating %q is not a number", domain.ErrInvalidRating, args[1])
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		resp, err := a.svc.SetRating(ctx, movieID, value)
		if err != nil {
			return err
		}

		if value == domain.RatingUnset {
			fmt.Fprintf(cmd.OutOrStdout(), "rating removed for %d (%s)\n", movieID, resp.StatusMessage)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rated %d as %s (%s)\n", movieID, formatRating(value), resp.StatusMessage)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:       "clear favourites|ratings",
	Short:     "Remove every favourite or every rating",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"favourites", "ratings"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		target := strings.ToLower(args[0])
		if target == "favorites" {
			target = "favourites"
		}
		if target != "favourites" && target != "ratings" {
			return fmt.Errorf("%w: clear target must be favourites or ratings", errUsage)
		}

		if !flagYes && !confirm(cmd, fmt.Sprintf("Remove all %s?", target)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		var results []*domain.StatusResponse
		if target == "favourites" {
			results, err = a.svc.ClearAllFavourites(ctx)
		} else {
			results, err = a.svc.ClearAllRatings(ctx)
		}

		var bulkErr *domain.BulkError
		if errors.As(err, &bulkErr) {
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d of %d %s before failing\n", bulkErr.Succeeded, bulkErr.Total, target)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d %s\n", len(results), target)
		return nil
	},
}

func parseMovieID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid movie id %q", errUsage, s)
	}
	return id, nil
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	favouritesCmd.Flags().IntVar(&flagPage, "page", 1, "page number")
	favouritesCmd.Flags().StringVar(&flagGrep, "grep", "", "fuzzy filter titles on the page")
	ratingsCmd.Flags().IntVar(&flagPage, "page", 1, "page number")
	ratingsCmd.Flags().StringVar(&flagGrep, "grep", "", "fuzzy filter titles on the page")

	favCmd.Flags().BoolVar(&flagFavAdd, "add", false, "always add")
	favCmd.Flags().BoolVar(&flagFavRemove, "remove", false, "always remove")

	clearCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "skip confirmation")
}
