package cli

import (
	"fmt"
	"strings"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/spf13/cobra"
)

var (
	flagWindow string
	flagPage   int
	flagGrep   string
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List trending movies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		window := a.defaultWindow()
		if flagWindow != "" {
			if window, err = domain.ParseTimeWindow(flagWindow); err != nil {
				return err
			}
		}

		a.svc.Warm(ctx)
		page, err := a.svc.GetTrending(ctx, window, flagPage)
		if err != nil {
			return fmt.Errorf("fetching trending: %w", err)
		}

		out := cmd.OutOrStdout()
		printRows(out, rowsFor(a.svc, page.Results))
		fmt.Fprintln(out, pageFooter(a.cfg.Pagination.PageSize, page.Page, page.TotalPages, page.TotalResults, len(page.Results)))
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search movies by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		query := strings.Join(args, " ")
		if strings.TrimSpace(query) == "" {
			return fmt.Errorf("%w: empty search query", errUsage)
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		a.svc.Warm(ctx)
		page, err := a.svc.Search(ctx, query, flagPage)
		if err != nil {
			return fmt.Errorf("searching: %w", err)
		}

		out := cmd.OutOrStdout()
		printRows(out, rowsFor(a.svc, page.Results))
		fmt.Fprintln(out, pageFooter(a.cfg.Pagination.PageSize, page.Page, page.TotalPages, page.TotalResults, len(page.Results)))
		return nil
	},
}

func init() {
	trendingCmd.Flags().StringVar(&flagWindow, "window", "", "trending window: day or week")
	trendingCmd.Flags().IntVar(&flagPage, "page", 1, "page number")
	searchCmd.Flags().IntVar(&flagPage, "page", 1, "page number")
}
