package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Exit codes
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:           "reel",
	Short:         "Browse trending movies and manage favourites and ratings",
	Long:          "Reel is a terminal client for a movie metadata API with a local response cache.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return cmd.Help()
		}
		return runTUI(cmd)
	},
}

// Run executes the root command and returns an exit code.
func Run() int {
	return execute(os.Args[1:])
}

func execute(args []string) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errNotConfigured), errors.Is(err, domain.ErrUnauthorized):
		return ExitAuthError
	case errors.Is(err, errUsage),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidTimeWindow):
		return ExitUsageError
	default:
		return ExitRuntimeError
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print reel version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "reel version %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	rootCmd.AddCommand(trendingCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(favouritesCmd)
	rootCmd.AddCommand(ratingsCmd)
	rootCmd.AddCommand(favCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd)
}
