package cli

import (
	"encoding/json"
	"fmt"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the response cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached response",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		st := openStore(cmd.Context(), cfg, logger)
		defer st.Close()

		st.ClearAll()
		fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
		return nil
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"show"},
	Short:   "Show cache statistics",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		st := openStore(cmd.Context(), cfg, logger)
		defer st.Close()

		data, err := json.MarshalIndent(st.Stats(domain.CachePrefixes()), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
}
