package cli

import (
	"github.com/mmcdole/reel/internal/launcher"
	"github.com/mmcdole/reel/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive browser",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func runTUI(cmd *cobra.Command) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info("starting browser", "version", Version)
	opener := launcher.New(a.cfg.Opener.Command, a.cfg.Opener.Args, a.logger)
	return tui.Run(a.svc, a.images, opener, a.defaultWindow())
}
