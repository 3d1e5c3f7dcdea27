package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/reel/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagAccount    string
	flagSkipVerify bool
)

const verifyTimeout = 15 * time.Second

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an API read access token and account id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		token, err := readSecret(in, out, "API read access token: ")
		if err != nil {
			return err
		}
		if token == "" {
			return fmt.Errorf("%w: token is required", errUsage)
		}

		account := flagAccount
		if account == "" {
			fmt.Fprint(out, "Account ID: ")
			line, err := in.ReadString('\n')
			if err != nil && err != io.EOF {
				return fmt.Errorf("reading account id: %w", err)
			}
			account = strings.TrimSpace(line)
		}
		if account == "" {
			return fmt.Errorf("%w: account id is required", errUsage)
		}

		if !flagSkipVerify {
			api := cfg.API
			api.Token = token
			api.AccountID = account

			ctx, cancel := context.WithTimeout(cmd.Context(), verifyTimeout)
			defer cancel()
			if _, err := newGateway(api, logger).Favourites(ctx, 1); err != nil {
				return fmt.Errorf("verifying token: %w", err)
			}
		}

		if err := saveCredentials(cfg, token, account); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintln(out, "Logged in.")
		return nil
	},
}

func saveCredentials(cfg *config.Config, token, account string) error {
	if flagConfig == "" {
		return config.SaveToken(token, account)
	}
	cfg.API.Token = token
	cfg.API.AccountID = account
	return config.SaveConfigTo(cfg, flagConfig)
}

// readSecret reads a line without echo when stdin is a terminal
func readSecret(in *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("reading token: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func init() {
	loginCmd.Flags().StringVar(&flagAccount, "account", "", "account id")
	loginCmd.Flags().BoolVar(&flagSkipVerify, "skip-verify", false, "save without checking the token")
}
