// internal/cli/token.go
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/law-makers/linkresolve/internal/auth"
	"github.com/law-makers/linkresolve/internal/ui"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the admin API bearer token",
	Long: `Stores the token the admin API requires in your OS keyring, or in
~/.linkresolve when no keyring is available (CI, Codespaces, containers).

A token given with --token or in the configuration takes precedence.`,
	Example: `  # Store a token read from stdin
  echo s3cret | linkresolve token set

  # Show the stored token, masked
  linkresolve token show

  # Remove it
  linkresolve token delete`,
}

var tokenSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Store the API token (read from stdin when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenSet,
}

var tokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored API token, masked",
	Args:  cobra.NoArgs,
	RunE:  runTokenShow,
}

var tokenDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the stored API token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := GetApp().Tokens.Delete(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Token deleted\n", ui.Success("✓"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenSetCmd, tokenShowCmd, tokenDeleteCmd)
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	store := GetApp().Tokens

	var token string
	if len(args) == 1 {
		token = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read token from stdin: %w", err)
		}
		token = strings.TrimSpace(line)
	}

	if err := store.Save(token); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Token saved to %s\n", ui.Success("✓"), store.Backend())
	return nil
}

func runTokenShow(cmd *cobra.Command, args []string) error {
	store := GetApp().Tokens
	token, err := store.Load()
	if errors.Is(err, auth.ErrNoToken) {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Info("No token stored; the admin API runs without authentication."))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", auth.Mask(token), store.Backend())
	return nil
}
