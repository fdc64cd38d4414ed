// internal/cli/resolve.go
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/law-makers/linkresolve/internal/resolver"
	"github.com/law-makers/linkresolve/internal/ui"
)

// errNoDestination is returned when a pair has no destination URL
var errNoDestination = errors.New("no destination URL can be computed")

var explain bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <base> <target>",
	Short: "Compute the destination URL of a link",
	Long: `Sanitizes base and target and resolves target against base.

Pseudo-protocol targets such as "javascript:void(0);" resolve to the base
itself. Pairs without a destination (relative base, empty or unparseable
target) exit with a non-zero status; run with -v to see why.`,
	Example: `  # Relative path
  linkresolve resolve https://www.cnr.it/ amministrazione-trasparente

  # Entity encoded absolute target
  linkresolve resolve https://example.org "https&#x3a;&#x2f;&#x2f;example&#x2e;org&#x2f;a"

  # Show how the target was classified
  linkresolve resolve https://example.org "?page=2" --explain`,
	Args: cobra.ExactArgs(2),
	RunE: runResolve,
}

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize <url>...",
	Short: "Print the sanitized form of one or more URLs",
	Example: `  linkresolve sanitize "https&#x3a;&#x2f;&#x2f;example&#x2e;org"
  linkresolve sanitize "http:\\www.example.org\a b"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, raw := range args {
			fmt.Fprintln(cmd.OutOrStdout(), resolver.Sanitize(raw))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(sanitizeCmd)

	resolveCmd.Flags().BoolVar(&explain, "explain", false, "Print the sanitized inputs and target kind before the result")
}

func runResolve(cmd *cobra.Command, args []string) error {
	a := GetApp()
	base, target := args[0], args[1]
	out := cmd.OutOrStdout()

	if explain {
		t := resolver.ClassifyTarget(target)
		fmt.Fprintf(out, "%s %s\n", ui.Info("base:  "), resolver.Sanitize(base))
		fmt.Fprintf(out, "%s %s (%s)\n", ui.Info("target:"), t.Value, t.Kind)
	}

	dest, ok := a.Resolve(base, target)
	if !ok {
		return fmt.Errorf("%w from %q and %q", errNoDestination, base, target)
	}
	if explain {
		fmt.Fprintf(out, "%s %s\n", ui.Info("result:"), ui.Success(dest))
		return nil
	}
	fmt.Fprintln(out, dest)
	return nil
}
