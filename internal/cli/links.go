// internal/cli/links.go
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/law-makers/linkresolve/internal/links"
	"github.com/law-makers/linkresolve/internal/ui"
	"github.com/law-makers/linkresolve/internal/utils/output"
	urlutil "github.com/law-makers/linkresolve/internal/utils/url"
	"github.com/law-makers/linkresolve/pkg/models"
)

var (
	linksBase       string
	linksFormat     string
	linksUnique     bool
	linksSameHost   bool
	linksUnresolved bool
)

var linksCmd = &cobra.Command{
	Use:   "links <file|->",
	Short: "List the links of an HTML page with their destination URLs",
	Long: `Reads an HTML document from a file (or stdin with "-") and resolves every
a, area, link, img, script and iframe reference against the page URL.

A <base href> in the document takes precedence over --base, as in a browser.

Formats:
  - text: one "raw -> destination" line per link
  - json: the links as a JSON array
  - markdown: the page converted to Markdown with links rewritten`,
	Example: `  # Resolve the links of a saved page
  linkresolve links page.html --base https://www.cnr.it/it/

  # Pipe a page and keep only unique same-host links as JSON
  curl -s https://example.org | linkresolve links - --base https://example.org --unique --same-host --format json

  # Convert to Markdown with absolute links
  linkresolve links page.html --base https://example.org --format markdown`,
	Args: cobra.ExactArgs(1),
	RunE: runLinks,
}

func init() {
	rootCmd.AddCommand(linksCmd)

	linksCmd.Flags().StringVarP(&linksBase, "base", "b", "", "URL the page was fetched from")
	linksCmd.Flags().StringVarP(&linksFormat, "format", "f", "text", "Output format: text, json, or markdown")
	linksCmd.Flags().BoolVarP(&linksUnique, "unique", "u", false, "Drop repeated references")
	linksCmd.Flags().BoolVar(&linksSameHost, "same-host", false, "Keep only links on the base host")
	linksCmd.Flags().BoolVar(&linksUnresolved, "unresolved", false, "Keep only links without a destination")
}

func runLinks(cmd *cobra.Command, args []string) error {
	a := GetApp()

	base := ""
	if linksBase != "" {
		var err error
		if base, err = urlutil.ValidateBase(linksBase); err != nil {
			return err
		}
	}

	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	doc, err := links.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}
	effective := a.Links.EffectiveBase(doc, base)
	a.Logger.Debug().Str("base", effective).Msg("Resolving links")

	out := cmd.OutOrStdout()
	switch strings.ToLower(linksFormat) {
	case "markdown", "md":
		markdown, err := output.RenderMarkdown(string(data), func(raw string) (string, bool) {
			return a.Resolve(effective, raw)
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, markdown)
		return err
	case "json":
		found := filterLinks(a.Links.ExtractDocument(doc, base), effective)
		if found == nil {
			found = []models.Link{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(found)
	case "text":
		printLinks(out, filterLinks(a.Links.ExtractDocument(doc, base), effective))
		return nil
	default:
		return fmt.Errorf("invalid format: %s (must be text, json, or markdown)", linksFormat)
	}
}

func filterLinks(found []models.Link, base string) []models.Link {
	if linksUnique {
		found = links.Unique(found)
	}
	if linksUnresolved {
		found = links.Unresolved(found)
	}
	if linksSameHost {
		found = lo.Filter(found, func(l models.Link, _ int) bool {
			return urlutil.SameHost(base, l.Destination)
		})
	}
	return found
}

func printLinks(w io.Writer, found []models.Link) {
	for _, l := range found {
		if l.Destination == "" {
			fmt.Fprintf(w, "%s %s %s\n", l.Raw, ui.ColorDim+"->"+ui.ColorReset, ui.Error("(none)"))
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", l.Raw, ui.ColorDim+"->"+ui.ColorReset, l.Destination)
	}
}

// readInput reads a file, or stdin when name is "-"
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}
