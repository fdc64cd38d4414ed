// internal/cli/export.go
package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/law-makers/linkresolve/internal/config"
	"github.com/law-makers/linkresolve/internal/ui"
	"github.com/law-makers/linkresolve/internal/utils/output"
)

var (
	exportFormat     string
	exportOutput     string
	exportNoProgress bool
)

var exportCmd = &cobra.Command{
	Use:   "export <results.json|->",
	Short: "Export crawler results with their destination URLs",
	Long: `Reads a JSON array of crawler results, computes the destination URL of
every result from its page URL (realUrl) and link (url), and writes them out.

Formats:
  - csv: every company, result and storage column
  - csv-terse: company columns with the result identity and status
  - json: the results with destinationUrl filled in`,
	Example: `  # Full CSV to a file
  linkresolve export results.json --output results.csv

  # Terse CSV from stdin
  cat results.json | linkresolve export - --format csv-terse

  # Use 8 workers
  linkresolve export results.json --format json --concurrency 8`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", output.FormatCSV, "Output format: csv, csv-terse, or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "File to write (default stdout)")
	exportCmd.Flags().Int("concurrency", config.DefaultExportConcurrency, "Resolver workers (0 picks one per CPU)")
	exportCmd.Flags().BoolVar(&exportNoProgress, "no-progress", false, "Do not draw a progress bar")
}

func runExport(cmd *cobra.Command, args []string) error {
	a := GetApp()

	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	results, err := output.ReadResultsJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	a.Metrics.ExportBatchSize.Observe(float64(len(results)))

	var progress func()
	if !exportNoProgress && a.Config.LogLevel != "error" && len(results) > 0 {
		bar := progressbar.NewOptions(len(results),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("Resolving"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer func() { _ = bar.Finish() }()
		progress = func() { _ = bar.Add(1) }
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOutput, err)
		}
		defer f.Close()
		w = f
	}
	buf := bufio.NewWriter(w)

	if err := a.Exporter(progress).Export(cmd.Context(), buf, exportFormat, results); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	a.Logger.Info().Int("results", len(results)).Str("format", exportFormat).Msg("Export complete")
	if exportOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s Saved %d results to %s\n", ui.Success("✓"), len(results), exportOutput)
	}
	return nil
}
