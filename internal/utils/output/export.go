package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/law-makers/linkresolve/internal/batch"
	"github.com/law-makers/linkresolve/pkg/models"
)

// Export formats
const (
	FormatCSV      = "csv"
	FormatCSVTerse = "csv-terse"
	FormatJSON     = "json"
)

// Exporter computes destination URLs for a set of results and writes them out
type Exporter struct {
	Batch  *batch.Resolver
	Logger zerolog.Logger
	// Progress, if set, is called once per resolved result
	Progress func()
}

// Export fills DestinationURL on every result from its RealURL and URL, then
// writes them to w in the given format. A result whose destination cannot be
// computed is exported with a blank destination. results is modified in place.
func (e *Exporter) Export(ctx context.Context, w io.Writer, format string, results []models.Result) error {
	write, err := writerFor(format)
	if err != nil {
		return err
	}

	pairs := make([]batch.Pair, len(results))
	for i := range results {
		pairs[i] = batch.Pair{Base: results[i].RealURL, Target: results[i].URL}
	}

	e.Logger.Debug().Int("results", len(results)).Str("format", format).Msg("Computing destination URLs")
	outcomes, err := e.Batch.ResolveAll(ctx, pairs, e.Progress)
	if err != nil {
		return fmt.Errorf("export interrupted: %w", err)
	}

	missing := 0
	for i, o := range outcomes {
		results[i].DestinationURL = o.Destination
		if !o.OK {
			missing++
		}
	}
	e.Logger.Debug().
		Int("results", len(results)).
		Int("without_destination", missing).
		Msg("Destination URLs computed")

	return write(w, results)
}

func writerFor(format string) (func(io.Writer, []models.Result) error, error) {
	switch strings.ToLower(format) {
	case "", FormatCSV:
		return WriteResultsCSV, nil
	case FormatCSVTerse:
		return WriteResultsCSVTerse, nil
	case FormatJSON:
		return WriteResultsJSON, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (must be csv, csv-terse or json)", format)
	}
}
