package output

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/law-makers/linkresolve/internal/batch"
	"github.com/law-makers/linkresolve/internal/resolver"
)

func TestExporter_Export(t *testing.T) {
	results := readSample(t)
	calls := 0
	e := &Exporter{
		Batch:    batch.New(resolver.Resolve, 2),
		Logger:   zerolog.Nop(),
		Progress: func() { calls++ },
	}

	var buf bytes.Buffer
	if err := e.Export(context.Background(), &buf, FormatCSV, results); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if results[0].DestinationURL != "https://www.cnr.it/it/amministrazione-trasparente" {
		t.Errorf("DestinationURL = %q", results[0].DestinationURL)
	}
	if results[1].DestinationURL != "" {
		t.Errorf("DestinationURL = %q, want blank for missing base", results[1].DestinationURL)
	}

	col, rows := readCSV(t, buf.Bytes())
	if got := rows[0][col["destinationUrl"]]; got != results[0].DestinationURL {
		t.Errorf("CSV destinationUrl = %q", got)
	}
	if calls != len(results) {
		t.Errorf("progress called %d times, want %d", calls, len(results))
	}
}

func TestExporter_UnsupportedFormat(t *testing.T) {
	e := &Exporter{Batch: batch.New(resolver.Resolve, 1), Logger: zerolog.Nop()}
	if err := e.Export(context.Background(), &bytes.Buffer{}, "xml", nil); err == nil {
		t.Error("expected error for unsupported format")
	}
}
