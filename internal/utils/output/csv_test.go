package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/law-makers/linkresolve/pkg/models"
)

const sampleResults = `[
  {
    "id": 42,
    "company": {"idIpa": 7, "codiceIpa": "cnr", "denominazioneEnte": "Consiglio Nazionale delle Ricerche", "codiceFiscaleEnte": "80054330586"},
    "realUrl": "https://www.cnr.it",
    "url": "/it/amministrazione-trasparente",
    "ruleName": "amministrazione-trasparente",
    "term": "Amministrazione Trasparente",
    "content": "Amministrazione trasparente",
    "isLeaf": false,
    "status": 200,
    "score": 5.466414,
    "workflowId": "6d7e4bd7-a890-439d-9dc7-f9f3f515d8b5",
    "length": 1024,
    "storageData": {"objectBucket": "pages", "objectId": "abc"},
    "createdAt": "2024-05-01T10:00:00",
    "updatedAt": "2024-05-02T11:30:00.123456"
  },
  {
    "id": 43,
    "realUrl": "",
    "url": "/broken"
  }
]`

func readSample(t *testing.T) []models.Result {
	t.Helper()
	results, err := ReadResultsJSON(strings.NewReader(sampleResults))
	if err != nil {
		t.Fatalf("ReadResultsJSON failed: %v", err)
	}
	return results
}

func readCSV(t *testing.T, data []byte) (map[string]int, [][]string) {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	index := make(map[string]int)
	for i, h := range records[0] {
		index[h] = i
	}
	return index, records[1:]
}

func TestWriteResultsCSV(t *testing.T) {
	results := readSample(t)
	results[0].DestinationURL = "https://www.cnr.it/it/amministrazione-trasparente"

	var buf bytes.Buffer
	if err := WriteResultsCSV(&buf, results); err != nil {
		t.Fatalf("WriteResultsCSV failed: %v", err)
	}

	col, rows := readCSV(t, buf.Bytes())
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	checks := map[string]string{
		"IPA-codiceIpa":             "cnr",
		"IPA-idIpa":                 "7",
		"ID":                        "42",
		"URL CALCOLATA":             "https://www.cnr.it",
		"RECORD CREATO":             "2024-05-01T10:00:00",
		"RECORD AGGIORNATO":         "2024-05-02T11:30:00",
		"STATO":                     "200",
		"STORAGE DATA-objectBucket": "pages",
		"url":                       "/it/amministrazione-trasparente",
		"destinationUrl":            "https://www.cnr.it/it/amministrazione-trasparente",
		"isLeaf":                    "false",
		"score":                     "5.466414",
		"length":                    "1024",
	}
	for header, want := range checks {
		i, ok := col[header]
		if !ok {
			t.Errorf("missing column %q", header)
			continue
		}
		if got := rows[0][i]; got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}

	// A record without a destination still gets a row, with blanks.
	if got := rows[1][col["destinationUrl"]]; got != "" {
		t.Errorf("destinationUrl = %q, want blank", got)
	}
	if got := rows[1][col["IPA-codiceIpa"]]; got != "" {
		t.Errorf("IPA-codiceIpa = %q, want blank", got)
	}
}

func TestWriteResultsCSVTerse(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResultsCSVTerse(&buf, readSample(t)); err != nil {
		t.Fatalf("WriteResultsCSVTerse failed: %v", err)
	}

	col, rows := readCSV(t, buf.Bytes())
	if _, ok := col["destinationUrl"]; ok {
		t.Error("terse layout should not carry destinationUrl")
	}
	if got := rows[0][col["IPA-DENOMINAZIONE"]]; got != "Consiglio Nazionale delle Ricerche" {
		t.Errorf("IPA-DENOMINAZIONE = %q", got)
	}
	if len(col) != len(terseColumns) {
		t.Errorf("got %d columns, want %d", len(col), len(terseColumns))
	}
}

func TestWriteResultsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResultsJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty export = %q, want []", buf.String())
	}

	buf.Reset()
	results := readSample(t)
	results[0].DestinationURL = "https://www.cnr.it/x"
	if err := WriteResultsJSON(&buf, results); err != nil {
		t.Fatal(err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded[0]["destinationUrl"] != "https://www.cnr.it/x" {
		t.Errorf("destinationUrl = %v", decoded[0]["destinationUrl"])
	}
	if decoded[0]["createdAt"] != "2024-05-01T10:00:00" {
		t.Errorf("createdAt = %v", decoded[0]["createdAt"])
	}
	if _, ok := decoded[1]["destinationUrl"]; ok {
		t.Error("absent destination should be omitted")
	}
}
