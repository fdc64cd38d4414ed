package output

import (
	"encoding/json"
	"io"

	"github.com/law-makers/linkresolve/pkg/models"
)

// WriteResultsJSON writes results as an indented JSON array
func WriteResultsJSON(w io.Writer, results []models.Result) error {
	if results == nil {
		results = []models.Result{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// ReadResultsJSON decodes a JSON array of results
func ReadResultsJSON(r io.Reader) ([]models.Result, error) {
	var results []models.Result
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, err
	}
	return results, nil
}
