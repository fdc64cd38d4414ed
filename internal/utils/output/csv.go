package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/law-makers/linkresolve/pkg/models"
)

// column is one CSV column and how to read it from a result
type column struct {
	header string
	value  func(r *models.Result) string
}

// resultColumns is the full export layout: registry data prefixed "IPA-",
// record bookkeeping, storage references prefixed "STORAGE DATA-", then the
// rule match with its computed destination.
var resultColumns = []column{
	{"IPA-idIpa", company(func(c *models.Company) string { return formatInt64(c.IDIpa) })},
	{"IPA-codiceIpa", company(func(c *models.Company) string { return c.CodiceIpa })},
	{"IPA-denominazioneEnte", company(func(c *models.Company) string { return c.DenominazioneEnte })},
	{"IPA-codiceFiscaleEnte", company(func(c *models.Company) string { return c.CodiceFiscaleEnte })},
	{"IPA-tipologia", company(func(c *models.Company) string { return c.Tipologia })},
	{"IPA-codiceCategoria", company(func(c *models.Company) string { return c.CodiceCategoria })},
	{"IPA-codiceNatura", company(func(c *models.Company) string { return c.CodiceNatura })},
	{"IPA-acronimo", company(func(c *models.Company) string { return c.Acronimo })},
	{"IPA-sitoIstituzionale", company(func(c *models.Company) string { return c.SitoIstituzionale })},
	{"IPA-sorgente", company(func(c *models.Company) string { return c.Sorgente })},
	{"ID", func(r *models.Result) string { return formatInt64(r.ID) }},
	{"URL CALCOLATA", func(r *models.Result) string { return r.RealURL }},
	{"RECORD CREATO", func(r *models.Result) string { return formatTime(r.CreatedAt) }},
	{"RECORD AGGIORNATO", func(r *models.Result) string { return formatTime(r.UpdatedAt) }},
	{"STATO", func(r *models.Result) string { return formatInt(r.Status) }},
	{"STORAGE DATA-objectBucket", storage(func(s *models.StorageData) string { return s.ObjectBucket })},
	{"STORAGE DATA-objectId", storage(func(s *models.StorageData) string { return s.ObjectID })},
	{"STORAGE DATA-objectResult", storage(func(s *models.StorageData) string { return s.ObjectResult })},
	{"STORAGE DATA-screenshotBucket", storage(func(s *models.StorageData) string { return s.ScreenshotBucket })},
	{"STORAGE DATA-screenshotId", storage(func(s *models.StorageData) string { return s.ScreenshotID })},
	{"STORAGE DATA-screenshotResult", storage(func(s *models.StorageData) string { return s.ScreenshotResult })},
	{"url", func(r *models.Result) string { return r.URL }},
	{"destinationUrl", func(r *models.Result) string { return r.DestinationURL }},
	{"ruleName", func(r *models.Result) string { return r.RuleName }},
	{"term", func(r *models.Result) string { return r.Term }},
	{"content", func(r *models.Result) string { return r.Content }},
	{"isLeaf", func(r *models.Result) string { return strconv.FormatBool(r.IsLeaf) }},
	{"score", func(r *models.Result) string {
		if r.Score == nil {
			return ""
		}
		return r.Score.String()
	}},
	{"workflowId", func(r *models.Result) string { return r.WorkflowID }},
	{"workflowChildId", func(r *models.Result) string { return r.WorkflowChildID }},
	{"errorMessage", func(r *models.Result) string { return r.ErrorMessage }},
	{"length", func(r *models.Result) string { return formatInt(r.Length) }},
	{"where", func(r *models.Result) string { return r.Where }},
}

// terseColumns identifies the administration and the page only
var terseColumns = []column{
	{"IPA-CODICE", company(func(c *models.Company) string { return c.CodiceIpa })},
	{"IPA-CATEGORIA", company(func(c *models.Company) string { return c.CodiceCategoria })},
	{"IPA-CODICE FISCALE", company(func(c *models.Company) string { return c.CodiceFiscaleEnte })},
	{"IPA-DENOMINAZIONE", company(func(c *models.Company) string { return c.DenominazioneEnte })},
	{"IPA-TIPOLOGIA", company(func(c *models.Company) string { return c.Tipologia })},
	{"IPA-NATURA GIURIDICA", company(func(c *models.Company) string { return c.CodiceNatura })},
	{"IPA-ACRONIMO", company(func(c *models.Company) string { return c.Acronimo })},
	{"IPA-SITO ISTITUZIONALE", company(func(c *models.Company) string { return c.SitoIstituzionale })},
	{"ID", func(r *models.Result) string { return formatInt64(r.ID) }},
	{"URL CALCOLATA", func(r *models.Result) string { return r.RealURL }},
	{"RECORD CREATO", func(r *models.Result) string { return formatTime(r.CreatedAt) }},
	{"RECORD AGGIORNATO", func(r *models.Result) string { return formatTime(r.UpdatedAt) }},
	{"STATO", func(r *models.Result) string { return formatInt(r.Status) }},
}

// WriteResultsCSV writes a header and one row per result. DestinationURL is
// written as found; an empty destination leaves the cell blank.
func WriteResultsCSV(w io.Writer, results []models.Result) error {
	return writeCSV(w, resultColumns, results)
}

// WriteResultsCSVTerse writes the short layout without match details
func WriteResultsCSVTerse(w io.Writer, results []models.Result) error {
	return writeCSV(w, terseColumns, results)
}

func writeCSV(w io.Writer, columns []column, results []models.Result) error {
	writer := csv.NewWriter(w)

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.header
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	row := make([]string, len(columns))
	for i := range results {
		for j, c := range columns {
			row[j] = c.value(&results[i])
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func company(get func(c *models.Company) string) func(r *models.Result) string {
	return func(r *models.Result) string {
		if r.Company == nil {
			return ""
		}
		return get(r.Company)
	}
}

func storage(get func(s *models.StorageData) string) func(r *models.Result) string {
	return func(r *models.Result) string {
		if r.StorageData == nil {
			return ""
		}
		return get(r.StorageData)
	}
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatInt64(v int64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatInt(v, 10)
}

func formatTime(t *models.Timestamp) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.String()
}
