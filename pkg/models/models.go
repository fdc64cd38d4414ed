package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Company is the public administration a result belongs to, as listed in the
// IPA registry.
type Company struct {
	IDIpa             int64  `json:"idIpa,omitempty"`
	CodiceIpa         string `json:"codiceIpa,omitempty"`
	DenominazioneEnte string `json:"denominazioneEnte,omitempty"`
	CodiceFiscaleEnte string `json:"codiceFiscaleEnte,omitempty"`
	Tipologia         string `json:"tipologia,omitempty"`
	CodiceCategoria   string `json:"codiceCategoria,omitempty"`
	CodiceNatura      string `json:"codiceNatura,omitempty"`
	Acronimo          string `json:"acronimo,omitempty"`
	SitoIstituzionale string `json:"sitoIstituzionale,omitempty"`
	Sorgente          string `json:"sorgente,omitempty"`
}

// StorageData points at the page snapshot and screenshot kept in object storage
type StorageData struct {
	ObjectBucket     string `json:"objectBucket,omitempty"`
	ObjectID         string `json:"objectId,omitempty"`
	ObjectResult     string `json:"objectResult,omitempty"`
	ScreenshotBucket string `json:"screenshotBucket,omitempty"`
	ScreenshotID     string `json:"screenshotId,omitempty"`
	ScreenshotResult string `json:"screenshotResult,omitempty"`
}

// Result is one rule match produced by a crawl: the page that was fetched
// (RealURL) and the link found on it (URL).
type Result struct {
	ID              int64            `json:"id,omitempty"`
	Company         *Company         `json:"company,omitempty"`
	RealURL         string           `json:"realUrl,omitempty"`
	URL             string           `json:"url,omitempty"`
	RuleName        string           `json:"ruleName,omitempty"`
	Term            string           `json:"term,omitempty"`
	Content         string           `json:"content,omitempty"`
	IsLeaf          bool             `json:"isLeaf"`
	Status          *int             `json:"status,omitempty"`
	Score           *decimal.Decimal `json:"score,omitempty"`
	WorkflowID      string           `json:"workflowId,omitempty"`
	WorkflowChildID string           `json:"workflowChildId,omitempty"`
	ErrorMessage    string           `json:"errorMessage,omitempty"`
	Length          *int             `json:"length,omitempty"`
	Where           string           `json:"where,omitempty"`
	StorageData     *StorageData     `json:"storageData,omitempty"`
	CreatedAt       *Timestamp       `json:"createdAt,omitempty"`
	UpdatedAt       *Timestamp       `json:"updatedAt,omitempty"`

	// DestinationURL is computed from RealURL and URL, never read from input.
	DestinationURL string `json:"destinationUrl,omitempty"`
}

// DestinationRequest is the body of a destination URL computation request
type DestinationRequest struct {
	Base   *string `json:"base"`
	Target *string `json:"target"`
}

// SanitizeRequest is the body of a sanitize request
type SanitizeRequest struct {
	URL *string `json:"url"`
}

// ResultResponse wraps a single computed value
type ResultResponse struct {
	Result string `json:"result"`
}

// Link is a reference found in a document together with its destination.
// Destination is empty when none could be computed.
type Link struct {
	Tag         string `json:"tag"`
	Attr        string `json:"attr"`
	Raw         string `json:"raw"`
	Destination string `json:"destination,omitempty"`
}

// LocalDateTimeLayout is how record timestamps are written: no zone, as the
// records backend stores them.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// Timestamp accepts both RFC 3339 and zone-less local date-times.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, LocalDateTimeLayout} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// String formats t with LocalDateTimeLayout
func (t Timestamp) String() string {
	return t.Format(LocalDateTimeLayout)
}
