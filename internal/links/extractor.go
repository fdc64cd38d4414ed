// Package links finds references in HTML documents and computes where each
// one leads.
package links

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"

	"github.com/law-makers/linkresolve/pkg/models"
)

// sourceAttrs maps each element that references another resource to the
// attribute holding the reference.
var sourceAttrs = map[string]string{
	"a":      "href",
	"area":   "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
	"iframe": "src",
}

const sourceSelector = "a[href], area[href], link[href], img[src], script[src], iframe[src]"

// ResolveFunc computes the destination of target relative to base
type ResolveFunc func(base, target string) (string, bool)

// Extractor pulls links out of documents and resolves them
type Extractor struct {
	resolve ResolveFunc
}

// New creates an Extractor that resolves links with resolve
func New(resolve ResolveFunc) *Extractor {
	return &Extractor{resolve: resolve}
}

// Parse reads an HTML document
func Parse(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// Extract parses r and returns its links in document order, resolved against
// the document's effective base.
func (e *Extractor) Extract(r io.Reader, base string) ([]models.Link, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return e.ExtractDocument(doc, base), nil
}

// ExtractDocument returns the links of doc in document order. Empty
// references are skipped; references without a destination are kept with an
// empty Destination.
func (e *Extractor) ExtractDocument(doc *goquery.Document, base string) []models.Link {
	if doc == nil {
		return nil
	}
	base = e.EffectiveBase(doc, base)

	var links []models.Link
	doc.Find(sourceSelector).Each(func(i int, sel *goquery.Selection) {
		tag := goquery.NodeName(sel)
		attr := sourceAttrs[tag]
		raw, _ := sel.Attr(attr)
		if strings.TrimSpace(raw) == "" {
			return
		}

		dest, _ := e.resolve(base, raw)
		links = append(links, models.Link{
			Tag:         tag,
			Attr:        attr,
			Raw:         raw,
			Destination: dest,
		})
	})
	return links
}

// EffectiveBase returns the URL relative links of doc resolve against: the
// first <base href>, itself resolved against base, or base when there is no
// usable <base> element.
func (e *Extractor) EffectiveBase(doc *goquery.Document, base string) string {
	href, ok := doc.Find("base[href]").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return base
	}
	if base == "" {
		// "/" resolves to the base itself, normalized
		if dest, ok := e.resolve(href, "/"); ok {
			return dest
		}
		return base
	}
	if dest, ok := e.resolve(base, href); ok {
		return dest
	}
	return base
}

// Unique drops repeated references, keeping the first occurrence
func Unique(links []models.Link) []models.Link {
	return lo.UniqBy(links, func(l models.Link) string {
		return l.Tag + "\x00" + l.Raw
	})
}

// Destinations returns the distinct destinations of links in order, skipping
// links that have none.
func Destinations(links []models.Link) []string {
	dests := lo.FilterMap(links, func(l models.Link, _ int) (string, bool) {
		return l.Destination, l.Destination != ""
	})
	return lo.Uniq(dests)
}

// Unresolved returns the links without a destination
func Unresolved(links []models.Link) []models.Link {
	return lo.Filter(links, func(l models.Link, _ int) bool {
		return l.Destination == ""
	})
}
