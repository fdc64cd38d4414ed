package output

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// droppedElements never contribute to a readable excerpt
const droppedElements = "script, style, link, meta, noscript, iframe, svg, form, input, button, select, textarea, canvas"

// keptAttrs lists the attributes each element keeps; all others are stripped
var keptAttrs = map[string][]string{
	"a":    {"href", "title"},
	"img":  {"src", "alt", "title"},
	"base": {"href"},
}

// CleanHTML strips noise elements and every attribute except the link,
// image and <base> ones, which are kept verbatim so they can be resolved
// later.
func CleanHTML(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	doc.Find(droppedElements).Remove()
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, node := range s.Nodes {
			node.Attr = filterAttrs(node.Attr, keptAttrs[node.Data])
		}
	})

	out, err := doc.Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func filterAttrs(attrs []html.Attribute, keep []string) []html.Attribute {
	var kept []html.Attribute
	for _, a := range attrs {
		for _, k := range keep {
			if a.Key == k {
				kept = append(kept, a)
				break
			}
		}
	}
	return kept
}
