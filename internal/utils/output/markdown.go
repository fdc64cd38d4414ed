package output

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
)

// RewriteFunc maps a raw link from markup to its destination. ok is false
// when there is none.
type RewriteFunc func(raw string) (dest string, ok bool)

// RenderMarkdown converts HTML to GitHub flavored Markdown with every link and
// image pointing at its destination. Links without a destination are rendered
// as plain text; images without one are dropped.
func RenderMarkdown(htmlContent string, rewrite RewriteFunc) (string, error) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	converter.AddRules(
		md.Rule{
			Filter: []string{"a"},
			Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
				href, exists := selec.Attr("href")
				if !exists {
					return nil
				}

				text := strings.TrimSpace(content)
				dest, ok := rewrite(href)
				if !ok {
					return &text
				}
				title, hasTitle := selec.Attr("title")
				var titlePart string
				if hasTitle {
					titlePart = fmt.Sprintf(" %q", title)
				}
				str := fmt.Sprintf("[%s](%s%s)", text, dest, titlePart)
				return &str
			},
		},
		md.Rule{
			Filter: []string{"img"},
			Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
				src, exists := selec.Attr("src")
				if !exists {
					return nil
				}

				empty := ""
				dest, ok := rewrite(src)
				if !ok {
					return &empty
				}
				alt, _ := selec.Attr("alt")
				str := fmt.Sprintf("![%s](%s)", alt, dest)
				return &str
			},
		},
	)

	cleaned, err := CleanHTML(htmlContent)
	if err != nil {
		return "", err
	}

	return converter.ConvertString(cleaned)
}
