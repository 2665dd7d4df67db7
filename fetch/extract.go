package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelector lists elements stripped before text extraction.
const noiseSelector = "nav, footer, header, script, style, noscript, aside, form, iframe, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup"

// blockSelector lists elements whose text starts on a new line.
const blockSelector = "p, div, section, li, h1, h2, h3, h4, h5, h6, blockquote, pre, tr, dt, dd, figcaption"

// contentSelectors are tried in order; the first match is the main content.
var contentSelectors = []string{"main", "article", "body"}

// Extract parses HTML and returns the page title and main text. The main
// text comes from the first <main>, else the first <article>, else <body>.
func Extract(html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &Error{Reason: ReasonUnparseable, Message: "failed to parse HTML", Cause: err}
	}

	title := extractTitle(doc)

	var main *goquery.Selection
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			main = sel.First()
			break
		}
	}
	if main == nil {
		return nil, &Error{Reason: ReasonUnparseable, Message: "no content container"}
	}

	main.Find(noiseSelector).Remove()
	main.Find("br").ReplaceWithHtml("\n")
	main.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n")
		s.AppendHtml("\n")
	})

	return &Page{Title: title, Text: cleanWhitespace(main.Text())}, nil
}

func extractTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		return strings.TrimSpace(og)
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// cleanWhitespace trims every line and drops blank ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
