package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTag = regexp.MustCompile(`(?i)</?(?:p|br|div|ul|ol|li|b|strong|em|i|span|h[1-6])\b[^>]*>`)

// LooksLikeHTML reports whether text contains common markup tags.
func LooksLikeHTML(text string) bool {
	return htmlTag.MatchString(text)
}

// HTMLToText converts an HTML fragment to plain text, keeping paragraph and
// list-item breaks. Plain text is returned cleaned but otherwise unchanged.
func HTMLToText(content string) (string, error) {
	if !LooksLikeHTML(content) {
		return CleanText(content), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
		s.AppendHtml("\n")
	})
	doc.Find("p, div, h1, h2, h3, h4, h5, h6, ul, ol").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n\n")
	})

	return CleanText(doc.Text()), nil
}

// PlainDescription is HTMLToText that falls back to the input when parsing fails.
func PlainDescription(content string) string {
	text, err := HTMLToText(content)
	if err != nil {
		return content
	}
	return text
}
