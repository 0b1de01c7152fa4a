package research

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML reduces snippet content to plain text. Search backends sometimes
// return raw page fragments; markup in the prompt wastes tokens and confuses
// section parsing downstream.
func StripHTML(content string) string {
	if !strings.ContainsAny(content, "<>") {
		return strings.TrimSpace(content)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return strings.TrimSpace(content)
	}
	doc.Find("script, style").Remove()

	text := doc.Text()
	// Collapse runs of whitespace left behind by removed tags
	return strings.Join(strings.Fields(text), " ")
}
