package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanHTML reduces a filing document to plain text. EDGAR serves most
// filings as HTML; script and style blocks are dropped, the remaining text
// is extracted and whitespace is collapsed so the extraction patterns see a
// single flowing line. Input that does not parse as HTML comes back with
// whitespace normalization only.
func CleanHTML(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return normalizeSpace(raw)
	}
	doc.Find("script, style").Remove()
	return normalizeSpace(doc.Text())
}

// normalizeSpace collapses all whitespace runs to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
