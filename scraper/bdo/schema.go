package bdo

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// Schema names the CSS selectors the extractor and pager read. Row-level
// selectors are evaluated inside each Row match.
type Schema struct {
	Row   string
	Title string
	Body  string
	Link  string

	PagerTotal string
	PagerItem  string

	LatitudeParam  string
	LongitudeParam string
}

// DefaultSchema matches the Drupal views markup served by the locator.
var DefaultSchema = Schema{
	Row:   ".views-row",
	Title: ".views-field-title .field-content",
	Body:  ".views-field-body .field-content",
	Link:  ".views-field-nothing .field-content a",

	PagerTotal: ".pager-total a",
	PagerItem:  ".pager-item a",

	LatitudeParam:  "latitude",
	LongitudeParam: "longitude",
}

// ParseDocument parses page markup.
func ParseDocument(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, eris.Wrap(err, "bdo: parse markup")
	}
	return doc, nil
}
