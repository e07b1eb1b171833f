package bdo

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageCount returns how many pages the listing has. The pager links carry the
// zero-based index of the last page, so the count is that index plus one. The
// explicit total link wins over the last numbered link; with neither, the
// listing is a single page.
func (s Schema) PageCount(doc *goquery.Document) int {
	if n, ok := pagerIndex(doc.Find(s.PagerTotal).First()); ok {
		return n + 1
	}
	if n, ok := pagerIndex(doc.Find(s.PagerItem).Last()); ok {
		return n + 1
	}
	return 1
}

func pagerIndex(sel *goquery.Selection) (int, bool) {
	if sel.Length() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(sel.Text()))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
