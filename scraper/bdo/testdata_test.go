package bdo

import (
	"fmt"
	"strings"
)

type testRow struct {
	name, address, href string
	noTitle, noBody     bool
	noLink, noHref      bool
}

func rowHTML(r testRow) string {
	var b strings.Builder
	b.WriteString(`<div class="views-row">`)
	if !r.noTitle {
		fmt.Fprintf(&b, `<div class="views-field-title"><span class="field-content">%s</span></div>`, r.name)
	}
	if !r.noBody {
		fmt.Fprintf(&b, `<div class="views-field-body"><div class="field-content">%s</div></div>`, r.address)
	}
	if !r.noLink {
		if r.noHref {
			b.WriteString(`<div class="views-field-nothing"><span class="field-content"><a>Get directions</a></span></div>`)
		} else {
			fmt.Fprintf(&b, `<div class="views-field-nothing"><span class="field-content"><a href="%s">Get directions</a></span></div>`, r.href)
		}
	}
	b.WriteString(`</div>`)
	return b.String()
}

func pageHTML(pager string, rows ...testRow) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="view-content">`)
	for _, r := range rows {
		b.WriteString(rowHTML(r))
	}
	b.WriteString(`</div>`)
	b.WriteString(pager)
	b.WriteString(`</body></html>`)
	return b.String()
}

func pagerItems(indexes ...int) string {
	var b strings.Builder
	b.WriteString(`<ul class="pager">`)
	for _, i := range indexes {
		fmt.Fprintf(&b, `<li class="pager-item"><a href="?page=%d">%d</a></li>`, i, i)
	}
	b.WriteString(`</ul>`)
	return b.String()
}

func mapsLink(lat, lng string) string {
	return "https://maps.example.com/dir?latitude=" + lat + "&amp;longitude=" + lng
}
