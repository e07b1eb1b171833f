package bdo

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"atm-scraper/models"
)

// Extract returns one item per listing row that has a title, a body and a
// detail link whose query carries both coordinates. Everything else is dropped.
func (s Schema) Extract(doc *goquery.Document) []*models.RawListingItem {
	var items []*models.RawListingItem

	doc.Find(s.Row).Each(func(_ int, row *goquery.Selection) {
		if item := s.extractRow(row); item != nil {
			items = append(items, item)
		}
	})

	return items
}

func (s Schema) extractRow(row *goquery.Selection) *models.RawListingItem {
	nameEl := row.Find(s.Title).First()
	addrEl := row.Find(s.Body).First()
	linkEl := row.Find(s.Link).First()
	if nameEl.Length() == 0 || addrEl.Length() == 0 || linkEl.Length() == 0 {
		return nil
	}

	href, ok := linkEl.Attr("href")
	if !ok {
		return nil
	}

	point := s.parseGeoPoint(href)
	if point == nil {
		return nil
	}

	return &models.RawListingItem{
		Name:     strings.TrimSpace(nameEl.Text()),
		Address:  strings.TrimSpace(addrEl.Text()),
		Href:     href,
		GeoPoint: point,
	}
}

// parseGeoPoint reads the coordinate query parameters of a detail link.
func (s Schema) parseGeoPoint(href string) *models.GeoPoint {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil
	}
	q := u.Query()

	lat, ok := parseCoordinate(q.Get(s.LatitudeParam))
	if !ok {
		return nil
	}
	lng, ok := parseCoordinate(q.Get(s.LongitudeParam))
	if !ok {
		return nil
	}
	return &models.GeoPoint{Lat: lat, Lng: lng}
}

func parseCoordinate(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
