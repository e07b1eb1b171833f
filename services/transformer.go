package services

import (
	"time"

	"github.com/mmcloughlin/geohash"

	"atm-scraper/models"
)

const (
	externalIDLayout = "20060102150405"
	fallbackCountry  = "PH"
	statusOnline     = "online"
	addedByAdmin     = "admin"
)

// Transformer builds canonical records from raw items and enrichment results.
type Transformer struct {
	bankPath string
	qrCode   string
	loc      *time.Location
	clock    func() time.Time
}

// NewTransformer creates a Transformer that references bankPath and stamps
// records in loc.
func NewTransformer(bankPath, qrCode string, loc *time.Location) *Transformer {
	if loc == nil {
		loc = time.UTC
	}
	return &Transformer{bankPath: bankPath, qrCode: qrCode, loc: loc, clock: time.Now}
}

// Now returns the current time in the transformer's zone.
func (t *Transformer) Now() time.Time {
	return t.clock().In(t.loc)
}

// Transform combines item and its enrichment. A nil addr selects the
// fallback address. The item must carry a GeoPoint.
func (t *Transformer) Transform(item *models.RawListingItem, addr *models.StructuredAddress, now time.Time) *models.CanonicalRecord {
	now = now.In(t.loc)
	point := *item.GeoPoint

	address := FallbackAddress(item.Address)
	if addr != nil {
		address = *addr
	}

	return &models.CanonicalRecord{
		Address:    address,
		Bank:       t.bankPath,
		CreatedAt:  now,
		UpdatedAt:  now,
		ExternalID: item.Name + "_" + now.Format(externalIDLayout),
		LastReportedStatus: models.ReportedStatus{
			Status:    statusOnline,
			Timestamp: now,
		},
		Location: models.Location{
			Geohash:  geohash.Encode(point.Lat, point.Lng),
			GeoPoint: point,
		},
		Name:     item.Name,
		QRCode:   t.qrCode,
		AddedBy:  addedByAdmin,
		Geocoded: addr != nil,
	}
}

// FallbackAddress is used when geocoding produced nothing usable.
func FallbackAddress(raw string) models.StructuredAddress {
	return models.StructuredAddress{
		Country:     fallbackCountry,
		FullAddress: raw,
	}
}
