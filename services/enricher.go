package services

import (
	"context"

	"github.com/rotisserie/eris"

	"atm-scraper/geocode"
	"atm-scraper/models"
	"atm-scraper/utils"
)

// ErrNoStructuredAddress means no geocoding candidate mapped to any known
// address component.
var ErrNoStructuredAddress = eris.New("enricher: no structured address available")

// Enricher derives a structured address for a coordinate pair.
type Enricher struct {
	client geocode.Client
	logger *utils.Logger
}

// NewEnricher creates an Enricher backed by client.
func NewEnricher(client geocode.Client, logger *utils.Logger) *Enricher {
	return &Enricher{client: client, logger: logger}
}

// Enrich returns the address of the first candidate that yields at least one
// component, or ErrNoStructuredAddress. Provider failures are returned wrapped.
func (e *Enricher) Enrich(ctx context.Context, lat, lng float64) (models.StructuredAddress, error) {
	results, err := e.client.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return models.StructuredAddress{}, eris.Wrapf(err, "enricher: reverse geocode %f,%f", lat, lng)
	}

	addr, ok := AddressFromResults(results)
	if !ok {
		e.logger.Debug("[enricher] No usable candidate for %f,%f (%d results)", lat, lng, len(results))
		return models.StructuredAddress{}, ErrNoStructuredAddress
	}
	return addr, nil
}

// AddressFromResults scans candidates in ranked order and stops at the first
// one mapping any component; later, richer candidates are not considered.
func AddressFromResults(results []geocode.Result) (models.StructuredAddress, bool) {
	for _, r := range results {
		addr := mapComponents(r.AddressComponents)
		if !addr.IsEmpty() {
			addr.FullAddress = r.FormattedAddress
			return addr, true
		}
	}
	return models.StructuredAddress{}, false
}

// mapComponents applies the type table. A component tagged with several known
// types fills only the first matching field in table order.
func mapComponents(components []geocode.AddressComponent) models.StructuredAddress {
	var addr models.StructuredAddress
	for _, c := range components {
		switch {
		case c.HasType("locality"):
			addr.City = c.LongName
		case c.HasType("country"):
			addr.Country = c.ShortName
		case c.HasType("postal_code"):
			addr.PostalCode = c.LongName
		case c.HasType("administrative_area_level_1"):
			addr.StateProvince = c.LongName
		case c.HasType("route"):
			addr.StreetAddress = c.LongName
		}
	}
	return addr
}
