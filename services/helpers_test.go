package services

import (
	"context"
	"errors"

	"atm-scraper/geocode"
	"atm-scraper/models"
)

type stubGeocoder struct {
	results []geocode.Result
	err     error
	calls   int
}

func (s *stubGeocoder) ReverseGeocode(context.Context, float64, float64) ([]geocode.Result, error) {
	s.calls++
	return s.results, s.err
}

func component(long, short string, types ...string) geocode.AddressComponent {
	return geocode.AddressComponent{LongName: long, ShortName: short, Types: types}
}

// flakyStore fails every call for names listed in failOn.
type flakyStore struct {
	failOn   map[string]bool
	existing map[string]bool
	created  []*models.CanonicalRecord
	nextID   int
}

func (f *flakyStore) ExistsByName(_ context.Context, name string) (bool, error) {
	if f.failOn[name] {
		return false, errors.New("unavailable")
	}
	return f.existing[name], nil
}

func (f *flakyStore) Create(_ context.Context, rec *models.CanonicalRecord) (string, error) {
	f.nextID++
	id := "doc-" + string(rune('0'+f.nextID))
	rec.ID = id
	f.created = append(f.created, rec)
	return id, nil
}

func (f *flakyStore) Close() error { return nil }
