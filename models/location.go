package models

import "time"

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RawListingItem holds one row scraped from a locator page, before enrichment.
// Items without a GeoPoint never leave the extractor.
type RawListingItem struct {
	Name     string
	Address  string
	Href     string
	GeoPoint *GeoPoint

	Area      string
	Page      int
	ScrapedAt time.Time
}

// StructuredAddress is the canonical postal address of a location.
type StructuredAddress struct {
	City          string `json:"city"`
	Country       string `json:"country"`
	FullAddress   string `json:"fullAddress"`
	PostalCode    string `json:"postalCode"`
	StateProvince string `json:"stateProvince"`
	StreetAddress string `json:"streetAddress"`
}

// IsEmpty reports whether no component field is set. FullAddress is not a
// component and is ignored.
func (a StructuredAddress) IsEmpty() bool {
	return a.City == "" && a.Country == "" && a.PostalCode == "" &&
		a.StateProvince == "" && a.StreetAddress == ""
}

// ReportedBy identifies the device that last reported a status.
type ReportedBy struct {
	AppVersion  string `json:"appVersion"`
	DeviceID    string `json:"deviceId"`
	DeviceModel string `json:"deviceModel"`
	OSVersion   string `json:"osVersion"`
}

// ReportedStatus is the last known operating status of a location.
type ReportedStatus struct {
	ReportedBy ReportedBy `json:"reportedBy"`
	Status     string     `json:"status"`
	Timestamp  time.Time  `json:"timestamp"`
}

// Location carries the spatial index and coordinates of a record.
type Location struct {
	Geohash  string   `json:"geohash"`
	GeoPoint GeoPoint `json:"geopoint"`
}

// CanonicalRecord is the persisted shape of one branch or ATM.
// ID stays empty until the store assigns one.
type CanonicalRecord struct {
	Address            StructuredAddress `json:"address"`
	Bank               string            `json:"bank"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
	ExternalID         string            `json:"externalId"`
	ID                 string            `json:"id"`
	LastReportedStatus ReportedStatus    `json:"lastReportedStatus"`
	Location           Location          `json:"location"`
	Name               string            `json:"name"`
	QRCode             string            `json:"qrCode"`
	Status             string            `json:"status"`
	AddedBy            string            `json:"addedBy"`

	// Geocoded is false when the fallback address was used.
	Geocoded bool `json:"-"`
}

// RunSummary holds the outcome of one pipeline run.
type RunSummary struct {
	Processed       int
	Saved           int
	Skipped         int
	Failed          int
	FallbackAddress int
	RecordsByCity   map[string]int
	AreasCrawled    int
	PagesFetched    int
}
