// Package geocode provides reverse geocoding via the Google Geocoding API.
package geocode

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Client turns a coordinate pair into ranked address candidates.
type Client interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) ([]Result, error)
}

// AddressComponent is one typed part of a candidate address.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// HasType reports whether the component is tagged with t.
func (c AddressComponent) HasType(t string) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}

// Result is one candidate returned by the provider, in ranked order.
type Result struct {
	AddressComponents []AddressComponent `json:"address_components"`
	FormattedAddress  string             `json:"formatted_address"`
	PlaceID           string             `json:"place_id"`
	Types             []string           `json:"types"`
}

// Option configures the GoogleClient.
type Option func(*GoogleClient)

// WithAPIKey sets the Google Maps API key.
func WithAPIKey(key string) Option {
	return func(g *GoogleClient) {
		g.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *GoogleClient) {
		g.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second limit. Zero or less disables it.
func WithRateLimit(rps float64) Option {
	return func(g *GoogleClient) {
		if rps <= 0 {
			g.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(u string) Option {
	return func(g *GoogleClient) {
		g.baseURL = u
	}
}

// NewClient creates a GoogleClient with the given options.
func NewClient(opts ...Option) *GoogleClient {
	g := &GoogleClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(10, 10),
		baseURL:    googleGeocodeURL,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
