package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// GoogleClient reverse geocodes through the Google Geocoding API.
type GoogleClient struct {
	httpClient *http.Client
	apiKey     string
	limiter    *rate.Limiter
	baseURL    string
}

type googleGeocodeResponse struct {
	Results      []Result `json:"results"`
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message"`
}

// ReverseGeocode returns the provider's candidates for (lat, lng). A
// ZERO_RESULTS answer is an empty slice, not an error.
func (g *GoogleClient) ReverseGeocode(ctx context.Context, lat, lng float64) ([]Result, error) {
	if g.apiKey == "" {
		return nil, eris.New("geocode: google api key not configured")
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: google rate limit")
	}

	params := url.Values{
		"latlng": {formatLatLng(lat, lng)},
		"key":    {g.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google build request")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geocode: google returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: google read body")
	}

	var gr googleGeocodeResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, eris.Wrap(err, "geocode: google parse response")
	}

	switch gr.Status {
	case "OK":
		return gr.Results, nil
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, eris.Errorf("geocode: google status %s: %s", gr.Status, gr.ErrorMessage)
	}
}

func formatLatLng(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}
