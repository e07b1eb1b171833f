// Package bdo crawls the BDO branch/ATM locator: it fetches listing pages,
// works out how many pages an area has and extracts the location rows.
package bdo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"atm-scraper/config"
)

// Fetcher retrieves the markup of a single page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// NetworkError reports a failed page retrieval: a non-2xx status or a
// transport failure (StatusCode is 0 in that case).
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPFetcher fetches pages with a plain HTTP GET. It never retries.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
}

// NewHTTPFetcher builds a fetcher with the configured timeout, User-Agent and
// optional pacing between requests.
func NewHTTPFetcher(cfg *config.Config) *HTTPFetcher {
	timeout := time.Duration(cfg.HTTPTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RateLimitMs > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Duration(cfg.RateLimitMs)*time.Millisecond), 1)
	}

	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: cfg.UserAgent,
		limiter:   limiter,
	}
}

// Fetch returns the response body of url.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", &NetworkError{URL: url, Err: eris.Wrap(err, "fetch: rate limit")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &NetworkError{URL: url, Err: eris.Wrap(err, "fetch: build request")}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &NetworkError{URL: url, Err: eris.Wrap(err, "fetch: request")}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &NetworkError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{URL: url, Err: eris.Wrap(err, "fetch: read body")}
	}
	return string(body), nil
}
