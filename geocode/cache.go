package geocode

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// CachedClient memoizes reverse geocode answers per coordinate pair for the
// life of the process. Errors are not cached.
type CachedClient struct {
	next Client
	log  *zap.Logger

	mu      sync.Mutex
	entries map[string][]Result
	hits    int
}

// NewCachedClient wraps next with an in-memory cache.
func NewCachedClient(next Client, log *zap.Logger) *CachedClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedClient{next: next, log: log, entries: make(map[string][]Result)}
}

// ReverseGeocode implements Client.
func (c *CachedClient) ReverseGeocode(ctx context.Context, lat, lng float64) ([]Result, error) {
	key := cacheKey(lat, lng)

	c.mu.Lock()
	if cached, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		c.log.Debug("geocode cache hit", zap.String("key", key))
		return cached, nil
	}
	c.mu.Unlock()

	results, err := c.next.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = results
	c.mu.Unlock()
	return results, nil
}

// Hits returns how many lookups were served from the cache.
func (c *CachedClient) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

func cacheKey(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', 7, 64) + "|" + strconv.FormatFloat(lng, 'f', 7, 64)
}
