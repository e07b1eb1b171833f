package bdo

import (
	"context"
	"strconv"
	"strings"
	"time"

	"atm-scraper/config"
	"atm-scraper/models"
	"atm-scraper/utils"
)

// Scraper walks the pages of one area at a time. It is not safe for
// concurrent use; the crawl is strictly sequential.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	fetcher Fetcher
	schema  Schema
	now     func() time.Time
}

// New creates a Scraper using the default locator schema.
func New(cfg *config.Config, logger *utils.Logger, fetcher Fetcher) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		fetcher: fetcher,
		schema:  DefaultSchema,
		now:     time.Now,
	}
}

// WithSchema swaps the selector schema.
func (s *Scraper) WithSchema(schema Schema) *Scraper {
	s.schema = schema
	return s
}

// PageURL is the URL of one zero-based page of an area.
func (s *Scraper) PageURL(area string, page int) string {
	areaURL := s.cfg.AreaURL(area)
	sep := "&"
	if !strings.Contains(areaURL, "?") {
		sep = "?"
	}
	return areaURL + sep + "page=" + strconv.Itoa(page)
}

// PageCount fetches the area's landing page and reads its pager.
func (s *Scraper) PageCount(ctx context.Context, area string) (int, error) {
	areaURL := s.cfg.AreaURL(area)

	markup, err := s.fetcher.Fetch(ctx, areaURL)
	if err != nil {
		return 0, err
	}

	doc, err := ParseDocument(markup)
	if err != nil {
		return 0, err
	}

	n := s.schema.PageCount(doc)
	s.logger.Info("[bdo] Area %s has %d page(s)", area, n)
	return n, nil
}

// ScrapePage fetches one page and extracts its complete rows.
func (s *Scraper) ScrapePage(ctx context.Context, area string, page int) ([]*models.RawListingItem, error) {
	pageURL := s.PageURL(area, page)

	s.logger.Info("Fetching data from: %s", pageURL)
	markup, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Scraping data from: %s", pageURL)
	doc, err := ParseDocument(markup)
	if err != nil {
		return nil, err
	}

	items := s.schema.Extract(doc)
	scrapedAt := s.now()
	for _, it := range items {
		it.Area = area
		it.Page = page
		it.ScrapedAt = scrapedAt
	}

	s.logger.Debug("[bdo] %s page %d: %d complete rows", area, page, len(items))
	return items, nil
}
