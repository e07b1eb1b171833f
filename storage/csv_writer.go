package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"atm-scraper/models"
)

// CSVWriter writes raw (unenriched) listing items to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, eris.Wrap(err, "csv: create output dir")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, eris.Wrapf(err, "csv: create file %q", path)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"area", "page", "name", "address", "href", "latitude", "longitude", "scraped_at",
	}); err != nil {
		_ = f.Close()
		return nil, eris.Wrap(err, "csv: write header")
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteRaw appends one row per item.
func (c *CSVWriter) WriteRaw(items []*models.RawListingItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range items {
		var lat, lng string
		if it.GeoPoint != nil {
			lat = strconv.FormatFloat(it.GeoPoint.Lat, 'f', -1, 64)
			lng = strconv.FormatFloat(it.GeoPoint.Lng, 'f', -1, 64)
		}
		row := []string{
			it.Area,
			strconv.Itoa(it.Page),
			it.Name,
			it.Address,
			it.Href,
			lat,
			lng,
			it.ScrapedAt.Format(time.RFC3339),
		}
		if err := c.writer.Write(row); err != nil {
			return eris.Wrap(err, "csv: write row")
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
