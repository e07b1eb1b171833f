package storage

import (
	"context"

	"atm-scraper/models"
)

// RecordStore is the document store the persister writes into.
type RecordStore interface {
	// ExistsByName reports whether any stored record has exactly this name.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Create stores rec under a store-generated identifier, writes that
	// identifier into the stored record's id field and sets rec.ID.
	Create(ctx context.Context, rec *models.CanonicalRecord) (string, error)

	Close() error
}

// RawItemWriter is the interface for persisting unprocessed scraped data.
type RawItemWriter interface {
	WriteRaw(items []*models.RawListingItem) error
	Close() error
}
