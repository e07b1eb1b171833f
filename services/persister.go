package services

import (
	"context"

	"atm-scraper/models"
	"atm-scraper/storage"
	"atm-scraper/utils"
)

// PersistResult counts the outcome of a persist pass.
type PersistResult struct {
	Saved   int
	Skipped int
	Failed  int
}

// Persister writes records that are not already stored under the same name.
type Persister struct {
	store  storage.RecordStore
	logger *utils.Logger
}

// NewPersister creates a Persister over store.
func NewPersister(store storage.RecordStore, logger *utils.Logger) *Persister {
	return &Persister{store: store, logger: logger}
}

// Persist walks records in order. Name matches are exact and skip the record
// untouched; a store failure is logged and the pass moves on.
func (p *Persister) Persist(ctx context.Context, records []*models.CanonicalRecord) PersistResult {
	var res PersistResult

	for _, rec := range records {
		exists, err := p.store.ExistsByName(ctx, rec.Name)
		if err != nil {
			p.logger.Error("Error saving item to store: %v", err)
			res.Failed++
			continue
		}
		if exists {
			p.logger.Info("Item with name %s already exists. Skipping.", rec.Name)
			res.Skipped++
			continue
		}

		id, err := p.store.Create(ctx, rec)
		if err != nil {
			p.logger.Error("Error saving item to store: %v", err)
			res.Failed++
			continue
		}

		p.logger.Info("[persister] Saved %s as %s", rec.Name, id)
		res.Saved++
	}

	return res
}
