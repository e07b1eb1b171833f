package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"atm-scraper/models"
)

// MemoryStore keeps records in process memory. Used for dry runs and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.CanonicalRecord
	order   []string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]models.CanonicalRecord)}
}

func (m *MemoryStore) ExistsByName(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.records {
		if r.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) Create(_ context.Context, rec *models.CanonicalRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	stored := *rec
	stored.ID = id
	m.records[id] = stored
	m.order = append(m.order, id)

	rec.ID = id
	return id, nil
}

// Get returns a copy of the record stored under id.
func (m *MemoryStore) Get(id string) (models.CanonicalRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[id]
	return r, ok
}

// All returns copies of the stored records in insertion order.
func (m *MemoryStore) All() []models.CanonicalRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.CanonicalRecord, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.records[id])
	}
	return out
}

func (m *MemoryStore) Close() error { return nil }
