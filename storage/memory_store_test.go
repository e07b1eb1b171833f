package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atm-scraper/models"
)

func TestMemoryStoreCreateAssignsID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec := &models.CanonicalRecord{Name: "ATM A"}
	id, err := s.Create(ctx, rec)
	require.NoError(t, err)

	assert.NotEmpty(t, id)
	assert.Equal(t, id, rec.ID)

	stored, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, id, stored.ID)
	assert.Equal(t, "ATM A", stored.Name)
}

func TestMemoryStoreExistsByNameIsExact(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_, err := s.Create(ctx, &models.CanonicalRecord{Name: "ATM A"})
	require.NoError(t, err)

	exists, err := s.ExistsByName(ctx, "ATM A")
	require.NoError(t, err)
	assert.True(t, exists)

	for _, name := range []string{"atm a", "ATM A ", "ATM"} {
		exists, err := s.ExistsByName(ctx, name)
		require.NoError(t, err)
		assert.False(t, exists, name)
	}
}

func TestMemoryStoreAllKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for _, n := range []string{"c", "a", "b"} {
		_, err := s.Create(ctx, &models.CanonicalRecord{Name: n})
		require.NoError(t, err)
	}

	var names []string
	for _, r := range s.All() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}
