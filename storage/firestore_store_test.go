package storage

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against the Firestore emulator only.
func TestFirestoreStoreRoundTrip(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	collection := "atms_test_" + uuid.NewString()

	s, err := NewFirestoreStore(ctx, "demo-locator", "", collection)
	require.NoError(t, err)
	defer s.Close()

	exists, err := s.ExistsByName(ctx, "ATM A")
	require.NoError(t, err)
	assert.False(t, exists)

	rec := sampleRecord()
	id, err := s.Create(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)

	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	require.NoError(t, err)
	stored, err := snap.DataAt("id")
	require.NoError(t, err)
	assert.Equal(t, id, stored)

	bank, err := snap.DataAt("bank")
	require.NoError(t, err)
	assert.NotNil(t, bank)

	exists, err = s.ExistsByName(ctx, "ATM A")
	require.NoError(t, err)
	assert.True(t, exists)
}
