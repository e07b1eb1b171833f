package storage

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atm-scraper/models"
)

// docWithID matches a JSON document argument whose id field equals want.
type docWithID struct{ want string }

func (d docWithID) Match(v driver.Value) bool {
	b, ok := v.([]byte)
	if !ok {
		return false
	}
	var rec models.CanonicalRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return false
	}
	return rec.ID == d.want
}

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return newPostgresStore(db, "atms"), mock
}

func sampleRecord() *models.CanonicalRecord {
	now := time.Date(2024, 8, 1, 9, 30, 0, 0, time.UTC)
	return &models.CanonicalRecord{
		Name:       "ATM A",
		ExternalID: "ATM A_20240801093000",
		Bank:       "banks/abc",
		CreatedAt:  now,
		UpdatedAt:  now,
		Location:   models.Location{Geohash: "wdw4f8", GeoPoint: models.GeoPoint{Lat: 14.55, Lng: 121.02}},
	}
}

func TestPostgresExistsByName(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM "atms" WHERE name = \$1\)`).
		WithArgs("ATM A").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := s.ExistsByName(context.Background(), "ATM A")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateInsertsThenSetsID(t *testing.T) {
	s, mock := newMockStore(t)
	rec := sampleRecord()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "atms"`).
		WithArgs("ATM A", "ATM A_20240801093000", "banks/abc", "wdw4f8", docWithID{want: ""}, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectExec(`UPDATE "atms" SET document = \$1 WHERE id = \$2`).
		WithArgs(docWithID{want: "42"}, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := s.Create(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "42", id)
	assert.Equal(t, "42", rec.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateRollsBackOnFailure(t *testing.T) {
	s, mock := newMockStore(t)
	rec := sampleRecord()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "atms"`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := s.Create(context.Background(), rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, rec.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
