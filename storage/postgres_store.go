package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lib/pq"
	"github.com/rotisserie/eris"

	"atm-scraper/models"
	"atm-scraper/utils"
)

// PostgresStore keeps each record as a JSONB document next to the columns
// the pipeline queries on.
type PostgresStore struct {
	db        *sql.DB
	table     string
	tableName string
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresStore.
func NewPostgresStore(dsn, table string, retry *utils.RetryConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: open")
	}

	if err := retry.Do("postgres-ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	ps := newPostgresStore(db, table)
	if err := ps.migrate(); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "postgres: migrate")
	}

	return ps, nil
}

func newPostgresStore(db *sql.DB, table string) *PostgresStore {
	return &PostgresStore{db: db, table: pq.QuoteIdentifier(table), tableName: table}
}

func (ps *PostgresStore) migrate() error {
	_, err := ps.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id          BIGSERIAL    PRIMARY KEY,
			name        TEXT         NOT NULL,
			external_id TEXT         NOT NULL,
			bank        TEXT         NOT NULL,
			geohash     TEXT         NOT NULL DEFAULT '',
			document    JSONB        NOT NULL,
			created_at  TIMESTAMPTZ  NOT NULL,
			updated_at  TIMESTAMPTZ  NOT NULL
		);

		CREATE INDEX IF NOT EXISTS %[2]s ON %[1]s(name);
		CREATE INDEX IF NOT EXISTS %[3]s ON %[1]s(geohash);
	`, ps.table, pq.QuoteIdentifier("idx_"+ps.tableName+"_name"), pq.QuoteIdentifier("idx_"+ps.tableName+"_geohash")))
	return err
}

func (ps *PostgresStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := ps.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE name = $1)`, ps.table), name,
	).Scan(&exists)
	if err != nil {
		return false, eris.Wrapf(err, "postgres: lookup %q", name)
	}
	return exists, nil
}

// Create inserts the row, then rewrites its document with the generated id.
// Both statements share one transaction.
func (ps *PostgresStore) Create(ctx context.Context, rec *models.CanonicalRecord) (string, error) {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return "", eris.Wrap(err, "postgres: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	doc, err := json.Marshal(rec)
	if err != nil {
		return "", eris.Wrap(err, "postgres: encode record")
	}

	var rowID int64
	err = tx.QueryRowContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (name, external_id, bank, geohash, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`, ps.table),
		rec.Name, rec.ExternalID, rec.Bank, rec.Location.Geohash, doc, rec.CreatedAt, rec.UpdatedAt,
	).Scan(&rowID)
	if err != nil {
		return "", eris.Wrapf(err, "postgres: insert %q", rec.Name)
	}

	id := strconv.FormatInt(rowID, 10)
	withID := *rec
	withID.ID = id
	doc, err = json.Marshal(&withID)
	if err != nil {
		return "", eris.Wrap(err, "postgres: encode record")
	}

	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET document = $1 WHERE id = $2`, ps.table), doc, rowID,
	); err != nil {
		return "", eris.Wrapf(err, "postgres: set id %s", id)
	}

	if err := tx.Commit(); err != nil {
		return "", eris.Wrap(err, "postgres: commit")
	}

	rec.ID = id
	return id, nil
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}

