package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE entries (id INTEGER PRIMARY KEY, value TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func countEntries(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM entries`).Scan(&n))
	return n
}

func TestRunInTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		db := openTestDB(t)

		err := RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO entries (value) VALUES ('a'), ('b')`)
			return err
		})

		require.NoError(t, err)
		assert.Equal(t, 2, countEntries(t, db))
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db := openTestDB(t)
		failure := errors.New("boom")

		err := RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `INSERT INTO entries (value) VALUES ('a')`); err != nil {
				return err
			}
			return failure
		})

		assert.ErrorIs(t, err, failure)
		assert.Equal(t, 0, countEntries(t, db))
	})

	t.Run("rolls back on panic and re-panics", func(t *testing.T) {
		db := openTestDB(t)

		assert.Panics(t, func() {
			_ = RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
				if _, err := tx.ExecContext(ctx, `INSERT INTO entries (value) VALUES ('a')`); err != nil {
					return err
				}
				panic("mid-transaction failure")
			})
		})
		assert.Equal(t, 0, countEntries(t, db))
	})
}
