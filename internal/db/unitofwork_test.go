package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/cotizador/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func putCollection(ctx context.Context, tx db.DBTX, name, payload string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO collections (name, payload, updated_at) VALUES (?, ?, 'now')
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`, name, payload)
	return err
}

func payloadOf(t *testing.T, database *sql.DB, name string) (string, bool) {
	t.Helper()
	var payload string
	err := database.QueryRow(`SELECT payload FROM collections WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	require.NoError(t, err)
	return payload, true
}

func TestWithinTx_CommitsEveryWrite(t *testing.T) {
	database, uow := setup(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := putCollection(ctx, tx, "proposals", `[]`); err != nil {
			return err
		}
		return putCollection(ctx, tx, "local_services", `[{"id":"local-1"}]`)
	})
	require.NoError(t, err)

	p, ok := payloadOf(t, database, "proposals")
	assert.True(t, ok)
	assert.Equal(t, "[]", p)
	_, ok = payloadOf(t, database, "local_services")
	assert.True(t, ok)
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	database, uow := setup(t)
	require.NoError(t, putCollection(context.Background(), database, "proposals", `["old"]`))

	boom := errors.New("import failed")
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := putCollection(ctx, tx, "proposals", `["new"]`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, _ := payloadOf(t, database, "proposals")
	assert.Equal(t, `["old"]`, p)
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	database, uow := setup(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = putCollection(ctx, tx, "chat_history:puntual", `[]`)
			panic("boom")
		})
	})

	_, ok := payloadOf(t, database, "chat_history:puntual")
	assert.False(t, ok)
}
