package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesCollectionsTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='collections'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "collections", name)

	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_collections_updated'`).Scan(&name)
	require.NoError(t, err)
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cotizador.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO collections (name, payload, updated_at) VALUES ('proposals', '[]', 'now')`)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "cotizador.db", filepath.Base(DefaultPath()))
	assert.Equal(t, ".cotizador", filepath.Base(filepath.Dir(DefaultPath())))
}
