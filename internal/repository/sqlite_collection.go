package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/cotizador/internal/db"
)

// SQLiteCollectionRepo implements CollectionRepo on the collections table.
type SQLiteCollectionRepo struct {
	db db.DBTX
}

func NewSQLiteCollectionRepo(conn db.DBTX) *SQLiteCollectionRepo {
	return &SQLiteCollectionRepo{db: conn}
}

func (r *SQLiteCollectionRepo) Get(ctx context.Context, name string) ([]byte, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM collections WHERE name = ?`, name).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("collection %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("reading collection %s: %w", name, err)
	}
	return []byte(payload), nil
}

func (r *SQLiteCollectionRepo) Put(ctx context.Context, name string, payload []byte) error {
	query := `INSERT INTO collections (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, name, string(payload), nowUTC()); err != nil {
		return fmt.Errorf("writing collection %s: %w", name, err)
	}
	return nil
}

func (r *SQLiteCollectionRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting collection %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("collection %s: %w", name, ErrNotFound)
	}
	return nil
}

func (r *SQLiteCollectionRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM collections ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning collection name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
