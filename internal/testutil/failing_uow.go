package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/cotizador/internal/db"
)

// FailingCollectionUoW runs the transaction normally but injects Err on
// the first write whose collection name is Collection. Reads pass through.
// Tests use it to check that a multi-collection import rolls back whole.
type FailingCollectionUoW struct {
	DB         *sql.DB
	Collection string
	Err        error
}

func (u *FailingCollectionUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, &failingCollectionTx{DBTX: tx, collection: u.Collection, err: u.Err}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingCollectionTx struct {
	db.DBTX
	collection string
	err        error
}

// ExecContext fails when the first bound argument, the collection name,
// matches.
func (f *failingCollectionTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if len(args) > 0 && args[0] == f.collection {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
