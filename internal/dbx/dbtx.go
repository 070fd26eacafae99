// Package dbx carries the small database plumbing the identity store is
// built on: the DBTX handle that lets the users repository run against
// either a plain connection or a transaction, and a transaction helper.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the query surface the identity repositories need. Both *sql.DB
// and *sql.Tx satisfy it, so the same repository code serves direct reads
// (login, token resolution) and transactional writes (registration).
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with a transactional handle, and
// commits on success or rolls back on error/panic. Panics are rethrown.
// The registration path uses it to keep the duplicate-email check and the
// insert atomic:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    // lookups and the insert see the same snapshot
//	    return repoTx.Create(ctx, user)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
