// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx,
// helpers to run functions inside a transaction, and the dialect glue that
// lets the same repositories run on PostgreSQL and SQLite.
package dbx

import (
	"context"
	"database/sql"

	"github.com/sethvargo/go-retry"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
//
// Typical use:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    // use tx instead of db
//	    _, err := tx.ExecContext(ctx, "UPDATE ...")
//	    return err
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

// WithRetryTx runs fn through WithTx and repeats the whole transaction while
// the failure is a serialization conflict (see IsRetryable) and the backoff
// allows another attempt. Any other error is returned unchanged, so sentinel
// errors produced by fn still match with errors.Is.
func WithRetryTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, b retry.Backoff, fn func(ctx context.Context, tx DBTX) error) error {
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := WithTx(ctx, db, opts, fn)
		if err != nil && IsRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}
