package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"
	_ "modernc.org/sqlite"
)

// pingBackoff is a seam for tests; the server waits a few seconds for the
// database to come up before giving up.
var pingBackoff = func() retry.Backoff {
	return retry.WithMaxRetries(5, retry.NewExponential(200*time.Millisecond))
}

// Open opens a pool for the given dialect, applies pool limits and waits
// until the database answers a ping.
//
// SQLite pools are limited to a single connection: concurrent writers queue
// on the pool instead of failing with SQLITE_BUSY, and ":memory:" databases
// stay alive for the lifetime of the pool.
func Open(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d, err)
	}

	switch d {
	case SQLite:
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	err = retry.Do(ctx, pingBackoff(), func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d, err)
	}

	return db, nil
}
