// Package repomanager provides a concrete RepositoryManager for the SQL
// backends, wiring together repository constructors and database
// migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	"github.com/yukta/symposium/internal/dbx"
	"github.com/yukta/symposium/internal/server/migrations"
	"github.com/yukta/symposium/internal/server/repositories/registrations"
	"github.com/yukta/symposium/internal/server/repositories/users"
)

// SQLRepositoryManager vends SQL-backed repository implementations for one
// dialect and exposes a schema migration hook.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// Dialect reports the SQL dialect the repositories are built for.
func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

// Registrations returns a registrations.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Registrations(db dbx.DBTX) registrations.Repository {
	return registrations.NewSQLRepository(db, m.dialect)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations for the
// manager's dialect and runs them against the provided database.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.GooseDialect()); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, string(m.dialect)); err != nil {
		return err
	}
	return nil
}

// NewRepositoryManager constructs a RepositoryManager for the dialect.
func NewRepositoryManager(dialect dbx.Dialect) RepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}
