package repomanager

import (
	"context"
	"database/sql"

	"github.com/yukta/symposium/internal/dbx"
	"github.com/yukta/symposium/internal/server/repositories/registrations"
	"github.com/yukta/symposium/internal/server/repositories/users"
)

type RepositoryManager interface {
	Dialect() dbx.Dialect
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Registrations(db dbx.DBTX) registrations.Repository
}
