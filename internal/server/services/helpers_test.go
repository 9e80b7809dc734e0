package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/yukta/symposium/internal/dbx"
	"github.com/yukta/symposium/internal/logging"
	"github.com/yukta/symposium/internal/server/auth"
	"github.com/yukta/symposium/internal/server/models"
	"github.com/yukta/symposium/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

// newSQLiteDB returns a migrated private in-memory database.
func newSQLiteDB(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	ctx := context.Background()

	db, err := dbx.Open(ctx, dbx.SQLite, "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m := repomanager.NewRepositoryManager(dbx.SQLite)
	require.NoError(t, m.RunMigrations(ctx, db))
	return db, m
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newCodec(t *testing.T) *auth.Codec {
	t.Helper()
	c, err := auth.NewCodec([]byte(testSecret), time.Hour)
	require.NoError(t, err)
	return c
}

func newAuthService(t *testing.T, db *sql.DB, m repomanager.RepositoryManager) *AuthService {
	t.Helper()
	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(db, m, newCodec(t), hasher, logging.Nop())
}

func newRegistrationService(db *sql.DB, m repomanager.RepositoryManager, p models.RegistrationPolicy) *RegistrationService {
	return NewRegistrationService(db, m, p, logging.Nop())
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
