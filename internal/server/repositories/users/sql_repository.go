package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yukta/symposium/internal/common"
	"github.com/yukta/symposium/internal/dbx"
	"github.com/yukta/symposium/internal/server/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := r.dialect.Rebind(
		`INSERT INTO users (email, password_hash, name, created_at)
		 VALUES (?, ?, ?, ?)
		 RETURNING id
		 `)

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.CreatedAt).Scan(&user.ID)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := r.dialect.Rebind(
		`SELECT id, email, password_hash, name FROM users
		 WHERE email = ?
		 `)

	return r.getOne(ctx, query, email)
}

func (r *SQLRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := r.dialect.Rebind(
		`SELECT id, email, password_hash, name FROM users
		 WHERE id = ?
		 `)

	return r.getOne(ctx, query, id)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
