package registrations

import (
	"context"
	"fmt"

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

func (r *SQLRepository) Create(ctx context.Context, reg *models.Registration) (*models.Registration, error) {
	query := r.dialect.Rebind(
		`INSERT INTO registrations (user_id, event_id, created_at)
		 VALUES (?, ?, ?)
		 RETURNING id
		 `)

	err := r.db.QueryRowContext(ctx, query, reg.UserID, reg.EventID, reg.CreatedAt).Scan(&reg.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return reg, nil
}

func (r *SQLRepository) Exists(ctx context.Context, userID int64, eventID string) (bool, error) {
	query := r.dialect.Rebind(
		`SELECT EXISTS (
		     SELECT 1 FROM registrations
		     WHERE user_id = ? AND event_id = ?
		 )
		 `)

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, eventID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

func (r *SQLRepository) ListEventIDs(ctx context.Context, userID int64) ([]string, error) {
	query := r.dialect.Rebind(
		`SELECT event_id FROM registrations
		 WHERE user_id = ?
		 ORDER BY id
		 `)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return ids, nil
}
