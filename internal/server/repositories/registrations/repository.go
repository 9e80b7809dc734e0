package registrations

import (
	"context"

	"github.com/yukta/symposium/internal/server/models"
)

// Repository is the registration store.
type Repository interface {
	Create(ctx context.Context, r *models.Registration) (*models.Registration, error)
	Exists(ctx context.Context, userID int64, eventID string) (bool, error)
	// ListEventIDs returns the user's event ids in insertion order. The
	// result is never nil.
	ListEventIDs(ctx context.Context, userID int64) ([]string, error)
}
