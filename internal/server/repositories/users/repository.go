package users

import (
	"context"

	"github.com/yukta/symposium/internal/server/models"
)

// Repository is the credential store.
type Repository interface {
	// Create inserts user and fills its ID. A taken email yields
	// common.ErrDuplicateEmail and leaves storage unchanged.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}
