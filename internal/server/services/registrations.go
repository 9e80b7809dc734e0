package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/yukta/symposium/internal/common"
	"github.com/yukta/symposium/internal/dbx"
	"github.com/yukta/symposium/internal/logging"
	"github.com/yukta/symposium/internal/server/auth"
	"github.com/yukta/symposium/internal/server/models"
	"github.com/yukta/symposium/internal/server/repositories/repomanager"
)

// RegistrationService records event registrations for signed-in users.
type RegistrationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	policy      models.RegistrationPolicy
	logger      logging.Logger
	now         func() time.Time
	backoff     func() retry.Backoff
}

func NewRegistrationService(db *sql.DB, m repomanager.RepositoryManager, policy models.RegistrationPolicy, logger logging.Logger) *RegistrationService {
	return &RegistrationService{
		db:          db,
		repomanager: m,
		policy:      policy,
		logger:      logger.With("module", "registrations"),
		now:         time.Now,
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(5, retry.WithJitter(10*time.Millisecond, retry.NewExponential(10*time.Millisecond)))
		},
	}
}

// Register records that the session's user attends eventID. What happens on
// a repeat depends on the policy: PolicyAllow stores another row,
// PolicyReject returns common.ErrAlreadyRegistered and PolicyIgnore succeeds
// without writing. created reports whether a row was stored.
func (s *RegistrationService) Register(ctx context.Context, claims *auth.Claims, eventID string) (created bool, err error) {
	reg := &models.Registration{
		UserID:    claims.UserID,
		EventID:   eventID,
		CreatedAt: s.now().UTC(),
	}

	if s.policy == models.PolicyAllow {
		if _, err := s.repomanager.Registrations(s.db).Create(ctx, reg); err != nil {
			s.logger.Error(ctx, "create registration", "error", err)
			return false, common.ErrorInternal
		}
		s.logger.Info(ctx, "registered for event", "user_id", reg.UserID, "event_id", eventID)
		return true, nil
	}

	opts := s.repomanager.Dialect().SerializableTx()

	err = dbx.WithRetryTx(ctx, s.db, opts, s.backoff(), func(ctx context.Context, tx dbx.DBTX) error {
		created = false
		repo := s.repomanager.Registrations(tx)

		exists, err := repo.Exists(ctx, reg.UserID, eventID)
		if err != nil {
			return err
		}
		if exists {
			if s.policy == models.PolicyReject {
				return common.ErrAlreadyRegistered
			}
			return nil
		}

		if _, err := repo.Create(ctx, reg); err != nil {
			return err
		}
		created = true
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, common.ErrAlreadyRegistered):
		return false, err
	default:
		s.logger.Error(ctx, "register for event", "error", err, "event_id", eventID)
		return false, common.ErrorInternal
	}

	if created {
		s.logger.Info(ctx, "registered for event", "user_id", reg.UserID, "event_id", eventID)
	}
	return created, nil
}

// ListMine returns the event ids the session's user registered for, oldest
// first. The slice is empty, not nil, when there are none.
func (s *RegistrationService) ListMine(ctx context.Context, claims *auth.Claims) ([]string, error) {
	ids, err := s.repomanager.Registrations(s.db).ListEventIDs(ctx, claims.UserID)
	if err != nil {
		s.logger.Error(ctx, "list registrations", "error", err)
		return nil, common.ErrorInternal
	}
	return ids, nil
}
