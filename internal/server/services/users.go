// Package services contains server-side business logic. This file implements
// AuthService, which handles sign up, sign in, sign out and session checks.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yukta/symposium/internal/common"
	"github.com/yukta/symposium/internal/logging"
	"github.com/yukta/symposium/internal/server/auth"
	"github.com/yukta/symposium/internal/server/models"
	"github.com/yukta/symposium/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// Session is the outcome of a successful sign up or sign in.
type Session struct {
	User      models.PublicUser
	Token     string
	ExpiresAt time.Time
}

// AuthService provides authentication-related operations:
//   - SignUp: create a user and open a session
//   - SignIn: verify credentials and open a session
//   - SignOut: end a session (stateless, the transport clears the cookie)
//   - WhoAmI: resolve a session token into its claims
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *auth.Codec
	hasher      *auth.PasswordHasher
	logger      logging.Logger
	now         func() time.Time
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, codec *auth.Codec, hasher *auth.PasswordHasher, logger logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		codec:       codec,
		hasher:      hasher,
		logger:      logger.With("module", "auth"),
		now:         time.Now,
	}
}

// SignUp stores a new user and issues a session for it. The password is
// hashed before any database work. A taken email yields
// common.ErrDuplicateEmail.
func (s *AuthService) SignUp(ctx context.Context, email, password, name string) (*Session, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password is too long", common.ErrValidation)
		}
		s.logger.Error(ctx, "hash password", "error", err)
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    s.now().UTC(),
	}

	repo := s.repomanager.Users(s.db)

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, common.ErrDuplicateEmail
		}
		s.logger.Error(ctx, "create user", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user signed up", "user_id", user.ID)

	return s.openSession(ctx, user.Public())
}

// SignIn checks the credentials and issues a session. Unknown email and wrong
// password are indistinguishable: both return common.ErrInvalidCredentials
// after a bcrypt comparison.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CompareDummy(password)
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "get user by email", "error", err)
		return nil, common.ErrorInternal
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	return s.openSession(ctx, user.Public())
}

// SignOut has nothing to revoke; sessions live only in the client cookie
// until they expire.
func (s *AuthService) SignOut(ctx context.Context) error {
	s.logger.Debug(ctx, "user signed out")
	return nil
}

// WhoAmI verifies token. An empty token yields common.ErrUnauthenticated and
// any other failure common.ErrInvalidToken.
func (s *AuthService) WhoAmI(ctx context.Context, token string) (*auth.Claims, error) {
	if token == "" {
		return nil, common.ErrUnauthenticated
	}
	return s.codec.Verify(token)
}

func (s *AuthService) openSession(ctx context.Context, u models.PublicUser) (*Session, error) {
	token, expiresAt, err := s.codec.Issue(u)
	if err != nil {
		s.logger.Error(ctx, "issue token", "error", err)
		return nil, common.ErrorInternal
	}
	return &Session{User: u, Token: token, ExpiresAt: expiresAt}, nil
}
