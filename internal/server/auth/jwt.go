// Package auth implements session tokens and password hashing.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yukta/symposium/internal/common"
	"github.com/yukta/symposium/internal/server/models"
)

// Claims is the session token payload: the public user fields plus the
// registered iat and exp claims.
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// User returns the identity carried by the token.
func (c *Claims) User() models.PublicUser {
	return models.PublicUser{ID: c.UserID, Email: c.Email, Name: c.Name}
}

// Codec issues and verifies HS256 session tokens with a fixed lifetime.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec fails when the secret is empty or ttl is not positive.
func NewCodec(secret []byte, ttl time.Duration) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: empty signing secret")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("auth: session ttl must be positive, got %s", ttl)
	}
	return &Codec{secret: secret, ttl: ttl, now: time.Now}, nil
}

// TTL is the lifetime of every issued token.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for u and returns it together with its expiry.
func (c *Codec) Issue(u models.PublicUser) (string, time.Time, error) {
	issuedAt := c.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(c.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	s, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return s, expiresAt, nil
}

// Verify checks signature, algorithm and expiry. Every failure wraps
// common.ErrInvalidToken; expired tokens additionally wrap
// common.ErrTokenExpired.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
