package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher wraps bcrypt with a configured cost.
type PasswordHasher struct {
	cost  int
	dummy []byte
}

// NewPasswordHasher precomputes the hash CompareDummy checks against, so a
// cost bcrypt refuses is reported here instead of weakening CompareDummy.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("auth: dummy hash: %w", err)
	}
	return &PasswordHasher{cost: cost, dummy: dummy}, nil
}

// Hash returns the bcrypt hash of raw. Passwords longer than 72 bytes are
// rejected with bcrypt.ErrPasswordTooLong.
func (h *PasswordHasher) Hash(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare reports whether raw matches hash in constant time.
func (h *PasswordHasher) Compare(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

// CompareDummy spends the same time as a failed Compare. It is used when no
// stored hash exists so that response time does not reveal whether an
// account exists.
func (h *PasswordHasher) CompareDummy(raw string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(raw))
}
