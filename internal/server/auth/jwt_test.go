package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukta/symposium/internal/common"
	"github.com/yukta/symposium/internal/server/models"
)

var alice = models.PublicUser{ID: 7, Email: "alice@example.com", Name: "Alice"}

func newCodec(t *testing.T, secret string, ttl time.Duration) *Codec {
	t.Helper()
	c, err := NewCodec([]byte(secret), ttl)
	require.NoError(t, err)
	return c
}

func TestNewCodec_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewCodec(nil, time.Hour)
	require.Error(t, err)

	_, err = NewCodec([]byte("k"), 0)
	require.Error(t, err)

	_, err = NewCodec([]byte("k"), -time.Minute)
	require.Error(t, err)
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	c := newCodec(t, "super-secret", time.Hour)
	fixed := time.Date(2026, 3, 15, 9, 0, 0, 500, time.UTC)
	c.now = func() time.Time { return fixed }

	tok, exp, err := c.Issue(alice)
	require.NoError(t, err)
	assert.Equal(t, fixed.Truncate(time.Second).Add(time.Hour), exp)

	claims, err := c.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, alice, claims.User())
	assert.Equal(t, exp, claims.ExpiresAt.Time.UTC())
	assert.Equal(t, fixed.Truncate(time.Second), claims.IssuedAt.Time.UTC())
	assert.Equal(t, time.Hour, c.TTL())
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	c := newCodec(t, "secret", time.Minute)
	start := time.Now()
	c.now = func() time.Time { return start }

	tok, _, err := c.Issue(alice)
	require.NoError(t, err)

	c.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = c.Verify(tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidToken))
	assert.True(t, errors.Is(err, common.ErrTokenExpired))
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := newCodec(t, "right-secret", time.Hour).Issue(alice)
	require.NoError(t, err)

	_, err = newCodec(t, "wrong-secret", time.Hour).Verify(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
	assert.False(t, errors.Is(err, common.ErrTokenExpired))
}

func TestVerify_Tampered(t *testing.T) {
	t.Parallel()

	c := newCodec(t, "secret", time.Hour)
	tok, _, err := c.Issue(alice)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	forged, _, err := newCodec(t, "secret", time.Hour).Issue(models.PublicUser{ID: 1, Email: "admin@example.com", Name: "Admin"})
	require.NoError(t, err)
	// graft another payload onto the original signature
	parts[1] = strings.Split(forged, ".")[1]

	_, err = c.Verify(strings.Join(parts, "."))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	c := newCodec(t, "k", time.Hour)
	for _, tok := range []string{"", "not.a.jwt", "garbage"} {
		_, err := c.Verify(tok)
		require.ErrorIs(t, err, common.ErrInvalidToken, tok)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	c := newCodec(t, "k", time.Hour)
	claims := Claims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = c.Verify(hs512)
	require.ErrorIs(t, err, common.ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = c.Verify(none)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_RequiresExpiry(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = newCodec(t, "k", time.Hour).Verify(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}
