package auth

import (
	"bank-backoffice/internal/pkg/apperrors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("testsecret", time.Hour)
	require.NoError(t, err)

	in := Identity{UserID: 3, Name: "Asha Rao", Role: RoleCustomer, SessionID: "sess-1"}
	token, expiresAt, err := issuer.Issue(in)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	out, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer, err := NewTokenIssuer("testsecret", time.Hour)
	require.NoError(t, err)
	token, _, err := issuer.Issue(Identity{UserID: 1, Role: RoleEmployee, SessionID: "s"})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other, _ := NewTokenIssuer("othersecret", time.Hour)
		_, err := other.Parse(token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("expired token", func(t *testing.T) {
		later, _ := NewTokenIssuer("testsecret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Parse(token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not.a.token")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("unknown role", func(t *testing.T) {
		claims := sessionClaims{
			Role: Role("admin"),
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    tokenIssuer,
				Subject:   "1",
				ID:        "s",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("testsecret"))
		require.NoError(t, err)

		_, err = issuer.Parse(forged)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestNewTokenIssuerValidation(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.Error(t, err)
	_, err = NewTokenIssuer("s", 0)
	assert.Error(t, err)
}
