package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/teran1416/InventarioApp/internal/models"
	"github.com/teran1416/InventarioApp/internal/repo"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.GenerateToken(models.User{ID: "user-1", Email: "a@b.c"})
	require.NoError(t, err)

	id, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	valid, err := m.GenerateToken(models.User{ID: "user-1"})
	require.NoError(t, err)

	expired := NewTokenManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateToken(models.User{ID: "user-1"})
	require.NoError(t, err)

	other, err := NewTokenManager("other", time.Hour).GenerateToken(models.User{ID: "user-1"})
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"expired":      old,
		"wrong secret": other,
		"alg none":     none,
		"no subject":   noSubject,
		"garbage":      "not.a.token",
		"tampered":     valid + "x",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.ParseToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func newTestService() *Service {
	return NewService(repo.NewInMemoryUserRepository(), NewTokenManager("secret", time.Hour)).WithHashCost(bcrypt.MinCost)
}

func TestService_RegisterLoginProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	session, err := s.Register(ctx, "Ana Lopez", "  Ana@Example.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", session.User.Email)
	assert.NotEmpty(t, session.Token)
	assert.NotEqual(t, "secret1", session.User.PasswordHash)

	id, err := s.Tokens().ParseToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, id)

	login, err := s.Login(ctx, "ANA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, login.User.ID)

	profile, err := s.Profile(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Lopez", profile.FullName)
}

func TestService_Errors(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	_, err := s.Register(ctx, "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)

	_, err = s.Register(ctx, "Ana again", "ANA@example.com", "secret2")
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = s.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Profile(ctx, "missing")
	assert.ErrorIs(t, err, repo.ErrUserNotFound)
}
