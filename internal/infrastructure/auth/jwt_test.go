package auth

import (
	"testing"
	"time"

	"github.com/gestio/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-for-unit-tests",
		Issuer:          "gestio-backend",
		TokenExpiration: expiration,
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "jdoe")
	require.NoError(t, err)
	require.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, "gestio-backend", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService(-1 * time.Minute)

	token, err := svc.GenerateToken(uuid.New(), "jdoe")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	other := NewJWTService(config.JWTConfig{
		Secret:          "a-different-secret",
		Issuer:          "gestio-backend",
		TokenExpiration: 15 * time.Minute,
	})

	token, err := svc.GenerateToken(uuid.New(), "jdoe")
	require.NoError(t, err)

	_, err = other.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
