package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	})
}

func newTestInput() GenerateTokenInput {
	return GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "pm@example.com",
		Name:   "Pat",
		Role:   "PM",
	}
}

func sharedSecretService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	})
}

func TestNewJWTService_UsesSecretForRefreshIfNotProvided(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret"})
	assert.Equal(t, []byte("test-secret"), svc.refreshSecret)
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair(newTestInput())

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
}

func TestValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)

	require.NoError(t, err)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, "pm@example.com", claims.Email)
	assert.Equal(t, "PM", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.HasRole("ADMIN", "PM"))
	assert.False(t, claims.HasRole("VIEWER"))

	id, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, input.UserID, id)
	assert.Greater(t, claims.GetRemainingTTL(), 14*time.Minute)
}

func TestValidateAccessToken_Failures(t *testing.T) {
	t.Run("expired", func(t *testing.T) {
		svc := NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-at-least-32-chars",
			AccessTokenExpiration:  -time.Hour,
			RefreshTokenExpiration: time.Hour,
		})
		pair, err := svc.GenerateTokenPair(newTestInput())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := newTestJWTService().ValidateAccessToken("invalid-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("refresh token used as access token", func(t *testing.T) {
		svc := sharedSecretService()
		pair, err := svc.GenerateTokenPair(newTestInput())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})

	t.Run("different secret", func(t *testing.T) {
		pair, err := newTestJWTService().GenerateTokenPair(newTestInput())
		require.NoError(t, err)

		other := NewJWTService(config.JWTConfig{Secret: "another-secret-key-at-least-32-ch", AccessTokenExpiration: time.Hour})
		_, err = other.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	input.Role = "ADMIN"
	newPair, err := svc.RefreshTokenPair(pair.RefreshToken, input)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)

	claims, err := svc.ValidateAccessToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", claims.Role)

	refreshClaims, err := svc.ValidateRefreshToken(newPair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshClaims.RefreshCount)
	assert.Empty(t, refreshClaims.Role)
}

func TestRefreshTokenPair_Failures(t *testing.T) {
	t.Run("max refresh count", func(t *testing.T) {
		svc := NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-at-least-32-chars",
			AccessTokenExpiration:  time.Minute,
			RefreshTokenExpiration: time.Hour,
			MaxRefreshCount:        2,
		})
		input := newTestInput()
		pair, err := svc.GenerateTokenPair(input)
		require.NoError(t, err)

		pair, err = svc.RefreshTokenPair(pair.RefreshToken, input)
		require.NoError(t, err)
		pair, err = svc.RefreshTokenPair(pair.RefreshToken, input)
		require.NoError(t, err)

		_, err = svc.RefreshTokenPair(pair.RefreshToken, input)
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})

	t.Run("access token", func(t *testing.T) {
		svc := sharedSecretService()
		input := newTestInput()
		pair, err := svc.GenerateTokenPair(input)
		require.NoError(t, err)

		_, err = svc.RefreshTokenPair(pair.AccessToken, input)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})

	t.Run("token of another user", func(t *testing.T) {
		svc := newTestJWTService()
		pair, err := svc.GenerateTokenPair(newTestInput())
		require.NoError(t, err)

		_, err = svc.RefreshTokenPair(pair.RefreshToken, newTestInput())
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})
}
