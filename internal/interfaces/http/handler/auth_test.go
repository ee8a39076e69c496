package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/storelaunch/backend/internal/application/identity"
	"github.com/storelaunch/backend/internal/domain/identity"
	"github.com/storelaunch/backend/internal/domain/shared"
	"github.com/storelaunch/backend/internal/infrastructure/auth"
	"github.com/storelaunch/backend/internal/infrastructure/config"
	"github.com/storelaunch/backend/internal/interfaces/http/dto"
	"github.com/storelaunch/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testJWTConfig returns a default JWT config for tests
func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	}
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]*identity.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*identity.User), args.Error(1)
}

// MockResetTokenRepository is a mock implementation of identity.ResetTokenRepository
type MockResetTokenRepository struct {
	mock.Mock
}

func (m *MockResetTokenRepository) Create(ctx context.Context, token *identity.PasswordResetToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockResetTokenRepository) FindByToken(ctx context.Context, token string) (*identity.PasswordResetToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.PasswordResetToken), args.Error(1)
}

func (m *MockResetTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockResetTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockResetTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type discardPublisher struct{}

func (discardPublisher) Publish(context.Context, ...shared.DomainEvent) error { return nil }

type authTestSetup struct {
	router    *gin.Engine
	users     *MockUserRepository
	tokens    *MockResetTokenRepository
	jwt       *auth.JWTService
	blacklist *auth.InMemoryTokenBlacklist
}

func setupAuthTest(t *testing.T) *authTestSetup {
	t.Helper()
	s := &authTestSetup{
		users:     new(MockUserRepository),
		tokens:    new(MockResetTokenRepository),
		jwt:       auth.NewJWTService(testJWTConfig()),
		blacklist: auth.NewInMemoryTokenBlacklist(),
	}
	cfg := identityapp.DefaultAuthServiceConfig()
	cfg.BcryptCost = 4
	cfg.ExposeDevToken = true
	svc := identityapp.NewAuthService(s.users, s.tokens, s.jwt, s.blacklist, discardPublisher{}, cfg, zap.NewNop())
	h := NewAuthHandler(svc)

	r := gin.New()
	api := r.Group("/api/v1/auth")
	api.POST("/login", h.Login)
	api.POST("/refresh", h.RefreshToken)
	api.POST("/forgot-password", h.ForgotPassword)
	api.GET("/verify-reset-token", h.VerifyResetToken)
	protected := api.Group("", middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     s.jwt,
		TokenBlacklist: s.blacklist,
	}))
	protected.POST("/logout", h.Logout)
	protected.GET("/me", h.GetCurrentUser)
	s.router = r
	return s
}

func (s *authTestSetup) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func newHandlerTestUser(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser("pm@example.com", "secret1", "Pat", 4)
	require.NoError(t, err)
	require.NoError(t, u.AssignRole(identity.RolePM))
	u.ClearDomainEvents()
	return u
}

func loginData(t *testing.T, w *httptest.ResponseRecorder) LoginResponse {
	t.Helper()
	var envelope struct {
		Success bool          `json:"success"`
		Data    LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	return envelope.Data
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := setupAuthTest(t)
		user := newHandlerTestUser(t)
		s.users.On("FindByEmail", mock.Anything, "pm@example.com").Return(user, nil)

		w := s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "PM@example.com", "password": "secret1"}, "")

		require.Equal(t, http.StatusOK, w.Code)
		data := loginData(t, w)
		assert.NotEmpty(t, data.Token.AccessToken)
		assert.NotEmpty(t, data.Token.RefreshToken)
		assert.Equal(t, user.ID, data.User.ID)
		assert.Equal(t, "PM", data.User.Role)
		assert.Equal(t, "Pat", data.User.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		s := setupAuthTest(t)
		s.users.On("FindByEmail", mock.Anything, "pm@example.com").Return(newHandlerTestUser(t), nil)

		w := s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "pm@example.com", "password": "nope"}, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeInvalidCredentials, resp.Error.Code)
		assert.Equal(t, "Invalid email or password", resp.Error.Message)
	})

	t.Run("unknown email", func(t *testing.T) {
		s := setupAuthTest(t)
		s.users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

		w := s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "ghost@example.com", "password": "x"}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		s := setupAuthTest(t)
		w := s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	s := setupAuthTest(t)
	user := newHandlerTestUser(t)
	s.users.On("FindByEmail", mock.Anything, "pm@example.com").Return(user, nil)
	s.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "pm@example.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	token := loginData(t, w).Token.AccessToken

	w = s.do(t, http.MethodGet, "/api/v1/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "pm@example.com", data["email"])
	assert.Equal(t, "PM", data["role"])

	w = s.do(t, http.MethodPost, "/api/v1/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged out successfully", decodeResponse(t, w).Data.(map[string]any)["message"])

	w = s.do(t, http.MethodGet, "/api/v1/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	s := setupAuthTest(t)
	w := s.do(t, http.MethodGet, "/api/v1/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	s := setupAuthTest(t)
	user := newHandlerTestUser(t)
	s.users.On("FindByEmail", mock.Anything, "pm@example.com").Return(user, nil)
	s.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "pm@example.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	refresh := loginData(t, w).Token.RefreshToken

	w = s.do(t, http.MethodPost, "/api/v1/auth/refresh", gin.H{"refreshToken": refresh}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data struct {
			Token TokenResponse `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data.Token.AccessToken)

	w = s.do(t, http.MethodPost, "/api/v1/auth/refresh", gin.H{"refreshToken": "garbage"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/refresh", gin.H{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	t.Run("unknown email gets the generic message", func(t *testing.T) {
		s := setupAuthTest(t)
		s.users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

		w := s.do(t, http.MethodPost, "/api/v1/auth/forgot-password", gin.H{"email": "ghost@example.com"}, "")

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, identityapp.ForgotPasswordMessage, data["message"])
		assert.NotContains(t, data, "devToken")
	})

	t.Run("known email issues a token", func(t *testing.T) {
		s := setupAuthTest(t)
		user := newHandlerTestUser(t)
		s.users.On("FindByEmail", mock.Anything, "pm@example.com").Return(user, nil)
		s.tokens.On("DeleteByUserID", mock.Anything, user.ID).Return(nil)
		s.tokens.On("Create", mock.Anything, mock.AnythingOfType("*identity.PasswordResetToken")).Return(nil)

		w := s.do(t, http.MethodPost, "/api/v1/auth/forgot-password", gin.H{"email": "pm@example.com"}, "")

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, identityapp.ForgotPasswordMessage, data["message"])
		assert.NotEmpty(t, data["devToken"])
		s.tokens.AssertExpectations(t)
	})
}

func TestAuthHandler_VerifyResetToken(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		s := setupAuthTest(t)
		w := s.do(t, http.MethodGet, "/api/v1/auth/verify-reset-token", nil, "")

		require.Equal(t, http.StatusBadRequest, w.Code)
		var body VerifyResetTokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Valid)
		assert.Equal(t, "Token is required", body.Error)
	})

	t.Run("unknown token", func(t *testing.T) {
		s := setupAuthTest(t)
		s.tokens.On("FindByToken", mock.Anything, "abc").Return(nil, shared.ErrNotFound)

		w := s.do(t, http.MethodGet, "/api/v1/auth/verify-reset-token?token=abc", nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decodeResponse(t, w).Data.(map[string]any)["valid"])
	})

	t.Run("live token", func(t *testing.T) {
		s := setupAuthTest(t)
		tok, err := identity.NewPasswordResetToken(uuid.New(), time.Hour)
		require.NoError(t, err)
		s.tokens.On("FindByToken", mock.Anything, tok.Token).Return(tok, nil)

		w := s.do(t, http.MethodGet, "/api/v1/auth/verify-reset-token?token="+tok.Token, nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decodeResponse(t, w).Data.(map[string]any)["valid"])
	})
}
