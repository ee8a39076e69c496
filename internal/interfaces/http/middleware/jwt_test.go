package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/identity"
	"github.com/storelaunch/backend/internal/infrastructure/auth"
	"github.com/storelaunch/backend/internal/infrastructure/config"
	"github.com/storelaunch/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	})
}

func newTestTokenPair(t *testing.T, jwtService *auth.JWTService, role identity.Role) (*auth.TokenPair, auth.GenerateTokenInput) {
	t.Helper()
	input := auth.GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "pm@example.com",
		Name:   "Pat",
		Role:   string(role),
	}
	pair, err := jwtService.GenerateTokenPair(input)
	require.NoError(t, err)
	return pair, input
}

func serve(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	pair, input := newTestTokenPair(t, jwtService, identity.RolePM)

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/api/v1/stores", func(c *gin.Context) {
		claims := GetJWTClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, input.UserID.String(), GetJWTUserID(c))
		assert.Equal(t, "PM", GetJWTRole(c))
		assert.Equal(t, "pm@example.com", claims.Email)
		c.Status(http.StatusOK)
	})

	rec := serve(router, http.MethodGet, "/api/v1/stores", pair.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	jwtService := newTestJWTService()
	pair, _ := newTestTokenPair(t, jwtService, identity.RoleViewer)

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/api/v1/stores", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", dto.ErrCodeTokenInvalid},
		{"wrong scheme", "Basic abc", dto.ErrCodeTokenInvalid},
		{"garbage token", "Bearer not.a.jwt", dto.ErrCodeTokenInvalid},
		{"refresh token used as access", "Bearer " + pair.RefreshToken, dto.ErrCodeTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	expired := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "test-issuer",
	})
	pair, _ := newTestTokenPair(t, expired, identity.RoleAdmin)

	router := gin.New()
	router.Use(JWTAuthMiddleware(expired))
	router.GET("/api/v1/stores", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := serve(router, http.MethodGet, "/api/v1/stores", pair.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrCodeTokenExpired, decodeError(t, rec).Code)
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuthMiddleware(newTestJWTService()))
	router.POST("/api/v1/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/api/v1/auth/login", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/health", "").Code)
}

func TestJWTAuthMiddleware_Blacklist(t *testing.T) {
	jwtService := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()

	cfg := DefaultJWTConfig(jwtService)
	cfg.TokenBlacklist = blacklist
	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(cfg))
	router.GET("/api/v1/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	loggedOut, _ := newTestTokenPair(t, jwtService, identity.RolePM)
	claims, err := jwtService.ValidateAccessToken(loggedOut.AccessToken)
	require.NoError(t, err)
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Minute))

	rec := serve(router, http.MethodGet, "/api/v1/me", loggedOut.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been revoked", decodeError(t, rec).Message)

	reset, input := newTestTokenPair(t, jwtService, identity.RoleViewer)
	require.NoError(t, blacklist.AddUserTokensToBlacklist(context.Background(), input.UserID.String(), time.Hour))
	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/api/v1/me", reset.AccessToken).Code)

	fresh, _ := newTestTokenPair(t, jwtService, identity.RoleViewer)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/me", fresh.AccessToken).Code)
}

func TestRequireRole(t *testing.T) {
	jwtService := newTestJWTService()

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.POST("/api/v1/stores", RequireRole(nil, Managers...), func(c *gin.Context) { c.Status(http.StatusCreated) })
	router.PUT("/api/v1/tasks/1", RequireRole(nil, Contributors...), func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		role       identity.Role
		method     string
		path       string
		wantStatus int
	}{
		{identity.RoleAdmin, http.MethodPost, "/api/v1/stores", http.StatusCreated},
		{identity.RolePM, http.MethodPost, "/api/v1/stores", http.StatusCreated},
		{identity.RoleContributor, http.MethodPost, "/api/v1/stores", http.StatusForbidden},
		{identity.RoleViewer, http.MethodPost, "/api/v1/stores", http.StatusForbidden},
		{identity.RoleContributor, http.MethodPut, "/api/v1/tasks/1", http.StatusOK},
		{identity.RoleViewer, http.MethodPut, "/api/v1/tasks/1", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+" "+tt.method+" "+tt.path, func(t *testing.T) {
			pair, _ := newTestTokenPair(t, jwtService, tt.role)
			rec := serve(router, tt.method, tt.path, pair.AccessToken)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusForbidden {
				info := decodeError(t, rec)
				assert.Equal(t, dto.ErrCodeForbidden, info.Code)
				assert.Equal(t, "Forbidden", info.Message)
			}
		})
	}
}

func TestRequireRole_WithoutClaims(t *testing.T) {
	router := gin.New()
	router.GET("/x", RequireRole(nil, Admins...), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := serve(router, http.MethodGet, "/x", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
