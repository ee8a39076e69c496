package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/storelaunch/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping() error { return p.err }

func healthConfig(secret string) *config.Config {
	return &config.Config{
		App:      config.AppConfig{Env: "test"},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, Path: "data/storelaunch-development-database.db"},
		JWT:      config.JWTConfig{Secret: secret},
	}
}

func runHealth(t *testing.T, h *HealthHandler) (int, HealthResponse) {
	t.Helper()
	router := gin.New()
	router.GET("/health", h.Check)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body struct {
		Data HealthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body.Data
}

func TestHealthHandler_OK(t *testing.T) {
	code, resp := runHealth(t, NewHealthHandler(stubPinger{}, healthConfig("secret")))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "connected", resp.Database)
	assert.True(t, resp.HasDatabase)
	assert.True(t, resp.HasJWTSecret)
	assert.False(t, resp.HasAuthToken)
	assert.Equal(t, "test", resp.Env)
	assert.Equal(t, "data/storelaunch-development-d...", resp.DatabaseURL)
	assert.NotEmpty(t, resp.Time)
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	code, resp := runHealth(t, NewHealthHandler(stubPinger{err: errors.New("dial tcp")}, healthConfig("secret")))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "disconnected", resp.Database)
}

func TestHealthHandler_MissingSecret(t *testing.T) {
	code, resp := runHealth(t, NewHealthHandler(stubPinger{}, healthConfig("")))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, resp.HasJWTSecret)
	assert.Equal(t, "connected", resp.Database)
}
