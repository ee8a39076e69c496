package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storelaunch/backend/internal/infrastructure/config"
	"github.com/storelaunch/backend/internal/infrastructure/logger"
	"github.com/storelaunch/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Pinger checks that the database answers
type Pinger interface {
	Ping() error
}

// HealthHandler reports database reachability and configuration state
type HealthHandler struct {
	BaseHandler
	db  Pinger
	cfg *config.Config
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger, cfg *config.Config) *HealthHandler {
	return &HealthHandler{db: db, cfg: cfg}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status        string `json:"status"`
	Time          string `json:"time"`
	Database      string `json:"database"`
	DatabaseError string `json:"databaseError,omitempty"`
	HasDatabase   bool   `json:"hasDatabase"`
	HasJWTSecret  bool   `json:"hasJwtSecret"`
	HasAuthToken  bool   `json:"hasAuthToken"`
	Env           string `json:"env"`
	DatabaseURL   string `json:"databaseUrl"`
}

// Check handles GET /health. It answers 503 when the database is down or
// no JWT secret is configured.
func (h *HealthHandler) Check(c *gin.Context) {
	resp := HealthResponse{
		Status:       "ok",
		Time:         time.Now().UTC().Format(time.RFC3339),
		Database:     "connected",
		HasDatabase:  h.cfg.Database.Path != "" || h.cfg.Database.Host != "",
		HasJWTSecret: h.cfg.JWT.Secret != "",
		HasAuthToken: h.cfg.Database.AuthToken != "",
		Env:          h.cfg.App.Env,
		DatabaseURL:  h.cfg.Database.URLPrefix(),
	}

	if h.db == nil {
		resp.Database = "disconnected"
	} else if err := h.db.Ping(); err != nil {
		logger.GetGinLogger(c).Error("Database ping failed", zap.Error(err))
		resp.Database = "disconnected"
		resp.DatabaseError = "Database unreachable"
	}

	if resp.Database != "connected" || !resp.HasJWTSecret {
		resp.Status = "error"
		c.JSON(http.StatusServiceUnavailable, dto.Response{Success: false, Data: resp})
		return
	}
	h.Success(c, resp)
}
