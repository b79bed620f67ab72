package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"yieldvault/internal/logger"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports whether the API and its database are reachable.
type HealthHandler struct {
	db        *gorm.DB
	aiEnabled bool
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *gorm.DB, aiEnabled bool) *HealthHandler {
	return &HealthHandler{db: db, aiEnabled: aiEnabled}
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	AI       string `json:"ai"`
}

// Health pings the database and reports whether generative text is
// configured. It answers 503 when the database is unreachable.
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{Status: "ok", Database: "ok", AI: "fallback"}
	if h.aiEnabled {
		resp.AI = "enabled"
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		logger.Get().Warnw("health check failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "unreachable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
