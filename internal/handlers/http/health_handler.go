package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartwaste/smartwaste-backend/internal/domain/ports"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler responde o liveness com ping no banco
type HealthHandler struct {
	ping   func(ctx context.Context) error
	env    string
	logger ports.Logger
}

// NewHealthHandler cria um novo HealthHandler
func NewHealthHandler(ping func(ctx context.Context) error, env string, logger ports.Logger) *HealthHandler {
	return &HealthHandler{ping: ping, env: env, logger: logger}
}

// Check godoc
//
//	@Summary	Health check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Failure	503	{object}	map[string]string
//	@Router		/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		h.logger.Warn("database ping failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unavailable",
			"env":      h.env,
			"database": "down",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"env":      h.env,
		"database": "up",
	})
}
