package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"gstbill/internal/config"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. The service is ready when the data
// directory is writable and an invoice template can be found.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if _, err := os.Stat(h.cfg.Store.DataDir); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "data directory not accessible"})
		return
	}
	if h.cfg.DiscoverTemplate() == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "no invoice template found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
