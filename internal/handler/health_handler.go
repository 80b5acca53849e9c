package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spherical/internal/workbench"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	store *workbench.Store
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store *workbench.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if !h.store.OracleAvailable() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "analysis oracle not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
