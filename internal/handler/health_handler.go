package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db *sqlx.DB
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	RespondOK(c, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. Not ready means the database is unreachable;
// every endpoint except token validation needs it.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "NOT_READY", "database not reachable")
		return
	}
	RespondOK(c, gin.H{"status": "ok"})
}
