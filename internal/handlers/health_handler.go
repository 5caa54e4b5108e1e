package handlers

import (
	"context"
	"net/http"
	"time"

	"ecoatlas/internal/observability"
	"ecoatlas/internal/serviceinterfaces"
	contextutils "ecoatlas/internal/utils"

	"github.com/gin-gonic/gin"
)

const readinessTimeout = 2 * time.Second

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db     serviceinterfaces.HealthChecker
	logger *observability.Logger
}

// NewHealthHandler creates a HealthHandler. db may be nil, in which case
// readiness always fails.
func NewHealthHandler(db serviceinterfaces.HealthChecker, logger *observability.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	respondData(c, http.StatusOK, gin.H{"status": "ok"}, "")
}

// Ready handles GET /ready by pinging the database.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if h.db == nil {
		HandleAppError(c, contextutils.ErrServiceUnavailable)
		return
	}
	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn(ctx, "Readiness check failed", map[string]interface{}{"error": err.Error()})
		HandleAppError(c, contextutils.NewAppErrorWithCause(contextutils.ErrorCodeServiceUnavailable,
			contextutils.SeverityError, "Database unavailable", "", err))
		return
	}
	respondData(c, http.StatusOK, gin.H{"status": "ready"}, "")
}
