package handlers

import (
	"net/http"

	"ecoatlas/internal/observability"
	"ecoatlas/internal/serviceinterfaces"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves /api/stats.
type StatsHandler struct {
	stats  serviceinterfaces.StatsService
	logger *observability.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(stats serviceinterfaces.StatsService, logger *observability.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, logger: logger}
}

// GetStats handles GET /api/stats.
func (h *StatsHandler) GetStats(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "get_stats")
	defer observability.FinishSpan(span, nil)

	stats, err := h.stats.GetStats(ctx)
	if err != nil {
		h.logger.Error(ctx, "Failed to compute stats", err)
		HandleAppError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats, "")
}
