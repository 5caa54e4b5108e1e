package handlers

import (
	"net/http"

	"ecoatlas/internal/models"
	"ecoatlas/internal/observability"
	"ecoatlas/internal/serviceinterfaces"

	"github.com/gin-gonic/gin"
)

// SolutionHandler serves /api/solutions.
type SolutionHandler struct {
	solutions serviceinterfaces.SolutionService
	logger    *observability.Logger
}

// NewSolutionHandler creates a SolutionHandler.
func NewSolutionHandler(solutions serviceinterfaces.SolutionService, logger *observability.Logger) *SolutionHandler {
	return &SolutionHandler{solutions: solutions, logger: logger}
}

// ListSolutions handles GET /api/solutions.
func (h *SolutionHandler) ListSolutions(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "list_solutions")
	defer observability.FinishSpan(span, nil)

	var filter models.SolutionFilter
	if err := bindQuery(c, &filter); err != nil {
		HandleAppError(c, err)
		return
	}

	list, err := h.solutions.ListSolutions(ctx, filter)
	if err != nil {
		h.logger.Error(ctx, "Failed to list solutions", err)
		HandleAppError(c, err)
		return
	}
	respondList(c, list)
}

// GetSolution handles GET /api/solutions/:id.
func (h *SolutionHandler) GetSolution(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "get_solution")
	defer observability.FinishSpan(span, nil)

	id, err := parseID(c, "id")
	if err != nil {
		HandleAppError(c, err)
		return
	}

	solution, err := h.solutions.GetSolution(ctx, id)
	if err != nil {
		HandleAppError(c, err)
		return
	}
	respondData(c, http.StatusOK, solution, "")
}

// CreateSolution handles POST /api/solutions. A missing problem yields 404
// and nothing is inserted.
func (h *SolutionHandler) CreateSolution(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "create_solution")
	defer observability.FinishSpan(span, nil)

	var req models.CreateSolutionRequest
	if err := bindJSON(c, &req); err != nil {
		HandleAppError(c, err)
		return
	}

	solution, err := h.solutions.CreateSolution(ctx, req)
	if err != nil {
		HandleAppError(c, err)
		return
	}
	respondData(c, http.StatusCreated, solution, "Solution created successfully")
}
