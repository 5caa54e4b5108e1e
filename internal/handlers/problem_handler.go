package handlers

import (
	"net/http"

	"ecoatlas/internal/models"
	"ecoatlas/internal/observability"
	"ecoatlas/internal/serviceinterfaces"

	"github.com/gin-gonic/gin"
)

// ProblemHandler serves /api/problems.
type ProblemHandler struct {
	problems  serviceinterfaces.ProblemService
	solutions serviceinterfaces.SolutionService
	logger    *observability.Logger
}

// NewProblemHandler creates a ProblemHandler.
func NewProblemHandler(problems serviceinterfaces.ProblemService, solutions serviceinterfaces.SolutionService, logger *observability.Logger) *ProblemHandler {
	return &ProblemHandler{problems: problems, solutions: solutions, logger: logger}
}

// ListProblems handles GET /api/problems.
func (h *ProblemHandler) ListProblems(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "list_problems")
	defer observability.FinishSpan(span, nil)

	var filter models.ProblemFilter
	if err := bindQuery(c, &filter); err != nil {
		HandleAppError(c, err)
		return
	}

	list, err := h.problems.ListProblems(ctx, filter)
	if err != nil {
		h.logger.Error(ctx, "Failed to list problems", err)
		HandleAppError(c, err)
		return
	}
	respondList(c, list)
}

// GetProblem handles GET /api/problems/:id.
func (h *ProblemHandler) GetProblem(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "get_problem")
	defer observability.FinishSpan(span, nil)

	id, err := parseID(c, "id")
	if err != nil {
		HandleAppError(c, err)
		return
	}

	problem, err := h.problems.GetProblem(ctx, id)
	if err != nil {
		HandleAppError(c, err)
		return
	}
	respondData(c, http.StatusOK, problem, "")
}

// ListProblemSolutions handles GET /api/problems/:id/solutions.
func (h *ProblemHandler) ListProblemSolutions(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "list_problem_solutions")
	defer observability.FinishSpan(span, nil)

	id, err := parseID(c, "id")
	if err != nil {
		HandleAppError(c, err)
		return
	}

	list, err := h.solutions.ListSolutionsForProblem(ctx, id)
	if err != nil {
		HandleAppError(c, err)
		return
	}
	respondList(c, list)
}

// CreateProblem handles POST /api/problems.
func (h *ProblemHandler) CreateProblem(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "create_problem")
	defer observability.FinishSpan(span, nil)

	var req models.CreateProblemRequest
	if err := bindJSON(c, &req); err != nil {
		HandleAppError(c, err)
		return
	}

	problem, err := h.problems.CreateProblem(ctx, req)
	if err != nil {
		h.logger.Error(ctx, "Failed to create problem", err)
		HandleAppError(c, err)
		return
	}
	respondData(c, http.StatusCreated, problem, "Problem created successfully")
}
