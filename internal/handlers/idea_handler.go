package handlers

import (
	"net/http"

	"ecoatlas/internal/models"
	"ecoatlas/internal/observability"
	"ecoatlas/internal/serviceinterfaces"

	"github.com/gin-gonic/gin"
)

// IdeaHandler serves /api/ideas.
type IdeaHandler struct {
	ideas  serviceinterfaces.IdeaService
	logger *observability.Logger
}

// NewIdeaHandler creates an IdeaHandler.
func NewIdeaHandler(ideas serviceinterfaces.IdeaService, logger *observability.Logger) *IdeaHandler {
	return &IdeaHandler{ideas: ideas, logger: logger}
}

// ListIdeas handles GET /api/ideas.
func (h *IdeaHandler) ListIdeas(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "list_ideas")
	defer observability.FinishSpan(span, nil)

	var filter models.IdeaFilter
	if err := bindQuery(c, &filter); err != nil {
		HandleAppError(c, err)
		return
	}

	list, err := h.ideas.ListIdeas(ctx, filter)
	if err != nil {
		h.logger.Error(ctx, "Failed to list ideas", err)
		HandleAppError(c, err)
		return
	}
	respondList(c, list)
}

// GetIdea handles GET /api/ideas/:id.
func (h *IdeaHandler) GetIdea(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "get_idea")
	defer observability.FinishSpan(span, nil)

	id, err := parseID(c, "id")
	if err != nil {
		HandleAppError(c, err)
		return
	}

	idea, err := h.ideas.GetIdea(ctx, id)
	if err != nil {
		HandleAppError(c, err)
		return
	}
	respondData(c, http.StatusOK, idea, "")
}

// CreateIdea handles POST /api/ideas.
func (h *IdeaHandler) CreateIdea(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "create_idea")
	defer observability.FinishSpan(span, nil)

	var req models.CreateIdeaRequest
	if err := bindJSON(c, &req); err != nil {
		HandleAppError(c, err)
		return
	}

	idea, err := h.ideas.CreateIdea(ctx, req)
	if err != nil {
		h.logger.Error(ctx, "Failed to create idea", err)
		HandleAppError(c, err)
		return
	}
	respondData(c, http.StatusCreated, idea, "Idea created successfully")
}

// UpdateIdea handles PUT /api/ideas/:id. Only fields present in the body are written.
func (h *IdeaHandler) UpdateIdea(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "update_idea")
	defer observability.FinishSpan(span, nil)

	id, err := parseID(c, "id")
	if err != nil {
		HandleAppError(c, err)
		return
	}

	var req models.UpdateIdeaRequest
	if err := bindJSON(c, &req); err != nil {
		HandleAppError(c, err)
		return
	}

	idea, err := h.ideas.UpdateIdea(ctx, id, req)
	if err != nil {
		HandleAppError(c, err)
		return
	}
	respondData(c, http.StatusOK, idea, "Idea updated successfully")
}

// DeleteIdea handles DELETE /api/ideas/:id and returns the removed idea.
func (h *IdeaHandler) DeleteIdea(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "delete_idea")
	defer observability.FinishSpan(span, nil)

	id, err := parseID(c, "id")
	if err != nil {
		HandleAppError(c, err)
		return
	}

	idea, err := h.ideas.DeleteIdea(ctx, id)
	if err != nil {
		HandleAppError(c, err)
		return
	}
	respondData(c, http.StatusOK, idea, "Idea deleted successfully")
}

// VoteIdea handles POST /api/ideas/:id/vote.
func (h *IdeaHandler) VoteIdea(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "vote_idea")
	defer observability.FinishSpan(span, nil)

	id, err := parseID(c, "id")
	if err != nil {
		HandleAppError(c, err)
		return
	}

	idea, err := h.ideas.VoteIdea(ctx, id)
	if err != nil {
		HandleAppError(c, err)
		return
	}
	respondData(c, http.StatusOK, idea, "Vote counted")
}
