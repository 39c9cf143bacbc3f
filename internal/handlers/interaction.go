package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nathanl0204/project-bot/internal/dto"
	apierrors "github.com/nathanl0204/project-bot/internal/errors"
	"github.com/nathanl0204/project-bot/internal/services"
)

// InteractionHandler receives the button-press events the chat
// platform surfaces from announced week views.
type InteractionHandler struct {
	projection *services.ProjectionService
}

// NewInteractionHandler creates a new InteractionHandler.
func NewInteractionHandler(projection *services.ProjectionService) *InteractionHandler {
	return &InteractionHandler{projection: projection}
}

// HandleInteraction routes one (action, task, user, view) event into
// the state machine and refreshes the originating view.
func (h *InteractionHandler) HandleInteraction(c *gin.Context) {
	type InteractionRequest struct {
		Action dto.TaskAction `json:"action" binding:"required"`
		TaskID uint64         `json:"task_id" binding:"required"`
		UserID string         `json:"user_id" binding:"required"`
		ViewID string         `json:"view_id" binding:"required"`
	}

	var req InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.projection.HandleAction(c.Request.Context(), req.Action, req.TaskID, req.UserID, req.ViewID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Action applied"})
}
