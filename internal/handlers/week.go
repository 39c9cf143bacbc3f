package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nathanl0204/project-bot/internal/clock"
	"github.com/nathanl0204/project-bot/internal/dto"
	"github.com/nathanl0204/project-bot/internal/middleware"
	"github.com/nathanl0204/project-bot/internal/services"
)

// WeekHandler exposes the week-scoped read and announce entry points.
type WeekHandler struct {
	tasks          *services.TaskService
	projection     *services.ProjectionService
	clock          clock.Clock
	defaultChannel string
}

// NewWeekHandler creates a new WeekHandler.
func NewWeekHandler(tasks *services.TaskService, projection *services.ProjectionService, clk clock.Clock, defaultChannel string) *WeekHandler {
	return &WeekHandler{
		tasks:          tasks,
		projection:     projection,
		clock:          clk,
		defaultChannel: defaultChannel,
	}
}

// ListTasks returns the week's tasks, due date ascending. The open
// query parameter filters out completed tasks.
func (h *WeekHandler) ListTasks(c *gin.Context) {
	week, ok := resolveWeek(c, h.clock)
	if !ok {
		return
	}
	openOnly := c.Query("open") == "true"

	tasks, err := h.tasks.ListTasksForWeek(week, openOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]dto.TaskDTO, len(tasks))
	for i, t := range tasks {
		items[i] = dto.ToTaskDTO(t)
	}

	c.JSON(http.StatusOK, gin.H{"tasks": items})
}

// Progress returns the week's completion summary.
func (h *WeekHandler) Progress(c *gin.Context) {
	week, ok := resolveWeek(c, h.clock)
	if !ok {
		return
	}

	progress, err := h.projection.WeekProgress(week)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// Announce publishes the week's open tasks with their interactive
// actions and records the announcement.
func (h *WeekHandler) Announce(c *gin.Context) {
	week, ok := resolveWeek(c, h.clock)
	if !ok {
		return
	}

	channelID := middleware.GetChannelID(c, h.defaultChannel)
	viewID, err := h.projection.AnnounceWeek(c.Request.Context(), channelID, week)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"view_id": viewID})
}
