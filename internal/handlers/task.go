package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nathanl0204/project-bot/internal/dto"
	apierrors "github.com/nathanl0204/project-bot/internal/errors"
	"github.com/nathanl0204/project-bot/internal/privilege"
	"github.com/nathanl0204/project-bot/internal/services"
)

// TaskHandler exposes the task command entry points.
type TaskHandler struct {
	tasks *services.TaskService
	priv  privilege.Checker
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *services.TaskService, priv privilege.Checker) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
		priv:  priv,
	}
}

func taskIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return id, true
}

// CreateTask adds a task from an addtask command.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title       string `json:"title" binding:"required"`
		DueDate     string `json:"due_date" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.tasks.CreateTask(req.Title, req.DueDate, req.Description, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns one task with its claimers.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask hard-removes a task. Moderators only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(taskID, h.priv.IsPrivileged(userID)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// CompleteTask marks a task completed from a complete command.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.tasks.Complete(taskID, userID, h.priv.IsPrivileged(userID)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task completed"})
}
