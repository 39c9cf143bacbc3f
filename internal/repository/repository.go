package repository

import (
	"time"

	"github.com/nathanl0204/project-bot/internal/models"
)

// TaskRepository defines the interface for task data access.
type TaskRepository interface {
	// Create persists a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with its claims loaded
	FindByID(id uint64) (*models.Task, error)

	// ListForWeek returns the tasks bucketed into weekStart, ascending
	// by due date. openOnly filters out completed tasks.
	ListForWeek(weekStart time.Time, openOnly bool) ([]models.Task, error)

	// ListOpen returns every task not yet completed
	ListOpen() ([]models.Task, error)

	// Delete hard-removes a task and its claims
	Delete(id uint64) error

	// AddClaim adds userID to the task's claim set; adding an existing
	// claim is a no-op
	AddClaim(taskID uint64, userID string) error

	// RemoveClaim removes userID from the task's claim set
	RemoveClaim(taskID uint64, userID string) error

	// MarkCompleted sets the completed flag
	MarkCompleted(taskID uint64) error
}

// AnnouncementRepository defines the interface for announcement data access.
type AnnouncementRepository interface {
	// Save records the week a delivered view renders
	Save(a *models.Announcement) error

	// FindByViewID finds the announcement for a view id
	FindByViewID(viewID string) (*models.Announcement, error)
}
