package dto

import (
	"time"

	"github.com/nathanl0204/project-bot/internal/dates"
	"github.com/nathanl0204/project-bot/internal/models"
)

// TaskAction is an interactive action offered on a week view entry.
type TaskAction string

const (
	ActionClaim    TaskAction = "claim"
	ActionUnclaim  TaskAction = "unclaim"
	ActionComplete TaskAction = "complete"
)

// TaskDTO represents a task in API responses.
type TaskDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     string    `json:"due_date"`
	WeekStart   string    `json:"week_start"`
	CreatedBy   string    `json:"created_by"`
	Completed   bool      `json:"completed"`
	Claimers    []string  `json:"claimers"`
	CreatedAt   time.Time `json:"created_at"`
}

// WeekViewEntry is one task line in a delivered week view.
type WeekViewEntry struct {
	TaskID    uint64       `json:"task_id"`
	Title     string       `json:"title"`
	DueDate   string       `json:"due_date"`
	Completed bool         `json:"completed"`
	Claimers  []string     `json:"claimers"`
	Actions   []TaskAction `json:"actions,omitempty"`
}

// WeekView is the renderable projection of one week's tasks. It is
// derived entirely from store state plus the week identifier and
// carries no state of its own.
type WeekView struct {
	WeekStart string          `json:"week_start"`
	Entries   []WeekViewEntry `json:"entries"`
}

// ProgressDTO summarizes completion for one week.
type ProgressDTO struct {
	WeekStart string `json:"week_start"`
	Done      int    `json:"done"`
	Total     int    `json:"total"`
	Percent   int    `json:"percent"`
}

// ToTaskDTO converts a Task model to TaskDTO.
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     dates.Format(task.DueDate),
		WeekStart:   dates.Format(task.WeekStart),
		CreatedBy:   task.CreatedBy,
		Completed:   task.Completed,
		Claimers:    task.ClaimerIDs(),
		CreatedAt:   task.CreatedAt,
	}
}

// ToWeekViewEntry converts a Task model to a week view entry. Open
// tasks carry the claim and complete actions; completed tasks carry
// none.
func ToWeekViewEntry(task models.Task) WeekViewEntry {
	entry := WeekViewEntry{
		TaskID:    task.ID,
		Title:     task.Title,
		DueDate:   dates.Format(task.DueDate),
		Completed: task.Completed,
		Claimers:  task.ClaimerIDs(),
	}
	if !task.Completed {
		entry.Actions = []TaskAction{ActionClaim, ActionComplete}
	}
	return entry
}
