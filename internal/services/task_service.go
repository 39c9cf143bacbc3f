package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nathanl0204/project-bot/internal/dates"
	"github.com/nathanl0204/project-bot/internal/models"
	"github.com/nathanl0204/project-bot/internal/repository"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrPermissionDenied = errors.New("permission denied")
	ErrTaskCompleted    = errors.New("task is already completed")
)

// TaskService owns the task lifecycle: creation, the claim/completion
// state machine and deletion. All claim-set and completion mutations
// on one task serialize behind a per-task lock.
type TaskService struct {
	taskRepo repository.TaskRepository
	locks    *taskLocks
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		locks:    newTaskLocks(),
	}
}

// CreateTask parses the due date, buckets the task into its week and
// persists it open and unclaimed.
func (s *TaskService) CreateTask(title, dueDateText, description, creatorID string) (*models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}

	due, err := dates.ParseDate(dueDateText)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: description,
		DueDate:     due,
		WeekStart:   dates.WeekStart(due),
		CreatedBy:   creatorID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask returns a task with its claims.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasksForWeek returns the week's tasks, due date ascending.
func (s *TaskService) ListTasksForWeek(weekStart time.Time, openOnly bool) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListForWeek(weekStart, openOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// DeleteTask hard-removes a task. Privileged callers only.
func (s *TaskService) DeleteTask(taskID uint64, privileged bool) error {
	if !privileged {
		return ErrPermissionDenied
	}

	if _, err := s.GetTask(taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Claim adds userID to the task's claim set. Claiming a task twice is
// a no-op; claiming a completed task is rejected.
func (s *TaskService) Claim(taskID uint64, userID string) error {
	lock := s.locks.acquire(taskID)
	defer lock.Unlock()

	task, err := s.GetTask(taskID)
	if err != nil {
		return err
	}
	if task.Completed {
		return ErrTaskCompleted
	}

	if err := s.taskRepo.AddClaim(taskID, userID); err != nil {
		return fmt.Errorf("failed to claim task: %w", err)
	}
	return nil
}

// Unclaim removes userID from the task's claim set. Removing an absent
// claim is a no-op; the claim set of a completed task is frozen.
func (s *TaskService) Unclaim(taskID uint64, userID string) error {
	lock := s.locks.acquire(taskID)
	defer lock.Unlock()

	task, err := s.GetTask(taskID)
	if err != nil {
		return err
	}
	if task.Completed {
		return ErrTaskCompleted
	}

	if err := s.taskRepo.RemoveClaim(taskID, userID); err != nil {
		return fmt.Errorf("failed to unclaim task: %w", err)
	}
	return nil
}

// Complete marks the task completed. Only a claimer or a privileged
// requester may complete; completion is terminal, and completing an
// already-completed task succeeds without change.
func (s *TaskService) Complete(taskID uint64, requesterID string, privileged bool) error {
	lock := s.locks.acquire(taskID)
	defer lock.Unlock()

	task, err := s.GetTask(taskID)
	if err != nil {
		return err
	}
	if task.Completed {
		return nil
	}

	if !task.ClaimedBy(requesterID) && !privileged {
		return ErrPermissionDenied
	}

	if err := s.taskRepo.MarkCompleted(taskID); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	return nil
}
