package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nathanl0204/project-bot/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository.
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create persists a new task.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with its claims loaded.
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Preload("Claims").First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListForWeek returns the tasks whose stored week bucket equals
// weekStart, ordered by due date ascending.
func (r *GormTaskRepository) ListForWeek(weekStart time.Time, openOnly bool) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Where("week_start = ?", weekStart)
	if openOnly {
		query = query.Where("completed = ?", false)
	}

	if err := query.Order("due_date ASC").Preload("Claims").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListOpen returns every task not yet completed.
func (r *GormTaskRepository) ListOpen() ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("completed = ?", false).
		Order("due_date ASC").
		Preload("Claims").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Delete hard-removes a task and its claims in one transaction.
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskClaim{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// AddClaim adds userID to the task's claim set. The ON CONFLICT clause
// makes a repeated claim a no-op, so concurrent claims by different
// users always union instead of overwriting each other.
func (r *GormTaskRepository) AddClaim(taskID uint64, userID string) error {
	claim := models.TaskClaim{
		TaskID: taskID,
		UserID: userID,
	}

	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&claim).Error
}

// RemoveClaim removes userID from the task's claim set. Removing an
// absent claim is a no-op.
func (r *GormTaskRepository) RemoveClaim(taskID uint64, userID string) error {
	return r.db.Where("task_id = ? AND user_id = ?", taskID, userID).
		Delete(&models.TaskClaim{}).Error
}

// MarkCompleted sets the completed flag.
func (r *GormTaskRepository) MarkCompleted(taskID uint64) error {
	return r.db.Model(&models.Task{}).
		Where("id = ?", taskID).
		Update("completed", true).Error
}
