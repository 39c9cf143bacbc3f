package models

import (
	"time"
)

// TaskClaim marks one user's claim on one task. The composite primary
// key gives the claim list set semantics: a user can hold at most one
// claim per task.
type TaskClaim struct {
	TaskID    uint64    `gorm:"primarykey" json:"task_id"`
	UserID    string    `gorm:"primarykey;type:varchar(64)" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
