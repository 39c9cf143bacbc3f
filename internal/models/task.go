package models

import (
	"time"
)

// Task is one unit of weekly project work. Title, description and due
// date are fixed at creation; only the claim set and the completed
// flag change afterwards. Completed is monotonic: there is no
// uncomplete path.
type Task struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	DueDate     time.Time `gorm:"not null;index" json:"due_date"`
	WeekStart   time.Time `gorm:"not null;index" json:"week_start"`
	CreatedBy   string    `gorm:"type:varchar(64);not null" json:"created_by"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Claims []TaskClaim `gorm:"foreignKey:TaskID" json:"claims,omitempty"`
}

// ClaimerIDs returns the user ids currently holding a claim.
func (t *Task) ClaimerIDs() []string {
	ids := make([]string, 0, len(t.Claims))
	for _, c := range t.Claims {
		ids = append(ids, c.UserID)
	}
	return ids
}

// ClaimedBy reports whether userID holds a claim on the task.
func (t *Task) ClaimedBy(userID string) bool {
	for _, c := range t.Claims {
		if c.UserID == userID {
			return true
		}
	}
	return false
}
