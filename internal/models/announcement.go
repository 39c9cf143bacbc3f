package models

import (
	"time"
)

// Announcement ties a delivered week view to the week it renders, so
// actions triggered from that view can resolve their week later.
// Written once per announce action and never mutated or deleted.
type Announcement struct {
	ViewID    string    `gorm:"primarykey;type:varchar(64)" json:"view_id"`
	WeekStart time.Time `gorm:"not null;index" json:"week_start"`
	CreatedAt time.Time `json:"created_at"`
}
