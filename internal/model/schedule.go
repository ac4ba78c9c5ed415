package model

import "time"

// Schedule stores the single start time a user's day plan is anchored at.
// The ordered task list itself lives in the tasks table, keyed by position.
type Schedule struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex"`
	StartTime string // "HH:MM"
	CreatedAt time.Time
	UpdatedAt time.Time
}
