package model

import "time"

// Task represents a single schedulable block in a user's day plan.
// StartTime and EndTime are derived HH:MM values: only the scheduling
// engine writes them, and they are recomputed after every mutation.
type Task struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index" json:"-"`
	Position        int       `gorm:"index" json:"position"`
	OrderID         int       `json:"orderId"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// Clone returns a value-independent copy of the task. All fields are value
// types, so a field copy is already deep; mutating the clone never touches
// the original.
func (t Task) Clone() Task {
	return t
}
