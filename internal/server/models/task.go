package models

import "time"

// Task belongs to exactly one user. The owner reference is set at creation
// and never changes.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"owner"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
