// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account holder. The password is stored only as a bcrypt hash
// and is never rendered to clients, nor are the avatar bytes.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Age          *int      `json:"age,omitempty"`
	Avatar       []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
