package models

import "time"

// SessionToken is one entry in a user's active token list. A bearer token
// authenticates only while its exact string is present here; logout removes
// the presented row, logout-all removes every row for the user.
type SessionToken struct {
	ID        int64
	UserID    string
	Token     string
	CreatedAt time.Time
}
