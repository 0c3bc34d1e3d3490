package sessions

import "context"

// Repository manages a user's list of active session tokens.
type Repository interface {
	Create(ctx context.Context, userID string, token string) error
	Exists(ctx context.Context, userID string, token string) (bool, error)
	Delete(ctx context.Context, userID string, token string) error
	DeleteAll(ctx context.Context, userID string) error
}
