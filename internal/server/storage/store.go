// Package storage abstracts where avatar thumbnails live. The default
// backend keeps them in the users table; an S3-compatible backend is
// available for deployments that keep binary payloads out of the database.
package storage

import "context"

// AvatarStore persists one PNG thumbnail per user.
type AvatarStore interface {
	// Put stores (or replaces) the user's avatar.
	Put(ctx context.Context, userID string, png []byte) error
	// Get returns the stored avatar or common.ErrorNotFound.
	Get(ctx context.Context, userID string) ([]byte, error)
	// Delete removes the avatar. Deleting an absent avatar is not an error.
	Delete(ctx context.Context, userID string) error
}
