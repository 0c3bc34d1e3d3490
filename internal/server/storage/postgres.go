package storage

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

// PostgresStore keeps avatar blobs in the users table (bytea column).
type PostgresStore struct {
	db   *sql.DB
	repo repomanager.RepositoryManager
}

// NewPostgresStore constructs the database-backed avatar store.
func NewPostgresStore(db *sql.DB, repo repomanager.RepositoryManager) *PostgresStore {
	return &PostgresStore{db: db, repo: repo}
}

func (s *PostgresStore) Put(ctx context.Context, userID string, png []byte) error {
	return s.repo.Users(s.db).SetAvatar(ctx, userID, png)
}

func (s *PostgresStore) Get(ctx context.Context, userID string) ([]byte, error) {
	return s.repo.Users(s.db).GetAvatar(ctx, userID)
}

func (s *PostgresStore) Delete(ctx context.Context, userID string) error {
	return s.repo.Users(s.db).SetAvatar(ctx, userID, nil)
}
