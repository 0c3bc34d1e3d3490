// Package rest exposes the HTTP API: account management under /users and
// owner-scoped task CRUD under /tasks, with bearer-token authentication.
package rest

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

// UserProvider is the account service surface the handlers depend on.
type UserProvider interface {
	Register(ctx context.Context, params services.RegisterParams) (*models.User, string, error)
	Login(ctx context.Context, email string, password string) (*models.User, string, error)
	GetByToken(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, userID string, token string) error
	LogoutAll(ctx context.Context, userID string) error
	Update(ctx context.Context, userID string, params services.UpdateParams) (*models.User, error)
	Delete(ctx context.Context, userID string) (*models.User, error)
	SetAvatar(ctx context.Context, userID string, data []byte) error
	GetAvatar(ctx context.Context, userID string) ([]byte, error)
	DeleteAvatar(ctx context.Context, userID string) error
}

// TaskProvider is the task service surface the handlers depend on.
type TaskProvider interface {
	Create(ctx context.Context, userID string, description string, completed bool) (*models.Task, error)
	List(ctx context.Context, userID string, f tasks.Filter) ([]*models.Task, error)
	Get(ctx context.Context, userID string, id string) (*models.Task, error)
	Update(ctx context.Context, userID string, id string, params services.TaskParams) (*models.Task, error)
	Delete(ctx context.Context, userID string, id string) (*models.Task, error)
}
