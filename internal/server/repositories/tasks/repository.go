package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Filter narrows, orders, and pages a task listing. The zero value returns
// every task of the owner in creation order.
type Filter struct {
	// Completed, when non-nil, keeps only tasks with a matching flag.
	Completed *bool
	// Limit caps the number of returned rows; 0 means no cap.
	Limit int
	// Skip drops this many rows from the start of the result.
	Skip int
	// SortBy names a task field (createdAt, updatedAt, description,
	// completed). Unknown fields are ignored.
	SortBy string
	// SortDesc reverses the sort direction.
	SortDesc bool
}

// Repository persists tasks. Every read and write is scoped to the owning
// user; a task of another owner behaves exactly like a missing row.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, userID string, id string) (*models.Task, error)
	List(ctx context.Context, userID string, f Filter) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, userID string, id string) (*models.Task, error)
}
