// Package tasks provides a PostgreSQL-backed repository for owner-scoped
// task persistence and listing queries.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// sortColumns maps exposed task field names to the columns they sort by.
// Only these names participate in ORDER BY; anything else is ignored.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"description": "description",
	"completed":   "completed",
}

// PostgresRepository implements task storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new task. The caller sets ID, UserID, and the payload
// fields; the database assigns the timestamps.
func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		INSERT INTO tasks (id, user_id, description, completed)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.UserID, task.Description, task.Completed).
		Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

// GetByID returns the task only if it belongs to userID; a task of another
// owner is indistinguishable from a missing one.
func (r *PostgresRepository) GetByID(ctx context.Context, userID string, id string) (*models.Task, error) {
	query := `
		SELECT id, user_id, description, completed, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&task.ID, &task.UserID, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

// List returns the owner's tasks, narrowed and ordered by the filter.
// The default order is creation order.
func (r *PostgresRepository) List(ctx context.Context, userID string, f Filter) ([]*models.Task, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, user_id, description, completed, created_at, updated_at
		FROM tasks
		WHERE user_id = $1`)
	args := []any{userID}

	if f.Completed != nil {
		args = append(args, *f.Completed)
		fmt.Fprintf(&sb, " AND completed = $%d", len(args))
	}

	orderBy := "created_at"
	if col, ok := sortColumns[f.SortBy]; ok {
		orderBy = col
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	fmt.Fprintf(&sb, " ORDER BY %s %s", orderBy, dir)

	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if f.Skip > 0 {
		args = append(args, f.Skip)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	result := []*models.Task{}
	for rows.Next() {
		var item models.Task
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Description, &item.Completed,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites the mutable fields of a task, scoped to its owner.
func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		UPDATE tasks
		SET description = $3, completed = $4, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.UserID, task.Description, task.Completed).
		Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

// Delete removes a task scoped to its owner and returns the removed row.
func (r *PostgresRepository) Delete(ctx context.Context, userID string, id string) (*models.Task, error) {
	query := `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, description, completed, created_at, updated_at
	`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&task.ID, &task.UserID, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}
