package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
)

// TaskParams carries the writable task fields. Nil fields are left untouched
// on update; on create a nil Completed defaults to false.
type TaskParams struct {
	Description *string
	Completed   *bool
}

// TaskService provides owner-scoped task CRUD. Every operation takes the
// authenticated user's id; tasks of other users are indistinguishable from
// missing ones.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// Create stores a new task owned by userID.
func (s *TaskService) Create(ctx context.Context, userID string, description string, completed bool) (*models.Task, error) {
	task := &models.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Description: description,
		Completed:   completed,
	}
	return s.repomanager.Tasks(s.db).Create(ctx, task)
}

// List returns the user's tasks narrowed by the filter.
func (s *TaskService) List(ctx context.Context, userID string, f tasks.Filter) ([]*models.Task, error) {
	return s.repomanager.Tasks(s.db).List(ctx, userID, f)
}

// Get returns a single task by id.
func (s *TaskService) Get(ctx context.Context, userID string, id string) (*models.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrInvalidID
	}
	return s.repomanager.Tasks(s.db).GetByID(ctx, userID, id)
}

// Update applies the non-nil fields and returns the updated task.
func (s *TaskService) Update(ctx context.Context, userID string, id string, params TaskParams) (*models.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrInvalidID
	}

	repo := s.repomanager.Tasks(s.db)

	task, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Completed != nil {
		task.Completed = *params.Completed
	}

	return repo.Update(ctx, task)
}

// Delete removes the task and returns its last state.
func (s *TaskService) Delete(ctx context.Context, userID string, id string) (*models.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrInvalidID
	}
	return s.repomanager.Tasks(s.db).Delete(ctx, userID, id)
}
