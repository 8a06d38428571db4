package repo

import (
	"context"

	"github.com/BuzzLyutic/task-crud-api/internal/model"
)

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, id string) (model.Task, error)
	Find(ctx context.Context, filter model.TaskFilter, sort model.TaskSort, skip, limit int) ([]model.Task, error)
	Count(ctx context.Context, filter model.TaskFilter) (int, error)
	Update(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error)
	Delete(ctx context.Context, id string) error
	GroupCount(ctx context.Context, field model.GroupField) ([]model.GroupCount, error)
}
