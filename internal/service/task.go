package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/BuzzLyutic/task-crud-api/internal/apperr"
	"github.com/BuzzLyutic/task-crud-api/internal/model"
	"github.com/BuzzLyutic/task-crud-api/internal/repo"
	"github.com/BuzzLyutic/task-crud-api/internal/validation"
)

type TaskService struct {
	repo repo.TaskRepository
	now  func() time.Time
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo, now: time.Now}
}

func (s *TaskService) List(ctx context.Context, q model.ListQuery) (model.TaskPage, error) {
	tasks, err := s.repo.Find(ctx, q.Filter, q.Sort, q.Offset(), q.Limit)
	if err != nil {
		return model.TaskPage{}, err
	}

	// Общее количество без учета пагинации
	total, err := s.repo.Count(ctx, q.Filter)
	if err != nil {
		return model.TaskPage{}, err
	}

	return model.TaskPage{Tasks: tasks, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (model.Task, error) {
	t, err := s.repo.Get(ctx, id)
	return t, notFound(err, id)
}

func (s *TaskService) Create(ctx context.Context, input map[string]interface{}) (model.Task, error) {
	t, err := validation.Create(input, s.now()) // Валидация до обращения к БД
	if err != nil {
		return model.Task{}, err
	}
	return s.repo.Create(ctx, t)
}

func (s *TaskService) Update(ctx context.Context, id string, input map[string]interface{}) (model.Task, error) {
	patch, err := validation.Update(input, s.now())
	if err != nil {
		return model.Task{}, err
	}

	t, err := s.repo.Update(ctx, id, patch)
	return t, notFound(err, id)
}

// Delete проверяет существование задачи, затем удаляет ее
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return notFound(err, id)
	}
	return notFound(s.repo.Delete(ctx, id), id)
}

func (s *TaskService) Stats(ctx context.Context) (model.Stats, error) {
	byStatus, err := s.repo.GroupCount(ctx, model.GroupByStatus)
	if err != nil {
		return model.Stats{}, err
	}
	byPriority, err := s.repo.GroupCount(ctx, model.GroupByPriority)
	if err != nil {
		return model.Stats{}, err
	}
	total, err := s.repo.Count(ctx, model.TaskFilter{})
	if err != nil {
		return model.Stats{}, err
	}

	stats := model.Stats{
		StatusStats:   make([]model.StatusStat, 0, len(byStatus)),
		PriorityStats: make([]model.PriorityStat, 0, len(byPriority)),
		TotalTasks:    total,
	}
	for _, g := range byStatus {
		stats.StatusStats = append(stats.StatusStats, model.StatusStat{
			Status: g.Value, Count: g.Count, AvgPriority: g.AvgPriority,
		})
	}
	for _, g := range byPriority {
		stats.PriorityStats = append(stats.PriorityStats, model.PriorityStat{
			Priority: g.Value, Count: g.Count,
		})
	}
	return stats, nil
}

// notFound переводит ErrorNotFound хранилища в ошибку с id в сообщении
func notFound(err error, id string) error {
	if errors.Is(err, repo.ErrorNotFound) {
		return apperr.NotFound(fmt.Sprintf("Task not found with id: %s", id))
	}
	return err
}
