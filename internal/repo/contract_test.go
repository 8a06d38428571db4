package repo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-crud-api/internal/model"
	"github.com/BuzzLyutic/task-crud-api/internal/repo"
)

func newTask(title string, status model.Status, priority model.Priority) model.Task {
	return model.Task{
		Title:       title,
		Description: "Description for " + title,
		Status:      status,
		Priority:    priority,
		Tags:        []string{"work"},
	}
}

// testRepository runs the same behaviour checks against any store.
// fresh must return an empty repository.
func testRepository(t *testing.T, fresh func(t *testing.T) repo.TaskRepository) {
	ctx := context.Background()

	t.Run("create assigns id and timestamps", func(t *testing.T) {
		r := fresh(t)
		due := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Microsecond)
		task := newTask("Create me", model.StatusPending, model.PriorityHigh)
		task.DueDate = &due

		created, err := r.Create(ctx, task)
		require.NoError(t, err)

		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))
		assert.Equal(t, []string{"work"}, created.Tags)
		require.NotNil(t, created.DueDate)
		assert.True(t, due.Equal(*created.DueDate))

		fetched, err := r.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, model.PriorityHigh, fetched.Priority)
	})

	t.Run("get malformed id is a cast error", func(t *testing.T) {
		r := fresh(t)
		_, err := r.Get(ctx, "not-an-id")

		var castErr *repo.CastError
		require.ErrorAs(t, err, &castErr)
		assert.Equal(t, "not-an-id", castErr.Value)
	})

	t.Run("get missing id", func(t *testing.T) {
		r := fresh(t)
		_, err := r.Get(ctx, "9d7e1f9c-2a54-4a53-9f0e-6f3c1b0c2d11")
		assert.ErrorIs(t, err, repo.ErrorNotFound)
	})

	t.Run("update changes only supplied fields", func(t *testing.T) {
		r := fresh(t)
		created, err := r.Create(ctx, newTask("Patch me", model.StatusPending, model.PriorityLow))
		require.NoError(t, err)

		status := model.StatusCompleted
		updated, err := r.Update(ctx, created.ID, model.TaskPatch{Status: &status})
		require.NoError(t, err)

		assert.Equal(t, model.StatusCompleted, updated.Status)
		assert.Equal(t, created.Title, updated.Title)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

		again, err := r.Update(ctx, created.ID, model.TaskPatch{})
		require.NoError(t, err)
		assert.True(t, again.UpdatedAt.After(updated.UpdatedAt))
	})

	t.Run("update clears due date", func(t *testing.T) {
		r := fresh(t)
		due := time.Now().Add(24 * time.Hour)
		task := newTask("Due soon", model.StatusPending, model.PriorityLow)
		task.DueDate = &due
		created, err := r.Create(ctx, task)
		require.NoError(t, err)

		updated, err := r.Update(ctx, created.ID, model.TaskPatch{ClearDueDate: true})
		require.NoError(t, err)
		assert.Nil(t, updated.DueDate)
	})

	t.Run("update missing id", func(t *testing.T) {
		r := fresh(t)
		title := "Nobody home"
		_, err := r.Update(ctx, "9d7e1f9c-2a54-4a53-9f0e-6f3c1b0c2d11", model.TaskPatch{Title: &title})
		assert.ErrorIs(t, err, repo.ErrorNotFound)
	})

	t.Run("delete is hard", func(t *testing.T) {
		r := fresh(t)
		created, err := r.Create(ctx, newTask("Delete me", model.StatusPending, model.PriorityLow))
		require.NoError(t, err)

		require.NoError(t, r.Delete(ctx, created.ID))
		_, err = r.Get(ctx, created.ID)
		assert.ErrorIs(t, err, repo.ErrorNotFound)
		assert.ErrorIs(t, r.Delete(ctx, created.ID), repo.ErrorNotFound)
	})

	t.Run("find filters sorts and pages", func(t *testing.T) {
		r := fresh(t)
		for i := 0; i < 15; i++ {
			status := model.StatusPending
			priority := model.PriorityLow
			if i%3 == 0 {
				status = model.StatusCompleted
				priority = model.PriorityHigh
			}
			_, err := r.Create(ctx, newTask(fmt.Sprintf("Task %02d", i), status, priority))
			require.NoError(t, err)
		}

		byTitle := model.TaskSort{Field: model.SortTitle}
		page, err := r.Find(ctx, model.TaskFilter{}, byTitle, 5, 5)
		require.NoError(t, err)
		require.Len(t, page, 5)
		assert.Equal(t, "Task 05", page[0].Title)
		assert.Equal(t, "Task 09", page[4].Title)

		desc, err := r.Find(ctx, model.TaskFilter{}, model.TaskSort{Field: model.SortTitle, Desc: true}, 0, 1)
		require.NoError(t, err)
		require.Len(t, desc, 1)
		assert.Equal(t, "Task 14", desc[0].Title)

		filter := model.TaskFilter{Status: "completed", Priority: "high"}
		matched, err := r.Find(ctx, filter, byTitle, 0, 100)
		require.NoError(t, err)
		assert.Len(t, matched, 5)
		for _, task := range matched {
			assert.Equal(t, model.StatusCompleted, task.Status)
			assert.Equal(t, model.PriorityHigh, task.Priority)
		}

		n, err := r.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, 5, n)

		total, err := r.Count(ctx, model.TaskFilter{})
		require.NoError(t, err)
		assert.Equal(t, 15, total)

		beyond, err := r.Find(ctx, model.TaskFilter{}, byTitle, 100, 10)
		require.NoError(t, err)
		assert.Empty(t, beyond)
	})

	t.Run("search is case-insensitive over title or description", func(t *testing.T) {
		r := fresh(t)
		a := newTask("Quarterly report", model.StatusPending, model.PriorityLow)
		b := newTask("Groceries", model.StatusPending, model.PriorityLow)
		b.Description = "Pick up the REPORT card too"
		c := newTask("Unrelated", model.StatusPending, model.PriorityLow)
		d := newTask("Discount 100%", model.StatusPending, model.PriorityLow)
		for _, task := range []model.Task{a, b, c, d} {
			_, err := r.Create(ctx, task)
			require.NoError(t, err)
		}

		found, err := r.Find(ctx, model.TaskFilter{Search: "RePoRt"}, model.TaskSort{Field: model.SortTitle}, 0, 10)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "Groceries", found[0].Title)
		assert.Equal(t, "Quarterly report", found[1].Title)

		literal, err := r.Count(ctx, model.TaskFilter{Search: "0%"})
		require.NoError(t, err)
		assert.Equal(t, 1, literal)
	})

	t.Run("group count", func(t *testing.T) {
		r := fresh(t)
		seed := []model.Task{
			newTask("One", model.StatusPending, model.PriorityLow),
			newTask("Two", model.StatusPending, model.PriorityUrgent),
			newTask("Three", model.StatusPending, model.PriorityHigh),
			newTask("Four", model.StatusCompleted, model.PriorityHigh),
		}
		for _, task := range seed {
			_, err := r.Create(ctx, task)
			require.NoError(t, err)
		}

		byStatus, err := r.GroupCount(ctx, model.GroupByStatus)
		require.NoError(t, err)
		require.Len(t, byStatus, 2)
		assert.Equal(t, "pending", byStatus[0].Value)
		assert.Equal(t, 3, byStatus[0].Count)
		assert.InDelta(t, 8.0/3.0, byStatus[0].AvgPriority, 0.0001)
		assert.Equal(t, "completed", byStatus[1].Value)
		assert.InDelta(t, 3.0, byStatus[1].AvgPriority, 0.0001)

		byPriority, err := r.GroupCount(ctx, model.GroupByPriority)
		require.NoError(t, err)
		require.Len(t, byPriority, 3)
		assert.Equal(t, "high", byPriority[0].Value)
		assert.Equal(t, 2, byPriority[0].Count)
	})
}
