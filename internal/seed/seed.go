// Package seed fills the store with a fixed set of sample tasks.
package seed

import (
	"context"
	"time"

	"github.com/BuzzLyutic/task-crud-api/internal/model"
	"github.com/BuzzLyutic/task-crud-api/internal/repo"
)

type sample struct {
	title       string
	description string
	status      model.Status
	priority    model.Priority
	dueInDays   int
	tags        []string
}

var samples = []sample{
	{"Setup development environment", "Install the toolchain, start PostgreSQL and configure the development environment for the task API.", model.StatusCompleted, model.PriorityHigh, 1, []string{"development", "setup", "environment"}},
	{"Design database schema", "Create the database schema for the task management system including all necessary columns and constraints.", model.StatusCompleted, model.PriorityHigh, 3, []string{"database", "schema", "design"}},
	{"Implement user authentication", "Develop a secure user authentication system with signed tokens, password hashing and session management.", model.StatusInProgress, model.PriorityHigh, 14, []string{"authentication", "security", "jwt"}},
	{"Create API documentation", "Write API documentation including endpoint descriptions, request and response examples and usage instructions.", model.StatusInProgress, model.PriorityMedium, 7, []string{"documentation", "api", "readme"}},
	{"Build React frontend", "Develop a responsive React frontend application with components for task management, including forms and lists.", model.StatusPending, model.PriorityMedium, 30, []string{"frontend", "react", "ui"}},
	{"Implement task filtering", "Add filtering capabilities so users can narrow tasks by status, priority, date and custom criteria.", model.StatusPending, model.PriorityMedium, 21, []string{"filtering", "search", "functionality"}},
	{"Add email notifications", "Implement an email notification system for task reminders, due date alerts and status change notifications.", model.StatusPending, model.PriorityLow, 35, []string{"notifications", "email", "alerts"}},
	{"Optimize database queries", "Review and optimize database queries for better performance, add indexes and measure the slow paths.", model.StatusPending, model.PriorityLow, 40, []string{"optimization", "performance", "database"}},
	{"Write unit tests", "Create unit tests for all API endpoints, services and utility functions to keep the code reliable.", model.StatusPending, model.PriorityHigh, 18, []string{"testing", "unit-tests", "quality"}},
	{"Deploy to production", "Deploy the application to the production environment with a CI/CD pipeline, monitoring and logging.", model.StatusPending, model.PriorityUrgent, 45, []string{"deployment", "production", "devops"}},
}

// Tasks returns the sample tasks with due dates counted from now.
func Tasks(now time.Time) []model.Task {
	tasks := make([]model.Task, 0, len(samples))
	for _, s := range samples {
		due := now.AddDate(0, 0, s.dueInDays).UTC()
		tasks = append(tasks, model.Task{
			Title:       s.title,
			Description: s.description,
			Status:      s.status,
			Priority:    s.priority,
			DueDate:     &due,
			Tags:        append([]string(nil), s.tags...),
		})
	}
	return tasks
}

// Clear removes every stored task and returns how many were removed.
func Clear(ctx context.Context, r repo.TaskRepository) (int, error) {
	const batch = 100

	removed := 0
	for {
		tasks, err := r.Find(ctx, model.TaskFilter{}, model.TaskSort{Field: model.SortCreatedAt}, 0, batch)
		if err != nil {
			return removed, err
		}
		if len(tasks) == 0 {
			return removed, nil
		}
		for _, t := range tasks {
			if err := r.Delete(ctx, t.ID); err != nil {
				return removed, err
			}
			removed++
		}
	}
}

// Run replaces the store contents with the sample tasks.
func Run(ctx context.Context, r repo.TaskRepository, now time.Time) ([]model.Task, error) {
	if _, err := Clear(ctx, r); err != nil {
		return nil, err
	}

	created := make([]model.Task, 0, len(samples))
	for _, t := range Tasks(now) {
		saved, err := r.Create(ctx, t)
		if err != nil {
			return created, err
		}
		created = append(created, saved)
	}
	return created, nil
}
