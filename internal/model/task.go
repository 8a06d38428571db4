package model

import (
	"encoding/json"
	"math"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

// Weight используется только для статистики, в БД не хранится
func (p Priority) Weight() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	}
	return 0
}

const (
	DefaultStatus   = StatusPending
	DefaultPriority = PriorityMedium
)

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

const day = 24 * time.Hour

// AgeInDays returns the number of whole days elapsed since creation.
func (t Task) AgeInDays(now time.Time) int {
	return int(math.Floor(float64(now.Sub(t.CreatedAt)) / float64(day)))
}

// DaysUntilDue is nil when the task has no due date. Negative values mean overdue.
func (t Task) DaysUntilDue(now time.Time) *int {
	if t.DueDate == nil {
		return nil
	}
	d := int(math.Ceil(float64(t.DueDate.Sub(now)) / float64(day)))
	return &d
}

func (t Task) MarshalJSON() ([]byte, error) {
	type plain Task
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	now := time.Now()
	return json.Marshal(struct {
		plain
		LegacyID     string   `json:"_id"`
		Tags         []string `json:"tags"`
		AgeInDays    int      `json:"ageInDays"`
		DaysUntilDue *int     `json:"daysUntilDue"`
	}{
		plain:        plain(t),
		LegacyID:     t.ID,
		Tags:         tags,
		AgeInDays:    t.AgeInDays(now),
		DaysUntilDue: t.DaysUntilDue(now),
	})
}

// TaskPatch - частичное обновление, nil означает "поле не передано"
type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *Status
	Priority     *Priority
	DueDate      *time.Time
	ClearDueDate bool
	Tags         *[]string
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.DueDate == nil && !p.ClearDueDate && p.Tags == nil
}

// Apply copies the supplied fields onto t. Timestamps are left to the store.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.Tags != nil {
		t.Tags = append([]string{}, (*p.Tags)...)
	}
}
