package model

import "math"

// TaskFilter - пустые поля означают отсутствие фильтра
type TaskFilter struct {
	Status   string
	Priority string
	Search   string
}

func (f TaskFilter) IsZero() bool {
	return f.Status == "" && f.Priority == "" && f.Search == ""
}

type SortField string

const (
	SortCreatedAt   SortField = "createdAt"
	SortUpdatedAt   SortField = "updatedAt"
	SortDueDate     SortField = "dueDate"
	SortTitle       SortField = "title"
	SortDescription SortField = "description"
	SortStatus      SortField = "status"
	SortPriority    SortField = "priority"
)

var SortFields = []SortField{
	SortCreatedAt, SortUpdatedAt, SortDueDate, SortTitle, SortDescription, SortStatus, SortPriority,
}

func (f SortField) Valid() bool {
	for _, v := range SortFields {
		if f == v {
			return true
		}
	}
	return false
}

type TaskSort struct {
	Field SortField
	Desc  bool
}

type ListQuery struct {
	Filter TaskFilter
	Sort   TaskSort
	Page   int
	Limit  int
}

// Offset saturates at math.MaxInt instead of overflowing.
func (q ListQuery) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

type TaskPage struct {
	Tasks []Task
	Total int
	Page  int
	Limit int
}

func (p TaskPage) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

type GroupField string

const (
	GroupByStatus   GroupField = "status"
	GroupByPriority GroupField = "priority"
)

// GroupCount is one row of a grouped count. AvgPriority is the mean priority weight of the group.
type GroupCount struct {
	Value       string
	Count       int
	AvgPriority float64
}

type StatusStat struct {
	Status      string  `json:"_id"`
	Count       int     `json:"count"`
	AvgPriority float64 `json:"avgPriority"`
}

type PriorityStat struct {
	Priority string `json:"_id"`
	Count    int    `json:"count"`
}

type Stats struct {
	StatusStats   []StatusStat   `json:"statusStats"`
	PriorityStats []PriorityStat `json:"priorityStats"`
	TotalTasks    int            `json:"totalTasks"`
}
