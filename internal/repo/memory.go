package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/BuzzLyutic/task-crud-api/internal/model"
)

// MemoryRepo keeps tasks in process memory. Used for local runs without
// PostgreSQL and in handler tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]model.Task
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		tasks: make(map[uuid.UUID]model.Task),
		now:   time.Now,
	}
}

// timestamp matches PostgreSQL precision so both stores behave alike.
func (r *MemoryRepo) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

func (r *MemoryRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	if err := ctx.Err(); err != nil {
		return model.Task{}, errors.WithStack(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New()
	now := r.timestamp()
	t.ID = id.String()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Tags == nil {
		t.Tags = []string{}
	}
	r.tasks[id] = clone(t)
	return clone(t), nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (model.Task, error) {
	uid, err := parseID(id)
	if err != nil {
		return model.Task{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[uid]
	if !ok {
		return model.Task{}, ErrorNotFound
	}
	return clone(t), nil
}

func (r *MemoryRepo) Find(ctx context.Context, filter model.TaskFilter, s model.TaskSort, skip, limit int) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	r.mu.RLock()
	matched := r.match(filter)
	r.mu.RUnlock()

	less := lessFunc(s.Field)
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if s.Desc {
			a, b = b, a
		}
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.ID < b.ID
	})

	if skip < 0 {
		skip = 0
	}
	if skip >= len(matched) {
		return []model.Task{}, nil
	}
	end := len(matched)
	if limit > 0 && limit < end-skip {
		end = skip + limit
	}
	return matched[skip:end], nil
}

func (r *MemoryRepo) Count(ctx context.Context, filter model.TaskFilter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.WithStack(err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.match(filter)), nil
}

func (r *MemoryRepo) Update(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	uid, err := parseID(id)
	if err != nil {
		return model.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[uid]
	if !ok {
		return model.Task{}, ErrorNotFound
	}

	patch.Apply(&t)
	now := r.timestamp()
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Microsecond)
	}
	t.UpdatedAt = now

	r.tasks[uid] = clone(t)
	return clone(t), nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[uid]; !ok {
		return ErrorNotFound
	}
	delete(r.tasks, uid)
	return nil
}

func (r *MemoryRepo) GroupCount(ctx context.Context, field model.GroupField) ([]model.GroupCount, error) {
	var key func(model.Task) string
	switch field {
	case model.GroupByStatus:
		key = func(t model.Task) string { return string(t.Status) }
	case model.GroupByPriority:
		key = func(t model.Task) string { return string(t.Priority) }
	default:
		return nil, errors.Errorf("unsupported group field %q", field)
	}

	r.mu.RLock()
	index := map[string]int{}
	groups := []model.GroupCount{}
	weights := []int{}
	for _, t := range r.tasks {
		k := key(t)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, model.GroupCount{Value: k})
			weights = append(weights, 0)
		}
		groups[i].Count++
		weights[i] += t.Priority.Weight()
	}
	r.mu.RUnlock()

	for i := range groups {
		groups[i].AvgPriority = float64(weights[i]) / float64(groups[i].Count)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Value < groups[j].Value
	})
	return groups, nil
}

// match must be called with the lock held.
func (r *MemoryRepo) match(f model.TaskFilter) []model.Task {
	search := strings.ToLower(f.Search)
	out := make([]model.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		if f.Priority != "" && string(t.Priority) != f.Priority {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		out = append(out, clone(t))
	}
	return out
}

func lessFunc(field model.SortField) func(a, b model.Task) bool {
	switch field {
	case model.SortUpdatedAt:
		return func(a, b model.Task) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case model.SortDueDate:
		// как в PostgreSQL: NULL больше любого значения
		return func(a, b model.Task) bool {
			switch {
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			}
			return a.DueDate.Before(*b.DueDate)
		}
	case model.SortTitle:
		return func(a, b model.Task) bool { return a.Title < b.Title }
	case model.SortDescription:
		return func(a, b model.Task) bool { return a.Description < b.Description }
	case model.SortStatus:
		return func(a, b model.Task) bool { return a.Status < b.Status }
	case model.SortPriority:
		return func(a, b model.Task) bool { return a.Priority < b.Priority }
	}
	return func(a, b model.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
}

func clone(t model.Task) model.Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	t.Tags = append([]string{}, t.Tags...)
	return t
}
