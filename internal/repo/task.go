package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/BuzzLyutic/task-crud-api/internal/model"
)

const taskColumns = `id::text, title, description, status, priority, due_date, tags, created_at, updated_at`

var sortColumns = map[model.SortField]string{
	model.SortCreatedAt:   "created_at",
	model.SortUpdatedAt:   "updated_at",
	model.SortDueDate:     "due_date",
	model.SortTitle:       "title",
	model.SortDescription: "description",
	model.SortStatus:      "status",
	model.SortPriority:    "priority",
}

var groupColumns = map[model.GroupField]string{
	model.GroupByStatus:   "status",
	model.GroupByPriority: "priority",
}

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo { // Конструктор
	return &TaskRepo{
		pool: pool,
	}
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, status, priority, due_date, tags)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+taskColumns,
		t.Title, t.Description, string(t.Status), string(t.Priority), t.DueDate, tags,
	)

	created, err := scanTask(row)
	return created, r.mapError(err)
}

func (r *TaskRepo) Get(ctx context.Context, id string) (model.Task, error) {
	uid, err := parseID(id)
	if err != nil {
		return model.Task{}, err
	}

	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, uid)
	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, r.mapError(err)
}

func (r *TaskRepo) Find(ctx context.Context, filter model.TaskFilter, sort model.TaskSort, skip, limit int) ([]model.Task, error) {
	where, args := buildWhere(filter)

	column, ok := sortColumns[sort.Field]
	if !ok {
		column = "created_at"
	}
	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}

	args = append(args, limit, skip)
	query := fmt.Sprintf(`SELECT %s FROM tasks %s ORDER BY %s %s, id %s LIMIT $%d OFFSET $%d`,
		taskColumns, where, column, dir, dir, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapError(err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0, limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, r.mapError(err)
		}
		tasks = append(tasks, t)
	}
	return tasks, r.mapError(rows.Err())
}

func (r *TaskRepo) Count(ctx context.Context, filter model.TaskFilter) (int, error) {
	where, args := buildWhere(filter)

	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks `+where, args...).Scan(&n)
	return n, r.mapError(err)
}

func (r *TaskRepo) Update(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	uid, err := parseID(id)
	if err != nil {
		return model.Task{}, err
	}

	args := []interface{}{uid}
	var sets []string
	set := func(column string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	if patch.Priority != nil {
		set("priority", string(*patch.Priority))
	}
	if patch.ClearDueDate {
		sets = append(sets, "due_date = NULL")
	} else if patch.DueDate != nil {
		set("due_date", *patch.DueDate)
	}
	if patch.Tags != nil {
		set("tags", *patch.Tags)
	}
	// updated_at должен строго расти, даже если now() совпал с прошлой записью
	sets = append(sets, "updated_at = GREATEST(now(), updated_at + interval '1 microsecond')")

	row := r.pool.QueryRow(ctx,
		`UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE id = $1 RETURNING `+taskColumns,
		args...,
	)
	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, r.mapError(err)
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}

	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", uid)
	if err != nil {
		return r.mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *TaskRepo) GroupCount(ctx context.Context, field model.GroupField) ([]model.GroupCount, error) {
	column, ok := groupColumns[field]
	if !ok {
		return nil, errors.Errorf("unsupported group field %q", field)
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT %[1]s, COUNT(*),
			COALESCE(AVG(CASE priority
				WHEN 'low' THEN 1
				WHEN 'medium' THEN 2
				WHEN 'high' THEN 3
				WHEN 'urgent' THEN 4
				ELSE 0 END), 0)::float8
		FROM tasks
		GROUP BY %[1]s
		ORDER BY COUNT(*) DESC, %[1]s ASC
	`, column))
	if err != nil {
		return nil, r.mapError(err)
	}
	defer rows.Close()

	groups := []model.GroupCount{}
	for rows.Next() {
		var g model.GroupCount
		if err := rows.Scan(&g.Value, &g.Count, &g.AvgPriority); err != nil {
			return nil, r.mapError(err)
		}
		groups = append(groups, g)
	}
	return groups, r.mapError(rows.Err())
}

func buildWhere(f model.TaskFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%[1]d OR description ILIKE $%[1]d)", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate, &t.Tags, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *TaskRepo) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return errors.WithStack(ErrorConflict)
		case "23514":
			return errors.WithStack(&ConstraintError{Messages: []string{constraintMessage(pgErr.ConstraintName)}})
		}
	}
	return errors.WithStack(err)
}
