package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Junaid083/SprintSync/internal/authz"
	"github.com/Junaid083/SprintSync/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

const taskColumns = `t.id, t.title, t.description, t.status, t.priority,
	t.total_minutes, t.due_date, t.owner_id, t.created_at, t.updated_at,
	a.email, a.is_admin`

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.TaskWithOwner, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	row := r.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO tasks (id, title, description, status, priority, total_minutes, due_date, owner_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, title, description, status, priority, total_minutes, due_date, owner_id, created_at, updated_at
		)
		SELECT t.id, t.title, t.description, t.status, t.priority,
		       t.total_minutes, t.due_date, t.owner_id, t.created_at, t.updated_at,
		       a.email, a.is_admin
		FROM inserted t
		JOIN accounts a ON a.id = t.owner_id
	`, t.ID, t.Title, t.Description, t.Status, t.Priority, t.TotalMinutes, t.DueDate, t.OwnerID)

	created, err := scanTaskWithOwner(row)
	return created, mapError(err)
}

func (r *TaskRepo) Get(ctx context.Context, id uuid.UUID, scope authz.Scope) (model.TaskWithOwner, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t
		JOIN accounts a ON a.id = t.owner_id
		WHERE t.id = $1
		  AND t.is_deleted = FALSE
		  AND ($2::uuid IS NULL OR t.owner_id = $2)
	`, id, scope.Owner())

	task, err := scanTaskWithOwner(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return task, ErrorNotFound
	}
	return task, err
}

const listConditions = `
	t.is_deleted = FALSE
	AND ($1::uuid IS NULL OR t.owner_id = $1)
	AND ($2::text IS NULL OR t.status = $2)
	AND ($3::text IS NULL OR t.priority = $3)
	AND ($4::text = '' OR t.title ILIKE '%' || $4 || '%' OR t.description ILIKE '%' || $4 || '%')`

// Search terms match literally, so LIKE metacharacters are neutralized
// before they reach the pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List applies the caller-chosen filters; the owner predicate inside the
// filter has already been resolved by the authorization gate and cannot be
// widened here. Order is newest first, with seq as the tiebreaker since
// creation timestamps are not unique at sub-millisecond granularity.
func (r *TaskRepo) List(ctx context.Context, filter model.TaskFilter, page, limit int) (model.TaskPage, error) {
	result := model.TaskPage{Tasks: []model.TaskWithOwner{}}
	search := likeEscaper.Replace(filter.Search)

	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM tasks t
		WHERE`+listConditions,
		filter.OwnerID, filter.Status, filter.Priority, search,
	).Scan(&total)
	if err != nil {
		return result, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t
		JOIN accounts a ON a.id = t.owner_id
		WHERE`+listConditions+`
		ORDER BY t.created_at DESC, t.seq DESC
		LIMIT $5 OFFSET $6
	`, filter.OwnerID, filter.Status, filter.Priority, search, limit, (page-1)*limit)
	if err != nil {
		return result, err
	}
	defer rows.Close()

	for rows.Next() {
		task, err := scanTaskWithOwner(rows)
		if err != nil {
			return result, err
		}
		result.Tasks = append(result.Tasks, task)
	}
	if err := rows.Err(); err != nil {
		return result, err
	}

	totalPages := (total + limit - 1) / limit
	result.Pagination = model.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalTasks:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
	return result, nil
}

// Update is a single conditional write: match scope + id + not-deleted,
// then mutate. A concurrent delete that lands first makes this a not-found,
// never a merged state. A nil newOwner keeps the current owner.
func (r *TaskRepo) Update(ctx context.Context, id uuid.UUID, t model.Task, newOwner *uuid.UUID, scope authz.Scope) (model.TaskWithOwner, error) {
	row := r.pool.QueryRow(ctx, `
		WITH updated AS (
			UPDATE tasks
			SET title = $3, description = $4, status = $5, priority = $6,
			    total_minutes = $7, due_date = $8,
			    owner_id = COALESCE($9, owner_id), updated_at = now()
			WHERE id = $1
			  AND is_deleted = FALSE
			  AND ($2::uuid IS NULL OR owner_id = $2)
			RETURNING id, title, description, status, priority, total_minutes, due_date, owner_id, created_at, updated_at
		)
		SELECT t.id, t.title, t.description, t.status, t.priority,
		       t.total_minutes, t.due_date, t.owner_id, t.created_at, t.updated_at,
		       a.email, a.is_admin
		FROM updated t
		JOIN accounts a ON a.id = t.owner_id
	`, id, scope.Owner(), t.Title, t.Description, t.Status, t.Priority, t.TotalMinutes, t.DueDate, newOwner)

	task, err := scanTaskWithOwner(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return task, ErrorNotFound
	}
	return task, mapError(err)
}

func (r *TaskRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, scope authz.Scope) (model.TaskWithOwner, error) {
	row := r.pool.QueryRow(ctx, `
		WITH updated AS (
			UPDATE tasks
			SET status = $3, updated_at = now()
			WHERE id = $1
			  AND is_deleted = FALSE
			  AND ($2::uuid IS NULL OR owner_id = $2)
			RETURNING id, title, description, status, priority, total_minutes, due_date, owner_id, created_at, updated_at
		)
		SELECT t.id, t.title, t.description, t.status, t.priority,
		       t.total_minutes, t.due_date, t.owner_id, t.created_at, t.updated_at,
		       a.email, a.is_admin
		FROM updated t
		JOIN accounts a ON a.id = t.owner_id
	`, id, scope.Owner(), status)

	task, err := scanTaskWithOwner(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return task, ErrorNotFound
	}
	return task, err
}

func (r *TaskRepo) SoftDelete(ctx context.Context, id uuid.UUID, scope authz.Scope) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET is_deleted = TRUE, updated_at = now()
		WHERE id = $1
		  AND is_deleted = FALSE
		  AND ($2::uuid IS NULL OR owner_id = $2)
	`, id, scope.Owner())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *TaskRepo) Stats(ctx context.Context, scope authz.Scope) (model.TaskStats, error) {
	var todo, inProgress, done int
	stats := model.TaskStats{}

	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'todo'),
			COUNT(*) FILTER (WHERE status = 'in_progress'),
			COUNT(*) FILTER (WHERE status = 'done'),
			COALESCE(SUM(total_minutes), 0),
			COUNT(*) FILTER (WHERE due_date < now() AND status <> 'done')
		FROM tasks
		WHERE is_deleted = FALSE
		  AND ($1::uuid IS NULL OR owner_id = $1)
	`, scope.Owner()).Scan(&todo, &inProgress, &done, &stats.TotalMinutes, &stats.Overdue)
	if err != nil {
		return stats, err
	}

	stats.ByStatus = map[string]int{
		model.StatusTodo:       todo,
		model.StatusInProgress: inProgress,
		model.StatusDone:       done,
	}
	stats.TotalTasks = todo + inProgress + done
	return stats, nil
}

func scanTaskWithOwner(row pgx.Row) (model.TaskWithOwner, error) {
	var t model.TaskWithOwner
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.TotalMinutes, &t.DueDate, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt,
		&t.Owner.Email, &t.Owner.IsAdmin,
	)
	t.Owner.ID = t.OwnerID
	return t, err
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrorConflict
		case "23503":
			// The only FK is owner_id; a violation means the assignee
			// account does not exist.
			return ErrorNotFound
		}
	}
	return err
}
