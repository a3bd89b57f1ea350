package postgres

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/satriadi/go-task-api/internal/domain/entity"
	"github.com/satriadi/go-task-api/internal/domain/repository"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (user_id, title, description, due_date, completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, t.UserID, t.Title, t.Description, t.DueDate, t.Completed)

	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TaskRepository) GetByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Task, error) {
	if !validUUID(id) {
		return nil, repository.ErrNotFound
	}
	t := &entity.Task{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, title, description, due_date, completed, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)

	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate,
		&t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string, f repository.TaskFilter) ([]entity.Task, error) {
	// Dynamic filters ride on the (user_id, completed, due_date) index.
	q := `
		SELECT id, user_id, title, description, due_date, completed, created_at, updated_at
		FROM tasks
		WHERE user_id = $1`
	args := []any{ownerID}
	if f.Completed != nil {
		args = append(args, *f.Completed)
		q += ` AND completed = $` + strconv.Itoa(len(args))
	}
	if f.DueBefore != nil {
		args = append(args, *f.DueBefore)
		q += ` AND due_date <= $` + strconv.Itoa(len(args))
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]entity.Task, 0)
	for rows.Next() {
		var t entity.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate,
			&t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// OwnedBy runs the ownership check as a single query so there is no gap
// between checking and using, and a missing task is indistinguishable from
// somebody else's task. Malformed ids fail closed to false.
func (r *TaskRepository) OwnedBy(ctx context.Context, id, ownerID string) (bool, error) {
	if !validUUID(id) || !validUUID(ownerID) {
		return false, nil
	}
	var owned bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1 AND user_id = $2)
	`, id, ownerID).Scan(&owned)
	if err != nil {
		return false, err
	}
	return owned, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	t.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, completed = $4, updated_at = $5
		WHERE id = $6
	`, t.Title, t.Description, t.DueDate, t.Completed, t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func validUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
