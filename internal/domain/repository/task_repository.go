package repository

import (
	"context"
	"time"

	"github.com/satriadi/go-task-api/internal/domain/entity"
)

// TaskFilter narrows list queries. Nil fields are ignored. Both fields are
// served by the (user_id, completed, due_date) index.
type TaskFilter struct {
	Completed *bool
	DueBefore *time.Time
}

// TaskRepository defines task persistence. Every read is scoped by owner so
// listing never exposes another user's tasks; OwnedBy is the single-query
// ownership check used before mutations.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Task, error)
	ListByOwner(ctx context.Context, ownerID string, f TaskFilter) ([]entity.Task, error)
	// OwnedBy reports whether a task with this id exists AND belongs to
	// ownerID, in one query. A missing task and a foreign-owned task are
	// indistinguishable: both report false.
	OwnedBy(ctx context.Context, id, ownerID string) (bool, error)
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id string) error
}
