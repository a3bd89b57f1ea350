package application

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/satriadi/go-task-api/internal/domain/entity"
	"github.com/satriadi/go-task-api/internal/domain/repository"
)

// fakeUserRepo is an in-memory UserRepository with optional fault injection.
type fakeUserRepo struct {
	byEmail  map[string]*entity.User
	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// fakeTaskRepo is an in-memory TaskRepository.
type fakeTaskRepo struct {
	byID     map[string]*entity.Task
	failWith error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{byID: make(map[string]*entity.Task)}
}

func (r *fakeTaskRepo) Create(_ context.Context, t *entity.Task) error {
	if r.failWith != nil {
		return r.failWith
	}
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	r.byID[t.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) GetByIDForOwner(_ context.Context, id, ownerID string) (*entity.Task, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	t, ok := r.byID[id]
	if !ok || t.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTaskRepo) ListByOwner(_ context.Context, ownerID string, f repository.TaskFilter) ([]entity.Task, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]entity.Task, 0)
	for _, t := range r.byID {
		if t.UserID != ownerID {
			continue
		}
		if f.Completed != nil && t.Completed != *f.Completed {
			continue
		}
		if f.DueBefore != nil && (t.DueDate == nil || t.DueDate.After(*f.DueBefore)) {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTaskRepo) OwnedBy(_ context.Context, id, ownerID string) (bool, error) {
	if r.failWith != nil {
		return false, r.failWith
	}
	t, ok := r.byID[id]
	return ok && t.UserID == ownerID, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, t *entity.Task) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.byID[t.ID]; !ok {
		return repository.ErrNotFound
	}
	t.UpdatedAt = time.Now()
	cp := *t
	r.byID[t.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

var (
	_ repository.UserRepository = (*fakeUserRepo)(nil)
	_ repository.TaskRepository = (*fakeTaskRepo)(nil)
)
