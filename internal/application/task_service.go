package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/satriadi/go-task-api/internal/domain/entity"
	"github.com/satriadi/go-task-api/internal/domain/repository"
	"github.com/satriadi/go-task-api/pkg/apperr"
)

// TaskService implements owner-scoped task CRUD. Ownership is enforced
// procedurally: reads scope their queries by the caller's id, mutations run
// the ownership guard first. Elasticsearch indexing is best effort; Postgres
// stays the source of truth.
type TaskService struct {
	Repo         repository.TaskRepository
	ES           *elasticsearch.Client
	ESTasksIndex string
	Logger       *logrus.Logger
}

func NewTaskService(repo repository.TaskRepository, es *elasticsearch.Client, esTasksIndex string, logger *logrus.Logger) *TaskService {
	return &TaskService{Repo: repo, ES: es, ESTasksIndex: esTasksIndex, Logger: logger}
}

type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
}

// UpdateTaskInput applies partial updates; nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Completed   *bool
}

// Create stores a task owned by ownerID. The owner is the creator and never
// changes afterwards.
func (s *TaskService) Create(ctx context.Context, ownerID string, in CreateTaskInput) (*entity.Task, error) {
	t := &entity.Task{
		UserID:      ownerID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	s.indexTask(ctx, t)
	return t, nil
}

// List returns only the caller's tasks; no ownership guard is needed because
// the query itself is owner-scoped.
func (s *TaskService) List(ctx context.Context, ownerID string, f repository.TaskFilter) ([]entity.Task, error) {
	tasks, err := s.Repo.ListByOwner(ctx, ownerID, f)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	return tasks, nil
}

// Get fetches a single task scoped by owner. A task owned by someone else is
// reported as missing.
func (s *TaskService) Get(ctx context.Context, ownerID, id string) (*entity.Task, error) {
	t, err := s.Repo.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "task not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	return t, nil
}

// VerifyOwnership reports whether the task exists and belongs to ownerID.
// False covers both a missing task and somebody else's task; callers cannot
// tell the two apart. Malformed ids fail closed to false.
func (s *TaskService) VerifyOwnership(ctx context.Context, id, ownerID string) (bool, error) {
	owned, err := s.Repo.OwnedBy(ctx, id, ownerID)
	if err != nil {
		return false, apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	return owned, nil
}

// Update mutates a task after the ownership guard passes. A task deleted
// between the guard and the write surfaces as NotFound.
func (s *TaskService) Update(ctx context.Context, ownerID, id string, in UpdateTaskInput) (*entity.Task, error) {
	owned, err := s.VerifyOwnership(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, apperr.New(apperr.Authorization, "you do not have access to this task")
	}

	t, err := s.Repo.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "task not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}

	if err := s.Repo.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "task not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	s.indexTask(ctx, t)
	return t, nil
}

// Delete removes a task after the ownership guard passes.
func (s *TaskService) Delete(ctx context.Context, ownerID, id string) error {
	owned, err := s.VerifyOwnership(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !owned {
		return apperr.New(apperr.Authorization, "you do not have access to this task")
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.NotFound, "task not found")
		}
		return apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	s.deleteTaskDoc(ctx, id)
	return nil
}

// Search runs a multi_match over title and description, filtered to the
// caller's tasks. Returns an empty slice when Elasticsearch is not wired.
func (s *TaskService) Search(ctx context.Context, ownerID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESTasksIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "description"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": ownerID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESTasksIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "internal server error", err)
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *TaskService) indexTask(ctx context.Context, t *entity.Task) {
	if s.ES == nil || s.ESTasksIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          t.ID,
		"user_id":     t.UserID,
		"title":       t.Title,
		"description": t.Description,
		"completed":   t.Completed,
		"created_at":  t.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  t.UpdatedAt.Format(time.RFC3339Nano),
	}
	if t.DueDate != nil {
		doc["due_date"] = t.DueDate.Format(time.RFC3339Nano)
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESTasksIndex, DocumentID: t.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("task_id", t.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("task_id", t.ID).Warn("es index response error")
	}
}

func (s *TaskService) deleteTaskDoc(ctx context.Context, id string) {
	if s.ES == nil || s.ESTasksIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESTasksIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("task_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
