package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satriadi/go-task-api/internal/domain/repository"
	"github.com/satriadi/go-task-api/pkg/apperr"
)

func newTaskService(repo *fakeTaskRepo) *TaskService {
	return NewTaskService(repo, nil, "", nil)
}

func TestTaskCreate(t *testing.T) {
	svc := newTaskService(newFakeTaskRepo())
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", CreateTaskInput{Title: "Write report", Description: "Q3 numbers"})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "owner-1", task.UserID)
	assert.False(t, task.Completed)
}

func TestVerifyOwnership(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTaskService(repo)
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", CreateTaskInput{Title: "Mine"})
	require.NoError(t, err)

	owned, err := svc.VerifyOwnership(ctx, task.ID, "owner-1")
	require.NoError(t, err)
	assert.True(t, owned)

	// A missing task and somebody else's task produce the exact same
	// result: false, no error.
	missing, err := svc.VerifyOwnership(ctx, "no-such-id", "owner-1")
	require.NoError(t, err)
	foreign, err2 := svc.VerifyOwnership(ctx, task.ID, "owner-2")
	require.NoError(t, err2)
	assert.False(t, missing)
	assert.False(t, foreign)
	assert.Equal(t, missing, foreign)
}

func TestTaskGet_ScopedByOwner(t *testing.T) {
	svc := newTaskService(newFakeTaskRepo())
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", CreateTaskInput{Title: "Mine"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "owner-1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)

	// Another user's read reports not found, not forbidden.
	_, err = svc.Get(ctx, "owner-2", task.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestTaskUpdate(t *testing.T) {
	svc := newTaskService(newFakeTaskRepo())
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", CreateTaskInput{Title: "Original", Description: "keep me"})
	require.NoError(t, err)

	done := true
	updated, err := svc.Update(ctx, "owner-1", task.ID, UpdateTaskInput{Completed: &done})
	require.NoError(t, err)

	// Partial update: untouched fields survive.
	assert.True(t, updated.Completed)
	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, "keep me", updated.Description)
	assert.Equal(t, "owner-1", updated.UserID)
}

func TestTaskUpdate_NotOwner(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTaskService(repo)
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", CreateTaskInput{Title: "Original"})
	require.NoError(t, err)

	title := "Hijacked"
	_, err = svc.Update(ctx, "owner-2", task.ID, UpdateTaskInput{Title: &title})
	require.Error(t, err)
	assert.Equal(t, apperr.Authorization, apperr.KindOf(err))

	// The record is untouched.
	got, err := svc.Get(ctx, "owner-1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Title)
}

func TestTaskDelete(t *testing.T) {
	svc := newTaskService(newFakeTaskRepo())
	ctx := context.Background()

	task, err := svc.Create(ctx, "owner-1", CreateTaskInput{Title: "Ephemeral"})
	require.NoError(t, err)

	// Non-owner delete is forbidden.
	err = svc.Delete(ctx, "owner-2", task.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.Authorization, apperr.KindOf(err))

	// Owner delete succeeds; a subsequent fetch reports not found.
	require.NoError(t, svc.Delete(ctx, "owner-1", task.ID))
	_, err = svc.Get(ctx, "owner-1", task.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestTaskList_OwnerScopedWithFilters(t *testing.T) {
	svc := newTaskService(newFakeTaskRepo())
	ctx := context.Background()

	soon := time.Now().Add(time.Hour)
	later := time.Now().Add(48 * time.Hour)

	_, err := svc.Create(ctx, "owner-1", CreateTaskInput{Title: "Due soon", DueDate: &soon})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "owner-1", CreateTaskInput{Title: "Due later", DueDate: &later})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "owner-2", CreateTaskInput{Title: "Not yours"})
	require.NoError(t, err)

	all, err := svc.List(ctx, "owner-1", repository.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, task := range all {
		assert.Equal(t, "owner-1", task.UserID)
	}

	cutoff := time.Now().Add(24 * time.Hour)
	due, err := svc.List(ctx, "owner-1", repository.TaskFilter{DueBefore: &cutoff})
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Due soon", due[0].Title)
}

func TestTaskSearch_NoElasticsearch(t *testing.T) {
	svc := newTaskService(newFakeTaskRepo())

	hits, err := svc.Search(context.Background(), "owner-1", "report", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
