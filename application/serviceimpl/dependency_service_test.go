package serviceimpl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/domain/apperr"
	"taskdeck/domain/models"
)

func seedActiveTask(t *testing.T, repo *memTaskRepo, projectID uuid.UUID) *models.Task {
	t.Helper()
	task := &models.Task{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     "task",
		Status:    models.TaskStatusToDo,
		Priority:  models.TaskPriorityMedium,
	}
	require.NoError(t, repo.Create(context.Background(), task))
	return task
}

func TestAddDependency_RejectsSelfEdge(t *testing.T) {
	tasks := newMemTaskRepo()
	svc := NewDependencyService(newMemDependencyRepo(), tasks)
	task := seedActiveTask(t, tasks, uuid.New())

	_, err := svc.AddDependency(context.Background(), task.ID, task.ID)
	assert.True(t, apperr.IsValidation(err))
}

func TestAddDependency_RejectsDuplicateEdge(t *testing.T) {
	ctx := context.Background()
	tasks := newMemTaskRepo()
	svc := NewDependencyService(newMemDependencyRepo(), tasks)
	projectID := uuid.New()
	a := seedActiveTask(t, tasks, projectID)
	b := seedActiveTask(t, tasks, projectID)

	_, err := svc.AddDependency(ctx, a.ID, b.ID)
	require.NoError(t, err)

	_, err = svc.AddDependency(ctx, a.ID, b.ID)
	assert.True(t, apperr.IsConflict(err))

	// ทิศทางกลับกันเป็น edge คนละเส้น สร้างได้
	_, err = svc.AddDependency(ctx, b.ID, a.ID)
	assert.NoError(t, err)
}

func TestAddDependency_BothEndpointsMustBeActive(t *testing.T) {
	ctx := context.Background()
	tasks := newMemTaskRepo()
	svc := NewDependencyService(newMemDependencyRepo(), tasks)
	projectID := uuid.New()
	a := seedActiveTask(t, tasks, projectID)
	b := seedActiveTask(t, tasks, projectID)

	now := time.Now().UTC()
	trashed, _ := tasks.GetAnyByID(ctx, b.ID)
	trashed.DeletedAt = &now
	require.NoError(t, tasks.Update(ctx, trashed))

	_, err := svc.AddDependency(ctx, a.ID, b.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.AddDependency(ctx, a.ID, uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

func TestRemoveDependency_MissingEdge(t *testing.T) {
	ctx := context.Background()
	tasks := newMemTaskRepo()
	deps := newMemDependencyRepo()
	svc := NewDependencyService(deps, tasks)
	projectID := uuid.New()
	a := seedActiveTask(t, tasks, projectID)
	b := seedActiveTask(t, tasks, projectID)

	err := svc.RemoveDependency(ctx, a.ID, b.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.AddDependency(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveDependency(ctx, a.ID, b.ID))

	exists, _ := deps.Exists(ctx, a.ID, b.ID)
	assert.False(t, exists)
}
