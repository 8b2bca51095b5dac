package serviceimpl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRetentionFixture(t *testing.T, ttl time.Duration) (*projectFixture, *TrashRetentionService) {
	t.Helper()
	f := newProjectFixture(t)

	taskSvc := NewTaskService(
		f.tasks, f.projects, f.subtasks, f.deps, f.history, f.files,
		noopTxManager{}, f.storage, f.publisher,
	)

	svc := NewTrashRetentionService(
		TrashRetentionConfig{TrashTTL: ttl, Interval: time.Hour},
		f.svc, taskSvc, f.projects, f.tasks, nil,
	)
	return f, svc
}

func trashAt(t *testing.T, f *projectFixture, taskID uuid.UUID, when time.Time) {
	t.Helper()
	task, err := f.tasks.GetAnyByID(context.Background(), taskID)
	require.NoError(t, err)
	require.NotNil(t, task)
	task.DeletedAt = &when
	require.NoError(t, f.tasks.Update(context.Background(), task))
}

func TestRunOnce_PurgesExpiredKeepsRecent(t *testing.T) {
	ttl := 30 * 24 * time.Hour
	f, retention := newRetentionFixture(t, ttl)
	ctx := context.Background()

	p := f.createProject(t, "Workspace")
	expired := f.seedTask(t, p.ID, "expired")
	recent := f.seedTask(t, p.ID, "recent")
	active := f.seedTask(t, p.ID, "active")

	trashAt(t, f, expired.ID, time.Now().UTC().Add(-ttl-time.Hour))
	trashAt(t, f, recent.ID, time.Now().UTC().Add(-time.Hour))

	require.NoError(t, retention.RunOnce(ctx))

	got, _ := f.tasks.GetAnyByID(ctx, expired.ID)
	assert.Nil(t, got)

	got, _ = f.tasks.GetAnyByID(ctx, recent.ID)
	require.NotNil(t, got)
	assert.NotNil(t, got.DeletedAt)

	got, _ = f.tasks.GetAnyByID(ctx, active.ID)
	require.NotNil(t, got)
	assert.Nil(t, got.DeletedAt)
}

func TestRunOnce_ExpiredProjectTakesTasksAlong(t *testing.T) {
	ttl := 30 * 24 * time.Hour
	f, retention := newRetentionFixture(t, ttl)
	ctx := context.Background()

	p := f.createProject(t, "Old workspace")
	task := f.seedTask(t, p.ID, "inside")

	// จำลอง project ที่ถูกลบ (cascade) มานานเกิน TTL
	require.NoError(t, f.svc.SoftDeleteProject(ctx, p.ID))
	old := time.Now().UTC().Add(-ttl - time.Hour)
	proj, _ := f.projects.GetAnyByID(ctx, p.ID)
	proj.DeletedAt = &old
	require.NoError(t, f.projects.Update(ctx, proj))
	trashAt(t, f, task.ID, old)

	require.NoError(t, retention.RunOnce(ctx))

	gotProject, _ := f.projects.GetAnyByID(ctx, p.ID)
	assert.Nil(t, gotProject)

	// task โดนกวาดไปพร้อม project แล้ว ไม่เหลือให้ purge ซ้ำ
	gotTask, _ := f.tasks.GetAnyByID(ctx, task.ID)
	assert.Nil(t, gotTask)
}

func TestNewTrashRetentionService_AppliesDefaults(t *testing.T) {
	svc := NewTrashRetentionService(TrashRetentionConfig{}, nil, nil, nil, nil, nil)
	assert.Equal(t, 30*24*time.Hour, svc.config.TrashTTL)
	assert.Equal(t, time.Hour, svc.config.Interval)
}
