package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"taskdeck/domain/models"
)

// Contract ของ repository layer: lookup ที่ไม่เจอแถวต้องคืน (nil, nil)
// ไม่ใช่ error เพราะ service ทุกตัวแยก not-found ด้วย row == nil
// รันกับ sqlite in-memory; schema สร้างเองเพราะ model ใช้
// gen_random_uuid() ซึ่งเป็น function ของ Postgres

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_fk=0"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	ddl := []string{
		`DROP TABLE IF EXISTS projects`,
		`DROP TABLE IF EXISTS tasks`,
		`DROP TABLE IF EXISTS subtasks`,
		`DROP TABLE IF EXISTS file_attachments`,
		`DROP TABLE IF EXISTS users`,
		`DROP TABLE IF EXISTS task_history`,
		`CREATE TABLE projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			description TEXT,
			deadline DATETIME,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME
		)`,
		`CREATE TABLE tasks (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			status TEXT,
			priority TEXT,
			assignee TEXT,
			start_date DATETIME,
			due_date DATETIME,
			end_date DATETIME,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME,
			cascade_delete BOOLEAN DEFAULT 0
		)`,
		`CREATE TABLE subtasks (
			id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			completed BOOLEAN DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE file_attachments (
			id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			file_name TEXT NOT NULL,
			path TEXT NOT NULL,
			mime_type TEXT,
			file_size INTEGER,
			created_at DATETIME
		)`,
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role TEXT DEFAULT 'user',
			is_active BOOLEAN DEFAULT 1,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE task_history (
			id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			status TEXT,
			priority TEXT,
			assignee TEXT,
			start_date DATETIME,
			due_date DATETIME,
			end_date DATETIME,
			changed_at DATETIME
		)`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func TestLookups_NilOnMissing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	missing := uuid.New()

	projects := NewProjectRepository(db)
	tasks := NewTaskRepository(db)
	subtasks := NewSubtaskRepository(db)
	attachments := NewAttachmentRepository(db)
	users := NewUserRepository(db)
	history := NewHistoryRepository(db)

	cases := []struct {
		name   string
		lookup func() (any, error)
	}{
		{"project GetByID", func() (any, error) { row, err := projects.GetByID(ctx, missing); return row, err }},
		{"project GetAnyByID", func() (any, error) { row, err := projects.GetAnyByID(ctx, missing); return row, err }},
		{"project GetBySlug", func() (any, error) { row, err := projects.GetBySlug(ctx, "fresh-slug"); return row, err }},
		{"task GetActiveByID", func() (any, error) { row, err := tasks.GetActiveByID(ctx, missing); return row, err }},
		{"task GetAnyByID", func() (any, error) { row, err := tasks.GetAnyByID(ctx, missing); return row, err }},
		{"subtask GetByID", func() (any, error) { row, err := subtasks.GetByID(ctx, missing); return row, err }},
		{"attachment GetByID", func() (any, error) { row, err := attachments.GetByID(ctx, missing); return row, err }},
		{"user GetByID", func() (any, error) { row, err := users.GetByID(ctx, missing); return row, err }},
		{"user GetByEmail", func() (any, error) { row, err := users.GetByEmail(ctx, "new@example.com"); return row, err }},
		{"user GetByUsername", func() (any, error) { row, err := users.GetByUsername(ctx, "newcomer"); return row, err }},
		{"history GetLatestByTaskID", func() (any, error) { row, err := history.GetLatestByTaskID(ctx, missing); return row, err }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row, err := tc.lookup()
			assert.NoError(t, err)
			assert.Nil(t, row)
		})
	}
}

func TestProjectLookups_SoftDeleteVisibility(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	now := time.Now().UTC()
	trashed := &models.Project{ID: uuid.New(), Name: "Trashed", Slug: "trashed", DeletedAt: &now}
	require.NoError(t, repo.Create(ctx, trashed))

	// GetByID มองไม่เห็นแถวใน trash แต่ GetAnyByID เห็น
	row, err := repo.GetByID(ctx, trashed.ID)
	assert.NoError(t, err)
	assert.Nil(t, row)

	row, err = repo.GetAnyByID(ctx, trashed.ID)
	assert.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, trashed.ID, row.ID)
}

func TestProjectList_IncludeDeletedIsUnion(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)

	now := time.Now().UTC()
	active := &models.Project{ID: uuid.New(), Name: "Active", Slug: "active"}
	trashed := &models.Project{ID: uuid.New(), Name: "Trashed", Slug: "trashed-p", DeletedAt: &now}
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, trashed))

	rows, err := repo.List(ctx, false, 0, 20)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, active.ID, rows[0].ID)

	rows, err = repo.List(ctx, true, 0, 20)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	count, err := repo.Count(ctx, false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, err = repo.Count(ctx, true)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestTaskList_IncludeDeletedIsUnion(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTaskRepository(db)

	projectID := uuid.New()
	now := time.Now().UTC()
	active := &models.Task{ID: uuid.New(), ProjectID: projectID, Title: "active", Status: models.TaskStatusToDo, Priority: models.TaskPriorityMedium}
	trashed := &models.Task{ID: uuid.New(), ProjectID: projectID, Title: "trashed", Status: models.TaskStatusToDo, Priority: models.TaskPriorityMedium, DeletedAt: &now}
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, trashed))

	rows, err := repo.GetByProjectID(ctx, projectID, false)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, active.ID, rows[0].ID)

	rows, err = repo.GetByProjectID(ctx, projectID, true)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
