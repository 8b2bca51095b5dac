package serviceimpl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/domain/models"
)

// Contract เดียวกับ repository จริง (infrastructure/postgres):
// lookup ที่ไม่เจอแถวคืน (nil, nil) และ includeDeleted เป็น union
// ของ active กับ trash; กัน fake เพี้ยนไปจาก impl จริง

func TestFakeLookups_NilOnMissing(t *testing.T) {
	ctx := context.Background()
	missing := uuid.New()

	projects := newMemProjectRepo()
	tasks := newMemTaskRepo()
	subtasks := newMemSubtaskRepo()
	attachments := newMemAttachmentRepo()
	history := newMemHistoryRepo()

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

func TestFakeProjectList_IncludeDeletedIsUnion(t *testing.T) {
	ctx := context.Background()
	repo := newMemProjectRepo()

	now := time.Now().UTC()
	active := &models.Project{ID: uuid.New(), Name: "Active", Slug: "active"}
	trashed := &models.Project{ID: uuid.New(), Name: "Trashed", Slug: "trashed", DeletedAt: &now}
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, trashed))

	rows, err := repo.List(ctx, false, 0, 20)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, active.ID, rows[0].ID)

	rows, err = repo.List(ctx, true, 0, 20)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	count, err := repo.Count(ctx, true)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
