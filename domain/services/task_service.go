package services

import (
	"context"

	"github.com/google/uuid"

	"taskdeck/domain/dto"
	"taskdeck/domain/models"
)

// TaskService เป็น authority เดียวในการ mutate task rows
// ทุก operation ที่เขียนหลายแถวรันใน transaction เดียว และ update ทุกครั้ง
// snapshot สถานะเดิมลง history ก่อนเสมอเพื่อให้ undo ใช้ได้แน่นอน
type TaskService interface {
	CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*models.Task, error)
	// GetProjectTasks เรียง created_at DESC; includeDeleted รวมแถวใน trash ด้วย
	GetProjectTasks(ctx context.Context, projectID uuid.UUID, includeDeleted bool) ([]*models.Task, error)
	UpdateTask(ctx context.Context, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error)
	UpdateStatus(ctx context.Context, taskID uuid.UUID, status models.TaskStatus) (*models.Task, error)
	Assign(ctx context.Context, taskID uuid.UUID, assignee *string) (*models.Task, error)
	SoftDeleteTask(ctx context.Context, taskID uuid.UUID) error
	RestoreTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error)
	PermanentDeleteTask(ctx context.Context, taskID uuid.UUID) error
	DuplicateTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error)
	UndoTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error)
}
