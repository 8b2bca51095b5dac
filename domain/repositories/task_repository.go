package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskdeck/domain/models"
)

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	// GetActiveByID คืนเฉพาะแถวที่ deleted_at IS NULL
	GetActiveByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	// GetAnyByID คืนแถวไม่ว่าสถานะ lifecycle เป็นอะไร
	GetAnyByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	// GetByProjectID เรียงตาม created_at DESC
	GetByProjectID(ctx context.Context, projectID uuid.UUID, includeDeleted bool) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	// SoftDeleteByProject ตั้ง deleted_at + cascade flag ให้ task ที่ยัง active ทั้งหมดของ project
	SoftDeleteByProject(ctx context.Context, projectID uuid.UUID, deletedAt time.Time) (int64, error)
	// RestoreCascaded เคลียร์ deleted_at เฉพาะ task ที่ถูก cascade delete มาพร้อม project
	RestoreCascaded(ctx context.Context, projectID uuid.UUID) (int64, error)
	HardDelete(ctx context.Context, id uuid.UUID) error
	HardDeleteByProject(ctx context.Context, projectID uuid.UUID) error
	ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]*models.Task, error)
}
