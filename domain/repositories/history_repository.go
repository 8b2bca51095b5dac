package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskdeck/domain/models"
)

type HistoryRepository interface {
	Create(ctx context.Context, entry *models.TaskHistoryEntry) error
	// GetLatestByTaskID คืน entry ล่าสุด (changed_at DESC) หรือ nil ถ้าไม่มี
	GetLatestByTaskID(ctx context.Context, taskID uuid.UUID) (*models.TaskHistoryEntry, error)
	CountByTaskID(ctx context.Context, taskID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByTaskID(ctx context.Context, taskID uuid.UUID) error
	// PruneOldest ลบ entry เก่าสุดให้เหลือไม่เกิน keep รายการต่อ task
	PruneOldest(ctx context.Context, taskID uuid.UUID, keep int) (int64, error)
}
