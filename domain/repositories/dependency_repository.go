package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskdeck/domain/models"
)

type DependencyRepository interface {
	Create(ctx context.Context, dep *models.TaskDependency) error
	Exists(ctx context.Context, taskID, dependsOnID uuid.UUID) (bool, error)
	GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]*models.TaskDependency, error)
	Delete(ctx context.Context, taskID, dependsOnID uuid.UUID) error
	// DeleteByTaskID ลบ edge ทั้งสองทิศทางที่อ้างถึง task นี้
	DeleteByTaskID(ctx context.Context, taskID uuid.UUID) error
}
