package services

import (
	"context"

	"github.com/google/uuid"

	"taskdeck/domain/models"
)

// DependencyService จัดการ directed edges ระหว่าง task
// ไม่มี cycle detection (ตาม behavior เดิม) - ปฏิเสธเฉพาะ self edge กับ edge ซ้ำ
type DependencyService interface {
	AddDependency(ctx context.Context, taskID, dependsOnID uuid.UUID) (*models.TaskDependency, error)
	GetTaskDependencies(ctx context.Context, taskID uuid.UUID) ([]*models.TaskDependency, error)
	RemoveDependency(ctx context.Context, taskID, dependsOnID uuid.UUID) error
}
