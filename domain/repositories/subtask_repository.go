package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskdeck/domain/models"
)

type SubtaskRepository interface {
	Create(ctx context.Context, subtask *models.Subtask) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Subtask, error)
	GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]*models.Subtask, error)
	Update(ctx context.Context, subtask *models.Subtask) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByTaskID(ctx context.Context, taskID uuid.UUID) error
}
