package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskdeck/domain/models"
)

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Attachment, error)
	GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]*models.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByTaskID(ctx context.Context, taskID uuid.UUID) error
}
