package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskdeck/domain/models"
	"taskdeck/domain/repositories"
)

type AttachmentRepositoryImpl struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) repositories.AttachmentRepository {
	return &AttachmentRepositoryImpl{db: db}
}

func (r *AttachmentRepositoryImpl) Create(ctx context.Context, attachment *models.Attachment) error {
	return dbFrom(ctx, r.db).Create(attachment).Error
}

func (r *AttachmentRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Attachment, error) {
	var attachment models.Attachment
	err := dbFrom(ctx, r.db).Where("id = ?", id).First(&attachment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attachment, nil
}

func (r *AttachmentRepositoryImpl) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]*models.Attachment, error) {
	var attachments []*models.Attachment
	err := dbFrom(ctx, r.db).Where("task_id = ?", taskID).Order("created_at DESC").Find(&attachments).Error
	return attachments, err
}

func (r *AttachmentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Where("id = ?", id).Delete(&models.Attachment{}).Error
}

func (r *AttachmentRepositoryImpl) DeleteByTaskID(ctx context.Context, taskID uuid.UUID) error {
	return dbFrom(ctx, r.db).Where("task_id = ?", taskID).Delete(&models.Attachment{}).Error
}
