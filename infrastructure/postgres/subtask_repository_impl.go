package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskdeck/domain/models"
	"taskdeck/domain/repositories"
)

type SubtaskRepositoryImpl struct {
	db *gorm.DB
}

func NewSubtaskRepository(db *gorm.DB) repositories.SubtaskRepository {
	return &SubtaskRepositoryImpl{db: db}
}

func (r *SubtaskRepositoryImpl) Create(ctx context.Context, subtask *models.Subtask) error {
	return dbFrom(ctx, r.db).Create(subtask).Error
}

func (r *SubtaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Subtask, error) {
	var subtask models.Subtask
	err := dbFrom(ctx, r.db).Where("id = ?", id).First(&subtask).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subtask, nil
}

func (r *SubtaskRepositoryImpl) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]*models.Subtask, error) {
	var subtasks []*models.Subtask
	err := dbFrom(ctx, r.db).Where("task_id = ?", taskID).Order("created_at ASC").Find(&subtasks).Error
	return subtasks, err
}

func (r *SubtaskRepositoryImpl) Update(ctx context.Context, subtask *models.Subtask) error {
	return dbFrom(ctx, r.db).Save(subtask).Error
}

func (r *SubtaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Where("id = ?", id).Delete(&models.Subtask{}).Error
}

func (r *SubtaskRepositoryImpl) DeleteByTaskID(ctx context.Context, taskID uuid.UUID) error {
	return dbFrom(ctx, r.db).Where("task_id = ?", taskID).Delete(&models.Subtask{}).Error
}
