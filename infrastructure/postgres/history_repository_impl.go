package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskdeck/domain/models"
	"taskdeck/domain/repositories"
)

type HistoryRepositoryImpl struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) repositories.HistoryRepository {
	return &HistoryRepositoryImpl{db: db}
}

func (r *HistoryRepositoryImpl) Create(ctx context.Context, entry *models.TaskHistoryEntry) error {
	return dbFrom(ctx, r.db).Create(entry).Error
}

func (r *HistoryRepositoryImpl) GetLatestByTaskID(ctx context.Context, taskID uuid.UUID) (*models.TaskHistoryEntry, error) {
	var entry models.TaskHistoryEntry
	err := dbFrom(ctx, r.db).Where("task_id = ?", taskID).
		Order("changed_at DESC").First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *HistoryRepositoryImpl) CountByTaskID(ctx context.Context, taskID uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&models.TaskHistoryEntry{}).
		Where("task_id = ?", taskID).Count(&count).Error
	return count, err
}

func (r *HistoryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Where("id = ?", id).Delete(&models.TaskHistoryEntry{}).Error
}

func (r *HistoryRepositoryImpl) DeleteByTaskID(ctx context.Context, taskID uuid.UUID) error {
	return dbFrom(ctx, r.db).Where("task_id = ?", taskID).Delete(&models.TaskHistoryEntry{}).Error
}

func (r *HistoryRepositoryImpl) PruneOldest(ctx context.Context, taskID uuid.UUID, keep int) (int64, error) {
	// ลบทุก entry ที่เก่ากว่า keep รายการล่าสุด
	sub := dbFrom(ctx, r.db).Model(&models.TaskHistoryEntry{}).
		Select("id").Where("task_id = ?", taskID).
		Order("changed_at DESC").Limit(keep)
	res := dbFrom(ctx, r.db).
		Where("task_id = ? AND id NOT IN (?)", taskID, sub).
		Delete(&models.TaskHistoryEntry{})
	return res.RowsAffected, res.Error
}
