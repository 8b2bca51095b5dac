package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskdeck/domain/models"
	"taskdeck/domain/repositories"
)

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task) error {
	return dbFrom(ctx, r.db).Create(task).Error
}

func (r *TaskRepositoryImpl) GetActiveByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := dbFrom(ctx, r.db).Where("id = ? AND deleted_at IS NULL", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) GetAnyByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := dbFrom(ctx, r.db).Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) GetByProjectID(ctx context.Context, projectID uuid.UUID, includeDeleted bool) ([]*models.Task, error) {
	var tasks []*models.Task
	q := dbFrom(ctx, r.db).Where("project_id = ?", projectID).Order("created_at DESC")
	if !includeDeleted {
		q = q.Where("deleted_at IS NULL")
	}
	err := q.Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *models.Task) error {
	// Save เขียนทุก column เพื่อให้เคลียร์ค่า (assignee, dates, deleted_at) ได้
	return dbFrom(ctx, r.db).Save(task).Error
}

func (r *TaskRepositoryImpl) SoftDeleteByProject(ctx context.Context, projectID uuid.UUID, deletedAt time.Time) (int64, error) {
	res := dbFrom(ctx, r.db).Model(&models.Task{}).
		Where("project_id = ? AND deleted_at IS NULL", projectID).
		Updates(map[string]interface{}{
			"deleted_at":     deletedAt,
			"cascade_delete": true,
			"updated_at":     deletedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *TaskRepositoryImpl) RestoreCascaded(ctx context.Context, projectID uuid.UUID) (int64, error) {
	now := time.Now()
	res := dbFrom(ctx, r.db).Model(&models.Task{}).
		Where("project_id = ? AND deleted_at IS NOT NULL AND cascade_delete = ?", projectID, true).
		Updates(map[string]interface{}{
			"deleted_at":     nil,
			"cascade_delete": false,
			"updated_at":     now,
		})
	return res.RowsAffected, res.Error
}

func (r *TaskRepositoryImpl) HardDelete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Where("id = ?", id).Delete(&models.Task{}).Error
}

func (r *TaskRepositoryImpl) HardDeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return dbFrom(ctx, r.db).Where("project_id = ?", projectID).Delete(&models.Task{}).Error
}

func (r *TaskRepositoryImpl) ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]*models.Task, error) {
	var tasks []*models.Task
	err := dbFrom(ctx, r.db).Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).Find(&tasks).Error
	return tasks, err
}
