package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskdeck/domain/models"
	"taskdeck/domain/repositories"
)

type DependencyRepositoryImpl struct {
	db *gorm.DB
}

func NewDependencyRepository(db *gorm.DB) repositories.DependencyRepository {
	return &DependencyRepositoryImpl{db: db}
}

func (r *DependencyRepositoryImpl) Create(ctx context.Context, dep *models.TaskDependency) error {
	return dbFrom(ctx, r.db).Create(dep).Error
}

func (r *DependencyRepositoryImpl) Exists(ctx context.Context, taskID, dependsOnID uuid.UUID) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&models.TaskDependency{}).
		Where("task_id = ? AND depends_on_id = ?", taskID, dependsOnID).
		Count(&count).Error
	return count > 0, err
}

func (r *DependencyRepositoryImpl) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]*models.TaskDependency, error) {
	var deps []*models.TaskDependency
	err := dbFrom(ctx, r.db).Where("task_id = ?", taskID).Order("created_at ASC").Find(&deps).Error
	return deps, err
}

func (r *DependencyRepositoryImpl) Delete(ctx context.Context, taskID, dependsOnID uuid.UUID) error {
	return dbFrom(ctx, r.db).
		Where("task_id = ? AND depends_on_id = ?", taskID, dependsOnID).
		Delete(&models.TaskDependency{}).Error
}

func (r *DependencyRepositoryImpl) DeleteByTaskID(ctx context.Context, taskID uuid.UUID) error {
	// edge เป็น weak reference: เคลียร์ทั้งสองทิศทาง
	return dbFrom(ctx, r.db).
		Where("task_id = ? OR depends_on_id = ?", taskID, taskID).
		Delete(&models.TaskDependency{}).Error
}
