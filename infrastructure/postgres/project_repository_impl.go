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

type ProjectRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) repositories.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *models.Project) error {
	return dbFrom(ctx, r.db).Create(project).Error
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := dbFrom(ctx, r.db).Where("id = ? AND deleted_at IS NULL", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) GetAnyByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := dbFrom(ctx, r.db).Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := dbFrom(ctx, r.db).Where("slug = ?", slug).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) Update(ctx context.Context, project *models.Project) error {
	// Save เขียนทุก column รวม nullable fields (deleted_at, deadline)
	return dbFrom(ctx, r.db).Save(project).Error
}

func (r *ProjectRepositoryImpl) List(ctx context.Context, includeDeleted bool, offset, limit int) ([]*models.Project, error) {
	var projects []*models.Project
	q := dbFrom(ctx, r.db).Order("created_at DESC").Offset(offset).Limit(limit)
	// includeDeleted = union ของ active กับ trash ไม่ใช่ trash อย่างเดียว
	if !includeDeleted {
		q = q.Where("deleted_at IS NULL")
	}
	err := q.Find(&projects).Error
	return projects, err
}

func (r *ProjectRepositoryImpl) Count(ctx context.Context, includeDeleted bool) (int64, error) {
	var count int64
	q := dbFrom(ctx, r.db).Model(&models.Project{})
	if !includeDeleted {
		q = q.Where("deleted_at IS NULL")
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *ProjectRepositoryImpl) ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]*models.Project, error) {
	var projects []*models.Project
	err := dbFrom(ctx, r.db).Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).Find(&projects).Error
	return projects, err
}

func (r *ProjectRepositoryImpl) HardDelete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Where("id = ?", id).Delete(&models.Project{}).Error
}
