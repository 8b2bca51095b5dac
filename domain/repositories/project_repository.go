package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taskdeck/domain/models"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	// GetByID คืนเฉพาะ active row (deleted_at IS NULL)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	// GetAnyByID คืน row ไม่ว่าจะถูก soft delete หรือไม่
	GetAnyByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	List(ctx context.Context, includeDeleted bool, offset, limit int) ([]*models.Project, error)
	Count(ctx context.Context, includeDeleted bool) (int64, error)
	ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]*models.Project, error)
	HardDelete(ctx context.Context, id uuid.UUID) error
}
