package services

import (
	"context"

	"github.com/google/uuid"

	"taskdeck/domain/dto"
	"taskdeck/domain/models"
)

type ProjectService interface {
	CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*models.Project, error)
	GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	ListProjects(ctx context.Context, includeDeleted bool, offset, limit int) ([]*models.Project, int64, error)
	UpdateProject(ctx context.Context, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*models.Project, error)
	// SoftDeleteProject cascade ไปยัง active tasks ทั้งหมดใน transaction เดียว
	SoftDeleteProject(ctx context.Context, projectID uuid.UUID) error
	// RestoreProject กู้คืนเฉพาะ task ที่ถูก cascade delete มาด้วยกัน
	RestoreProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	// PermanentDeleteProject ลบ tasks + dependents ทั้งหมดแล้วค่อยลบ project; atomic
	PermanentDeleteProject(ctx context.Context, projectID uuid.UUID) error
}
