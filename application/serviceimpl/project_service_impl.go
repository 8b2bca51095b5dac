package serviceimpl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"taskdeck/domain/apperr"
	"taskdeck/domain/dto"
	"taskdeck/domain/models"
	"taskdeck/domain/ports"
	"taskdeck/domain/repositories"
	"taskdeck/domain/services"
	"taskdeck/pkg/logger"
)

type ProjectServiceImpl struct {
	projectRepo    repositories.ProjectRepository
	taskRepo       repositories.TaskRepository
	subtaskRepo    repositories.SubtaskRepository
	dependencyRepo repositories.DependencyRepository
	historyRepo    repositories.HistoryRepository
	attachmentRepo repositories.AttachmentRepository
	txManager      repositories.TxManager
	storage        ports.StoragePort
	publisher      ports.EventPublisher
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	subtaskRepo repositories.SubtaskRepository,
	dependencyRepo repositories.DependencyRepository,
	historyRepo repositories.HistoryRepository,
	attachmentRepo repositories.AttachmentRepository,
	txManager repositories.TxManager,
	storage ports.StoragePort,
	publisher ports.EventPublisher,
) services.ProjectService {
	return &ProjectServiceImpl{
		projectRepo:    projectRepo,
		taskRepo:       taskRepo,
		subtaskRepo:    subtaskRepo,
		dependencyRepo: dependencyRepo,
		historyRepo:    historyRepo,
		attachmentRepo: attachmentRepo,
		txManager:      txManager,
		storage:        storage,
		publisher:      publisher,
	}
}

func (s *ProjectServiceImpl) CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*models.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("name must not be empty")
	}

	deadline, err := dto.ParseDate(req.Deadline)
	if err != nil {
		return nil, apperr.Validation("invalid deadline: %v", err)
	}

	projectSlug, err := s.uniqueSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		ID:          uuid.New(),
		Name:        name,
		Slug:        projectSlug,
		Description: req.Description,
		Deadline:    deadline,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, apperr.Storage(err)
	}

	logger.InfoContext(ctx, "Project created", "project_id", project.ID, "slug", project.Slug)
	return project, nil
}

func (s *ProjectServiceImpl) GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if project == nil {
		return nil, apperr.NotFound("project %s not found", projectID)
	}
	return project, nil
}

func (s *ProjectServiceImpl) ListProjects(ctx context.Context, includeDeleted bool, offset, limit int) ([]*models.Project, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	projects, err := s.projectRepo.List(ctx, includeDeleted, offset, limit)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}

	total, err := s.projectRepo.Count(ctx, includeDeleted)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}

	return projects, total, nil
}

func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*models.Project, error) {
	if req.Empty() {
		return nil, apperr.Validation("no valid fields to update")
	}

	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.Validation("name must not be empty")
		}
		// slug คงเดิมตอน rename - slug อยู่ใน URL ของคนอื่นแล้ว
		project.Name = name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Deadline != nil {
		deadline, err := dto.ParseDate(req.Deadline)
		if err != nil {
			return nil, apperr.Validation("invalid deadline: %v", err)
		}
		project.Deadline = deadline
	}

	project.UpdatedAt = time.Now().UTC()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, apperr.Storage(err)
	}

	return project, nil
}

func (s *ProjectServiceImpl) SoftDeleteProject(ctx context.Context, projectID uuid.UUID) error {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		project.DeletedAt = &now
		project.UpdatedAt = now
		if err := s.projectRepo.Update(txCtx, project); err != nil {
			return err
		}

		// cascade flag ทำให้ restore รู้ว่า task ไหนตามมากับ project
		// task ที่ user ลบเองก่อนหน้าจะไม่ถูกแตะ
		affected, err := s.taskRepo.SoftDeleteByProject(txCtx, projectID, now)
		if err != nil {
			return err
		}
		logger.InfoContext(txCtx, "Project cascade soft delete", "project_id", projectID, "tasks", affected)
		return nil
	})
	if err != nil {
		return apperr.Storage(err)
	}

	s.publishEvent(ctx, projectID, ports.EventTaskDeleted)
	return nil
}

func (s *ProjectServiceImpl) RestoreProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	project, err := s.projectRepo.GetAnyByID(ctx, projectID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if project == nil {
		return nil, apperr.NotFound("project %s not found", projectID)
	}
	if !project.IsDeleted() {
		return nil, apperr.Conflict("project %s is not in trash", projectID)
	}

	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		project.DeletedAt = nil
		project.UpdatedAt = time.Now().UTC()
		if err := s.projectRepo.Update(txCtx, project); err != nil {
			return err
		}

		restored, err := s.taskRepo.RestoreCascaded(txCtx, projectID)
		if err != nil {
			return err
		}
		logger.InfoContext(txCtx, "Project restored", "project_id", projectID, "tasks", restored)
		return nil
	})
	if err != nil {
		return nil, apperr.Storage(err)
	}

	s.publishEvent(ctx, projectID, ports.EventTaskRestored)
	return project, nil
}

func (s *ProjectServiceImpl) PermanentDeleteProject(ctx context.Context, projectID uuid.UUID) error {
	project, err := s.projectRepo.GetAnyByID(ctx, projectID)
	if err != nil {
		return apperr.Storage(err)
	}
	if project == nil {
		return apperr.NotFound("project %s not found", projectID)
	}
	if !project.IsDeleted() {
		return apperr.Conflict("project %s must be moved to trash before permanent delete", projectID)
	}

	tasks, err := s.taskRepo.GetByProjectID(ctx, projectID, true)
	if err != nil {
		return apperr.Storage(err)
	}

	var attachments []*models.Attachment
	for _, task := range tasks {
		taskAttachments, err := s.attachmentRepo.GetByTaskID(ctx, task.ID)
		if err != nil {
			return apperr.Storage(err)
		}
		attachments = append(attachments, taskAttachments...)
	}

	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		for _, task := range tasks {
			if err := s.subtaskRepo.DeleteByTaskID(txCtx, task.ID); err != nil {
				return err
			}
			if err := s.dependencyRepo.DeleteByTaskID(txCtx, task.ID); err != nil {
				return err
			}
			if err := s.historyRepo.DeleteByTaskID(txCtx, task.ID); err != nil {
				return err
			}
			if err := s.attachmentRepo.DeleteByTaskID(txCtx, task.ID); err != nil {
				return err
			}
		}
		if err := s.taskRepo.HardDeleteByProject(txCtx, projectID); err != nil {
			return err
		}
		return s.projectRepo.HardDelete(txCtx, projectID)
	})
	if err != nil {
		return apperr.Storage(err)
	}

	for _, a := range attachments {
		if err := s.storage.DeleteFile(a.Path); err != nil {
			logger.WarnContext(ctx, "Failed to delete attachment file", "path", a.Path, "error", err)
		}
	}

	logger.InfoContext(ctx, "Project permanently deleted", "project_id", projectID, "tasks", len(tasks))
	s.publishEvent(ctx, projectID, ports.EventTaskPurged)
	return nil
}

// uniqueSlug สร้าง slug จากชื่อ ถ้าชนกับที่มีอยู่เติม suffix สั้น ๆ
func (s *ProjectServiceImpl) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "project"
	}

	existing, err := s.projectRepo.GetBySlug(ctx, base)
	if err != nil {
		return "", apperr.Storage(err)
	}
	if existing == nil {
		return base, nil
	}

	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

func (s *ProjectServiceImpl) publishEvent(ctx context.Context, projectID uuid.UUID, action string) {
	event := ports.BoardEvent{ProjectID: projectID, Action: action}
	if err := s.publisher.PublishBoardEvent(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish board event", "action", action, "error", err)
	}
}
