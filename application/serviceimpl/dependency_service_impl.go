package serviceimpl

import (
	"context"

	"github.com/google/uuid"

	"taskdeck/domain/apperr"
	"taskdeck/domain/models"
	"taskdeck/domain/repositories"
	"taskdeck/domain/services"
)

type DependencyServiceImpl struct {
	dependencyRepo repositories.DependencyRepository
	taskRepo       repositories.TaskRepository
}

func NewDependencyService(
	dependencyRepo repositories.DependencyRepository,
	taskRepo repositories.TaskRepository,
) services.DependencyService {
	return &DependencyServiceImpl{
		dependencyRepo: dependencyRepo,
		taskRepo:       taskRepo,
	}
}

func (s *DependencyServiceImpl) AddDependency(ctx context.Context, taskID, dependsOnID uuid.UUID) (*models.TaskDependency, error) {
	if taskID == dependsOnID {
		return nil, apperr.Validation("task cannot depend on itself")
	}

	// ทั้งสองฝั่งต้องเป็น active task
	for _, id := range []uuid.UUID{taskID, dependsOnID} {
		task, err := s.taskRepo.GetActiveByID(ctx, id)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		if task == nil {
			return nil, apperr.NotFound("task %s not found", id)
		}
	}

	exists, err := s.dependencyRepo.Exists(ctx, taskID, dependsOnID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if exists {
		return nil, apperr.Conflict("dependency already exists")
	}

	dep := &models.TaskDependency{
		TaskID:      taskID,
		DependsOnID: dependsOnID,
	}

	if err := s.dependencyRepo.Create(ctx, dep); err != nil {
		return nil, apperr.Storage(err)
	}
	return dep, nil
}

func (s *DependencyServiceImpl) GetTaskDependencies(ctx context.Context, taskID uuid.UUID) ([]*models.TaskDependency, error) {
	task, err := s.taskRepo.GetAnyByID(ctx, taskID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if task == nil {
		return nil, apperr.NotFound("task %s not found", taskID)
	}

	deps, err := s.dependencyRepo.GetByTaskID(ctx, taskID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return deps, nil
}

func (s *DependencyServiceImpl) RemoveDependency(ctx context.Context, taskID, dependsOnID uuid.UUID) error {
	exists, err := s.dependencyRepo.Exists(ctx, taskID, dependsOnID)
	if err != nil {
		return apperr.Storage(err)
	}
	if !exists {
		return apperr.NotFound("dependency not found")
	}

	if err := s.dependencyRepo.Delete(ctx, taskID, dependsOnID); err != nil {
		return apperr.Storage(err)
	}
	return nil
}
