package serviceimpl

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskdeck/domain/apperr"
	"taskdeck/domain/dto"
	"taskdeck/domain/models"
	"taskdeck/domain/repositories"
	"taskdeck/domain/services"
)

type SubtaskServiceImpl struct {
	subtaskRepo repositories.SubtaskRepository
	taskRepo    repositories.TaskRepository
}

func NewSubtaskService(
	subtaskRepo repositories.SubtaskRepository,
	taskRepo repositories.TaskRepository,
) services.SubtaskService {
	return &SubtaskServiceImpl{
		subtaskRepo: subtaskRepo,
		taskRepo:    taskRepo,
	}
}

func (s *SubtaskServiceImpl) CreateSubtask(ctx context.Context, taskID uuid.UUID, req *dto.CreateSubtaskRequest) (*models.Subtask, error) {
	task, err := s.taskRepo.GetActiveByID(ctx, taskID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if task == nil {
		return nil, apperr.NotFound("task %s not found", taskID)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.Validation("title must not be empty")
	}

	subtask := &models.Subtask{
		ID:          uuid.New(),
		TaskID:      taskID,
		Title:       title,
		Description: req.Description,
	}

	if err := s.subtaskRepo.Create(ctx, subtask); err != nil {
		return nil, apperr.Storage(err)
	}
	return subtask, nil
}

func (s *SubtaskServiceImpl) GetTaskSubtasks(ctx context.Context, taskID uuid.UUID) ([]*models.Subtask, error) {
	task, err := s.taskRepo.GetAnyByID(ctx, taskID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if task == nil {
		return nil, apperr.NotFound("task %s not found", taskID)
	}

	subtasks, err := s.subtaskRepo.GetByTaskID(ctx, taskID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return subtasks, nil
}

func (s *SubtaskServiceImpl) UpdateSubtask(ctx context.Context, subtaskID uuid.UUID, req *dto.UpdateSubtaskRequest) (*models.Subtask, error) {
	if req.Empty() {
		return nil, apperr.Validation("no valid fields to update")
	}

	subtask, err := s.subtaskRepo.GetByID(ctx, subtaskID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if subtask == nil {
		return nil, apperr.NotFound("subtask %s not found", subtaskID)
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperr.Validation("title must not be empty")
		}
		subtask.Title = title
	}
	if req.Description != nil {
		subtask.Description = *req.Description
	}
	if req.Completed != nil {
		subtask.Completed = *req.Completed
	}

	subtask.UpdatedAt = time.Now().UTC()

	if err := s.subtaskRepo.Update(ctx, subtask); err != nil {
		return nil, apperr.Storage(err)
	}
	return subtask, nil
}

func (s *SubtaskServiceImpl) DeleteSubtask(ctx context.Context, subtaskID uuid.UUID) error {
	subtask, err := s.subtaskRepo.GetByID(ctx, subtaskID)
	if err != nil {
		return apperr.Storage(err)
	}
	if subtask == nil {
		return apperr.NotFound("subtask %s not found", subtaskID)
	}

	if err := s.subtaskRepo.Delete(ctx, subtaskID); err != nil {
		return apperr.Storage(err)
	}
	return nil
}
