package services

import (
	"context"

	"github.com/google/uuid"

	"taskdeck/domain/dto"
	"taskdeck/domain/models"
)

type SubtaskService interface {
	CreateSubtask(ctx context.Context, taskID uuid.UUID, req *dto.CreateSubtaskRequest) (*models.Subtask, error)
	GetTaskSubtasks(ctx context.Context, taskID uuid.UUID) ([]*models.Subtask, error)
	UpdateSubtask(ctx context.Context, subtaskID uuid.UUID, req *dto.UpdateSubtaskRequest) (*models.Subtask, error)
	DeleteSubtask(ctx context.Context, subtaskID uuid.UUID) error
}
