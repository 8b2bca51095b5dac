package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddDependencyRequest struct {
	DependsOnID uuid.UUID `json:"dependsOnId" validate:"required"`
}

type DependencyResponse struct {
	TaskID      uuid.UUID `json:"taskId"`
	DependsOnID uuid.UUID `json:"dependsOnId"`
	CreatedAt   time.Time `json:"createdAt"`
}
