package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskdeck/domain/dto"
	"taskdeck/domain/services"
	"taskdeck/pkg/utils"
)

type DependencyHandler struct {
	dependencyService services.DependencyService
}

func NewDependencyHandler(dependencyService services.DependencyService) *DependencyHandler {
	return &DependencyHandler{
		dependencyService: dependencyService,
	}
}

func (h *DependencyHandler) Add(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.AddDependencyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	dep, err := h.dependencyService.AddDependency(ctx, taskID, req.DependsOnID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, dto.DependencyToResponse(dep))
}

func (h *DependencyHandler) ListByTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	deps, err := h.dependencyService.GetTaskDependencies(ctx, taskID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	responses := make([]dto.DependencyResponse, len(deps))
	for i, d := range deps {
		responses[i] = *dto.DependencyToResponse(d)
	}
	return utils.SuccessResponse(c, responses)
}

func (h *DependencyHandler) Remove(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	dependsOnID, err := uuid.Parse(c.Params("depId"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid dependency ID")
	}

	if err := h.dependencyService.RemoveDependency(ctx, taskID, dependsOnID); err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.NoContentResponse(c)
}
