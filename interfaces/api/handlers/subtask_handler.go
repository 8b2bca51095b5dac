package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskdeck/domain/dto"
	"taskdeck/domain/services"
	"taskdeck/pkg/utils"
)

type SubtaskHandler struct {
	subtaskService services.SubtaskService
}

func NewSubtaskHandler(subtaskService services.SubtaskService) *SubtaskHandler {
	return &SubtaskHandler{
		subtaskService: subtaskService,
	}
}

func (h *SubtaskHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.CreateSubtaskRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	subtask, err := h.subtaskService.CreateSubtask(ctx, taskID, &req)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, dto.SubtaskToResponse(subtask))
}

func (h *SubtaskHandler) ListByTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	subtasks, err := h.subtaskService.GetTaskSubtasks(ctx, taskID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	responses := make([]dto.SubtaskResponse, len(subtasks))
	for i, s := range subtasks {
		responses[i] = *dto.SubtaskToResponse(s)
	}
	return utils.SuccessResponse(c, responses)
}

func (h *SubtaskHandler) Update(c *fiber.Ctx) error {
	ctx := c.UserContext()

	subtaskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid subtask ID")
	}

	var req dto.UpdateSubtaskRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	subtask, err := h.subtaskService.UpdateSubtask(ctx, subtaskID, &req)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.SubtaskToResponse(subtask))
}

func (h *SubtaskHandler) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()

	subtaskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid subtask ID")
	}

	if err := h.subtaskService.DeleteSubtask(ctx, subtaskID); err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.NoContentResponse(c)
}
