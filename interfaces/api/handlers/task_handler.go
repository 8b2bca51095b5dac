package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskdeck/domain/dto"
	"taskdeck/domain/models"
	"taskdeck/domain/services"
	"taskdeck/pkg/logger"
	"taskdeck/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Create สร้าง task ใหม่ใน project
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	task, err := h.taskService.CreateTask(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Task creation failed", "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, dto.TaskToResponse(task))
}

// ListByProject ดึง tasks ของ project เรียงใหม่สุดก่อน; ?include_deleted=true รวม trash
func (h *TaskHandler) ListByProject(c *fiber.Ctx) error {
	ctx := c.UserContext()

	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	includeDeleted := c.Query("include_deleted") == "true"

	tasks, err := h.taskService.GetProjectTasks(ctx, projectID, includeDeleted)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.TasksToResponses(tasks))
}

// Update patch-style update ตาม field whitelist
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	task, err := h.taskService.UpdateTask(ctx, taskID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Task update failed", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToResponse(task))
}

// UpdateStatus เปลี่ยนสถานะบน board (drag & drop)
func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	task, err := h.taskService.UpdateStatus(ctx, taskID, models.TaskStatus(req.Status))
	if err != nil {
		logger.WarnContext(ctx, "Status update failed", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToResponse(task))
}

// Assign กำหนดผู้รับผิดชอบ (null = unassign)
func (h *TaskHandler) Assign(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.AssignTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	task, err := h.taskService.Assign(ctx, taskID, req.Assignee)
	if err != nil {
		logger.WarnContext(ctx, "Assign failed", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToResponse(task))
}

// Delete ย้าย task ลง trash
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	if err := h.taskService.SoftDeleteTask(ctx, taskID); err != nil {
		logger.WarnContext(ctx, "Task delete failed", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.NoContentResponse(c)
}

// Restore กู้ task ออกจาก trash
func (h *TaskHandler) Restore(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	task, err := h.taskService.RestoreTask(ctx, taskID)
	if err != nil {
		logger.WarnContext(ctx, "Task restore failed", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToResponse(task))
}

// PermanentDelete ลบถาวร (ต้องอยู่ใน trash ก่อน)
func (h *TaskHandler) PermanentDelete(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	if err := h.taskService.PermanentDeleteTask(ctx, taskID); err != nil {
		logger.WarnContext(ctx, "Permanent delete failed", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.NoContentResponse(c)
}

// Duplicate สร้างสำเนาของ task
func (h *TaskHandler) Duplicate(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	task, err := h.taskService.DuplicateTask(ctx, taskID)
	if err != nil {
		logger.WarnContext(ctx, "Duplicate failed", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, dto.TaskToResponse(task))
}

// Undo ถอยกลับ field edit ล่าสุด
func (h *TaskHandler) Undo(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	task, err := h.taskService.UndoTask(ctx, taskID)
	if err != nil {
		logger.WarnContext(ctx, "Undo failed", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToResponse(task))
}
