package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskdeck/domain/dto"
	"taskdeck/domain/services"
	"taskdeck/pkg/logger"
	"taskdeck/pkg/utils"
)

type ProjectHandler struct {
	projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// Create สร้าง project ใหม่
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return utils.ValidationErrorResponse(c, errors)
	}

	project, err := h.projectService.CreateProject(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Project creation failed", "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, dto.ProjectToResponse(project))
}

// List ดึง projects แบบ paginated; ?include_deleted=true รวม trash
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	includeDeleted := c.Query("include_deleted") == "true"

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	projects, total, err := h.projectService.ListProjects(ctx, includeDeleted, offset, limit)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	responses := make([]dto.ProjectResponse, len(projects))
	for i, p := range projects {
		responses[i] = *dto.ProjectToResponse(p)
	}

	return utils.PaginatedSuccessResponse(c, responses, total, page, limit)
}

// GetByID ดึง project ตาม ID
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	project, err := h.projectService.GetProject(ctx, projectID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ProjectToResponse(project))
}

// Update อัปเดต project metadata
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	ctx := c.UserContext()

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	var req dto.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	project, err := h.projectService.UpdateProject(ctx, projectID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Project update failed", "project_id", projectID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ProjectToResponse(project))
}

// Delete ย้าย project ลง trash พร้อม cascade ไปยัง active tasks
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	if err := h.projectService.SoftDeleteProject(ctx, projectID); err != nil {
		logger.WarnContext(ctx, "Project delete failed", "project_id", projectID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.NoContentResponse(c)
}

// Restore กู้ project พร้อม tasks ที่ถูก cascade delete มาด้วยกัน
func (h *ProjectHandler) Restore(c *fiber.Ctx) error {
	ctx := c.UserContext()

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	project, err := h.projectService.RestoreProject(ctx, projectID)
	if err != nil {
		logger.WarnContext(ctx, "Project restore failed", "project_id", projectID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ProjectToResponse(project))
}

// PermanentDelete ลบ project กับข้อมูลทั้งหมดถาวร
func (h *ProjectHandler) PermanentDelete(c *fiber.Ctx) error {
	ctx := c.UserContext()

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	if err := h.projectService.PermanentDeleteProject(ctx, projectID); err != nil {
		logger.WarnContext(ctx, "Project permanent delete failed", "project_id", projectID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.NoContentResponse(c)
}
