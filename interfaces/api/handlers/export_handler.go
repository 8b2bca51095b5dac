package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskdeck/domain/services"
	"taskdeck/pkg/logger"
	"taskdeck/pkg/utils"
)

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// ExportTasks ส่ง xlsx ของ active tasks ใน project กลับไป
func (h *ExportHandler) ExportTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project ID")
	}

	data, fileName, err := h.exportService.ExportProjectTasks(ctx, projectID)
	if err != nil {
		logger.WarnContext(ctx, "Export failed", "project_id", projectID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Send(data)
}
