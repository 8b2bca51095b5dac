package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskdeck/domain/dto"
	"taskdeck/domain/services"
	"taskdeck/pkg/logger"
	"taskdeck/pkg/utils"
)

type AttachmentHandler struct {
	attachmentService services.AttachmentService
}

func NewAttachmentHandler(attachmentService services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
	}
}

// Upload รับไฟล์ multipart field "file" แล้วผูกกับ task
func (h *AttachmentHandler) Upload(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequestResponse(c, "Missing file field")
	}

	attachment, err := h.attachmentService.UploadAttachment(ctx, taskID, fileHeader)
	if err != nil {
		logger.WarnContext(ctx, "Attachment upload failed", "task_id", taskID, "error", err)
		return utils.AppErrorResponse(c, err)
	}

	url := h.attachmentService.AttachmentURL(attachment)
	return utils.CreatedResponse(c, dto.AttachmentToResponse(attachment, url))
}

func (h *AttachmentHandler) ListByTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	taskID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	attachments, err := h.attachmentService.GetTaskAttachments(ctx, taskID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}

	responses := make([]dto.AttachmentResponse, len(attachments))
	for i, a := range attachments {
		responses[i] = *dto.AttachmentToResponse(a, h.attachmentService.AttachmentURL(a))
	}
	return utils.SuccessResponse(c, responses)
}

// Download stream เนื้อไฟล์กลับไปพร้อม Content-Disposition
func (h *AttachmentHandler) Download(c *fiber.Ctx) error {
	ctx := c.UserContext()

	attachmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid attachment ID")
	}

	reader, attachment, err := h.attachmentService.DownloadAttachment(ctx, attachmentID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	defer reader.Close()

	c.Set(fiber.HeaderContentType, attachment.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", attachment.FileName))
	return c.SendStream(reader, int(attachment.FileSize))
}

func (h *AttachmentHandler) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()

	attachmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid attachment ID")
	}

	if err := h.attachmentService.DeleteAttachment(ctx, attachmentID); err != nil {
		return utils.AppErrorResponse(c, err)
	}

	return utils.NoContentResponse(c)
}
