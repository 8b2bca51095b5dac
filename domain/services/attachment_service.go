package services

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/google/uuid"

	"taskdeck/domain/models"
)

type AttachmentService interface {
	UploadAttachment(ctx context.Context, taskID uuid.UUID, fileHeader *multipart.FileHeader) (*models.Attachment, error)
	GetTaskAttachments(ctx context.Context, taskID uuid.UUID) ([]*models.Attachment, error)
	// DownloadAttachment คืน reader + metadata; caller ต้อง Close reader
	DownloadAttachment(ctx context.Context, attachmentID uuid.UUID) (io.ReadCloser, *models.Attachment, error)
	DeleteAttachment(ctx context.Context, attachmentID uuid.UUID) error
	AttachmentURL(attachment *models.Attachment) string
}
