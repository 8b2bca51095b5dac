package serviceimpl

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"taskdeck/domain/apperr"
	"taskdeck/domain/models"
	"taskdeck/domain/ports"
	"taskdeck/domain/repositories"
	"taskdeck/domain/services"
	"taskdeck/pkg/logger"
)

const maxAttachmentSize = 25 << 20 // 25MB

type AttachmentServiceImpl struct {
	attachmentRepo repositories.AttachmentRepository
	taskRepo       repositories.TaskRepository
	storage        ports.StoragePort
}

func NewAttachmentService(
	attachmentRepo repositories.AttachmentRepository,
	taskRepo repositories.TaskRepository,
	storage ports.StoragePort,
) services.AttachmentService {
	return &AttachmentServiceImpl{
		attachmentRepo: attachmentRepo,
		taskRepo:       taskRepo,
		storage:        storage,
	}
}

func (s *AttachmentServiceImpl) UploadAttachment(ctx context.Context, taskID uuid.UUID, fileHeader *multipart.FileHeader) (*models.Attachment, error) {
	task, err := s.taskRepo.GetActiveByID(ctx, taskID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if task == nil {
		return nil, apperr.NotFound("task %s not found", taskID)
	}

	if fileHeader.Size <= 0 {
		return nil, apperr.Validation("file is empty")
	}
	if fileHeader.Size > maxAttachmentSize {
		return nil, apperr.Validation("file exceeds %dMB limit", maxAttachmentSize>>20)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperr.Validation("cannot read uploaded file: %v", err)
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	fileName := sanitizeFileName(fileHeader.Filename)
	path := fmt.Sprintf("attachments/%s/%s%s", taskID, uuid.NewString(), filepath.Ext(fileName))

	if _, err := s.storage.UploadFile(file, path, contentType); err != nil {
		return nil, apperr.Storage(err)
	}

	attachment := &models.Attachment{
		ID:       uuid.New(),
		TaskID:   taskID,
		FileName: fileName,
		Path:     path,
		MimeType: contentType,
		FileSize: fileHeader.Size,
	}

	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		// DB fail แล้วไฟล์ขึ้นไปแล้ว - เก็บกวาดก่อนคืน error
		if delErr := s.storage.DeleteFile(path); delErr != nil {
			logger.WarnContext(ctx, "Failed to clean up orphan file", "path", path, "error", delErr)
		}
		return nil, apperr.Storage(err)
	}

	logger.InfoContext(ctx, "Attachment uploaded", "task_id", taskID, "file", fileName, "size", fileHeader.Size)
	return attachment, nil
}

func (s *AttachmentServiceImpl) GetTaskAttachments(ctx context.Context, taskID uuid.UUID) ([]*models.Attachment, error) {
	task, err := s.taskRepo.GetAnyByID(ctx, taskID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if task == nil {
		return nil, apperr.NotFound("task %s not found", taskID)
	}

	attachments, err := s.attachmentRepo.GetByTaskID(ctx, taskID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return attachments, nil
}

func (s *AttachmentServiceImpl) DownloadAttachment(ctx context.Context, attachmentID uuid.UUID) (io.ReadCloser, *models.Attachment, error) {
	attachment, err := s.attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil {
		return nil, nil, apperr.Storage(err)
	}
	if attachment == nil {
		return nil, nil, apperr.NotFound("attachment %s not found", attachmentID)
	}

	reader, _, err := s.storage.GetFileContent(attachment.Path)
	if err != nil {
		return nil, nil, apperr.Storage(err)
	}
	return reader, attachment, nil
}

func (s *AttachmentServiceImpl) DeleteAttachment(ctx context.Context, attachmentID uuid.UUID) error {
	attachment, err := s.attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil {
		return apperr.Storage(err)
	}
	if attachment == nil {
		return apperr.NotFound("attachment %s not found", attachmentID)
	}

	if err := s.attachmentRepo.Delete(ctx, attachmentID); err != nil {
		return apperr.Storage(err)
	}

	if err := s.storage.DeleteFile(attachment.Path); err != nil {
		logger.WarnContext(ctx, "Failed to delete attachment file", "path", attachment.Path, "error", err)
	}
	return nil
}

func (s *AttachmentServiceImpl) AttachmentURL(attachment *models.Attachment) string {
	return s.storage.GetFileURL(attachment.Path)
}

func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." {
		return "file"
	}
	return name
}
