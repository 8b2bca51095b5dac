package dto

import (
	"time"

	"github.com/google/uuid"
)

type AttachmentResponse struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"taskId"`
	FileName  string    `json:"fileName"`
	MimeType  string    `json:"mimeType"`
	FileSize  int64     `json:"fileSize"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}
