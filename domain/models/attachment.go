package models

import (
	"time"

	"github.com/google/uuid"
)

type Attachment struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName  string    `gorm:"size:255;not null"`
	Path      string    `gorm:"size:255;not null"` // path ใน storage backend
	MimeType  string    `gorm:"size:100"`
	FileSize  int64
	CreatedAt time.Time

	Task *Task `gorm:"foreignKey:TaskID"`
}

func (Attachment) TableName() string {
	return "file_attachments"
}
