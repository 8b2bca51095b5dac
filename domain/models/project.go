package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name        string    `gorm:"size:100;not null"`
	Slug        string    `gorm:"size:100;uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
	Deadline    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time `gorm:"index"` // soft delete marker

	// Relations
	Tasks []*Task `gorm:"foreignKey:ProjectID"`
}

func (Project) TableName() string {
	return "projects"
}

// IsDeleted ตรวจสอบว่า project อยู่ใน trash หรือไม่
func (p *Project) IsDeleted() bool {
	return p.DeletedAt != nil
}
