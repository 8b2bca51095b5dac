package models

import (
	"time"

	"github.com/google/uuid"
)

type Subtask struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"size:200;not null"`
	Description string    `gorm:"type:text"`
	Completed   bool      `gorm:"default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Task *Task `gorm:"foreignKey:TaskID"`
}

func (Subtask) TableName() string {
	return "subtasks"
}

// Status derived จาก completed flag
func (s *Subtask) Status() TaskStatus {
	if s.Completed {
		return TaskStatusDone
	}
	return TaskStatusToDo
}
