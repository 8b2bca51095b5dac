package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus สถานะของ task บน board
type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
	TaskStatusCanceled   TaskStatus = "Canceled"
)

// TaskPriority ระดับความสำคัญ
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusDone, TaskStatusCanceled:
		return true
	}
	return false
}

func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProjectID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	Title       string       `gorm:"size:200;not null"`
	Description string       `gorm:"type:text"`
	Status      TaskStatus   `gorm:"size:20;default:'To Do'"`
	Priority    TaskPriority `gorm:"size:10;default:'Medium'"`
	Assignee    *string      `gorm:"size:100"`
	StartDate   *time.Time
	DueDate     *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time `gorm:"index"` // soft delete marker

	// CascadeDelete ถูก set เฉพาะตอน project cascade soft delete
	// restore ของ project จะกู้คืนเฉพาะ task ที่มี flag นี้
	CascadeDelete bool `gorm:"default:false"`

	// Relations
	Project  *Project   `gorm:"foreignKey:ProjectID"`
	Subtasks []*Subtask `gorm:"foreignKey:TaskID"`
}

func (Task) TableName() string {
	return "tasks"
}

// IsDeleted ตรวจสอบว่า task อยู่ใน trash หรือไม่
func (t *Task) IsDeleted() bool {
	return t.DeletedAt != nil
}

// LastUpdate คือ updated_at (fallback เป็น created_at)
func (t *Task) LastUpdate() time.Time {
	if t.UpdatedAt.IsZero() {
		return t.CreatedAt
	}
	return t.UpdatedAt
}

// DatesOrdered ตรวจสอบ invariant start_date <= end_date
func (t *Task) DatesOrdered() bool {
	if t.StartDate == nil || t.EndDate == nil {
		return true
	}
	return !t.StartDate.After(*t.EndDate)
}
