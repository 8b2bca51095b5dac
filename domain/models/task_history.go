package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskHistoryEntry เก็บ snapshot ของ mutable fields ก่อน update ทุกครั้ง
// append-only; undo อ่าน entry ล่าสุดแล้วลบทิ้งหลังใช้
type TaskHistoryEntry struct {
	ID          uuid.UUID    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TaskID      uuid.UUID    `gorm:"type:uuid;not null;index"`
	Title       string       `gorm:"size:200;not null"`
	Description string       `gorm:"type:text"`
	Status      TaskStatus   `gorm:"size:20"`
	Priority    TaskPriority `gorm:"size:10"`
	Assignee    *string      `gorm:"size:100"`
	StartDate   *time.Time
	DueDate     *time.Time
	EndDate     *time.Time
	ChangedAt   time.Time `gorm:"index"`
}

func (TaskHistoryEntry) TableName() string {
	return "task_history"
}

// SnapshotTask สร้าง history entry จากสถานะปัจจุบันของ task
func SnapshotTask(t *Task, now time.Time) *TaskHistoryEntry {
	return &TaskHistoryEntry{
		ID:          uuid.New(),
		TaskID:      t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Assignee:    t.Assignee,
		StartDate:   t.StartDate,
		DueDate:     t.DueDate,
		EndDate:     t.EndDate,
		ChangedAt:   now,
	}
}

// ApplyTo เขียน snapshot กลับลง task (ใช้ตอน undo)
func (h *TaskHistoryEntry) ApplyTo(t *Task) {
	t.Title = h.Title
	t.Description = h.Description
	t.Status = h.Status
	t.Priority = h.Priority
	t.Assignee = h.Assignee
	t.StartDate = h.StartDate
	t.DueDate = h.DueDate
	t.EndDate = h.EndDate
}
