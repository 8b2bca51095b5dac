package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskDependency คือ directed edge ระหว่าง task (task_id depends on depends_on_id)
// weak reference เท่านั้น ลบ endpoint ฝั่งใดฝั่งหนึ่งแล้ว edge ต้องถูกเคลียร์
type TaskDependency struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_task_depends"`
	DependsOnID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_task_depends"`
	CreatedAt   time.Time
}

func (TaskDependency) TableName() string {
	return "task_dependencies"
}
