package ports

import (
	"context"

	"github.com/google/uuid"
)

// BoardEvent บอก board ที่เปิดอยู่ว่าข้อมูลของ project เปลี่ยนแล้วต้อง re-fetch
// event เป็นสัญญาณเฉย ๆ ไม่ได้ carry ข้อมูล task เต็ม (board ดึงใหม่เองเสมอ)
type BoardEvent struct {
	ProjectID uuid.UUID `json:"projectId"`
	TaskID    uuid.UUID `json:"taskId,omitempty"`
	Action    string    `json:"action"` // created, updated, deleted, restored, purged, undone, duplicated
}

const (
	EventTaskCreated    = "created"
	EventTaskUpdated    = "updated"
	EventTaskDeleted    = "deleted"
	EventTaskRestored   = "restored"
	EventTaskPurged     = "purged"
	EventTaskUndone     = "undone"
	EventTaskDuplicated = "duplicated"
)

// EventPublisher ส่ง board event ออกไปหลัง mutation สำเร็จ
// implementation ต้องไม่ block request path; ส่งไม่ได้ = log แล้วปล่อยผ่าน
type EventPublisher interface {
	PublishBoardEvent(ctx context.Context, event BoardEvent) error
}
