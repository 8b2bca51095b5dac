package services

import (
	"context"

	"github.com/google/uuid"
)

// ExportService สร้าง spreadsheet ของ active tasks ใน project
// รวมเฉพาะแถวที่ deleted_at IS NULL เรียง created_at DESC เท่านั้น
type ExportService interface {
	// ExportProjectTasks คืน xlsx bytes พร้อมชื่อไฟล์ที่แนะนำ
	ExportProjectTasks(ctx context.Context, projectID uuid.UUID) ([]byte, string, error)
}
