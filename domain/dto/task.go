package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	ProjectID uuid.UUID `json:"projectId" validate:"required"`
	Title     string    `json:"title" validate:"required,min=1,max=200"`
	// Description คือช่อง comment เดิมของ task
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Status      string  `json:"status" validate:"omitempty,oneof='To Do' 'In Progress' 'Done' 'Canceled'"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	Assignee    *string `json:"assignee" validate:"omitempty,max=100"`
	StartDate   *string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	DueDate     *string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateTaskRequest คือ field whitelist ของ patch-style update
// nil = ไม่แตะ field นั้น; date เป็น "" = เคลียร์ค่า
// key อื่นนอก whitelist ถูก BodyParser ทิ้งเงียบ ๆ
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Status      *string `json:"status" validate:"omitempty,oneof='To Do' 'In Progress' 'Done' 'Canceled'"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	Assignee    *string `json:"assignee" validate:"omitempty,max=100"`
	StartDate   *string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	DueDate     *string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// Empty ตรวจสอบว่า request ไม่มี whitelisted field เลย
func (r *UpdateTaskRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Status == nil &&
		r.Priority == nil && r.Assignee == nil &&
		r.StartDate == nil && r.DueDate == nil && r.EndDate == nil
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof='To Do' 'In Progress' 'Done' 'Canceled'"`
}

type AssignTaskRequest struct {
	Assignee *string `json:"assignee" validate:"omitempty,max=100"`
}

type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Assignee    *string    `json:"assignee"`
	StartDate   *string    `json:"startDate"`
	DueDate     *string    `json:"dueDate"`
	EndDate     *string    `json:"endDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	LastUpdate  time.Time  `json:"lastUpdate"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}
