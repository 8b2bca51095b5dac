package dto

import (
	"time"

	"taskdeck/domain/models"
)

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ParseDate แปลง date string จาก request เป็น *time.Time
// "" หมายถึงเคลียร์ค่า (คืน nil)
func ParseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func ProjectToResponse(p *models.Project) *ProjectResponse {
	if p == nil {
		return nil
	}
	return &ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Deadline:    formatDate(p.Deadline),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		DeletedAt:   p.DeletedAt,
	}
}

func TaskToResponse(t *models.Task) *TaskResponse {
	if t == nil {
		return nil
	}
	return &TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Assignee:    t.Assignee,
		StartDate:   formatDate(t.StartDate),
		DueDate:     formatDate(t.DueDate),
		EndDate:     formatDate(t.EndDate),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		LastUpdate:  t.LastUpdate(),
		DeletedAt:   t.DeletedAt,
	}
}

func TasksToResponses(tasks []*models.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = *TaskToResponse(t)
	}
	return out
}

func SubtaskToResponse(s *models.Subtask) *SubtaskResponse {
	if s == nil {
		return nil
	}
	return &SubtaskResponse{
		ID:          s.ID,
		TaskID:      s.TaskID,
		Title:       s.Title,
		Description: s.Description,
		Completed:   s.Completed,
		Status:      string(s.Status()),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func DependencyToResponse(d *models.TaskDependency) *DependencyResponse {
	if d == nil {
		return nil
	}
	return &DependencyResponse{
		TaskID:      d.TaskID,
		DependsOnID: d.DependsOnID,
		CreatedAt:   d.CreatedAt,
	}
}

func AttachmentToResponse(a *models.Attachment, url string) *AttachmentResponse {
	if a == nil {
		return nil
	}
	return &AttachmentResponse{
		ID:        a.ID,
		TaskID:    a.TaskID,
		FileName:  a.FileName,
		MimeType:  a.MimeType,
		FileSize:  a.FileSize,
		URL:       url,
		CreatedAt: a.CreatedAt,
	}
}

func UserToResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
