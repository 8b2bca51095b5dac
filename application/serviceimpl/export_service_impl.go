package serviceimpl

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"taskdeck/domain/apperr"
	"taskdeck/domain/dto"
	"taskdeck/domain/repositories"
	"taskdeck/domain/services"
	"taskdeck/pkg/logger"
)

type ExportServiceImpl struct {
	projectRepo repositories.ProjectRepository
	taskRepo    repositories.TaskRepository
}

func NewExportService(
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
) services.ExportService {
	return &ExportServiceImpl{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

var exportHeaders = []string{
	"Title", "Description", "Status", "Priority", "Assignee",
	"Start Date", "Due Date", "End Date", "Created At", "Updated At",
}

func (s *ExportServiceImpl) ExportProjectTasks(ctx context.Context, projectID uuid.UUID) ([]byte, string, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, "", apperr.Storage(err)
	}
	if project == nil {
		return nil, "", apperr.NotFound("project %s not found", projectID)
	}

	// export เอาเฉพาะ active rows; trash ไม่ติดไปด้วย
	tasks, err := s.taskRepo.GetByProjectID(ctx, projectID, false)
	if err != nil {
		return nil, "", apperr.Storage(err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Tasks"
	f.SetSheetName("Sheet1", sheet)

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err == nil {
		lastCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		f.SetCellStyle(sheet, "A1", lastCell, headerStyle)
	}

	for rowIdx, task := range tasks {
		row := []any{
			task.Title,
			task.Description,
			string(task.Status),
			string(task.Priority),
			derefOr(task.Assignee, ""),
			formatExportDate(task.StartDate),
			formatExportDate(task.DueDate),
			formatExportDate(task.EndDate),
			task.CreatedAt.Format(time.RFC3339),
			task.UpdatedAt.Format(time.RFC3339),
		}
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	f.SetColWidth(sheet, "A", "B", 30)
	f.SetColWidth(sheet, "C", "H", 14)
	f.SetColWidth(sheet, "I", "J", 22)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", apperr.Storage(err)
	}

	fileName := fmt.Sprintf("%s-tasks-%s.xlsx", project.Slug, time.Now().UTC().Format("20060102"))
	logger.InfoContext(ctx, "Project tasks exported", "project_id", projectID, "rows", len(tasks))
	return buf.Bytes(), fileName, nil
}

func formatExportDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dto.DateLayout)
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
