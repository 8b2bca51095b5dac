package serviceimpl

import (
	"context"
	"time"

	"taskdeck/domain/repositories"
	"taskdeck/domain/services"
	"taskdeck/pkg/logger"
	"taskdeck/pkg/scheduler"
)

// TrashRetentionConfig การตั้งค่าของ retention job
type TrashRetentionConfig struct {
	TrashTTL time.Duration // อายุสูงสุดของแถวใน trash (default 30 วัน)
	Interval time.Duration // รอบการรัน job (default 1 ชั่วโมง)
}

// TrashRetentionService ไล่ลบแถวที่อยู่ใน trash นานเกิน TTL
// เป็นทางเดียวที่ระบบลบถาวรเองโดยไม่มี user สั่ง
type TrashRetentionService struct {
	config         TrashRetentionConfig
	projectService services.ProjectService
	taskService    services.TaskService
	projectRepo    repositories.ProjectRepository
	taskRepo       repositories.TaskRepository
	scheduler      scheduler.Scheduler
}

func NewTrashRetentionService(
	config TrashRetentionConfig,
	projectService services.ProjectService,
	taskService services.TaskService,
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	sched scheduler.Scheduler,
) *TrashRetentionService {
	if config.TrashTTL <= 0 {
		config.TrashTTL = 30 * 24 * time.Hour
	}
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}

	return &TrashRetentionService{
		config:         config,
		projectService: projectService,
		taskService:    taskService,
		projectRepo:    projectRepo,
		taskRepo:       taskRepo,
		scheduler:      sched,
	}
}

// RegisterJob ลงทะเบียน retention job กับ scheduler
func (s *TrashRetentionService) RegisterJob() error {
	return s.scheduler.AddIntervalJob("trash_retention", s.config.Interval, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := s.RunOnce(ctx); err != nil {
			logger.Error("Trash retention run failed", "error", err)
		}
	})
}

// RunOnce ลบ project และ task ที่ค้างใน trash เกิน TTL หนึ่งรอบ
// ใช้ permanent delete path ปกติ เพื่อให้ dependents กับไฟล์ถูกเก็บกวาดเหมือนกัน
func (s *TrashRetentionService) RunOnce(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-s.config.TrashTTL)

	projects, err := s.projectRepo.ListDeletedBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	for _, p := range projects {
		if err := s.projectService.PermanentDeleteProject(ctx, p.ID); err != nil {
			logger.Error("Failed to purge expired project", "project_id", p.ID, "error", err)
			continue
		}
		logger.Info("Expired project purged", "project_id", p.ID, "deleted_at", p.DeletedAt)
	}

	tasks, err := s.taskRepo.ListDeletedBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if err := s.taskService.PermanentDeleteTask(ctx, t.ID); err != nil {
			logger.Error("Failed to purge expired task", "task_id", t.ID, "error", err)
			continue
		}
		logger.Info("Expired task purged", "task_id", t.ID, "deleted_at", t.DeletedAt)
	}

	return nil
}
