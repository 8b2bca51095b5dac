package serviceimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskdeck/domain/apperr"
	"taskdeck/domain/dto"
	"taskdeck/domain/models"
	"taskdeck/domain/ports"
	"taskdeck/domain/repositories"
	"taskdeck/domain/services"
	"taskdeck/infrastructure/redis"
	"taskdeck/pkg/logger"
)

const (
	taskCachePrefix = "tasks:"
	taskCacheTTL    = 5 * time.Minute

	// จำนวน history entries สูงสุดต่อ task; เกินจากนี้ตัวเก่าสุดถูกตัดทิ้ง
	defaultHistoryLimit = 20
)

type TaskServiceImpl struct {
	taskRepo       repositories.TaskRepository
	projectRepo    repositories.ProjectRepository
	subtaskRepo    repositories.SubtaskRepository
	dependencyRepo repositories.DependencyRepository
	historyRepo    repositories.HistoryRepository
	attachmentRepo repositories.AttachmentRepository
	txManager      repositories.TxManager
	storage        ports.StoragePort
	publisher      ports.EventPublisher
	redisClient    *redis.Client // optional - ถ้าไม่มีจะ query DB ตลอด
	historyLimit   int
	cacheTTL       time.Duration
}

// TaskServiceOption ปรับแต่ง task service ตอนสร้าง
type TaskServiceOption func(*TaskServiceImpl)

// WithHistoryLimit กำหนดจำนวน history ต่อ task ที่เก็บไว้ให้ undo
func WithHistoryLimit(limit int) TaskServiceOption {
	return func(s *TaskServiceImpl) {
		if limit > 0 {
			s.historyLimit = limit
		}
	}
}

// WithCacheTTL กำหนดอายุของ cached board lists
func WithCacheTTL(ttl time.Duration) TaskServiceOption {
	return func(s *TaskServiceImpl) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	projectRepo repositories.ProjectRepository,
	subtaskRepo repositories.SubtaskRepository,
	dependencyRepo repositories.DependencyRepository,
	historyRepo repositories.HistoryRepository,
	attachmentRepo repositories.AttachmentRepository,
	txManager repositories.TxManager,
	storage ports.StoragePort,
	publisher ports.EventPublisher,
	opts ...TaskServiceOption,
) services.TaskService {
	svc := &TaskServiceImpl{
		taskRepo:       taskRepo,
		projectRepo:    projectRepo,
		subtaskRepo:    subtaskRepo,
		dependencyRepo: dependencyRepo,
		historyRepo:    historyRepo,
		attachmentRepo: attachmentRepo,
		txManager:      txManager,
		storage:        storage,
		publisher:      publisher,
		historyLimit:   defaultHistoryLimit,
		cacheTTL:       taskCacheTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// NewTaskServiceWithCache สร้าง task service พร้อม Redis cache ของ board lists
func NewTaskServiceWithCache(
	taskRepo repositories.TaskRepository,
	projectRepo repositories.ProjectRepository,
	subtaskRepo repositories.SubtaskRepository,
	dependencyRepo repositories.DependencyRepository,
	historyRepo repositories.HistoryRepository,
	attachmentRepo repositories.AttachmentRepository,
	txManager repositories.TxManager,
	storage ports.StoragePort,
	publisher ports.EventPublisher,
	redisClient *redis.Client,
	opts ...TaskServiceOption,
) services.TaskService {
	svc := &TaskServiceImpl{
		taskRepo:       taskRepo,
		projectRepo:    projectRepo,
		subtaskRepo:    subtaskRepo,
		dependencyRepo: dependencyRepo,
		historyRepo:    historyRepo,
		attachmentRepo: attachmentRepo,
		txManager:      txManager,
		storage:        storage,
		publisher:      publisher,
		redisClient:    redisClient,
		historyLimit:   defaultHistoryLimit,
		cacheTTL:       taskCacheTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, req *dto.CreateTaskRequest) (*models.Task, error) {
	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if project == nil {
		return nil, apperr.NotFound("project %s not found", req.ProjectID)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.Validation("title must not be empty")
	}

	// field ที่ไม่ส่งมาได้ค่า default ของ board
	status := models.TaskStatusToDo
	if req.Status != "" {
		status = models.TaskStatus(req.Status)
		if !models.ValidTaskStatus(status) {
			return nil, apperr.Validation("invalid status %q", req.Status)
		}
	}

	priority := models.TaskPriorityMedium
	if req.Priority != "" {
		priority = models.TaskPriority(req.Priority)
		if !models.ValidTaskPriority(priority) {
			return nil, apperr.Validation("invalid priority %q", req.Priority)
		}
	}

	startDate, err := dto.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperr.Validation("invalid startDate: %v", err)
	}
	dueDate, err := dto.ParseDate(req.DueDate)
	if err != nil {
		return nil, apperr.Validation("invalid dueDate: %v", err)
	}
	endDate, err := dto.ParseDate(req.EndDate)
	if err != nil {
		return nil, apperr.Validation("invalid endDate: %v", err)
	}

	task := &models.Task{
		ID:          uuid.New(),
		ProjectID:   req.ProjectID,
		Title:       title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		Assignee:    normalizeAssignee(req.Assignee),
		StartDate:   startDate,
		DueDate:     dueDate,
		EndDate:     endDate,
	}

	if !task.DatesOrdered() {
		return nil, apperr.Validation("startDate must not be after endDate")
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, apperr.Storage(err)
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "project_id", task.ProjectID)
	s.invalidateTaskCache(ctx, task.ProjectID)
	s.publishEvent(ctx, task.ProjectID, task.ID, ports.EventTaskCreated)

	return task, nil
}

func (s *TaskServiceImpl) GetProjectTasks(ctx context.Context, projectID uuid.UUID, includeDeleted bool) ([]*models.Task, error) {
	project, err := s.projectRepo.GetAnyByID(ctx, projectID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if project == nil {
		return nil, apperr.NotFound("project %s not found", projectID)
	}

	cacheKey := taskListCacheKey(projectID, includeDeleted)
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey); err == nil {
			var tasks []*models.Task
			if err := json.Unmarshal([]byte(cached), &tasks); err == nil {
				return tasks, nil
			}
		}
	}

	tasks, err := s.taskRepo.GetByProjectID(ctx, projectID, includeDeleted)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(tasks); err == nil {
			if err := s.redisClient.Set(ctx, cacheKey, string(data), s.cacheTTL); err != nil {
				logger.WarnContext(ctx, "Failed to cache task list", "error", err)
			}
		}
	}

	return tasks, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	if req.Empty() {
		return nil, apperr.Validation("no valid fields to update")
	}

	task, err := s.getActiveTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	// Merge ลง copy ก่อน แล้วค่อย validate ภาพรวมของแถวหลัง merge
	merged := *task

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperr.Validation("title must not be empty")
		}
		merged.Title = title
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		if !models.ValidTaskStatus(status) {
			return nil, apperr.Validation("invalid status %q", *req.Status)
		}
		merged.Status = status
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		if !models.ValidTaskPriority(priority) {
			return nil, apperr.Validation("invalid priority %q", *req.Priority)
		}
		merged.Priority = priority
	}
	if req.Assignee != nil {
		merged.Assignee = normalizeAssignee(req.Assignee)
	}
	if req.StartDate != nil {
		startDate, err := dto.ParseDate(req.StartDate)
		if err != nil {
			return nil, apperr.Validation("invalid startDate: %v", err)
		}
		merged.StartDate = startDate
	}
	if req.DueDate != nil {
		dueDate, err := dto.ParseDate(req.DueDate)
		if err != nil {
			return nil, apperr.Validation("invalid dueDate: %v", err)
		}
		merged.DueDate = dueDate
	}
	if req.EndDate != nil {
		endDate, err := dto.ParseDate(req.EndDate)
		if err != nil {
			return nil, apperr.Validation("invalid endDate: %v", err)
		}
		merged.EndDate = endDate
	}

	if !merged.DatesOrdered() {
		return nil, apperr.Validation("startDate must not be after endDate")
	}

	updated, err := s.applyMutation(ctx, task, &merged)
	if err != nil {
		return nil, err
	}

	s.invalidateTaskCache(ctx, updated.ProjectID)
	s.publishEvent(ctx, updated.ProjectID, updated.ID, ports.EventTaskUpdated)
	return updated, nil
}

func (s *TaskServiceImpl) UpdateStatus(ctx context.Context, taskID uuid.UUID, status models.TaskStatus) (*models.Task, error) {
	if !models.ValidTaskStatus(status) {
		return nil, apperr.Validation("invalid status %q", status)
	}

	task, err := s.getActiveTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	merged := *task
	merged.Status = status

	updated, err := s.applyMutation(ctx, task, &merged)
	if err != nil {
		return nil, err
	}

	s.invalidateTaskCache(ctx, updated.ProjectID)
	s.publishEvent(ctx, updated.ProjectID, updated.ID, ports.EventTaskUpdated)
	return updated, nil
}

func (s *TaskServiceImpl) Assign(ctx context.Context, taskID uuid.UUID, assignee *string) (*models.Task, error) {
	task, err := s.getActiveTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	merged := *task
	merged.Assignee = normalizeAssignee(assignee)

	updated, err := s.applyMutation(ctx, task, &merged)
	if err != nil {
		return nil, err
	}

	s.invalidateTaskCache(ctx, updated.ProjectID)
	s.publishEvent(ctx, updated.ProjectID, updated.ID, ports.EventTaskUpdated)
	return updated, nil
}

func (s *TaskServiceImpl) SoftDeleteTask(ctx context.Context, taskID uuid.UUID) error {
	task, err := s.getActiveTask(ctx, taskID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	task.DeletedAt = &now
	task.CascadeDelete = false
	task.UpdatedAt = now

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return apperr.Storage(err)
	}

	logger.InfoContext(ctx, "Task moved to trash", "task_id", task.ID)
	s.invalidateTaskCache(ctx, task.ProjectID)
	s.publishEvent(ctx, task.ProjectID, task.ID, ports.EventTaskDeleted)
	return nil
}

func (s *TaskServiceImpl) RestoreTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetAnyByID(ctx, taskID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if task == nil {
		return nil, apperr.NotFound("task %s not found", taskID)
	}
	if !task.IsDeleted() {
		return nil, apperr.Conflict("task %s is not in trash", taskID)
	}

	// ห้าม restore task ของ project ที่ยังอยู่ใน trash ไม่งั้นได้แถวกำพร้า
	project, err := s.projectRepo.GetByID(ctx, task.ProjectID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if project == nil {
		return nil, apperr.Conflict("project of task %s is deleted; restore the project first", taskID)
	}

	task.DeletedAt = nil
	task.CascadeDelete = false
	task.UpdatedAt = time.Now().UTC()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, apperr.Storage(err)
	}

	logger.InfoContext(ctx, "Task restored", "task_id", task.ID)
	s.invalidateTaskCache(ctx, task.ProjectID)
	s.publishEvent(ctx, task.ProjectID, task.ID, ports.EventTaskRestored)
	return task, nil
}

func (s *TaskServiceImpl) PermanentDeleteTask(ctx context.Context, taskID uuid.UUID) error {
	task, err := s.taskRepo.GetAnyByID(ctx, taskID)
	if err != nil {
		return apperr.Storage(err)
	}
	if task == nil {
		return apperr.NotFound("task %s not found", taskID)
	}
	if !task.IsDeleted() {
		// ต้องผ่าน trash ก่อนเสมอ กันลบพลาดจาก UI
		return apperr.Conflict("task %s must be moved to trash before permanent delete", taskID)
	}

	attachments, err := s.attachmentRepo.GetByTaskID(ctx, taskID)
	if err != nil {
		return apperr.Storage(err)
	}

	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.subtaskRepo.DeleteByTaskID(txCtx, taskID); err != nil {
			return err
		}
		if err := s.dependencyRepo.DeleteByTaskID(txCtx, taskID); err != nil {
			return err
		}
		if err := s.historyRepo.DeleteByTaskID(txCtx, taskID); err != nil {
			return err
		}
		if err := s.attachmentRepo.DeleteByTaskID(txCtx, taskID); err != nil {
			return err
		}
		return s.taskRepo.HardDelete(txCtx, taskID)
	})
	if err != nil {
		return apperr.Storage(err)
	}

	// ลบไฟล์หลัง commit; ไฟล์ค้างดีกว่า row ค้าง
	for _, a := range attachments {
		if err := s.storage.DeleteFile(a.Path); err != nil {
			logger.WarnContext(ctx, "Failed to delete attachment file", "path", a.Path, "error", err)
		}
	}

	logger.InfoContext(ctx, "Task permanently deleted", "task_id", taskID)
	s.invalidateTaskCache(ctx, task.ProjectID)
	s.publishEvent(ctx, task.ProjectID, taskID, ports.EventTaskPurged)
	return nil
}

func (s *TaskServiceImpl) DuplicateTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	src, err := s.getActiveTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	copyTask := &models.Task{
		ID:          uuid.New(),
		ProjectID:   src.ProjectID,
		Title:       src.Title + " (Copy)",
		Description: src.Description,
		Status:      src.Status,
		Priority:    src.Priority,
		Assignee:    src.Assignee,
		DueDate:     src.DueDate,
	}

	if err := s.taskRepo.Create(ctx, copyTask); err != nil {
		return nil, apperr.Storage(err)
	}

	logger.InfoContext(ctx, "Task duplicated", "source_id", src.ID, "copy_id", copyTask.ID)
	s.invalidateTaskCache(ctx, copyTask.ProjectID)
	s.publishEvent(ctx, copyTask.ProjectID, copyTask.ID, ports.EventTaskDuplicated)
	return copyTask, nil
}

func (s *TaskServiceImpl) UndoTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.getActiveTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var restored *models.Task
	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		entry, err := s.historyRepo.GetLatestByTaskID(txCtx, taskID)
		if err != nil {
			return err
		}
		if entry == nil {
			return apperr.Conflict("task %s has no edit history to undo", taskID)
		}

		entry.ApplyTo(task)
		task.UpdatedAt = time.Now().UTC()

		if err := s.taskRepo.Update(txCtx, task); err != nil {
			return err
		}
		// entry ถูกใช้แล้ว ลบทิ้งเพื่อให้ undo ครั้งถัดไปถอยไปก่อนหน้า
		if err := s.historyRepo.Delete(txCtx, entry.ID); err != nil {
			return err
		}

		restored = task
		return nil
	})
	if err != nil {
		if _, ok := apperr.KindOf(err); ok {
			return nil, err
		}
		return nil, apperr.Storage(err)
	}

	logger.InfoContext(ctx, "Task undo applied", "task_id", taskID)
	s.invalidateTaskCache(ctx, restored.ProjectID)
	s.publishEvent(ctx, restored.ProjectID, restored.ID, ports.EventTaskUndone)
	return restored, nil
}

// ========== Helpers ==========

// applyMutation บันทึก snapshot ของสถานะเดิมแล้วเขียนสถานะใหม่ใน transaction เดียว
// snapshot เกิดทุกครั้งไม่ว่า field จะเปลี่ยนจริงหรือไม่ เพื่อให้ undo เดินถอยได้เสมอ
func (s *TaskServiceImpl) applyMutation(ctx context.Context, current, merged *models.Task) (*models.Task, error) {
	now := time.Now().UTC()
	snapshot := models.SnapshotTask(current, now)
	merged.UpdatedAt = now

	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.historyRepo.Create(txCtx, snapshot); err != nil {
			return err
		}
		if err := s.taskRepo.Update(txCtx, merged); err != nil {
			return err
		}
		_, err := s.historyRepo.PruneOldest(txCtx, merged.ID, s.historyLimit)
		return err
	})
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return merged, nil
}

func (s *TaskServiceImpl) getActiveTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetActiveByID(ctx, taskID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if task == nil {
		return nil, apperr.NotFound("task %s not found", taskID)
	}
	return task, nil
}

// normalizeAssignee trim whitespace; ค่าว่างหมายถึง unassigned (nil)
func normalizeAssignee(assignee *string) *string {
	if assignee == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*assignee)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func taskListCacheKey(projectID uuid.UUID, includeDeleted bool) string {
	if includeDeleted {
		return fmt.Sprintf("%s%s:all", taskCachePrefix, projectID)
	}
	return fmt.Sprintf("%s%s:active", taskCachePrefix, projectID)
}

func (s *TaskServiceImpl) invalidateTaskCache(ctx context.Context, projectID uuid.UUID) {
	if s.redisClient == nil {
		return
	}
	pattern := fmt.Sprintf("%s%s:*", taskCachePrefix, projectID)
	if _, err := s.redisClient.ScanAndDelete(ctx, pattern); err != nil {
		logger.WarnContext(ctx, "Failed to invalidate task cache", "project_id", projectID, "error", err)
	}
}

func (s *TaskServiceImpl) publishEvent(ctx context.Context, projectID, taskID uuid.UUID, action string) {
	event := ports.BoardEvent{ProjectID: projectID, TaskID: taskID, Action: action}
	if err := s.publisher.PublishBoardEvent(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish board event", "action", action, "error", err)
	}
}
