package serviceimpl

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskdeck/domain/models"
	"taskdeck/domain/ports"
)

// In-memory fakes ของ repository layer สำหรับทดสอบ service semantics
// โดยไม่ต้องมี Postgres; พฤติกรรมเลียน GORM (Get คืน copy, Update แทนที่ทั้งแถว)

type memProjectRepo struct {
	mu       sync.Mutex
	projects map[uuid.UUID]models.Project
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: make(map[uuid.UUID]models.Project)}
}

func (r *memProjectRepo) Create(_ context.Context, p *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.projects[p.ID] = *p
	return nil
}

func (r *memProjectRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (r *memProjectRepo) GetAnyByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (r *memProjectRepo) GetBySlug(_ context.Context, slug string) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.projects {
		if p.Slug == slug {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProjectRepo) Update(_ context.Context, p *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[p.ID] = *p
	return nil
}

func (r *memProjectRepo) List(_ context.Context, includeDeleted bool, offset, limit int) ([]*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Project
	for _, p := range r.projects {
		if !includeDeleted && p.DeletedAt != nil {
			continue
		}
		cp := p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r *memProjectRepo) Count(_ context.Context, includeDeleted bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.projects {
		if !includeDeleted && p.DeletedAt != nil {
			continue
		}
		n++
	}
	return n, nil
}

func (r *memProjectRepo) ListDeletedBefore(_ context.Context, cutoff time.Time) ([]*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Project
	for _, p := range r.projects {
		if p.DeletedAt != nil && p.DeletedAt.Before(cutoff) {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProjectRepo) HardDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.projects, id)
	return nil
}

type memTaskRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]models.Task
	seq   int // ลำดับ insert ไว้ tie-break created_at ที่เท่ากัน
	order map[uuid.UUID]int
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{
		tasks: make(map[uuid.UUID]models.Task),
		order: make(map[uuid.UUID]int),
	}
}

func (r *memTaskRepo) Create(_ context.Context, t *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	r.seq++
	r.order[t.ID] = r.seq
	r.tasks[t.ID] = *t
	return nil
}

func (r *memTaskRepo) GetActiveByID(_ context.Context, id uuid.UUID) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.DeletedAt != nil {
		return nil, nil
	}
	cp := t
	return &cp, nil
}

func (r *memTaskRepo) GetAnyByID(_ context.Context, id uuid.UUID) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := t
	return &cp, nil
}

func (r *memTaskRepo) GetByProjectID(_ context.Context, projectID uuid.UUID, includeDeleted bool) ([]*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Task
	for _, t := range r.tasks {
		if t.ProjectID != projectID {
			continue
		}
		if !includeDeleted && t.DeletedAt != nil {
			continue
		}
		cp := t
		out = append(out, &cp)
	}
	// created_at DESC, ใหม่สุดก่อน
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return r.order[out[i].ID] > r.order[out[j].ID]
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memTaskRepo) Update(_ context.Context, t *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = *t
	return nil
}

func (r *memTaskRepo) SoftDeleteByProject(_ context.Context, projectID uuid.UUID, deletedAt time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, t := range r.tasks {
		if t.ProjectID == projectID && t.DeletedAt == nil {
			d := deletedAt
			t.DeletedAt = &d
			t.CascadeDelete = true
			t.UpdatedAt = deletedAt
			r.tasks[id] = t
			n++
		}
	}
	return n, nil
}

func (r *memTaskRepo) RestoreCascaded(_ context.Context, projectID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, t := range r.tasks {
		if t.ProjectID == projectID && t.DeletedAt != nil && t.CascadeDelete {
			t.DeletedAt = nil
			t.CascadeDelete = false
			r.tasks[id] = t
			n++
		}
	}
	return n, nil
}

func (r *memTaskRepo) HardDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, id)
	return nil
}

func (r *memTaskRepo) HardDeleteByProject(_ context.Context, projectID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.tasks {
		if t.ProjectID == projectID {
			delete(r.tasks, id)
		}
	}
	return nil
}

func (r *memTaskRepo) ListDeletedBefore(_ context.Context, cutoff time.Time) ([]*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Task
	for _, t := range r.tasks {
		if t.DeletedAt != nil && t.DeletedAt.Before(cutoff) {
			cp := t
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memSubtaskRepo struct {
	mu       sync.Mutex
	subtasks map[uuid.UUID]models.Subtask
}

func newMemSubtaskRepo() *memSubtaskRepo {
	return &memSubtaskRepo{subtasks: make(map[uuid.UUID]models.Subtask)}
}

func (r *memSubtaskRepo) Create(_ context.Context, s *models.Subtask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	r.subtasks[s.ID] = *s
	return nil
}

func (r *memSubtaskRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Subtask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subtasks[id]
	if !ok {
		return nil, nil
	}
	cp := s
	return &cp, nil
}

func (r *memSubtaskRepo) GetByTaskID(_ context.Context, taskID uuid.UUID) ([]*models.Subtask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Subtask
	for _, s := range r.subtasks {
		if s.TaskID == taskID {
			cp := s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memSubtaskRepo) Update(_ context.Context, s *models.Subtask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subtasks[s.ID] = *s
	return nil
}

func (r *memSubtaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subtasks, id)
	return nil
}

func (r *memSubtaskRepo) DeleteByTaskID(_ context.Context, taskID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.subtasks {
		if s.TaskID == taskID {
			delete(r.subtasks, id)
		}
	}
	return nil
}

type memDependencyRepo struct {
	mu   sync.Mutex
	deps []models.TaskDependency
}

func newMemDependencyRepo() *memDependencyRepo {
	return &memDependencyRepo{}
}

func (r *memDependencyRepo) Create(_ context.Context, d *models.TaskDependency) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	r.deps = append(r.deps, *d)
	return nil
}

func (r *memDependencyRepo) Exists(_ context.Context, taskID, dependsOnID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.deps {
		if d.TaskID == taskID && d.DependsOnID == dependsOnID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memDependencyRepo) GetByTaskID(_ context.Context, taskID uuid.UUID) ([]*models.TaskDependency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.TaskDependency
	for _, d := range r.deps {
		if d.TaskID == taskID {
			cp := d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memDependencyRepo) Delete(_ context.Context, taskID, dependsOnID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.deps[:0]
	for _, d := range r.deps {
		if !(d.TaskID == taskID && d.DependsOnID == dependsOnID) {
			kept = append(kept, d)
		}
	}
	r.deps = kept
	return nil
}

func (r *memDependencyRepo) DeleteByTaskID(_ context.Context, taskID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.deps[:0]
	for _, d := range r.deps {
		if d.TaskID != taskID && d.DependsOnID != taskID {
			kept = append(kept, d)
		}
	}
	r.deps = kept
	return nil
}

type memHistoryRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID][]models.TaskHistoryEntry // taskID -> append order (เก่า -> ใหม่)
}

func newMemHistoryRepo() *memHistoryRepo {
	return &memHistoryRepo{entries: make(map[uuid.UUID][]models.TaskHistoryEntry)}
}

func (r *memHistoryRepo) Create(_ context.Context, e *models.TaskHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.TaskID] = append(r.entries[e.TaskID], *e)
	return nil
}

func (r *memHistoryRepo) GetLatestByTaskID(_ context.Context, taskID uuid.UUID) (*models.TaskHistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.entries[taskID]
	if len(list) == 0 {
		return nil, nil
	}
	cp := list[len(list)-1]
	return &cp, nil
}

func (r *memHistoryRepo) CountByTaskID(_ context.Context, taskID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.entries[taskID])), nil
}

func (r *memHistoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for taskID, list := range r.entries {
		kept := list[:0]
		for _, e := range list {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		r.entries[taskID] = kept
	}
	return nil
}

func (r *memHistoryRepo) DeleteByTaskID(_ context.Context, taskID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, taskID)
	return nil
}

func (r *memHistoryRepo) PruneOldest(_ context.Context, taskID uuid.UUID, keep int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.entries[taskID]
	if len(list) <= keep {
		return 0, nil
	}
	pruned := len(list) - keep
	r.entries[taskID] = append([]models.TaskHistoryEntry(nil), list[pruned:]...)
	return int64(pruned), nil
}

type memAttachmentRepo struct {
	mu          sync.Mutex
	attachments map[uuid.UUID]models.Attachment
}

func newMemAttachmentRepo() *memAttachmentRepo {
	return &memAttachmentRepo{attachments: make(map[uuid.UUID]models.Attachment)}
}

func (r *memAttachmentRepo) Create(_ context.Context, a *models.Attachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	r.attachments[a.ID] = *a
	return nil
}

func (r *memAttachmentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attachments[id]
	if !ok {
		return nil, nil
	}
	cp := a
	return &cp, nil
}

func (r *memAttachmentRepo) GetByTaskID(_ context.Context, taskID uuid.UUID) ([]*models.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Attachment
	for _, a := range r.attachments {
		if a.TaskID == taskID {
			cp := a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memAttachmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.attachments, id)
	return nil
}

func (r *memAttachmentRepo) DeleteByTaskID(_ context.Context, taskID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.attachments {
		if a.TaskID == taskID {
			delete(r.attachments, id)
		}
	}
	return nil
}

// noopTxManager รัน fn ตรง ๆ - semantics ของ rollback ไม่ได้ทดสอบที่ชั้นนี้
type noopTxManager struct{}

func (noopTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeStorage struct {
	mu      sync.Mutex
	files   map[string][]byte
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (s *fakeStorage) UploadFile(file io.Reader, path string, _ string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = data
	return "/files/" + path, nil
}

func (s *fakeStorage) DeleteFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *fakeStorage) DeleteFolder(prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for path := range s.files {
		if strings.HasPrefix(path, prefix) {
			delete(s.files, path)
			s.deleted = append(s.deleted, path)
		}
	}
	return nil
}

func (s *fakeStorage) GetFileContent(path string) (io.ReadCloser, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[path]
	if !ok {
		return nil, "", io.ErrUnexpectedEOF
	}
	return io.NopCloser(strings.NewReader(string(data))), "application/octet-stream", nil
}

func (s *fakeStorage) GetFileURL(path string) string { return "/files/" + path }
func (s *fakeStorage) GetProviderName() string       { return "fake" }

type fakePublisher struct {
	mu     sync.Mutex
	events []ports.BoardEvent
}

func (p *fakePublisher) PublishBoardEvent(_ context.Context, event ports.BoardEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Action
	}
	return out
}
