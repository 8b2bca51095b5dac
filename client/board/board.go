package board

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Board ถือ local state ของ task board หนึ่ง project
// มุมมองมาจาก server เสมอ: Load แทนที่ state ทั้งก้อน ไม่ merge ทีละแถว
type Board struct {
	client    *Client
	projectID uuid.UUID

	mu      sync.RWMutex
	active  []Task
	deleted []Task
	sortKey string
	sortAsc bool
}

func NewBoard(client *Client, projectID uuid.UUID) *Board {
	return &Board{
		client:    client,
		projectID: projectID,
	}
}

// Load ดึง list ทั้งหมด (รวม trash) แล้วแทนที่ state เดิมทั้งก้อน
func (b *Board) Load(ctx context.Context) error {
	tasks, err := b.client.ListTasks(ctx, b.projectID, true)
	if err != nil {
		return err
	}

	active := make([]Task, 0, len(tasks))
	deleted := make([]Task, 0)
	for _, t := range tasks {
		if t.DeletedAt != nil {
			deleted = append(deleted, t)
		} else {
			active = append(active, t)
		}
	}

	b.mu.Lock()
	b.active = active
	b.deleted = deleted
	b.applySortLocked()
	b.mu.Unlock()
	return nil
}

// EditField แก้ field เดียวของ task
// date fields ถูก validate ฝั่ง client ก่อน: parse ไม่ผ่านหรือ
// ลำดับวันผิดจะไม่ยิง network เลยและ state เดิมไม่ถูกแตะ
func (b *Board) EditField(ctx context.Context, taskID uuid.UUID, field, raw string) error {
	// copy ค่าออกมาก่อนปล่อย lock ไม่งั้น MoveStatus เขียนทับ pointer กลางทางได้
	b.mu.RLock()
	ptr, ok := b.findActiveLocked(taskID)
	var task Task
	if ok {
		task = *ptr
	}
	b.mu.RUnlock()
	if !ok {
		return fmt.Errorf("task %s not on board", taskID)
	}

	if isDateField(field) {
		if err := validateDateEdit(&task, field, raw); err != nil {
			return err
		}
	}

	updated, err := b.client.UpdateTask(ctx, taskID, map[string]any{field: raw})
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.mergeLocked(*updated)
	b.applySortLocked()
	b.mu.Unlock()
	return nil
}

// MoveStatus ทำ optimistic move: วาดก่อน ยิงทีหลัง
// server ปฏิเสธ → Load ใหม่ทั้งก้อนเพื่อทิ้ง overlay ที่วาดไว้
func (b *Board) MoveStatus(ctx context.Context, taskID uuid.UUID, status string) error {
	b.mu.Lock()
	if task, ok := b.findActiveLocked(taskID); ok {
		task.Status = status
	}
	b.mu.Unlock()

	if _, err := b.client.UpdateStatus(ctx, taskID, status); err != nil {
		if loadErr := b.Load(ctx); loadErr != nil {
			return fmt.Errorf("move rejected (%w) and reload failed: %v", err, loadErr)
		}
		return err
	}
	return nil
}

// Sort เรียง active tasks ตาม key; กด key เดิมซ้ำ = สลับทิศทาง
func (b *Board) Sort(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sortKey == key {
		b.sortAsc = !b.sortAsc
	} else {
		b.sortKey = key
		b.sortAsc = true
	}
	b.applySortLocked()
}

// Active คืน copy ของ active tasks ตามลำดับปัจจุบัน
func (b *Board) Active() []Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Task, len(b.active))
	copy(out, b.active)
	return out
}

// Deleted คืน copy ของ tasks ใน trash
func (b *Board) Deleted() []Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Task, len(b.deleted))
	copy(out, b.deleted)
	return out
}

func (b *Board) findActiveLocked(taskID uuid.UUID) (*Task, bool) {
	for i := range b.active {
		if b.active[i].ID == taskID {
			return &b.active[i], true
		}
	}
	return nil, false
}

func (b *Board) mergeLocked(updated Task) {
	for i := range b.active {
		if b.active[i].ID == updated.ID {
			b.active[i] = updated
			return
		}
	}
}

// applySortLocked ใช้ stable sort เพื่อให้ task ที่ค่าเท่ากันไม่สลับที่
func (b *Board) applySortLocked() {
	if b.sortKey == "" {
		return
	}

	key := b.sortKey
	asc := b.sortAsc

	sort.SliceStable(b.active, func(i, j int) bool {
		less := taskLess(&b.active[i], &b.active[j], key)
		if asc {
			return less
		}
		return taskLess(&b.active[j], &b.active[i], key)
	})
}

func taskLess(a, b *Task, key string) bool {
	switch key {
	case "title":
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	case "status":
		return a.Status < b.Status
	case "priority":
		return priorityRank(a.Priority) < priorityRank(b.Priority)
	case "dueDate":
		return dateLess(a.DueDate, b.DueDate)
	case "startDate":
		return dateLess(a.StartDate, b.StartDate)
	case "lastUpdate":
		return a.LastUpdate.Before(b.LastUpdate)
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

func priorityRank(p string) int {
	switch p {
	case "High":
		return 2
	case "Medium":
		return 1
	default:
		return 0
	}
}

// dateLess จัด nil ไว้ท้ายเสมอ
func dateLess(a, b *string) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return *a < *b
}

func isDateField(field string) bool {
	switch field {
	case "startDate", "dueDate", "endDate":
		return true
	}
	return false
}

// validateDateEdit ตรวจ format กับ ordering เทียบกับวันอีกฝั่งของ task
// raw ว่างหมายถึงเคลียร์ค่า ผ่านเสมอ
func validateDateEdit(task *Task, field, raw string) error {
	if raw == "" {
		return nil
	}

	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected %s", raw, dateLayout)
	}

	switch field {
	case "startDate":
		if task.EndDate != nil {
			end, err := time.Parse(dateLayout, *task.EndDate)
			if err == nil && parsed.After(end) {
				return fmt.Errorf("start date %s is after end date %s", raw, *task.EndDate)
			}
		}
	case "endDate":
		if task.StartDate != nil {
			start, err := time.Parse(dateLayout, *task.StartDate)
			if err == nil && parsed.Before(start) {
				return fmt.Errorf("end date %s is before start date %s", raw, *task.StartDate)
			}
		}
	}
	return nil
}
