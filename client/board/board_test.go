package board

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   map[string]string{"code": code, "message": message},
	})
}

func makeTask(projectID uuid.UUID, title string) Task {
	now := time.Now().UTC().Truncate(time.Second)
	return Task{
		ID:         uuid.New(),
		ProjectID:  projectID,
		Title:      title,
		Status:     "To Do",
		Priority:   "Medium",
		CreatedAt:  now,
		UpdatedAt:  now,
		LastUpdate: now,
	}
}

func TestLoad_PartitionsActiveAndTrash(t *testing.T) {
	projectID := uuid.New()
	alive := makeTask(projectID, "alive")
	gone := makeTask(projectID, "gone")
	deletedAt := time.Now().UTC()
	gone.DeletedAt = &deletedAt

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("include_deleted"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		writeData(w, http.StatusOK, []Task{alive, gone})
	}))
	defer srv.Close()

	b := NewBoard(NewClient(srv.URL, "test-token"), projectID)
	require.NoError(t, b.Load(context.Background()))

	active := b.Active()
	require.Len(t, active, 1)
	assert.Equal(t, alive.ID, active[0].ID)

	trash := b.Deleted()
	require.Len(t, trash, 1)
	assert.Equal(t, gone.ID, trash[0].ID)
}

func TestEditField_InvalidDateSkipsNetwork(t *testing.T) {
	projectID := uuid.New()
	task := makeTask(projectID, "dated")

	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		writeData(w, http.StatusOK, []Task{task})
	}))
	defer srv.Close()

	b := NewBoard(NewClient(srv.URL, ""), projectID)
	require.NoError(t, b.Load(context.Background()))
	loadRequests := atomic.LoadInt32(&requests)

	err := b.EditField(context.Background(), task.ID, "dueDate", "03/15/2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")

	// client reject ก่อนยิง ไม่มี request เพิ่ม
	assert.Equal(t, loadRequests, atomic.LoadInt32(&requests))
}

func TestEditField_OrderingCheckedAgainstOtherDate(t *testing.T) {
	projectID := uuid.New()
	task := makeTask(projectID, "dated")
	start := "2026-03-10"
	task.StartDate = &start

	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if r.Method == http.MethodPatch {
			updated := task
			updated.EndDate = nil
			writeData(w, http.StatusOK, updated)
			return
		}
		writeData(w, http.StatusOK, []Task{task})
	}))
	defer srv.Close()

	b := NewBoard(NewClient(srv.URL, ""), projectID)
	require.NoError(t, b.Load(context.Background()))
	loadRequests := atomic.LoadInt32(&requests)

	err := b.EditField(context.Background(), task.ID, "endDate", "2026-03-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start date")
	assert.Equal(t, loadRequests, atomic.LoadInt32(&requests))

	// เคลียร์ค่า ("") ข้าม validation และยิงจริง
	require.NoError(t, b.EditField(context.Background(), task.ID, "endDate", ""))
	assert.Equal(t, loadRequests+1, atomic.LoadInt32(&requests))
}

// EditField validate จาก snapshot ของ task ไม่ใช่ pointer เข้า slice ตรงๆ
// รันคู่กับ MoveStatus ที่เขียน state ใต้ write lock เพื่อให้ race detector จับได้ถ้าหลุด
func TestEditField_ConcurrentWithMoveStatus(t *testing.T) {
	projectID := uuid.New()
	task := makeTask(projectID, "busy")
	start := "2026-03-10"
	task.StartDate = &start

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			writeData(w, http.StatusOK, []Task{task})
			return
		}
		updated := task
		if strings.HasSuffix(r.URL.Path, "/status") {
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			updated.Status = body["status"]
		}
		writeData(w, http.StatusOK, updated)
	}))
	defer srv.Close()

	b := NewBoard(NewClient(srv.URL, ""), projectID)
	require.NoError(t, b.Load(context.Background()))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_ = b.EditField(context.Background(), task.ID, "endDate", "2026-03-20")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_ = b.MoveStatus(context.Background(), task.ID, "In Progress")
		}
	}()
	wg.Wait()

	require.Len(t, b.Active(), 1)
}

func TestEditField_MergesServerResponse(t *testing.T) {
	projectID := uuid.New()
	task := makeTask(projectID, "old title")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeData(w, http.StatusOK, []Task{task})
		case http.MethodPatch:
			var patch map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
			updated := task
			updated.Title = patch["title"]
			writeData(w, http.StatusOK, updated)
		}
	}))
	defer srv.Close()

	b := NewBoard(NewClient(srv.URL, ""), projectID)
	require.NoError(t, b.Load(context.Background()))

	require.NoError(t, b.EditField(context.Background(), task.ID, "title", "new title"))

	active := b.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "new title", active[0].Title)
}

func TestMoveStatus_ReloadsOnServerRejection(t *testing.T) {
	projectID := uuid.New()
	task := makeTask(projectID, "stuck")

	var reloads int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			atomic.AddInt32(&reloads, 1)
			writeData(w, http.StatusOK, []Task{task})
		case http.MethodPatch:
			writeError(w, http.StatusConflict, "CONFLICT", "task is in trash")
		}
	}))
	defer srv.Close()

	b := NewBoard(NewClient(srv.URL, ""), projectID)
	require.NoError(t, b.Load(context.Background()))
	require.EqualValues(t, 1, atomic.LoadInt32(&reloads))

	err := b.MoveStatus(context.Background(), task.ID, "Done")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)

	// reload ทิ้ง overlay ที่วาดไว้ก่อนหน้า
	assert.EqualValues(t, 2, atomic.LoadInt32(&reloads))
	active := b.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "To Do", active[0].Status)
}

func TestMoveStatus_OptimisticOnSuccess(t *testing.T) {
	projectID := uuid.New()
	task := makeTask(projectID, "moving")

	var reloads int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			atomic.AddInt32(&reloads, 1)
			writeData(w, http.StatusOK, []Task{task})
		case http.MethodPatch:
			updated := task
			updated.Status = "Done"
			writeData(w, http.StatusOK, updated)
		}
	}))
	defer srv.Close()

	b := NewBoard(NewClient(srv.URL, ""), projectID)
	require.NoError(t, b.Load(context.Background()))

	require.NoError(t, b.MoveStatus(context.Background(), task.ID, "Done"))

	// สำเร็จแล้วไม่ reload ซ้ำ
	assert.EqualValues(t, 1, atomic.LoadInt32(&reloads))
	active := b.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Done", active[0].Status)
}

func TestSort_ToggleDirectionAndStable(t *testing.T) {
	projectID := uuid.New()
	a := makeTask(projectID, "alpha")
	a.Priority = "High"
	bTask := makeTask(projectID, "bravo")
	bTask.Priority = "Low"
	c := makeTask(projectID, "charlie")
	c.Priority = "High"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, []Task{a, bTask, c})
	}))
	defer srv.Close()

	board := NewBoard(NewClient(srv.URL, ""), projectID)
	require.NoError(t, board.Load(context.Background()))

	board.Sort("priority")
	titles := func() []string {
		var out []string
		for _, t := range board.Active() {
			out = append(out, t.Title)
		}
		return out
	}
	// asc: Low ก่อน; High สองตัวคงลำดับเดิม (stable)
	assert.Equal(t, []string{"bravo", "alpha", "charlie"}, titles())

	board.Sort("priority")
	assert.Equal(t, []string{"alpha", "charlie", "bravo"}, titles())

	board.Sort("title")
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, titles())
}

func TestSort_NilDatesLast(t *testing.T) {
	projectID := uuid.New()
	early := makeTask(projectID, "early")
	d1 := "2026-01-05"
	early.DueDate = &d1
	late := makeTask(projectID, "late")
	d2 := "2026-06-01"
	late.DueDate = &d2
	none := makeTask(projectID, "none")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, []Task{none, late, early})
	}))
	defer srv.Close()

	board := NewBoard(NewClient(srv.URL, ""), projectID)
	require.NoError(t, board.Load(context.Background()))

	board.Sort("dueDate")
	active := board.Active()
	require.Len(t, active, 3)
	assert.Equal(t, "early", active[0].Title)
	assert.Equal(t, "late", active[1].Title)
	assert.Equal(t, "none", active[2].Title)
}

func TestGet_RetriesOnceOnTransportFailure(t *testing.T) {
	projectID := uuid.New()
	task := makeTask(projectID, "flaky")

	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			// ตัด connection ก่อนตอบ ให้ client เจอ transport error
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		writeData(w, http.StatusOK, []Task{task})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	tasks, err := client.ListTasks(context.Background(), projectID, true)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.EqualValues(t, 2, atomic.LoadInt32(&attempts))
}

func TestGet_NoRetryOnAPIError(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		writeError(w, http.StatusNotFound, "NOT_FOUND", "project not found")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.ListTasks(context.Background(), uuid.New(), false)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.EqualValues(t, 1, atomic.LoadInt32(&attempts))
}
