package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task คือ task row ตามที่ API ส่งกลับ
type Task struct {
	ID         uuid.UUID  `json:"id"`
	ProjectID  uuid.UUID  `json:"projectId"`
	Title      string     `json:"title"`
	Description string    `json:"description"`
	Status     string     `json:"status"`
	Priority   string     `json:"priority"`
	Assignee   *string    `json:"assignee"`
	StartDate  *string    `json:"startDate"`
	DueDate    *string    `json:"dueDate"`
	EndDate    *string    `json:"endDate"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	LastUpdate time.Time  `json:"lastUpdate"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"`
}

// APIError คือ error envelope จาก server
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client คือ HTTP client ของ TaskDeck API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ListTasks ดึง tasks ของ project
func (c *Client) ListTasks(ctx context.Context, projectID uuid.UUID, includeDeleted bool) ([]Task, error) {
	path := fmt.Sprintf("/api/v1/tasks/project/%s", projectID)
	if includeDeleted {
		path += "?include_deleted=true"
	}

	var tasks []Task
	if err := c.get(ctx, path, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTask ส่ง patch ตาม field whitelist ของ server
func (c *Client) UpdateTask(ctx context.Context, taskID uuid.UUID, patch map[string]any) (*Task, error) {
	var task Task
	path := fmt.Sprintf("/api/v1/tasks/%s", taskID)
	if err := c.do(ctx, http.MethodPatch, path, patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateStatus เปลี่ยนสถานะของ task
func (c *Client) UpdateStatus(ctx context.Context, taskID uuid.UUID, status string) (*Task, error) {
	var task Task
	path := fmt.Sprintf("/api/v1/tasks/%s/status", taskID)
	if err := c.do(ctx, http.MethodPatch, path, map[string]any{"status": status}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// get retry หนึ่งครั้งเมื่อ transport พัง - GET idempotent เสมอ
// mutation ไม่ retry อัตโนมัติ (server ไม่มี idempotency key)
func (c *Client) get(ctx context.Context, path string, out any) error {
	err := c.do(ctx, http.MethodGet, path, nil, out)
	if err == nil {
		return nil
	}
	if _, ok := err.(*APIError); ok {
		// server ตอบแล้ว ไม่ใช่ transport failure
		return err
	}
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("malformed response (%d): %w", resp.StatusCode, err)
	}

	if !env.Success || resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: "UNKNOWN", Message: "request failed"}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}
