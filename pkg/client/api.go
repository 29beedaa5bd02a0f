package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/taskdesk/backend/api/transport"
	"github.com/taskdesk/backend/domain"
)

// NewTask is the payload of a creation request. Status may be empty; the
// server defaults it to TODO.
type NewTask struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
	DueDate     string  `json:"due_date"`
}

// TaskPatch is the payload of a partial update. Nil pointers omit the key
// entirely, which the server reads as "preserve". A pointer to an empty
// string clears the description.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// APIError is a non-2xx response decoded into its message list.
type APIError struct {
	StatusCode int
	Errors     []string
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return strings.Join(e.Errors, ", ")
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// API is the server surface the state controller depends on. The interface
// exists so tests can substitute a stub for the HTTP client.
type API interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	CreateTask(ctx context.Context, task NewTask) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (*domain.Task, error)
	UpdateTaskStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Client talks to the task API over fasthttp.
type Client struct {
	baseURL string
	http    *fasthttp.Client
}

// NewClient builds a Client for the given base URL, e.g. "http://localhost:4000".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &fasthttp.Client{
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

var _ API = (*Client)(nil)

func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.do(ctx, fasthttp.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, fasthttp.MethodGet, "/api/tasks/"+id, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) CreateTask(ctx context.Context, in NewTask) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, fasthttp.MethodPost, "/api/tasks", in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, fasthttp.MethodPut, "/api/tasks/"+id, patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTaskStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error) {
	body := map[string]string{"status": string(status)}
	var task domain.Task
	if err := c.do(ctx, fasthttp.MethodPatch, "/api/tasks/"+id+"/status", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, fasthttp.MethodDelete, "/api/tasks/"+id, nil, nil)
}

// do performs one round-trip, honoring the context deadline when present.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req.Header.SetContentType("application/json")
		req.SetBody(encoded)
	}

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.http.DoDeadline(req, resp, deadline)
	} else {
		err = c.http.Do(req, resp)
	}
	if err != nil {
		return err
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return decodeAPIError(status, resp.Body())
	}

	if out == nil || status == http.StatusNoContent {
		return nil
	}
	return json.Unmarshal(resp.Body(), out)
}

func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var multi transport.ValidationResponse
	if err := json.Unmarshal(body, &multi); err == nil && len(multi.Errors) > 0 {
		apiErr.Errors = multi.Errors
		return apiErr
	}

	var single transport.ErrorResponse
	if err := json.Unmarshal(body, &single); err == nil && single.Error != "" {
		apiErr.Errors = []string{single.Error}
	}
	return apiErr
}
