package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Client talks to a task-queue service instance. All methods are safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom http.Client. Nil clients are ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a client for the service at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Queue is the creation view of a queue.
type Queue struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	TaskCount   int       `json:"taskCount"`
	ResultCount int       `json:"resultCount"`
}

// Task is a unit of work handed out by the service.
type Task struct {
	ID       uuid.UUID `json:"id"`
	Params   string    `json:"params"`
	Priority int       `json:"priority"`
	Status   string    `json:"status"`
}

// Result is the completion record for one task.
type Result struct {
	TaskID    uuid.UUID `json:"taskId"`
	Output    string    `json:"output"`
	Status    string    `json:"status"`
	Timestamp string    `json:"timestamp"`
}

// QueueStatus is the aggregate view used to poll for queue drain.
type QueueStatus struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	PendingTaskCount     int       `json:"pendingTaskCount"`
	CompletedResultCount int       `json:"completedResultCount"`
	HasPendingTasks      bool      `json:"hasPendingTasks"`
}

// ClearResponse reports the outcome of an admin clear.
type ClearResponse struct {
	Message       string `json:"message"`
	QueuesCleared int    `json:"queuesCleared"`
}

// CreateQueue creates a named queue.
func (c *Client) CreateQueue(ctx context.Context, name string) (*Queue, error) {
	var q Queue
	err := c.do(ctx, http.MethodPost, "/queue", map[string]string{"name": name}, &q)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// EnqueueTask submits a task to the queue and returns it with its assigned
// identifier.
func (c *Client) EnqueueTask(ctx context.Context, queueID uuid.UUID, params string, priority int) (*Task, error) {
	var t Task
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/queue/%s/task", queueID),
		map[string]any{"params": params, "priority": priority}, &t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DequeueTask claims the next-highest-priority task. It returns (nil, nil)
// when the queue is empty.
func (c *Client) DequeueTask(ctx context.Context, queueID uuid.UUID) (*Task, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/queue/%s/task", queueID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}

	var t Task
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// SubmitResult stores a result for the task. Status must be SUCCESS or
// FAILURE.
func (c *Client) SubmitResult(ctx context.Context, queueID, taskID uuid.UUID, output, status string) (*Result, error) {
	var res Result
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/queue/%s/result", queueID),
		map[string]string{"taskId": taskID.String(), "output": output, "status": status}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetResult fetches the stored result for the task. Absence is reported as
// ErrNotFound.
func (c *Client) GetResult(ctx context.Context, queueID, taskID uuid.UUID) (*Result, error) {
	var res Result
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/queue/%s/result/%s", queueID, taskID), nil, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// QueueStatus fetches the aggregate queue view.
func (c *Client) QueueStatus(ctx context.Context, queueID uuid.UUID) (*QueueStatus, error) {
	var st QueueStatus
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/queue/%s/status", queueID), nil, &st)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// ClearAll removes every queue on the service.
func (c *Client) ClearAll(ctx context.Context) (*ClearResponse, error) {
	var cr ClearResponse
	err := c.do(ctx, http.MethodDelete, "/queue/admin/clear", nil, &cr)
	if err != nil {
		return nil, err
	}
	return &cr, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, v any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	want := http.StatusOK
	if method == http.MethodPost {
		want = http.StatusCreated
	}
	if err := checkStatus(resp, want); err != nil {
		return err
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// checkStatus translates error statuses into sentinel errors carrying the
// server's plain-text message.
func checkStatus(resp *http.Response, want int) error {
	if resp.StatusCode == want {
		return nil
	}

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	text := strings.TrimSpace(string(msg))

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, text)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, text)
	}
	return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, text)
}
