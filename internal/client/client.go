// Package client is the fetch layer over the task API. UI code calls it
// instead of net/http directly, so network failures never reach a view.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/qinangao/node-task-manager/internal/models"
)

// Client issues HTTP calls against a running task API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListResult is the outcome of a List call. When Fallback is true the load
// failed and Tasks is an empty best-effort substitute; Err holds the cause
// so callers can tell "no tasks" from "load failed".
type ListResult struct {
	Tasks    []models.Task
	Fallback bool
	Err      error
}

// List fetches tasks, optionally filtered by completion status. It never
// returns an error: failures degrade to an empty result with Fallback set,
// which keeps the task list route usable when the API is down.
func (c *Client) List(ctx context.Context, complete *bool) ListResult {
	u := c.baseURL + "/api/tasks"
	if complete != nil {
		u += "?complete=" + url.QueryEscape(strconv.FormatBool(*complete))
	}

	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, u, nil, http.StatusOK, &tasks); err != nil {
		log.Printf("task list load failed, falling back to empty: %v", err)
		return ListResult{Tasks: []models.Task{}, Fallback: true, Err: err}
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	return ListResult{Tasks: tasks}
}

// Get fetches a single task by id.
func (c *Client) Get(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodGet, c.baseURL+"/api/tasks/"+url.PathEscape(id), nil, http.StatusOK, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Create adds a new task and returns it with its generated id.
func (c *Client) Create(ctx context.Context, fields models.Fields) (*models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodPost, c.baseURL+"/api/tasks", fields, http.StatusCreated, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update overwrites a task's fields and returns the updated task.
func (c *Client) Update(ctx context.Context, id string, fields models.Fields) (*models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodPut, c.baseURL+"/api/tasks/"+url.PathEscape(id), fields, http.StatusOK, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task by id.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/api/tasks/"+url.PathEscape(id), nil, http.StatusOK, nil)
}

// do issues one request and decodes the response into out. A non-matching
// status is an error carrying the server's {"error"} message when present.
func (c *Client) do(ctx context.Context, method, u string, body interface{}, wantStatus int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func errorFromResponse(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body.Error)
	}
	return fmt.Errorf("server returned %d", resp.StatusCode)
}
