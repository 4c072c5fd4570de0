package models

import (
	"errors"
	"strings"
	"time"
)

// Task is the client-facing task shape. ID is assigned by the store on
// creation and is always a string, whatever the backend's native key type.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Complete    bool      `json:"complete"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ErrTitleRequired is returned when a task is created without a title.
var ErrTitleRequired = errors.New("Title is required")

// Validate checks that the task has valid field values.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// Fields holds the writable portion of a task for create and update calls.
// An update overwrites all three fields; there is no partial merge.
type Fields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Complete    bool   `json:"complete"`
}
