package store

import (
	"context"
	"errors"

	"github.com/qinangao/node-task-manager/internal/models"
)

// Sentinel errors the adapter implementations translate driver failures into.
// Handlers map both to 404; anything else is a store failure (500).
var (
	// ErrNotFound means no task exists for the given id.
	ErrNotFound = errors.New("task not found")

	// ErrInvalidID means the id is not parseable as the backend's key type.
	ErrInvalidID = errors.New("invalid task id")
)

// Filter narrows ListTasks results. A nil Complete means no filter.
type Filter struct {
	Complete *bool
}

// Store defines the interface for task persistence operations.
// Both backends satisfy it; handlers never see which one is live.
type Store interface {
	// ListTasks returns tasks matching the filter, oldest first.
	ListTasks(ctx context.Context, filter Filter) ([]models.Task, error)

	// GetTask retrieves a task by its string id.
	GetTask(ctx context.Context, id string) (*models.Task, error)

	// CreateTask inserts the task, filling ID and timestamps.
	CreateTask(ctx context.Context, task *models.Task) error

	// UpdateTask overwrites title, description and complete, and bumps
	// updatedAt. Returns the updated task.
	UpdateTask(ctx context.Context, id string, fields models.Fields) (*models.Task, error)

	// DeleteTask removes a task by id.
	DeleteTask(ctx context.Context, id string) error

	// Close releases the underlying connection.
	Close() error
}
