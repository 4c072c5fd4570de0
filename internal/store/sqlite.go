package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/qinangao/node-task-manager/internal/models"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given database path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT DEFAULT '',
		complete BOOLEAN DEFAULT FALSE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_complete ON tasks(complete);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// parseKey converts a client-facing string id to the native integer key.
func parseKey(id string) (int64, error) {
	key, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return key, nil
}

// taskRow is the raw persisted record. Its toTask normalization derives the
// stable string id from the integer primary key.
type taskRow struct {
	id          int64
	title       string
	description string
	complete    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func (r taskRow) toTask() models.Task {
	return models.Task{
		ID:          strconv.FormatInt(r.id, 10),
		Title:       r.title,
		Description: r.description,
		Complete:    r.complete,
		CreatedAt:   r.createdAt,
		UpdatedAt:   r.updatedAt,
	}
}

func scanTask(scan func(dest ...interface{}) error) (models.Task, error) {
	var row taskRow
	err := scan(
		&row.id,
		&row.title,
		&row.description,
		&row.complete,
		&row.createdAt,
		&row.updatedAt,
	)
	if err != nil {
		return models.Task{}, err
	}
	return row.toTask(), nil
}

// ListTasks retrieves tasks, optionally filtered by completion status.
func (s *SQLiteStore) ListTasks(ctx context.Context, filter Filter) ([]models.Task, error) {
	query := `
		SELECT id, title, description, complete, created_at, updated_at
		FROM tasks
	`
	args := []interface{}{}
	if filter.Complete != nil {
		query += ` WHERE complete = ?`
		args = append(args, *filter.Complete)
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// GetTask retrieves a task by ID.
func (s *SQLiteStore) GetTask(ctx context.Context, id string) (*models.Task, error) {
	key, err := parseKey(id)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, complete, created_at, updated_at
		FROM tasks WHERE id = ?
	`, key)

	task, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &task, nil
}

// CreateTask creates a new task in the database.
func (s *SQLiteStore) CreateTask(ctx context.Context, task *models.Task) error {
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (title, description, complete, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, task.Title, task.Description, task.Complete, now, now)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	task.ID = strconv.FormatInt(id, 10)

	return nil
}

// UpdateTask overwrites the writable fields of an existing task.
func (s *SQLiteStore) UpdateTask(ctx context.Context, id string, fields models.Fields) (*models.Task, error) {
	key, err := parseKey(id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, complete = ?, updated_at = ?
		WHERE id = ?
	`, fields.Title, fields.Description, fields.Complete, now, key)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return s.GetTask(ctx, id)
}

// DeleteTask deletes a task by ID.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	key, err := parseKey(id)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
