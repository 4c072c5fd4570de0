package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/qinangao/node-task-manager/internal/models"
	"github.com/qinangao/node-task-manager/internal/store"
)

// ListTasks returns all tasks, optionally filtered by completion status.
//
// The complete query parameter keeps the historical coercion: only the
// literal "true" selects completed tasks; any other present value, including
// "false" and garbage, selects incomplete ones. Clients depend on this, so
// unrecognized values are not rejected.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var filter store.Filter
	if r.URL.Query().Has("complete") {
		complete := r.URL.Query().Get("complete") == "true"
		filter.Complete = &complete
	}

	tasks, err := h.store.ListTasks(ctx, filter)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	respondJSON(w, http.StatusOK, tasks)
}

// GetTask returns a single task by id.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	task, err := h.store.GetTask(ctx, taskID(r))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// CreateTask creates a new task. Title is required; description defaults to
// empty and complete to false.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var fields models.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	task := &models.Task{
		Title:       fields.Title,
		Description: fields.Description,
		Complete:    fields.Complete,
	}

	if err := task.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.CreateTask(ctx, task); err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// UpdateTask overwrites the writable fields of a task. Fields absent from
// the body become their zero values; there is no partial merge.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var fields models.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	task, err := h.store.UpdateTask(ctx, taskID(r), fields)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// DeleteTask removes a task by id.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.store.DeleteTask(ctx, taskID(r)); err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}
