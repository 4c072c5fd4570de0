package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/qinangao/node-task-manager/internal/store"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	store store.Store
}

// New creates a new Handlers instance.
func New(s store.Store) *Handlers {
	return &Handlers{store: s}
}

// Routes mounts the task API under the given router.
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/tasks", h.ListTasks)
	r.Post("/tasks", h.CreateTask)
	r.Get("/tasks/{id}", h.GetTask)
	r.Put("/tasks/{id}", h.UpdateTask)
	r.Delete("/tasks/{id}", h.DeleteTask)
}

// taskID extracts the task id from URL parameters. Format checking is left
// to the store, which knows its native key type.
func taskID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// respondError sends a JSON error body. Every failure response has the
// shape {"error": message}.
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

// respondStoreError translates adapter failures: missing or malformed ids
// are 404, everything else is a store failure surfaced as 500.
func respondStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}
	log.Printf("store error: %v", err)
	respondError(w, http.StatusInternalServerError, err.Error())
}
