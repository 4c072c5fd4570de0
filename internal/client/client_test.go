package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/qinangao/node-task-manager/internal/handlers"
	"github.com/qinangao/node-task-manager/internal/models"
	"github.com/qinangao/node-task-manager/internal/store"
)

func setupTestAPI(t *testing.T) *Client {
	t.Helper()
	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	r := chi.NewRouter()
	r.Route("/api", handlers.New(s).Routes)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return New(srv.URL)
}

func TestClientLifecycle(t *testing.T) {
	c := setupTestAPI(t)
	ctx := context.Background()

	created, err := c.Create(ctx, models.Fields{Title: "Buy milk", Description: "2%"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	got, err := c.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Buy milk" || got.Description != "2%" {
		t.Errorf("expected created task, got %+v", got)
	}

	updated, err := c.Update(ctx, created.ID, models.Fields{Title: "Buy milk", Complete: true})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !updated.Complete {
		t.Error("expected complete true after update")
	}

	if err := c.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := c.Get(ctx, created.ID); err == nil {
		t.Error("expected error getting deleted task")
	}
}

func TestClientList(t *testing.T) {
	c := setupTestAPI(t)
	ctx := context.Background()

	c.Create(ctx, models.Fields{Title: "Done", Complete: true})
	c.Create(ctx, models.Fields{Title: "Pending"})

	result := c.List(ctx, nil)
	if result.Fallback {
		t.Fatalf("expected successful load, got fallback: %v", result.Err)
	}
	if len(result.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(result.Tasks))
	}

	complete := true
	result = c.List(ctx, &complete)
	if result.Fallback {
		t.Fatalf("expected successful load, got fallback: %v", result.Err)
	}
	if len(result.Tasks) != 1 || result.Tasks[0].Title != "Done" {
		t.Errorf("expected only the completed task, got %+v", result.Tasks)
	}
}

func TestClientList_EmptyIsNotFallback(t *testing.T) {
	c := setupTestAPI(t)

	result := c.List(context.Background(), nil)
	if result.Fallback {
		t.Fatalf("expected successful load, got fallback: %v", result.Err)
	}
	if len(result.Tasks) != 0 {
		t.Errorf("expected no tasks, got %d", len(result.Tasks))
	}
	if result.Err != nil {
		t.Errorf("expected nil Err, got %v", result.Err)
	}
}

func TestClientList_FallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"store unavailable"}`))
	}))
	t.Cleanup(srv.Close)

	result := New(srv.URL).List(context.Background(), nil)
	if !result.Fallback {
		t.Fatal("expected fallback on server error")
	}
	if result.Err == nil {
		t.Error("expected Err to carry the cause")
	}
	if result.Tasks == nil || len(result.Tasks) != 0 {
		t.Errorf("expected empty task slice, got %v", result.Tasks)
	}
}

func TestClientList_FallbackOnConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening anymore

	result := New(srv.URL).List(context.Background(), nil)
	if !result.Fallback {
		t.Fatal("expected fallback when the server is unreachable")
	}
	if result.Err == nil {
		t.Error("expected Err to carry the cause")
	}
}

func TestClientCreate_ValidationError(t *testing.T) {
	c := setupTestAPI(t)

	_, err := c.Create(context.Background(), models.Fields{Description: "no title"})
	if err == nil {
		t.Fatal("expected error for missing title")
	}
}
