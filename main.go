package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/qinangao/node-task-manager/internal/handlers"
	"github.com/qinangao/node-task-manager/internal/store"
)

//go:embed static/*
var staticFS embed.FS

func main() {
	// Configuration, read once at startup. A missing .env is fine.
	godotenv.Load()
	port := getEnv("PORT", "8080")

	s, err := newStore()
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	h := handlers.New(s)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Task API routes
	r.Route("/api", h.Routes)

	// Static files and SPA fallback: anything outside /api serves the
	// entry page.
	staticSub, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, "/api") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Not found"}`))
			return
		}
		page, err := staticFS.ReadFile("static/index.html")
		if err != nil {
			http.Error(w, "entry page unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: r,
	}

	// Serve until a termination signal, then drain connections and close
	// the store before exit.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Starting server on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	if err := s.Close(); err != nil {
		log.Printf("Store close: %v", err)
	}
}

// newStore builds the configured persistence backend. Both implement the
// same interface; nothing downstream knows which one is live.
func newStore() (store.Store, error) {
	switch driver := getEnv("DB_DRIVER", "sqlite"); driver {
	case "sqlite":
		dbPath := getEnv("DB_PATH", "./data/tasks.db")
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		return store.NewSQLiteStore(dbPath)
	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		uri := getEnv("MONGO_URI", "mongodb://localhost:27017")
		database := getEnv("MONGO_DB", "taskmanager")
		return store.NewMongoStore(ctx, uri, database)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
