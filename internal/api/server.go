package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"taskboard/pkg/task"
)

// maxBodyBytes caps request bodies accepted by the JSON handlers.
const maxBodyBytes = 1 << 20

// Server is the HTTP API server.
type Server struct {
	tasks     task.Store
	staticDir string
	logger    *slog.Logger
	mux       *http.ServeMux
	handler   http.Handler
}

// New creates a new Server. Static front-end files are served from staticDir.
func New(tasks task.Store, staticDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		tasks:     tasks,
		staticDir: staticDir,
		logger:    logger,
		mux:       http.NewServeMux(),
	}
	s.routes()
	s.handler = s.logRequests(s.mux)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() {
	// Tasks
	s.mux.HandleFunc("GET /api/tasks", s.handleTaskList)
	s.mux.HandleFunc("POST /api/tasks", s.handleTaskCreate)
	s.mux.HandleFunc("GET /api/tasks/{id}", s.handleTaskGet)
	s.mux.HandleFunc("PUT /api/tasks/{id}", s.handleTaskUpdate)
	s.mux.HandleFunc("DELETE /api/tasks/{id}", s.handleTaskDelete)

	// System
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Static front-end
	s.mux.Handle("GET /", http.FileServer(http.Dir(s.staticDir)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write json", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
