package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"taskboard/pkg/task"
)

func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.List(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleTaskGet(w http.ResponseWriter, r *http.Request) {
	t, err := s.tasks.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	f, ok := s.decodeFields(w, r)
	if !ok {
		return
	}
	t, err := s.tasks.Create(r.Context(), f)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.logger.Info("task created", "id", t.ID)
	s.writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	f, ok := s.decodeFields(w, r)
	if !ok {
		return
	}
	t, err := s.tasks.Update(r.Context(), r.PathValue("id"), f)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.logger.Info("task updated", "id", t.ID)
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	t, err := s.tasks.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.logger.Info("task deleted", "id", t.ID)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"deletedTask": t,
	})
}

func (s *Server) decodeFields(w http.ResponseWriter, r *http.Request) (task.Fields, bool) {
	var f task.Fields
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return f, false
		}
		s.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return f, false
	}
	return f, true
}

// writeStoreError maps a task store error onto a response. Storage failures
// are logged and reported without detail.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *task.ValidationError
	switch {
	case errors.As(err, &ve):
		s.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": ve.Error(),
			"field": ve.Field,
		})
	case errors.Is(err, task.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "task not found")
	default:
		s.logger.Error("task store", "method", r.Method, "path", r.URL.Path, "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}
