package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/jobhunt/internal/tracker"
	"github.com/jonathan/jobhunt/internal/types"
)

// handleSaveApplication starts tracking a listing. Saving an already
// tracked listing answers 409 with the existing application.
func (s *Server) handleSaveApplication(w http.ResponseWriter, r *http.Request) {
	var req types.SaveApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, validationError(err))
		return
	}

	app, err := s.tracker.Save(r.Context(), req.Job, req.ResumeID, req.Notes)
	if errors.Is(err, tracker.ErrAlreadySaved) {
		s.jsonResponse(w, http.StatusConflict, map[string]any{
			"error":       "already_saved",
			"message":     "Job already saved",
			"application": app,
		})
		return
	}
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, app)
}

// handleListApplications lists tracked applications, optionally by status.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	var status tracker.Status
	if v := r.URL.Query().Get("status"); v != "" {
		parsed, err := tracker.ParseStatus(v)
		if err != nil {
			s.errorResponse(w, err)
			return
		}
		status = parsed
	}

	apps, err := s.tracker.List(r.Context(), status)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if apps == nil {
		apps = []*types.Application{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": apps, "count": len(apps)})
}

// handleUpdateApplication changes an application's status and notes.
func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}
	status, err := tracker.ParseStatus(req.Status)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	req.Status = string(status)
	if err := req.Validate(); err != nil {
		s.errorResponse(w, validationError(err))
		return
	}

	app, err := s.tracker.UpdateStatus(r.Context(), r.PathValue("id"), status, req.Notes)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

// handleDeleteApplication stops tracking an application.
func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.Remove(r.Context(), r.PathValue("id")); err != nil {
		s.errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
