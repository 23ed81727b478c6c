package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/jobhunt/internal/types"
)

// searchRequestFromQuery builds a SearchRequest from GET query parameters.
// Skills are comma-separated.
func searchRequestFromQuery(r *http.Request) (types.SearchRequest, error) {
	q := r.URL.Query()
	req := types.SearchRequest{
		ResumeID:   strings.TrimSpace(q.Get("resumeId")),
		Query:      strings.TrimSpace(q.Get("query")),
		Location:   strings.TrimSpace(q.Get("location")),
		Remote:     queryBool(r, "remote"),
		Experience: q.Get("experience"),
		JobType:    q.Get("jobType"),
		DatePosted: q.Get("datePosted"),
		Seniority:  q.Get("seniority"),
	}
	for _, skill := range strings.Split(q.Get("skills"), ",") {
		if skill = strings.TrimSpace(skill); skill != "" {
			req.Skills = append(req.Skills, skill)
		}
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return req, &ErrValidation{Field: "page", Message: "must be an integer"}
		}
		req.Page = page
	}
	if err := req.Validate(); err != nil {
		return req, validationError(err)
	}
	return req, nil
}

// handleSearchJobs runs one stateless search page.
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	req, err := searchRequestFromQuery(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	result, err := s.service.Search(r.Context(), req)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleStartSession runs a fresh search and keeps its state server-side.
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req types.SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, validationError(err))
		return
	}

	page, err := s.service.StartSession(r.Context(), req)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, page)
}

// handleLoadMore fetches the next page of a session.
func (s *Server) handleLoadMore(w http.ResponseWriter, r *http.Request) {
	page, err := s.service.LoadMore(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, page)
}
