package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/jonathan/jobhunt/internal/pipeline"
)

const (
	uploadField       = "resume"
	pdfMediaType      = "application/pdf"
	recentResumeLimit = 10
	// multipartOverhead allows for boundaries and headers around the file.
	multipartOverhead = 1 << 20
)

// readUpload reads the résumé file of a multipart request, enforcing the
// size limit and the declared PDF media type before anything parses it.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", nil, &ErrInvalidUpload{Message: fmt.Sprintf("file exceeds %d bytes", s.maxUploadBytes)}
		}
		return "", nil, &ErrInvalidUpload{Message: "expected a multipart form with a " + uploadField + " file"}
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return "", nil, &ErrInvalidUpload{Message: "no " + uploadField + " file provided"}
	}
	defer file.Close() //nolint:errcheck

	if header.Size > s.maxUploadBytes {
		return "", nil, &ErrInvalidUpload{Message: fmt.Sprintf("file exceeds %d bytes", s.maxUploadBytes)}
	}
	mediaType, _, err := mime.ParseMediaType(header.Header.Get("Content-Type"))
	if err != nil || mediaType != pdfMediaType {
		return "", nil, &ErrInvalidUpload{Message: "only PDF files are accepted"}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(file, s.maxUploadBytes+1)); err != nil {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(buf.Len()) > s.maxUploadBytes {
		return "", nil, &ErrInvalidUpload{Message: fmt.Sprintf("file exceeds %d bytes", s.maxUploadBytes)}
	}
	return header.Filename, buf.Bytes(), nil
}

// handleUploadResume ingests one PDF and returns the stored record.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	name, data, err := s.readUpload(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	record, err := s.service.IngestResume(r.Context(), name, data)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, record)
}

// handleUploadResumeStream ingests one PDF, streaming progress events and
// finishing with a complete event holding the record.
func (s *Server) handleUploadResumeStream(w http.ResponseWriter, r *http.Request) {
	name, data, err := s.readUpload(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	ctx := pipeline.WithProgress(r.Context(), func(e pipeline.ProgressEvent) {
		sse.WriteEvent("progress", e) //nolint:errcheck
	})
	record, err := s.service.IngestResume(ctx, name, data)
	if err != nil {
		sse.WriteError(err)
		return
	}
	sse.WriteComplete(record)
}

// handleListResumes lists recent uploads, newest first.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	limit := recentResumeLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			s.errorResponse(w, &ErrValidation{Field: "limit", Message: "must be between 1 and 100"})
			return
		}
		limit = n
	}

	summaries, err := s.service.RecentResumes(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": summaries, "count": len(summaries)})
}

// handleGetResume returns one stored record.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	record, err := s.service.GetResume(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}
