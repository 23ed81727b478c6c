package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobhunt/internal/extraction"
	"github.com/jonathan/jobhunt/internal/types"
)

func (ts *testServer) upload(t *testing.T) types.ResumeRecord {
	t.Helper()
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, uploadRequest(t, "/api/resumes", "resume", "application/pdf", pdfBytes))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[types.ResumeRecord](t, w)
}

func TestHandleUploadResume(t *testing.T) {
	ts := newTestServer(t, testOptions{})

	record := ts.upload(t)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "jane.pdf", record.FileName)
	assert.Equal(t, "jane@example.com", record.Email)
	assert.Contains(t, record.Skills, "Python")
	assert.False(t, record.AIAnalyzed)

	w := ts.do(t, http.MethodGet, "/api/resumes/"+record.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, record.ID, decode[types.ResumeRecord](t, w).ID)
	assert.NotContains(t, w.Body.String(), "Senior Python and Docker engineer", "raw text is not exposed")
}

func TestHandleUploadResume_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		contentType string
		data        []byte
		maxBytes    int64
		wantStatus  int
		wantCode    string
	}{
		{name: "wrong media type", field: "resume", contentType: "text/plain", data: pdfBytes, wantStatus: http.StatusBadRequest, wantCode: "invalid_upload"},
		{name: "no file", field: "", wantStatus: http.StatusBadRequest, wantCode: "invalid_upload"},
		{name: "wrong field", field: "file", contentType: "application/pdf", data: pdfBytes, wantStatus: http.StatusBadRequest, wantCode: "invalid_upload"},
		{name: "oversized", field: "resume", contentType: "application/pdf", data: bytes.Repeat([]byte("x"), 4096), maxBytes: 1024, wantStatus: http.StatusBadRequest, wantCode: "invalid_upload"},
		{name: "not a pdf", field: "resume", contentType: "application/pdf", data: []byte("hello"), wantStatus: http.StatusUnprocessableEntity, wantCode: "unreadable_pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, testOptions{config: Config{MaxUploadBytes: tt.maxBytes}})

			w := httptest.NewRecorder()
			ts.handler.ServeHTTP(w, uploadRequest(t, "/api/resumes", tt.field, tt.contentType, tt.data))
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

func TestHandleUploadResume_ConverterUnavailable(t *testing.T) {
	missing := &extraction.ConverterUnavailableError{
		Tool:  "pdftotext",
		Cause: &exec.Error{Name: "pdftotext", Err: exec.ErrNotFound},
	}
	ts := newTestServer(t, testOptions{extractor: failingExtractor{err: missing}})

	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, uploadRequest(t, "/api/resumes", "resume", "application/pdf", pdfBytes))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "pdf_converter_unavailable", errorCode(t, w))
}

func TestHandleUploadResume_NotMultipart(t *testing.T) {
	ts := newTestServer(t, testOptions{})

	w := ts.do(t, http.MethodPost, "/api/resumes", map[string]string{"resume": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleUploadResumeStream(t *testing.T) {
	ts := newTestServer(t, testOptions{})

	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, uploadRequest(t, "/api/resumes/stream", "resume", "application/pdf", pdfBytes))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "event: progress")
	assert.Contains(t, body, `"step":"extract_text"`)
	assert.Contains(t, body, "event: complete")
	assert.Less(t, strings.Index(body, "event: progress"), strings.Index(body, "event: complete"))
}

func TestHandleUploadResumeStream_UnreadablePDF(t *testing.T) {
	ts := newTestServer(t, testOptions{})

	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, uploadRequest(t, "/api/resumes/stream", "resume", "application/pdf", []byte("hello")))

	assert.Contains(t, w.Body.String(), "event: error")
	assert.Contains(t, w.Body.String(), "unreadable_pdf")
}

func TestHandleListResumes(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	first := ts.upload(t)
	second := ts.upload(t)

	w := ts.do(t, http.MethodGet, "/api/resumes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[struct {
		Resumes []types.ResumeSummary `json:"resumes"`
		Count   int                   `json:"count"`
	}](t, w)
	assert.Equal(t, 2, body.Count)
	ids := []string{body.Resumes[0].ID, body.Resumes[1].ID}
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)

	w = ts.do(t, http.MethodGet, "/api/resumes?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode[map[string]any](t, w)["count"])
}

func TestHandleListResumes_BadLimit(t *testing.T) {
	ts := newTestServer(t, testOptions{})

	w := ts.do(t, http.MethodGet, "/api/resumes?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_failed", errorCode(t, w))
}

func TestHandleGetResume_NotFound(t *testing.T) {
	ts := newTestServer(t, testOptions{})

	w := ts.do(t, http.MethodGet, "/api/resumes/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", errorCode(t, w))
}
