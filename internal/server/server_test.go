package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobhunt/internal/analysis"
	"github.com/jonathan/jobhunt/internal/extraction"
	"github.com/jonathan/jobhunt/internal/jobsearch"
	"github.com/jonathan/jobhunt/internal/listings"
	"github.com/jonathan/jobhunt/internal/llm"
	"github.com/jonathan/jobhunt/internal/pipeline"
	"github.com/jonathan/jobhunt/internal/planner"
	"github.com/jonathan/jobhunt/internal/server/ratelimit"
	"github.com/jonathan/jobhunt/internal/store"
	"github.com/jonathan/jobhunt/internal/tracker"
	"github.com/jonathan/jobhunt/internal/types"
	"github.com/jonathan/jobhunt/internal/writing"
)

const resumeText = "Jane Doe\njane@example.com\nSenior Python and Docker engineer\ngithub.com/janedoe"

var pdfBytes = []byte("%PDF-1.7 test body")

type stubExtractor struct{}

func (stubExtractor) ExtractText(_ context.Context, _ []byte) (*types.ExtractedText, error) {
	return &types.ExtractedText{Text: resumeText, PageCount: 1}, nil
}

type failingExtractor struct {
	err error
}

func (f failingExtractor) ExtractText(_ context.Context, _ []byte) (*types.ExtractedText, error) {
	return nil, f.err
}

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Complete(_ context.Context, _ llm.Request) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Provider() llm.Provider          { return "stub" }
func (s *stubLLM) GetModel(_ llm.ModelTier) string { return "stub-model" }
func (s *stubLLM) Close() error                    { return nil }

type stubProvider struct {
	mu    sync.Mutex
	pages map[int][]types.JobListing
	err   error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Search(_ context.Context, q listings.Query) (*listings.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	ls := append([]types.JobListing(nil), s.pages[q.Page]...)
	return &listings.Result{Listings: ls, Raw: len(ls)}, nil
}

func jobs(ids ...string) []types.JobListing {
	out := make([]types.JobListing, len(ids))
	for i, id := range ids {
		out[i] = types.JobListing{ExternalID: id, Title: "Python Engineer " + id, Remote: true, Description: "Python and Docker"}
	}
	return out
}

type testServer struct {
	*Server
	handler  http.Handler
	provider *stubProvider
}

type testOptions struct {
	writer    llm.Client
	extractor extraction.TextExtractor
	limiter   *ratelimit.Limiter
	config    Config
}

// newTestServer wires a server over in-memory stores and stub upstreams.
func newTestServer(t *testing.T, opts testOptions) *testServer {
	t.Helper()

	sessions, err := store.NewMemorySessions(time.Minute, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	memory := store.NewMemory()
	provider := &stubProvider{pages: map[int][]types.JobListing{
		1: jobs("a", "b", "c", "d", "e"),
		2: jobs("e", "f"),
	}}

	var extractor extraction.TextExtractor = stubExtractor{}
	if opts.extractor != nil {
		extractor = opts.extractor
	}

	svc := pipeline.New(pipeline.Options{
		Extractor:  extractor,
		Analyzer:   analysis.NewAnalyzer(nil, nil),
		Planner:    planner.New(nil, nil),
		Aggregator: jobsearch.NewAggregator(provider, nil),
		Resumes:    memory,
		Sessions:   sessions,
	})

	s := New(opts.config, Deps{
		Service: svc,
		Tracker: tracker.New(memory, nil),
		Writer:  writing.New(opts.writer, nil),
		Limiter: opts.limiter,
	})
	return &testServer{Server: s, handler: s.Handler(), provider: provider}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

// uploadRequest builds a multipart upload with the given part content type.
func uploadRequest(t *testing.T, path, field, contentType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="jane.pdf"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, w)["error"].(string)
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t, testOptions{})

	w := ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]any](t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["llmConfigured"])
}

func TestCORS_Preflight(t *testing.T) {
	ts := newTestServer(t, testOptions{config: Config{CORSOrigin: "https://app.example.com"}})

	w := ts.do(t, http.MethodOptions, "/api/applications/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/api/interview/tips/", Method: http.MethodGet, Limit: 1, Window: time.Hour, Burst: 1},
		},
	})
	ts := newTestServer(t, testOptions{limiter: limiter})
	t.Cleanup(limiter.Stop)

	w := ts.do(t, http.MethodGet, "/api/interview/tips/React", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = ts.do(t, http.MethodGet, "/api/interview/tips/React", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", errorCode(t, w))

	w = ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code, "health is never limited")
}

func TestStart_ShutsDownOnCancel(t *testing.T) {
	ts := newTestServer(t, testOptions{config: Config{Port: 0}})
	ts.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ts.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
