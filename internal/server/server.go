package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobhunt/internal/listings"
	"github.com/jonathan/jobhunt/internal/logging"
	"github.com/jonathan/jobhunt/internal/pipeline"
	"github.com/jonathan/jobhunt/internal/server/ratelimit"
	"github.com/jonathan/jobhunt/internal/tracker"
	"github.com/jonathan/jobhunt/internal/writing"
)

// DefaultMaxUploadBytes bounds a résumé upload.
const DefaultMaxUploadBytes = 10 << 20

const shutdownTimeout = 30 * time.Second

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	service        *pipeline.Service
	tracker        *tracker.Tracker
	writer         *writing.Generator
	rateLimiter    *ratelimit.Limiter
	maxUploadBytes int64
	corsOrigin     string
	logger         logrus.FieldLogger
}

// Config holds server configuration
type Config struct {
	Port           int
	MaxUploadBytes int64
	CORSOrigin     string
}

// Deps are the components the handlers call. Service, Tracker and Writer
// are required; a nil Limiter disables rate limiting.
type Deps struct {
	Service *pipeline.Service
	Tracker *tracker.Tracker
	Writer  *writing.Generator
	Limiter *ratelimit.Limiter
	Logger  logrus.FieldLogger
}

// New creates a new server instance
func New(cfg Config, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
	}
	limiter := deps.Limiter
	if limiter == nil {
		limiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}

	s := &Server{
		service:        deps.Service,
		tracker:        deps.Tracker,
		writer:         deps.Writer,
		rateLimiter:    limiter,
		maxUploadBytes: cfg.MaxUploadBytes,
		corsOrigin:     cfg.CORSOrigin,
		logger:         logger.WithField("component", "server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Résumés
	mux.HandleFunc("POST /api/resumes", s.handleUploadResume)
	mux.HandleFunc("POST /api/resumes/stream", s.handleUploadResumeStream)
	mux.HandleFunc("GET /api/resumes", s.handleListResumes)
	mux.HandleFunc("GET /api/resumes/{id}", s.handleGetResume)

	// Job search
	mux.HandleFunc("GET /api/jobs/search", s.handleSearchJobs)
	mux.HandleFunc("POST /api/jobs/sessions", s.handleStartSession)
	mux.HandleFunc("POST /api/jobs/sessions/{id}/more", s.handleLoadMore)

	// Application tracker
	mux.HandleFunc("POST /api/applications", s.handleSaveApplication)
	mux.HandleFunc("GET /api/applications", s.handleListApplications)
	mux.HandleFunc("PATCH /api/applications/{id}", s.handleUpdateApplication)
	mux.HandleFunc("DELETE /api/applications/{id}", s.handleDeleteApplication)

	// Generators
	mux.HandleFunc("POST /api/writing/cover-letter", s.handleCoverLetter)
	mux.HandleFunc("POST /api/writing/cold-email", s.handleColdEmail)
	mux.HandleFunc("POST /api/interview/questions", s.handleInterviewQuestions)
	mux.HandleFunc("POST /api/interview/evaluate", s.handleEvaluateAnswer)
	mux.HandleFunc("GET /api/interview/tips/{skill}", s.handleInterviewTips)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // model calls and listings pages
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the routed handler with its middleware chain.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.WithField("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.rateLimiter.Stop()
	s.logger.Info("server stopped")
	return err
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps streaming responses working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
			"remote":   r.RemoteAddr,
		}).Info("request")
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"llmConfigured": s.writer != nil && s.writer.Configured(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response with the status and code
// resolved from err. Upstream rate limits carry Retry-After.
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	status, code := classify(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.WithError(err).Error("request failed")
		message = "internal server error"
	} else if status >= http.StatusBadGateway {
		s.logger.WithError(err).WithField("code", code).Warn("upstream failure")
	}

	var providerErr *listings.ProviderError
	if errors.As(err, &providerErr) && providerErr.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(providerErr.RetryAfter.Seconds())))
	}

	s.jsonResponse(w, status, map[string]string{"error": code, "message": message})
}

// decodeJSON decodes a request body into v.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return &ErrValidation{Message: "request body is required"}
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// extractClientID extracts the client identifier from the request.
// X-Forwarded-For is not trusted; the remote IP is used.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds() + 0.5)
		if seconds < 1 {
			seconds = 1
		}
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.WithFields(logrus.Fields{
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}).Warn("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// queryBool parses a boolean query parameter; anything unparsable is false.
func queryBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(r.URL.Query().Get(key)))
	return err == nil && v
}
