// Package pipeline orchestrates résumé ingestion and job searches over the
// extraction, analysis, planning and listings components.
package pipeline

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/jobhunt/internal/analysis"
	"github.com/jonathan/jobhunt/internal/extraction"
	"github.com/jonathan/jobhunt/internal/jobsearch"
	"github.com/jonathan/jobhunt/internal/logging"
	"github.com/jonathan/jobhunt/internal/planner"
	"github.com/jonathan/jobhunt/internal/store"
)

// Steps reported through ProgressCallback.
const (
	StepExtractText = "extract_text"
	StepBasicFields = "basic_fields"
	StepAnalyze     = "analyze"
	StepPersist     = "persist"
	StepPlan        = "plan"
	StepFetch       = "fetch"
)

// ProgressEvent represents a progress update during an operation.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. It may be called
// from several goroutines at once.
type ProgressCallback func(event ProgressEvent)

// Options wires a Service. Extractor, Analyzer, Planner, Aggregator and
// Resumes are required; Sessions is needed only for server-held sessions.
type Options struct {
	Extractor  extraction.TextExtractor
	Analyzer   *analysis.Analyzer
	Planner    *planner.Planner
	Aggregator *jobsearch.Aggregator
	Resumes    store.Resumes
	Sessions   store.Sessions
	OnProgress ProgressCallback
	Logger     logrus.FieldLogger
}

// Service runs ingestion and search requests. It is safe for concurrent use.
type Service struct {
	extractor  extraction.TextExtractor
	analyzer   *analysis.Analyzer
	planner    *planner.Planner
	aggregator *jobsearch.Aggregator
	resumes    store.Resumes
	sessions   store.Sessions
	onProgress ProgressCallback
	locks      store.KeyedMutex
	now        func() time.Time
	logger     logrus.FieldLogger
}

// New creates a Service from opts.
func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{
		extractor:  opts.Extractor,
		analyzer:   opts.Analyzer,
		planner:    opts.Planner,
		aggregator: opts.Aggregator,
		resumes:    opts.Resumes,
		sessions:   opts.Sessions,
		onProgress: opts.OnProgress,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger.WithField("component", "pipeline"),
	}
}

type progressKey struct{}

// WithProgress returns a context whose operations also report progress to
// cb, in addition to the Service-wide callback.
func WithProgress(ctx context.Context, cb ProgressCallback) context.Context {
	return context.WithValue(ctx, progressKey{}, cb)
}

func (s *Service) emit(ctx context.Context, step, message string, content any) {
	event := ProgressEvent{Step: step, Message: message, Content: content}
	if s.onProgress != nil {
		s.onProgress(event)
	}
	if cb, ok := ctx.Value(progressKey{}).(ProgressCallback); ok && cb != nil {
		cb(event)
	}
}
