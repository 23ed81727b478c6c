// Package analysis turns résumé text into a structured ResumeAnalysis using an
// LLM, with a heuristic fallback when the model is unavailable.
package analysis

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/jobhunt/internal/ingestion"
	"github.com/jonathan/jobhunt/internal/llm"
	"github.com/jonathan/jobhunt/internal/logging"
	"github.com/jonathan/jobhunt/internal/prompts"
	"github.com/jonathan/jobhunt/internal/schemas"
	"github.com/jonathan/jobhunt/internal/types"
)

// MaxInputChars bounds the résumé text sent to the model.
const MaxInputChars = 6000

const (
	temperature = 0.2
	maxTokens   = 2000
)

// Status is the outcome of one analysis attempt.
type Status string

// Analysis outcomes. Only StatusOK carries an analysis.
const (
	StatusOK            Status = "ok"
	StatusUnconfigured  Status = "unconfigured"
	StatusInvalidOutput Status = "invalid_output"
	StatusCallFailed    Status = "call_failed"
)

// Result is the tagged outcome of Analyze.
type Result struct {
	Status   Status
	Analysis *types.ResumeAnalysis
	Err      error
}

// OK reports whether the model produced a usable analysis.
func (r Result) OK() bool {
	return r.Status == StatusOK && r.Analysis != nil
}

// Analyzer runs résumé analysis against an LLM client. A nil client is the
// unconfigured state.
type Analyzer struct {
	client llm.Client
	logger logrus.FieldLogger
}

// NewAnalyzer creates an Analyzer. client may be nil.
func NewAnalyzer(client llm.Client, logger logrus.FieldLogger) *Analyzer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Analyzer{client: client, logger: logger.WithField("component", "analysis")}
}

// Analyze sends the résumé to the model and validates the answer. It never
// returns a partially adopted analysis: any decoding or shape failure yields
// StatusInvalidOutput with a nil Analysis.
func (a *Analyzer) Analyze(ctx context.Context, text string) Result {
	if a.client == nil {
		return Result{Status: StatusUnconfigured, Err: llm.ErrNotConfigured}
	}

	system, err := prompts.Get("analysis.json", "system")
	if err != nil {
		return Result{Status: StatusCallFailed, Err: err}
	}
	prompt, err := prompts.Render("analysis.json", "analyze-resume", map[string]string{
		"ResumeText": ingestion.Truncate(ingestion.CleanText(text), MaxInputChars),
	})
	if err != nil {
		return Result{Status: StatusCallFailed, Err: err}
	}

	var analysis types.ResumeAnalysis
	err = llm.CompleteJSON(ctx, a.client, llm.Request{
		System:      system,
		Prompt:      prompt,
		Tier:        llm.TierStandard,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}, schemas.ResumeAnalysis, &analysis)
	if err != nil {
		status := classify(err)
		a.logger.WithError(err).WithField("status", status).Warn("resume analysis unavailable")
		return Result{Status: status, Err: err}
	}

	Normalize(&analysis)
	return Result{Status: StatusOK, Analysis: &analysis}
}

func classify(err error) Status {
	var outErr *llm.OutputError
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return StatusUnconfigured
	case errors.As(err, &outErr):
		return StatusInvalidOutput
	default:
		return StatusCallFailed
	}
}
