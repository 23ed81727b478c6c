// Package writing generates application documents and interview practice
// material with an LLM.
package writing

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/jobhunt/internal/llm"
	"github.com/jonathan/jobhunt/internal/logging"
	"github.com/jonathan/jobhunt/internal/prompts"
)

const promptFile = "writing.json"

// Placeholder values used when the candidate or job leaves a field empty.
const (
	defaultName  = "The Applicant"
	notProvided  = "Not provided"
	notSpecified = "Not specified"
)

// Generator produces documents from a candidate profile. A nil client is
// the unconfigured state: every generator returns llm.ErrNotConfigured.
type Generator struct {
	client llm.Client
	logger logrus.FieldLogger
}

// New creates a Generator. client may be nil.
func New(client llm.Client, logger logrus.FieldLogger) *Generator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Generator{client: client, logger: logger.WithField("component", "writing")}
}

// Configured reports whether an LLM client is available.
func (g *Generator) Configured() bool {
	return g.client != nil
}

// complete renders the named prompt with its "-system" companion and decodes
// the JSON answer into v.
func (g *Generator) complete(ctx context.Context, key string, data map[string]string, temperature float32, maxTokens int, schema string, v any) error {
	system, err := prompts.Get(promptFile, key+"-system")
	if err != nil {
		return err
	}
	prompt, err := prompts.Render(promptFile, key, data)
	if err != nil {
		return err
	}

	return llm.CompleteJSON(ctx, g.client, llm.Request{
		System:      system,
		Prompt:      prompt,
		Tier:        llm.TierStandard,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}, schema, v)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func joinOr(items []string, sep, fallback string) string {
	var kept []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	if len(kept) == 0 {
		return fallback
	}
	return strings.Join(kept, sep)
}
