package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotConfigured is returned when no API key is available for the configured provider.
var ErrNotConfigured = errors.New("LLM provider is not configured")

// Request is one chat-style completion: a system instruction and a single user prompt.
type Request struct {
	System      string
	Prompt      string
	Tier        ModelTier
	Temperature float32
	MaxTokens   int
	// JSON asks the provider for a JSON-only response where it supports that.
	JSON bool
}

// Client is an abstraction over LLM providers
type Client interface {
	// Complete returns the text of a single completion.
	Complete(ctx context.Context, req Request) (string, error)
	// Provider names the backing service.
	Provider() Provider
	// GetModel returns the model used for a tier.
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// CallError is returned when the provider call itself fails.
type CallError struct {
	Provider Provider
	Model    string
	Cause    error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s completion with %s failed: %v", e.Provider, e.Model, e.Cause)
}

func (e *CallError) Unwrap() error {
	return e.Cause
}

// NewClient creates a client for cfg.Provider. It returns ErrNotConfigured
// when cfg has no API key so callers can degrade instead of failing.
func NewClient(ctx context.Context, cfg *Config) (Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	var (
		client Client
		err    error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		client, err = NewClaudeClient(cfg)
	case ProviderGroq, ProviderOpenAI:
		client, err = NewOpenAIClient(cfg)
	default:
		client, err = NewGeminiClient(ctx, cfg)
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

const defaultMaxTokens = 2048

func maxTokens(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return defaultMaxTokens
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
