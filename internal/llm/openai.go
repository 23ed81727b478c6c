package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIClient implements Client for OpenAI-compatible chat completion
// endpoints, Groq included.
type OpenAIClient struct {
	llm    *openai.LLM
	config *Config
}

// NewOpenAIClient creates a client for an OpenAI-compatible endpoint.
func NewOpenAIClient(cfg *Config) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.GetModel(TierStandard)),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	return &OpenAIClient{llm: model, config: cfg}, nil
}

// Complete sends a system and a user message and returns the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", req.Tier)
	}

	ctx, cancel := withTimeout(ctx, c.config.Timeout)
	defer cancel()

	messages := make([]llms.MessageContent, 0, 2)
	if req.System != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt))

	callOpts := []llms.CallOption{
		llms.WithModel(modelName),
		llms.WithTemperature(float64(req.Temperature)),
		llms.WithMaxTokens(maxTokens(req)),
	}
	if req.JSON {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	resp, err := c.llm.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return "", &CallError{Provider: c.config.Provider, Model: modelName, Cause: err}
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in %s response", c.config.Provider)
	}
	return resp.Choices[0].Content, nil
}

// Provider returns the configured OpenAI-compatible provider.
func (c *OpenAIClient) Provider() Provider {
	return c.config.Provider
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op.
func (c *OpenAIClient) Close() error {
	return nil
}
