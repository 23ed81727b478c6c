// Package llm provides the completion client abstraction used by résumé
// analysis, search planning and the document generators.
package llm

import (
	"fmt"
	"strings"
	"time"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short structured answers such as search planning
	TierLite ModelTier = "lite"
	// TierStandard is for résumé analysis and answer evaluation
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long-form writing
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Supported providers.
const (
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
	ProviderGroq      Provider = "groq"
	ProviderOpenAI    Provider = "openai"
)

const (
	groqBaseURL    = "https://api.groq.com/openai/v1"
	defaultTimeout = 60 * time.Second
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	APIKey   string
	Models   map[ModelTier]string
	// BaseURL overrides the endpoint of OpenAI-compatible providers.
	BaseURL string
	Timeout time.Duration
}

// ParseProvider maps a provider name to a Provider.
func ParseProvider(name string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(name))) {
	case ProviderGemini, "":
		return ProviderGemini, nil
	case ProviderAnthropic, "claude":
		return ProviderAnthropic, nil
	case ProviderGroq:
		return ProviderGroq, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q", name)
	}
}

// DefaultConfig returns the default configuration for a provider.
func DefaultConfig(provider Provider) *Config {
	cfg := &Config{Provider: provider, Timeout: defaultTimeout}
	switch provider {
	case ProviderAnthropic:
		cfg.Models = map[ModelTier]string{
			TierLite:     "claude-3-5-haiku-latest",
			TierStandard: "claude-3-7-sonnet-latest",
			TierAdvanced: "claude-3-7-sonnet-latest",
		}
	case ProviderGroq:
		cfg.BaseURL = groqBaseURL
		cfg.Models = map[ModelTier]string{
			TierLite:     "llama-3.3-70b-versatile",
			TierStandard: "llama-3.3-70b-versatile",
			TierAdvanced: "llama-3.3-70b-versatile",
		}
	case ProviderOpenAI:
		cfg.Models = map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o-mini",
			TierAdvanced: "gpt-4o",
		}
	default:
		cfg.Provider = ProviderGemini
		cfg.Models = map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		}
	}
	return cfg
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of c with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := *c
	next.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return &next
}
