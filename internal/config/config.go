// Package config provides configuration loading and validation for the
// server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/jobhunt/internal/listings"
	"github.com/jonathan/jobhunt/internal/llm"
)

// Listings providers.
const (
	ListingsJSearch = "jsearch"
	ListingsAdzuna  = "adzuna"
)

// Defaults applied after the file and environment.
const (
	DefaultPort            = 8080
	DefaultMaxUploadBytes  = 10 << 20
	DefaultSessionTTL      = 30 * time.Minute
	DefaultListingsTimeout = 20 * time.Second
	DefaultRapidAPIHost    = "jsearch.p.rapidapi.com"
	DefaultAdzunaCountry   = "us"
	DefaultNumPages        = 3
)

// Duration is a time.Duration read from strings such as "45s" in YAML,
// JSON and the environment.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config is the full process configuration. Every field is optional in the
// file; environment variables override file values.
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server"`
	Database DatabaseConfig `yaml:"database" json:"database"`
	LLM      LLMConfig      `yaml:"llm" json:"llm"`
	Listings ListingsConfig `yaml:"listings" json:"listings"`
	Sessions SessionsConfig `yaml:"sessions" json:"sessions"`
	Log      LogConfig      `yaml:"log" json:"log"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port           int    `yaml:"port" json:"port"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" json:"max_upload_bytes"`
	CORSOrigin     string `yaml:"cors_origin" json:"cors_origin"`
}

// DatabaseConfig points at the optional PostgreSQL store.
type DatabaseConfig struct {
	URL string `yaml:"url" json:"url"`
}

// LLMConfig selects the completion provider. An empty provider picks the
// first one with a key.
type LLMConfig struct {
	Provider        string   `yaml:"provider" json:"provider"`
	GeminiAPIKey    string   `yaml:"gemini_api_key" json:"gemini_api_key"`
	AnthropicAPIKey string   `yaml:"anthropic_api_key" json:"anthropic_api_key"`
	GroqAPIKey      string   `yaml:"groq_api_key" json:"groq_api_key"`
	OpenAIAPIKey    string   `yaml:"openai_api_key" json:"openai_api_key"`
	Timeout         Duration `yaml:"timeout" json:"timeout"`
}

// ListingsConfig configures the job listings provider.
type ListingsConfig struct {
	Provider      string   `yaml:"provider" json:"provider"`
	RapidAPIKey   string   `yaml:"rapidapi_key" json:"rapidapi_key"`
	RapidAPIHost  string   `yaml:"rapidapi_host" json:"rapidapi_host"`
	AdzunaAppID   string   `yaml:"adzuna_app_id" json:"adzuna_app_id"`
	AdzunaAppKey  string   `yaml:"adzuna_app_key" json:"adzuna_app_key"`
	AdzunaCountry string   `yaml:"adzuna_country" json:"adzuna_country"`
	NumPages      int      `yaml:"num_pages" json:"num_pages"`
	Timeout       Duration `yaml:"timeout" json:"timeout"`
}

// SessionsConfig configures server-held search sessions.
type SessionsConfig struct {
	RedisURL string   `yaml:"redis_url" json:"redis_url"`
	TTL      Duration `yaml:"ttl" json:"ttl"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// Load reads the optional config file at path (YAML or JSON by extension),
// applies environment overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a YAML or JSON configuration file.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", filepath.Ext(path))
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from environment variables. lookup is
// os.LookupEnv outside of tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int64) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = n
		return nil
	}
	dur := func(key string, dst *Duration) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		if err := dst.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		return nil
	}

	port := int64(c.Server.Port)
	if err := num("PORT", &port); err != nil {
		return err
	}
	c.Server.Port = int(port)
	if err := num("MAX_UPLOAD_BYTES", &c.Server.MaxUploadBytes); err != nil {
		return err
	}
	str("CORS_ORIGIN", &c.Server.CORSOrigin)

	str("DATABASE_URL", &c.Database.URL)

	str("LLM_PROVIDER", &c.LLM.Provider)
	str("GEMINI_API_KEY", &c.LLM.GeminiAPIKey)
	str("ANTHROPIC_API_KEY", &c.LLM.AnthropicAPIKey)
	str("GROQ_API_KEY", &c.LLM.GroqAPIKey)
	str("OPENAI_API_KEY", &c.LLM.OpenAIAPIKey)
	if err := dur("LLM_TIMEOUT", &c.LLM.Timeout); err != nil {
		return err
	}

	str("LISTINGS_PROVIDER", &c.Listings.Provider)
	str("RAPIDAPI_KEY", &c.Listings.RapidAPIKey)
	str("RAPIDAPI_HOST", &c.Listings.RapidAPIHost)
	str("ADZUNA_APP_ID", &c.Listings.AdzunaAppID)
	str("ADZUNA_APP_KEY", &c.Listings.AdzunaAppKey)
	str("ADZUNA_COUNTRY", &c.Listings.AdzunaCountry)
	if err := dur("LISTINGS_TIMEOUT", &c.Listings.Timeout); err != nil {
		return err
	}

	str("REDIS_URL", &c.Sessions.RedisURL)
	if err := dur("SESSION_TTL", &c.Sessions.TTL); err != nil {
		return err
	}

	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	return nil
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.Server.CORSOrigin == "" {
		c.Server.CORSOrigin = "*"
	}
	if c.Listings.Provider == "" {
		c.Listings.Provider = ListingsJSearch
	}
	c.Listings.Provider = strings.ToLower(c.Listings.Provider)
	if c.Listings.RapidAPIHost == "" {
		c.Listings.RapidAPIHost = DefaultRapidAPIHost
	}
	if c.Listings.AdzunaCountry == "" {
		c.Listings.AdzunaCountry = DefaultAdzunaCountry
	}
	if c.Listings.NumPages == 0 {
		c.Listings.NumPages = DefaultNumPages
	}
	if c.Listings.Timeout == 0 {
		c.Listings.Timeout = Duration(DefaultListingsTimeout)
	}
	if c.Sessions.TTL == 0 {
		c.Sessions.TTL = Duration(DefaultSessionTTL)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks value ranges. Missing credentials are not errors: the
// components that need them report the missing configuration at use.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range", c.Server.Port)
	}
	if c.Server.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.Listings.Provider != ListingsJSearch && c.Listings.Provider != ListingsAdzuna {
		return fmt.Errorf("config error: unknown listings provider %q", c.Listings.Provider)
	}
	if c.Listings.NumPages < 1 || c.Listings.NumPages > 20 {
		return fmt.Errorf("config error: 'num_pages' must be between 1 and 20")
	}
	if c.LLM.Timeout < 0 || c.Listings.Timeout < 0 || c.Sessions.TTL < 0 {
		return fmt.Errorf("config error: durations must be non-negative")
	}
	if c.LLM.Provider != "" {
		if _, err := llm.ParseProvider(c.LLM.Provider); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	return nil
}

// LLMClientConfig resolves the provider and its key into an llm.Config.
// With no explicit provider the first provider holding a key wins, in the
// order groq, gemini, anthropic, openai. APIKey is empty when nothing is
// configured, which llm.NewClient reports as ErrNotConfigured.
func (c *Config) LLMClientConfig() *llm.Config {
	keys := map[llm.Provider]string{
		llm.ProviderGroq:      c.LLM.GroqAPIKey,
		llm.ProviderGemini:    c.LLM.GeminiAPIKey,
		llm.ProviderAnthropic: c.LLM.AnthropicAPIKey,
		llm.ProviderOpenAI:    c.LLM.OpenAIAPIKey,
	}

	provider := llm.ProviderGroq
	if c.LLM.Provider != "" {
		if p, err := llm.ParseProvider(c.LLM.Provider); err == nil {
			provider = p
		}
	} else {
		for _, p := range []llm.Provider{llm.ProviderGroq, llm.ProviderGemini, llm.ProviderAnthropic, llm.ProviderOpenAI} {
			if keys[p] != "" {
				provider = p
				break
			}
		}
	}

	cfg := llm.DefaultConfig(provider)
	cfg.APIKey = keys[provider]
	if c.LLM.Timeout > 0 {
		cfg.Timeout = time.Duration(c.LLM.Timeout)
	}
	return cfg
}

// ListingsProvider builds the configured listings provider. Credentials are
// checked by the provider on each search.
func (c *Config) ListingsProvider() listings.Provider {
	timeout := time.Duration(c.Listings.Timeout)
	if c.Listings.Provider == ListingsAdzuna {
		return listings.NewAdzunaClient(listings.AdzunaConfig{
			AppID:    c.Listings.AdzunaAppID,
			AppKey:   c.Listings.AdzunaAppKey,
			Country:  c.Listings.AdzunaCountry,
			NumPages: c.Listings.NumPages,
			Timeout:  timeout,
		})
	}
	return listings.NewJSearchClient(listings.JSearchConfig{
		APIKey:   c.Listings.RapidAPIKey,
		Host:     c.Listings.RapidAPIHost,
		NumPages: c.Listings.NumPages,
		Timeout:  timeout,
	})
}
