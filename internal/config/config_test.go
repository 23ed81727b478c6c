package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobhunt/internal/llm"
)

func envFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  port: 9000
  cors_origin: https://jobs.example.com
llm:
  provider: anthropic
  timeout: 45s
listings:
  provider: adzuna
  adzuna_country: gb
sessions:
  ttl: 10m
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "https://jobs.example.com", cfg.Server.CORSOrigin)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, Duration(45*time.Second), cfg.LLM.Timeout)
	assert.Equal(t, ListingsAdzuna, cfg.Listings.Provider)
	assert.Equal(t, "gb", cfg.Listings.AdzunaCountry)
	assert.Equal(t, Duration(10*time.Minute), cfg.Sessions.TTL)
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"server": {"port": 8081},
		"listings": {"timeout": "5s", "num_pages": 1},
		"log": {"level": "debug", "format": "json"}
	}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, Duration(5*time.Second), cfg.Listings.Timeout)
	assert.Equal(t, 1, cfg.Listings.NumPages)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile("")
	assert.Error(t, err)

	_, err = LoadFile("/nonexistent/path/config.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	_, err = LoadFile(writeFile(t, "config.json", `{ invalid json }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")

	_, err = LoadFile(writeFile(t, "config.toml", `port = 1`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file extension")

	_, err = LoadFile(writeFile(t, "config.yaml", "llm:\n  timeout: soon\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestApplyEnv_OverridesFile(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Port: 9000}, LLM: LLMConfig{Provider: "gemini"}}

	err := cfg.ApplyEnv(envFrom(map[string]string{
		"PORT":             "7000",
		"LLM_PROVIDER":     "groq",
		"GROQ_API_KEY":     "gsk-test",
		"LLM_TIMEOUT":      "15s",
		"RAPIDAPI_KEY":     "rk",
		"SESSION_TTL":      "1h",
		"MAX_UPLOAD_BYTES": "1024",
		"DATABASE_URL":     "  ",
	}))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "groq", cfg.LLM.Provider)
	assert.Equal(t, "gsk-test", cfg.LLM.GroqAPIKey)
	assert.Equal(t, Duration(15*time.Second), cfg.LLM.Timeout)
	assert.Equal(t, "rk", cfg.Listings.RapidAPIKey)
	assert.Equal(t, Duration(time.Hour), cfg.Sessions.TTL)
	assert.Equal(t, int64(1024), cfg.Server.MaxUploadBytes)
	assert.Empty(t, cfg.Database.URL, "blank values do not override")
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"PORT":             "eighty",
		"LLM_TIMEOUT":      "forever",
		"MAX_UPLOAD_BYTES": "10MB",
		"SESSION_TTL":      "30",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			cfg := &Config{}
			err := cfg.ApplyEnv(envFrom(map[string]string{key: value}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "*", cfg.Server.CORSOrigin)
	assert.Equal(t, ListingsJSearch, cfg.Listings.Provider)
	assert.Equal(t, DefaultRapidAPIHost, cfg.Listings.RapidAPIHost)
	assert.Equal(t, DefaultNumPages, cfg.Listings.NumPages)
	assert.Equal(t, Duration(DefaultSessionTTL), cfg.Sessions.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.ApplyDefaults()
		return cfg
	}

	cfg := base()
	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Listings.Provider = "indeed"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Listings.NumPages = 50
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.LLM.Provider = "cohere"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.LLM.Timeout = Duration(-time.Second)
	assert.Error(t, cfg.Validate())
}

func TestLoad_EnvWithoutFile(t *testing.T) {
	t.Setenv("PORT", "8181")
	t.Setenv("LISTINGS_PROVIDER", "Adzuna")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, ListingsAdzuna, cfg.Listings.Provider)
}

func TestLLMClientConfig(t *testing.T) {
	t.Run("no keys", func(t *testing.T) {
		cfg := &Config{}
		llmCfg := cfg.LLMClientConfig()
		assert.Equal(t, llm.ProviderGroq, llmCfg.Provider)
		assert.Empty(t, llmCfg.APIKey)
	})

	t.Run("first configured key wins", func(t *testing.T) {
		cfg := &Config{LLM: LLMConfig{GeminiAPIKey: "g", AnthropicAPIKey: "a"}}
		llmCfg := cfg.LLMClientConfig()
		assert.Equal(t, llm.ProviderGemini, llmCfg.Provider)
		assert.Equal(t, "g", llmCfg.APIKey)
	})

	t.Run("explicit provider", func(t *testing.T) {
		cfg := &Config{LLM: LLMConfig{
			Provider:        "claude",
			GroqAPIKey:      "q",
			AnthropicAPIKey: "a",
			Timeout:         Duration(5 * time.Second),
		}}
		llmCfg := cfg.LLMClientConfig()
		assert.Equal(t, llm.ProviderAnthropic, llmCfg.Provider)
		assert.Equal(t, "a", llmCfg.APIKey)
		assert.Equal(t, 5*time.Second, llmCfg.Timeout)
	})
}

func TestListingsProvider(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	assert.Equal(t, "jsearch", cfg.ListingsProvider().Name())

	cfg.Listings.Provider = ListingsAdzuna
	assert.Equal(t, "adzuna", cfg.ListingsProvider().Name())
}
