package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/funland/funland/internal/models"
)

// Upstream providers understood by the backend
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ServerConfig configures `funland serve`
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	Provider       string   `yaml:"provider"`
	Model          string   `yaml:"model"`
	APIKey         string   `yaml:"api_key"`
	OpenAIBaseURL  string   `yaml:"openai_base_url"`
	SystemPrompt   string   `yaml:"system_prompt"`
	MaxTokens      int      `yaml:"max_tokens"`
	Temperature    float64  `yaml:"temperature"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxConnections int      `yaml:"max_connections"`
	// UpstreamTimeoutSeconds bounds a single provider call
	UpstreamTimeoutSeconds int `yaml:"upstream_timeout_seconds"`
}

// DefaultServerConfig returns the backend defaults
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:                   "localhost:8000",
		Provider:               ProviderOpenAI,
		OpenAIBaseURL:          "https://api.openai.com/v1",
		SystemPrompt:           models.SystemPrompt,
		MaxTokens:              models.DefaultMaxTokens,
		Temperature:            models.DefaultTemperature,
		AllowedOrigins:         []string{"http://localhost:3000"},
		MaxConnections:         256,
		UpstreamTimeoutSeconds: 60,
	}
}

// DefaultModelFor returns the model used when none is configured
func DefaultModelFor(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-2.5-flash"
	default:
		return "gpt-3.5-turbo"
	}
}

// UpstreamTimeout returns the provider call timeout
func (c ServerConfig) UpstreamTimeout() time.Duration {
	if c.UpstreamTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}

// LoadServerConfig reads a YAML server config. An empty path yields the
// defaults. The API key always falls back to the provider's environment
// variable.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read server config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultServerConfig(), fmt.Errorf("failed to parse server config: %w", err)
		}
	}

	return normalizeServerConfig(cfg)
}

func normalizeServerConfig(cfg ServerConfig) (ServerConfig, error) {
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider == "" {
		cfg.Provider = ProviderOpenAI
	}
	if cfg.Provider != ProviderOpenAI && cfg.Provider != ProviderGemini {
		return cfg, fmt.Errorf("unknown provider %q (valid: %s, %s)", cfg.Provider, ProviderOpenAI, ProviderGemini)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModelFor(cfg.Provider)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = apiKeyFromEnv(cfg.Provider)
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = models.SystemPrompt
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = models.DefaultMaxTokens
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultServerConfig().Addr
	}
	cfg.OpenAIBaseURL = strings.TrimRight(cfg.OpenAIBaseURL, "/")
	return cfg, nil
}

func apiKeyFromEnv(provider string) string {
	switch provider {
	case ProviderGemini:
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
		return os.Getenv("GOOGLE_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}
