// Package server implements the backend behind the chat endpoint: it accepts
// {"message": ...}, asks an upstream model for a kid-friendly answer and
// returns {"response": ...}.
package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/funland/funland/internal/config"
	apierrors "github.com/funland/funland/internal/errors"
)

// Provider produces one reply for one user message
type Provider interface {
	Name() string
	Reply(ctx context.Context, message string) (string, error)
}

// Prompt holds the generation settings shared by all providers
type Prompt struct {
	System      string
	MaxTokens   int
	Temperature float64
}

// PromptFromConfig extracts the generation settings from cfg
func PromptFromConfig(cfg config.ServerConfig) Prompt {
	return Prompt{
		System:      cfg.SystemPrompt,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}

// NewProvider builds the provider selected by cfg.Provider.
// It returns errors.ErrNotConfigured when no API key is available.
func NewProvider(ctx context.Context, cfg config.ServerConfig, logger *zap.Logger) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, apierrors.ErrNotConfigured
	}

	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return NewOpenAIProvider(cfg, WithOpenAILogger(logger))
	case config.ProviderGemini:
		return NewGeminiProvider(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
