package server

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/funland/funland/internal/config"
	apierrors "github.com/funland/funland/internal/errors"
	"github.com/funland/funland/internal/models"
)

// GeminiProvider calls the Gemini API through google.golang.org/genai
type GeminiProvider struct {
	client *genai.Client
	model  string
	prompt Prompt
}

// NewGeminiProvider creates a provider for cfg.Model. Extra client settings
// (tests point HTTPOptions.BaseURL at a local server) may be passed in cc.
func NewGeminiProvider(ctx context.Context, cfg config.ServerConfig, cc ...*genai.ClientConfig) (*GeminiProvider, error) {
	clientConfig := &genai.ClientConfig{}
	if len(cc) > 0 && cc[0] != nil {
		clientConfig = cc[0]
	}
	clientConfig.APIKey = cfg.APIKey
	clientConfig.Backend = genai.BackendGeminiAPI

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = config.DefaultModelFor(config.ProviderGemini)
	}

	return &GeminiProvider{
		client: client,
		model:  model,
		prompt: PromptFromConfig(cfg),
	}, nil
}

// Name returns "gemini"
func (p *GeminiProvider) Name() string {
	return config.ProviderGemini
}

// Reply generates one answer for message
func (p *GeminiProvider) Reply(ctx context.Context, message string) (string, error) {
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(p.prompt.System, genai.RoleUser),
		MaxOutputTokens:   int32(p.prompt.MaxTokens),
		Temperature:       genai.Ptr(float32(p.prompt.Temperature)),
		// Thinking tokens count against MaxOutputTokens; with a budget this
		// small they would leave no room for the answer.
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(message), genConfig)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", apierrors.NewParseError("candidate has no text", models.FieldResponse)
	}
	return text, nil
}
