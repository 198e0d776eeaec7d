package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/funland/funland/internal/config"
	apierrors "github.com/funland/funland/internal/errors"
	"github.com/funland/funland/internal/models"
)

const maxUpstreamBody = 4 << 20

// OpenAIProvider calls the chat completions REST API
type OpenAIProvider struct {
	httpClient tls_client.HttpClient
	baseURL    string
	apiKey     string
	model      string
	prompt     Prompt
	logger     *zap.Logger
}

// OpenAIOption configures an OpenAIProvider
type OpenAIOption func(*OpenAIProvider)

// WithOpenAIHTTPClient injects the HTTP client, mainly for tests
func WithOpenAIHTTPClient(httpClient tls_client.HttpClient) OpenAIOption {
	return func(p *OpenAIProvider) {
		p.httpClient = httpClient
	}
}

// WithOpenAILogger sets the logger
func WithOpenAILogger(logger *zap.Logger) OpenAIOption {
	return func(p *OpenAIProvider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

// NewOpenAIProvider creates a provider for cfg.Model at cfg.OpenAIBaseURL
func NewOpenAIProvider(cfg config.ServerConfig, opts ...OpenAIOption) (*OpenAIProvider, error) {
	p := &OpenAIProvider{
		baseURL: cfg.OpenAIBaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		prompt:  PromptFromConfig(cfg),
		logger:  zap.NewNop(),
	}
	if p.baseURL == "" {
		p.baseURL = config.DefaultServerConfig().OpenAIBaseURL
	}
	if p.model == "" {
		p.model = config.DefaultModelFor(config.ProviderOpenAI)
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.httpClient == nil {
		timeout := cfg.UpstreamTimeoutSeconds
		if timeout <= 0 {
			timeout = 300
		}
		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(),
			tls_client.WithTimeoutSeconds(timeout),
			tls_client.WithClientProfile(profiles.Chrome_120),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		p.httpClient = httpClient
	}

	return p, nil
}

// Name returns "openai"
func (p *OpenAIProvider) Name() string {
	return config.ProviderOpenAI
}

// Reply sends the system prompt and message to the completions endpoint
func (p *OpenAIProvider) Reply(ctx context.Context, message string) (string, error) {
	payload, err := json.Marshal(openAIRequest{
		Model: p.model,
		Messages: []openAIMessage{
			{Role: models.RoleSystem, Content: p.prompt.System},
			{Role: models.RoleUser, Content: message},
		},
		MaxTokens:   p.prompt.MaxTokens,
		Temperature: p.prompt.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build payload: %w", err)
	}

	endpoint := p.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", apierrors.NewTimeoutError(endpoint)
		}
		return "", apierrors.NewNetworkError("chat completion", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return "", apierrors.NewNetworkError("read completion", endpoint, err)
	}

	p.logger.Debug("upstream completion",
		zap.String("provider", p.Name()),
		zap.String("model", p.model),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := gjson.GetBytes(body, "error.message").String()
		return "", apierrors.NewAPIError(resp.StatusCode, endpoint, detail)
	}

	content := gjson.GetBytes(body, "choices.0.message.content")
	if !content.Exists() || content.String() == "" {
		return "", apierrors.NewParseError("completion has no content", models.FieldResponse)
	}

	return content.String(), nil
}
