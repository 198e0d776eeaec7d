package api

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/funland/funland/internal/api/apitest"
	apierrors "github.com/funland/funland/internal/errors"
	"github.com/funland/funland/internal/models"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		opts        []ClientOption
		wantBaseURL string
		wantTimeout time.Duration
	}{
		{
			name:        "defaults",
			wantBaseURL: models.DefaultBaseURL,
			wantTimeout: 60 * time.Second,
		},
		{
			name:        "custom base URL",
			opts:        []ClientOption{WithBaseURL("https://funland.example.com/")},
			wantBaseURL: "https://funland.example.com",
			wantTimeout: 60 * time.Second,
		},
		{
			name:        "empty base URL falls back to default",
			opts:        []ClientOption{WithBaseURL("")},
			wantBaseURL: models.DefaultBaseURL,
			wantTimeout: 60 * time.Second,
		},
		{
			name:        "custom timeout",
			opts:        []ClientOption{WithTimeout(5 * time.Second)},
			wantBaseURL: models.DefaultBaseURL,
			wantTimeout: 5 * time.Second,
		},
		{
			name:        "no timeout",
			opts:        []ClientOption{WithTimeout(0), WithLogger(zap.NewNop())},
			wantBaseURL: models.DefaultBaseURL,
			wantTimeout: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]ClientOption{WithHTTPClient(apitest.NewMockHTTPClient(200, "{}"))}, tt.opts...)
			client, err := NewClient(opts...)
			if err != nil {
				t.Fatalf("NewClient() error = %v", err)
			}

			if client.BaseURL() != tt.wantBaseURL {
				t.Errorf("BaseURL() = %s, want %s", client.BaseURL(), tt.wantBaseURL)
			}
			if client.Timeout() != tt.wantTimeout {
				t.Errorf("Timeout() = %v, want %v", client.Timeout(), tt.wantTimeout)
			}
		})
	}
}

func TestNewClient_RealTransport(t *testing.T) {
	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client.httpClient == nil {
		t.Error("Expected default HTTP client to be created")
	}
	client.Close()
}

func TestNewClient_WithHTTPClient(t *testing.T) {
	mock := apitest.NewMockHTTPClient(200, "{}")

	client, err := NewClient(WithHTTPClient(mock))
	if err != nil {
		t.Fatalf("NewClient with WithHTTPClient failed: %v", err)
	}

	if client.httpClient != mock {
		t.Error("Expected injected HTTP client to be used")
	}
}

func TestClient_URLs(t *testing.T) {
	client, _ := NewClient(
		WithHTTPClient(apitest.NewMockHTTPClient(200, "{}")),
		WithBaseURL("https://funland.example.com"),
	)

	if client.ChatURL() != "https://funland.example.com/api/chat" {
		t.Errorf("ChatURL() = %s", client.ChatURL())
	}
	if client.HealthURL() != "https://funland.example.com/api/health" {
		t.Errorf("HealthURL() = %s", client.HealthURL())
	}

	client.SetBaseURL("http://localhost:9000///")
	if client.ChatURL() != "http://localhost:9000/api/chat" {
		t.Errorf("ChatURL() after SetBaseURL = %s", client.ChatURL())
	}
}

func TestClient_Close(t *testing.T) {
	mock := apitest.NewMockHTTPClient(200, `{"response":"hi"}`)
	client, _ := NewClient(WithHTTPClient(mock))

	client.Close()
	client.Close()

	if !client.IsClosed() {
		t.Error("Expected client to be closed")
	}
	if mock.CloseCount() != 1 {
		t.Errorf("CloseIdleConnections called %d times, want 1", mock.CloseCount())
	}

	_, err := client.Chat(t.Context(), "hello")
	if !errors.Is(err, apierrors.ErrClientClosed) {
		t.Errorf("Chat() after Close error = %v, want ErrClientClosed", err)
	}
	if mock.RequestCount() != 0 {
		t.Error("Closed client should not issue requests")
	}
}
