package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/funland/funland/internal/chat"
	"github.com/funland/funland/internal/config"
	apierrors "github.com/funland/funland/internal/errors"
	"github.com/funland/funland/internal/tui"
)

type fakeClient struct {
	baseURL   string
	timeout   time.Duration
	reply     string
	err       error
	healthErr error
	messages  []string
	closed    bool
}

func (f *fakeClient) Chat(ctx context.Context, message string) (string, error) {
	f.messages = append(f.messages, message)
	return f.reply, f.err
}

func (f *fakeClient) Health(ctx context.Context) error { return f.healthErr }
func (f *fakeClient) BaseURL() string                  { return f.baseURL }
func (f *fakeClient) Close()                           { f.closed = true }

type testEnv struct {
	deps      *Dependencies
	client    *fakeClient
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	pageRuns  int
	copied    []string
	stdinTTY  bool
	stdoutTTY bool
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvBaseURL, "")
	t.Setenv(config.EnvTimeout, "")

	env := &testEnv{
		client:   &fakeClient{reply: "Hello!"},
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		stdinTTY: true,
	}
	env.deps = &Dependencies{
		NewClient: func(baseURL string, timeout time.Duration, logger *zap.Logger) (ChatClient, error) {
			env.client.baseURL = baseURL
			env.client.timeout = timeout
			return env.client, nil
		},
		RunPage: func(ctx context.Context, sender chat.Sender, opts tui.Options) error {
			env.pageRuns++
			return nil
		},
		CopyToClipboard: func(text string) error {
			env.copied = append(env.copied, text)
			return nil
		},
		Stdin:         strings.NewReader(""),
		Stdout:        env.stdout,
		Stderr:        env.stderr,
		StdinIsTTY:    func() bool { return env.stdinTTY },
		StdoutIsTTY:   func() bool { return env.stdoutTTY },
		TerminalWidth: func() int { return 80 },
	}
	return env
}

func (env *testEnv) run(args ...string) error {
	cmd := NewRootCmd(env.deps)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func TestRoot_QueryFromArg(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("  Why is the sky blue?  "); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if len(env.client.messages) != 1 || env.client.messages[0] != "Why is the sky blue?" {
		t.Errorf("messages = %q, want the trimmed question", env.client.messages)
	}
	if got := env.stdout.String(); got != "Hello!" {
		t.Errorf("stdout = %q, want raw reply when not a terminal", got)
	}
	if !env.client.closed {
		t.Error("client was not closed")
	}
}

func TestRoot_QueryDecorated(t *testing.T) {
	env := newTestEnv(t)
	env.stdoutTTY = true

	if err := env.run("hi"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out := env.stdout.String()
	if !strings.Contains(out, "AI Friend") || !strings.Contains(out, "Hello") {
		t.Errorf("stdout = %q, want labelled reply bubble", out)
	}
	if !strings.Contains(env.stderr.String(), "Got an answer!") {
		t.Errorf("stderr = %q, want spinner success line", env.stderr.String())
	}
	if len(env.copied) != 0 {
		t.Errorf("copied = %q, want nothing when copy_to_clipboard is off", env.copied)
	}
}

func TestRoot_QueryCopiesWhenConfigured(t *testing.T) {
	env := newTestEnv(t)
	env.stdoutTTY = true

	cfg := config.DefaultConfig()
	cfg.CopyToClipboard = true
	if err := config.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	if err := env.run("hi"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if len(env.copied) != 1 || env.copied[0] != "Hello!" {
		t.Errorf("copied = %q, want [Hello!]", env.copied)
	}
}

func TestRoot_QueryFromStdin(t *testing.T) {
	env := newTestEnv(t)
	env.stdinTTY = false
	env.deps.Stdin = strings.NewReader("tell me a joke\n")

	if err := env.run(); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if len(env.client.messages) != 1 || env.client.messages[0] != "tell me a joke" {
		t.Errorf("messages = %q", env.client.messages)
	}
}

func TestRoot_QueryFromFile(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "q.txt")
	if err := os.WriteFile(path, []byte("from a file"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := env.run("-f", path); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if len(env.client.messages) != 1 || env.client.messages[0] != "from a file" {
		t.Errorf("messages = %q", env.client.messages)
	}
}

func TestRoot_QueryToOutputFile(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "reply.txt")

	if err := env.run("-o", path, "hi"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "Hello!" {
		t.Errorf("file = %q, want Hello!", data)
	}
	if env.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", env.stdout.String())
	}
}

func TestRoot_QueryErrors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		clientErr error
		wantErr   string
	}{
		{
			name:    "blank message",
			args:    []string{"   "},
			wantErr: "message cannot be empty",
		},
		{
			name:      "server error",
			args:      []string{"hi"},
			clientErr: apierrors.NewAPIError(500, "http://localhost:8000/api/chat", "server down"),
			wantErr:   "server down",
		},
		{
			name:      "no reply",
			args:      []string{"hi"},
			clientErr: apierrors.ErrNoReply,
			wantErr:   "chat request failed",
		},
		{
			name:    "missing file",
			args:    []string{"-f", "/nonexistent/question.txt"},
			wantErr: "failed to read file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.client.err = tt.clientErr

			err := env.run(tt.args...)
			if err == nil {
				t.Fatal("run() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want containing %q", err.Error(), tt.wantErr)
			}
			if tt.clientErr != nil && !errors.Is(err, tt.clientErr) {
				t.Errorf("error %v does not wrap %v", err, tt.clientErr)
			}
		})
	}
}

func TestRoot_PageWhenInteractive(t *testing.T) {
	env := newTestEnv(t)
	env.stdoutTTY = true

	if err := env.run(); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if env.pageRuns != 1 {
		t.Errorf("pageRuns = %d, want 1", env.pageRuns)
	}
	if len(env.client.messages) != 0 {
		t.Errorf("messages = %q, the page must not send anything on start", env.client.messages)
	}
}

func TestRoot_HelpWhenNotInteractive(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run(); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if env.pageRuns != 0 {
		t.Errorf("pageRuns = %d, want 0", env.pageRuns)
	}
	if !strings.Contains(env.stdout.String(), "Usage:") {
		t.Errorf("stdout = %q, want help", env.stdout.String())
	}
}

func TestRoot_Version(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("-v"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.HasPrefix(env.stdout.String(), "funland ") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestRoot_BaseURLAndTimeout(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		env         string
		wantBaseURL string
		wantTimeout time.Duration
	}{
		{
			name:        "defaults",
			args:        []string{"hi"},
			wantBaseURL: "http://localhost:8000",
			wantTimeout: 60 * time.Second,
		},
		{
			name:        "env overrides config",
			args:        []string{"hi"},
			env:         "http://env.example:9000/",
			wantBaseURL: "http://env.example:9000",
			wantTimeout: 60 * time.Second,
		},
		{
			name:        "flags win",
			args:        []string{"--base-url", "http://flag.example", "--timeout", "5s", "hi"},
			env:         "http://env.example:9000",
			wantBaseURL: "http://flag.example",
			wantTimeout: 5 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			t.Setenv(config.EnvBaseURL, tt.env)

			if err := env.run(tt.args...); err != nil {
				t.Fatalf("run() error = %v", err)
			}
			if env.client.baseURL != tt.wantBaseURL {
				t.Errorf("baseURL = %q, want %q", env.client.baseURL, tt.wantBaseURL)
			}
			if env.client.timeout != tt.wantTimeout {
				t.Errorf("timeout = %v, want %v", env.client.timeout, tt.wantTimeout)
			}
		})
	}
}

func TestChatCmd(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("chat"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if env.pageRuns != 1 {
		t.Errorf("pageRuns = %d, want 1", env.pageRuns)
	}
	if !env.client.closed {
		t.Error("client was not closed after the page exited")
	}
}

func TestHealthCmd(t *testing.T) {
	t.Run("up", func(t *testing.T) {
		env := newTestEnv(t)
		if err := env.run("health"); err != nil {
			t.Fatalf("run() error = %v", err)
		}
		if !strings.Contains(env.stdout.String(), "http://localhost:8000 is up") {
			t.Errorf("stdout = %q", env.stdout.String())
		}
	})

	t.Run("down", func(t *testing.T) {
		env := newTestEnv(t)
		env.client.healthErr = apierrors.NewNetworkError("health", "http://localhost:8000/api/health", errors.New("connection refused"))

		err := env.run("health")
		if err == nil || !strings.Contains(err.Error(), "health check failed") {
			t.Errorf("error = %v, want health check failure", err)
		}
		if !apierrors.IsNetworkError(err) {
			t.Errorf("error %v should wrap a NetworkError", err)
		}
	})
}

func TestConfigCmd(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("config", "set", "base_url", "http://example.com:8080/"); err != nil {
		t.Fatalf("config set error = %v", err)
	}
	if err := env.run("config", "set", "timeout_seconds", "15"); err != nil {
		t.Fatalf("config set error = %v", err)
	}

	cfg, err := config.LoadConfigFile()
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if cfg.BaseURL != "http://example.com:8080" || cfg.TimeoutSeconds != 15 {
		t.Errorf("saved config = %+v", cfg)
	}

	env.stdout.Reset()
	if err := env.run("config", "show"); err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if !strings.Contains(env.stdout.String(), `"base_url": "http://example.com:8080"`) {
		t.Errorf("show output = %q", env.stdout.String())
	}

	env.stdout.Reset()
	if err := env.run("config", "path"); err != nil {
		t.Fatalf("config path error = %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(env.stdout.String()), "config.json") {
		t.Errorf("path output = %q", env.stdout.String())
	}
}

func TestConfigCmd_SetDoesNotPersistEnv(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv(config.EnvBaseURL, "http://env.example")

	if err := env.run("config", "set", "verbose", "true"); err != nil {
		t.Fatalf("config set error = %v", err)
	}

	cfg, err := config.LoadConfigFile()
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if cfg.BaseURL == "http://env.example" {
		t.Error("env override was written to the config file")
	}
	if !cfg.Verbose {
		t.Error("verbose was not saved")
	}
}

func TestConfigCmd_SetInvalid(t *testing.T) {
	env := newTestEnv(t)

	tests := [][]string{
		{"config", "set", "colour", "pink"},
		{"config", "set", "timeout_seconds", "soon"},
		{"config", "set", "base_url", "localhost"},
	}
	for _, args := range tests {
		if err := env.run(args...); err == nil {
			t.Errorf("run(%q) error = nil, want error", args)
		}
	}
}

func TestServeCmd_StopsWithContext(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("OPENAI_API_KEY", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := NewRootCmd(env.deps)
	cmd.SetArgs([]string{"serve", "--addr", "127.0.0.1:0"})
	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("serve error = %v, want clean shutdown", err)
	}
}

func TestServeCmd_BadConfig(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("provider: carrier-pigeon\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := env.run("serve", "--config", path)
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Errorf("error = %v, want unknown provider", err)
	}
}
