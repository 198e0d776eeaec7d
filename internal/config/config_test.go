package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != "http://localhost:8000" {
		t.Errorf("Expected default base URL to be 'http://localhost:8000', got '%s'", cfg.BaseURL)
	}
	if cfg.TimeoutSeconds != 60 {
		t.Errorf("Expected TimeoutSeconds to be 60, got %d", cfg.TimeoutSeconds)
	}
	if cfg.Verbose {
		t.Errorf("Expected Verbose to be false, got %v", cfg.Verbose)
	}
	if cfg.Markdown.Style != "funland" {
		t.Errorf("Expected markdown style 'funland', got %s", cfg.Markdown.Style)
	}
}

func TestConfigTimeout(t *testing.T) {
	tests := []struct {
		seconds  int
		expected time.Duration
	}{
		{60, time.Minute},
		{1, time.Second},
		{0, 0},
		{-5, 0},
	}

	for _, tt := range tests {
		cfg := Config{TimeoutSeconds: tt.seconds}
		if got := cfg.Timeout(); got != tt.expected {
			t.Errorf("Timeout() with %d seconds = %v, want %v", tt.seconds, got, tt.expected)
		}
	}
}

func TestGetConfigDir_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(EnvHome, tmpDir)

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if dir != tmpDir {
		t.Errorf("GetConfigDir() = %s, want %s", dir, tmpDir)
	}

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned error: %v", err)
	}
	if path != filepath.Join(tmpDir, "config.json") {
		t.Errorf("GetConfigPath() = %s", path)
	}
}

func TestGetConfigDir_Home(t *testing.T) {
	t.Setenv(EnvHome, "")
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("GetConfigDir() returned relative path: %s", dir)
	}
	if filepath.Base(dir) != ".funland" {
		t.Errorf("GetConfigDir() = %s, want .funland directory", dir)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvTimeout, "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.BaseURL != DefaultConfig().BaseURL {
		t.Errorf("BaseURL = %s, want default", cfg.BaseURL)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "nested")
	t.Setenv(EnvHome, tmpDir)
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvTimeout, "")

	cfg := DefaultConfig()
	cfg.BaseURL = "https://chat.example.com"
	cfg.TimeoutSeconds = 15
	cfg.CopyToClipboard = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() returned error: %v", err)
	}

	info, err := os.Stat(filepath.Join(tmpDir, "config.json"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file permissions = %o, want 600", perm)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if loaded.BaseURL != "https://chat.example.com" {
		t.Errorf("BaseURL = %s", loaded.BaseURL)
	}
	if loaded.TimeoutSeconds != 15 {
		t.Errorf("TimeoutSeconds = %d", loaded.TimeoutSeconds)
	}
	if !loaded.CopyToClipboard {
		t.Error("CopyToClipboard should be true")
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(EnvHome, tmpDir)
	t.Setenv(EnvBaseURL, "")

	if err := os.WriteFile(filepath.Join(tmpDir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Fatal("Expected parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("unexpected error: %v", err)
	}
	if cfg.BaseURL != DefaultConfig().BaseURL {
		t.Error("Expected defaults on parse error")
	}
}

func TestLoadConfigFile_IgnoresEnv(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	t.Setenv(EnvBaseURL, "https://env.example.com")

	cfg, err := LoadConfigFile()
	if err != nil {
		t.Fatalf("LoadConfigFile() returned error: %v", err)
	}
	if cfg.BaseURL != DefaultConfig().BaseURL {
		t.Errorf("BaseURL = %s, environment must not leak into the file config", cfg.BaseURL)
	}

	withEnv, _ := LoadConfig()
	if withEnv.BaseURL != "https://env.example.com" {
		t.Errorf("LoadConfig() BaseURL = %s, want env override", withEnv.BaseURL)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "https://env.example.com")
	t.Setenv(EnvTimeout, "5")

	cfg := ApplyEnv(DefaultConfig())
	if cfg.BaseURL != "https://env.example.com" {
		t.Errorf("BaseURL = %s", cfg.BaseURL)
	}
	if cfg.TimeoutSeconds != 5 {
		t.Errorf("TimeoutSeconds = %d", cfg.TimeoutSeconds)
	}

	t.Setenv(EnvTimeout, "not-a-number")
	cfg = ApplyEnv(DefaultConfig())
	if cfg.TimeoutSeconds != 60 {
		t.Errorf("invalid timeout should be ignored, got %d", cfg.TimeoutSeconds)
	}
}

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		cfg      Config
		expected string
	}{
		{"flag wins", "https://flag.example.com/", Config{BaseURL: "https://cfg.example.com"}, "https://flag.example.com"},
		{"config", "", Config{BaseURL: "https://cfg.example.com//"}, "https://cfg.example.com"},
		{"default", "", Config{}, "http://localhost:8000"},
		{"whitespace flag", "   ", Config{BaseURL: "https://cfg.example.com"}, "https://cfg.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveBaseURL(tt.flag, tt.cfg); got != tt.expected {
				t.Errorf("ResolveBaseURL() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
		check   func(Config) bool
	}{
		{"base_url", "https://x.example.com/", false, func(c Config) bool { return c.BaseURL == "https://x.example.com" }},
		{"base_url", "ftp://x", true, nil},
		{"timeout_seconds", "30", false, func(c Config) bool { return c.TimeoutSeconds == 30 }},
		{"timeout_seconds", "-1", true, nil},
		{"verbose", "true", false, func(c Config) bool { return c.Verbose }},
		{"verbose", "maybe", true, nil},
		{"copy_to_clipboard", "1", false, func(c Config) bool { return c.CopyToClipboard }},
		{"tui_theme", "nord", false, func(c Config) bool { return c.TUITheme == "nord" }},
		{"log_file", "/tmp/x.log", false, func(c Config) bool { return c.LogFile == "/tmp/x.log" }},
		{"markdown.style", "light", false, func(c Config) bool { return c.Markdown.Style == "light" }},
		{"unknown", "x", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			err := Set(&cfg, tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Set(%s, %s) did not update config: %+v", tt.key, tt.value, cfg)
			}
		})
	}
}

func TestGetLogPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(EnvHome, tmpDir)

	path, err := GetLogPath(Config{})
	if err != nil {
		t.Fatalf("GetLogPath() returned error: %v", err)
	}
	if path != filepath.Join(tmpDir, "funland.log") {
		t.Errorf("GetLogPath() = %s", path)
	}

	custom, _ := GetLogPath(Config{LogFile: "/var/log/funland.log"})
	if custom != "/var/log/funland.log" {
		t.Errorf("GetLogPath() = %s", custom)
	}
}
