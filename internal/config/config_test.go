package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected base url %q, got %q", DefaultBaseURL, cfg.BaseURL)
	}
	if cfg.Timeout.Duration != DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultTimeout, cfg.Timeout.Duration)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("expected log level %q, got %q", DefaultLogLevel, cfg.LogLevel)
	}
}

func TestNew_ConfigFile(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvLogLevel, "")

	dir := t.TempDir()
	content := `base_url = "https://tasks.example.com/"
timeout = "3s"
log_level = "info"
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "https://tasks.example.com" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.BaseURL)
	}
	if cfg.Timeout.Duration != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", cfg.Timeout.Duration)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %q", cfg.LogLevel)
	}
}

func TestNew_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(`base_url = "http://file"`), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv(EnvBaseURL, "http://env")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://env" {
		t.Errorf("expected env base url, got %q", cfg.BaseURL)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("expected env log level, got %q", cfg.LogLevel)
	}
}

func TestNew_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(`timeout = "soon"`), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := New(dir)
	if err == nil {
		t.Fatal("expected error for invalid duration")
	}
	if !strings.Contains(err.Error(), ConfigFile) {
		t.Errorf("expected error to name the config file, got %v", err)
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("unexpected dir %q", got)
	}
}

func TestEffectiveLogLevel(t *testing.T) {
	cfg := &Config{LogLevel: "warn"}
	if cfg.EffectiveLogLevel() != "warn" {
		t.Errorf("expected warn, got %q", cfg.EffectiveLogLevel())
	}
	cfg.Debug = true
	if cfg.EffectiveLogLevel() != "debug" {
		t.Errorf("expected debug, got %q", cfg.EffectiveLogLevel())
	}
}
