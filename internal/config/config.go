// Package config handles the XDG configuration directory, the config file
// and the token file path.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "taskman"

	// ConfigFile is the optional TOML settings filename.
	ConfigFile = "config.toml"

	// TokenFile is the stored credential filename.
	TokenFile = "token.json"

	// DefaultBaseURL is the task backend used when nothing else is configured.
	DefaultBaseURL = "http://localhost:8082"

	// DefaultTimeout bounds every backend call.
	DefaultTimeout = 10 * time.Second

	// DefaultLogLevel is used when neither the file nor the environment sets one.
	DefaultLogLevel = "warn"
)

// Environment variables that override the config file.
const (
	EnvBaseURL  = "TASKMAN_BASE_URL"
	EnvLogLevel = "TASKMAN_LOG_LEVEL"
	EnvPassword = "TASKMAN_PASSWORD"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// BaseURL is the task backend root, e.g. http://localhost:8082.
	BaseURL string `toml:"base_url"`

	// Timeout bounds each backend call.
	Timeout Duration `toml:"timeout"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LogFormat is one of text, json, logfmt.
	LogFormat string `toml:"log_format"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`
}

// Duration is a time.Duration that decodes from TOML strings like "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// New creates a Config with defaults, then layers the config file and the
// environment on top. If configDir is empty, uses XDG_CONFIG_HOME/taskman or
// $HOME/.config/taskman. A missing config file is not an error.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:       dir,
		BaseURL:   DefaultBaseURL,
		Timeout:   Duration{DefaultTimeout},
		LogLevel:  DefaultLogLevel,
		LogFormat: "text",
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	cfg.loadEnv()

	if cfg.Timeout.Duration <= 0 {
		cfg.Timeout = Duration{DefaultTimeout}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

func (c *Config) loadFile() error {
	_, err := toml.DecodeFile(c.ConfigPath(), c)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading config file %s: %w", c.ConfigPath(), err)
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to the TOML settings file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// TokenPath returns the path to the stored credential file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// EffectiveLogLevel returns the configured level, forced to debug by --debug.
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}
