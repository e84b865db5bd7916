package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Config holds process-level settings. Values come from the environment
// (optionally seeded by a .env file); CLI flags override them.
type Config struct {
	Dir       string `env:"TODO_DIR"`
	Backend   string `env:"TODO_BACKEND" default:"sqlite"`
	Theme     string `env:"TODO_THEME" default:"auto"`
	Glyphs    string `env:"TODO_GLYPHS" default:"unicode"`
	LogLevel  string `env:"TODO_LOG_LEVEL" default:"info"`
	LogFormat string `env:"TODO_LOG_FORMAT" default:"text"`
}

// Load reads .env (if present) and the environment, fills defaults and validates.
func Load() (*Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.Glyphs = strings.ToLower(strings.TrimSpace(c.Glyphs))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))

	if c.Backend == "" {
		c.Backend = "sqlite"
	}
	if c.Theme == "" {
		c.Theme = "auto"
	}
	if c.Glyphs == "" {
		c.Glyphs = "unicode"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = "info"
	}
	if strings.TrimSpace(c.Dir) == "" {
		d, err := DefaultDir()
		if err != nil {
			return err
		}
		c.Dir = d
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	switch c.Backend {
	case "sqlite", "json", "memory":
	default:
		return fmt.Errorf("TODO_BACKEND must be sqlite, json or memory, got %q", c.Backend)
	}
	switch c.Theme {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("TODO_THEME must be auto, light or dark, got %q", c.Theme)
	}
	switch c.Glyphs {
	case "", "unicode", "utf8", "ascii":
	default:
		return fmt.Errorf("TODO_GLYPHS must be unicode or ascii, got %q", c.Glyphs)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("TODO_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// DefaultDir is ~/.todo.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".todo"), nil
}

// LogPath is where the TUI writes its log; the terminal itself belongs to the UI.
func LogPath(dir string) string {
	return filepath.Join(dir, "todo.log")
}
