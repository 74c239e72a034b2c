package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all mailbox configuration.
type Config struct {
	Mailbox MailboxConfig `toml:"mailbox"`
	View    ViewConfig    `toml:"view"`
	Log     LogConfig     `toml:"log"`
}

// MailboxConfig selects the mailbox file the CLI works on.
type MailboxConfig struct {
	File string `toml:"file"`
}

// ViewConfig holds display settings.
type ViewConfig struct {
	Default string `toml:"default"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

const (
	ViewThread    = "thread"
	ViewTimestamp = "timestamp"
)

func defaults() Config {
	return Config{
		Mailbox: MailboxConfig{
			File: filepath.Join(DataDir(), "mailbox.toml"),
		},
		View: ViewConfig{
			Default: ViewThread,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads config from path. If path is empty, returns defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.View.Default {
	case ViewThread, ViewTimestamp:
	default:
		return fmt.Errorf("invalid view.default %q (use %s or %s)", c.View.Default, ViewThread, ViewTimestamp)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// ConfigDir returns the mailbox config directory path.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mailbox")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mailbox")
}

// DataDir returns the mailbox data directory path.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "mailbox")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "mailbox")
}
