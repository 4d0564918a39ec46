package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "rebind"

type Config struct {
	BindingsFile string   `koanf:"bindings_file"` // TOML action asset; empty uses the built-in sample
	WatchedMaps  []string `koanf:"watched_maps"`  // maps searched for conflicts; empty watches all

	Rebind   RebindConfig   `koanf:"rebind"`
	Conflict ConflictConfig `koanf:"conflict"`
	Display  DisplayConfig  `koanf:"display"`
	Log      LogConfig      `koanf:"log"`
}

// RebindConfig holds listening settings for interactive rebinds.
type RebindConfig struct {
	Timeout          time.Duration `koanf:"timeout"`           // e.g. "5s" (default: 5s)
	CancelControl    string        `koanf:"cancel_control"`    // default: "<Keyboard>/escape"
	ExcludedControls []string      `koanf:"excluded_controls"` // never captured
}

// ConflictConfig holds resolver settings.
type ConflictConfig struct {
	StickControls []string `koanf:"stick_controls"` // default: leftstick, rightstick
}

// DisplayConfig holds label settings.
type DisplayConfig struct {
	ArrowFamilies []string `koanf:"arrow_families"` // default: arrow
}

// LogConfig holds log output settings.
type LogConfig struct {
	Level string `koanf:"level"` // "debug", "info", "warn", "error" (default: "info")
	File  string `koanf:"file"`  // default: $XDG_STATE_HOME/rebind/rebind.log
}

// Defaults applied by the accessors.
var (
	DefaultTimeout       = 5 * time.Second
	DefaultCancelControl = "<Keyboard>/escape"
	DefaultExcluded      = []string{
		"<Gamepad>/start",
		"<Gamepad>/select",
		"<Gamepad>/leftStick",
		"<Gamepad>/rightStick",
	}
	DefaultStickControls = []string{"leftstick", "rightstick"}
	DefaultArrowFamilies = []string{"arrow"}
)

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.BindingsFile != "" {
		cfg.BindingsFile = expandPath(cfg.BindingsFile)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/rebind/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetRebindConfig returns the rebind configuration with defaults applied.
func (c *Config) GetRebindConfig() RebindConfig {
	cfg := c.Rebind
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.CancelControl == "" {
		cfg.CancelControl = DefaultCancelControl
	}
	if cfg.ExcludedControls == nil {
		cfg.ExcludedControls = DefaultExcluded
	}
	return cfg
}

// GetConflictConfig returns the resolver configuration with defaults applied.
func (c *Config) GetConflictConfig() ConflictConfig {
	cfg := c.Conflict
	if len(cfg.StickControls) == 0 {
		cfg.StickControls = DefaultStickControls
	}
	return cfg
}

// GetDisplayConfig returns the display configuration with defaults applied.
func (c *Config) GetDisplayConfig() DisplayConfig {
	cfg := c.Display
	if len(cfg.ArrowFamilies) == 0 {
		cfg.ArrowFamilies = DefaultArrowFamilies
	}
	return cfg
}

// LogLevel returns the configured level, or info when unset or unknown.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// LogFile returns the log file path, creating its state directory when the
// default location is used.
func (c *Config) LogFile() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	return xdg.StateFile(filepath.Join(appName, appName+".log"))
}
