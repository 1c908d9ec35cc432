package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/specialistvlad/framegrid/internal/frame"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GridPath string // hcl file or directory

	// Frames is how many frames each sink pulls. Zero builds and tears
	// down the graph without pulling.
	Frames int
	// Pool selects the recycling allocator for default buffers.
	Pool     bool
	PoolIdle int

	LogFormat string
	LogLevel  string
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		Frames:    1,
		PoolIdle:  frame.DefaultPoolIdle,
		LogFormat: "text",
		LogLevel:  "info",
	}
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GridPath == "" {
		return nil, errors.New("GridPath is a required configuration field and cannot be empty")
	}
	if cfg.Frames < 0 {
		return nil, fmt.Errorf("frames must not be negative, got %d", cfg.Frames)
	}
	if cfg.PoolIdle < 0 {
		return nil, fmt.Errorf("pool_idle must not be negative, got %d", cfg.PoolIdle)
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	return &cfg, nil
}

// settingsFile is the TOML settings file key mapping.
type settingsFile struct {
	Grid      string `toml:"grid"`
	Frames    int    `toml:"frames"`
	Pool      bool   `toml:"pool"`
	PoolIdle  int    `toml:"pool_idle"`
	LogFormat string `toml:"log_format"`
	LogLevel  string `toml:"log_level"`
}

// LoadSettings overlays the keys present in the TOML file at path onto
// cfg. Keys the file does not mention keep their current value.
func LoadSettings(path string, cfg *Config) error {
	var raw settingsFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load settings %s: unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("grid") {
		cfg.GridPath = strings.TrimSpace(raw.Grid)
	}
	if meta.IsDefined("frames") {
		cfg.Frames = raw.Frames
	}
	if meta.IsDefined("pool") {
		cfg.Pool = raw.Pool
	}
	if meta.IsDefined("pool_idle") {
		cfg.PoolIdle = raw.PoolIdle
	}
	if meta.IsDefined("log_format") {
		cfg.LogFormat = strings.TrimSpace(raw.LogFormat)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	return nil
}
