package app

import (
	"io"
	"log/slog"
)

// newLogger builds the App's own logger from the validated config. The
// global slog default is left alone so several Apps can coexist in tests.
func newLogger(cfg *Config, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler = slog.NewTextHandler(outW, opts)
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(outW, opts)
	}
	return slog.New(handler).With("app", "framegrid")
}
