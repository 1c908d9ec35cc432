// Package ctxlog carries the run's slog.Logger inside a context.Context so
// loaders and builders log with the attributes of the run that called them.
package ctxlog

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored by WithLogger. It panics when ctx
// carries none.
func FromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		panic("ctxlog: logger missing from context")
	}
	return logger
}

// With returns a context whose logger carries the extra attributes.
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(args...))
}

// ForFilter returns a context whose logger tags every record with the
// filter's stage and instance name.
func ForFilter(ctx context.Context, stage, name string) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(
		slog.Group("filter", slog.String("stage", stage), slog.String("name", name)),
	))
}
