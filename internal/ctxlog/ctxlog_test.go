package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	assert.PanicsWithValue(t, "ctxlog: logger missing from context", func() {
		FromContext(context.Background())
	})
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	FromContext(With(ctx, "run_id", "r1")).Info("hello")
	FromContext(ctx).Info("plain")

	assert.Contains(t, buf.String(), "msg=hello run_id=r1")
	assert.NotContains(t, buf.String(), "msg=plain run_id")
}

func TestForFilter(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	FromContext(ForFilter(ctx, "crop", "c0")).Info("created")

	assert.Contains(t, buf.String(), "filter.stage=crop filter.name=c0")
}
