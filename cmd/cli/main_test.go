package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/framegrid/internal/cli"
	"github.com/specialistvlad/framegrid/modules/testsrc"
	"github.com/stretchr/testify/require"
)

func writeGrid(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func TestRun_Success(t *testing.T) {
	t.Parallel()

	path := writeGrid(t, `
filter "testsrc" "src" {
  arguments {
    width  = 16
    height = 16
  }
}
filter "rawsink" "out" {}
link {
  from = "src"
  to   = "out"
}
`)
	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{"-frames", "2", path})

	require.NoError(t, err)
	require.Contains(t, out.String(), "Run finished.")
}

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	path := writeGrid(t, `filter "testsrc" "src" {}`)
	out := &bytes.Buffer{}

	// Registering the same stage twice panics inside app.NewApp.
	err := run(context.Background(), out, []string{path}, &testsrc.Module{}, &testsrc.Module{})

	require.Error(t, err)
	require.Contains(t, err.Error(), "application startup panicked")
	require.Contains(t, err.Error(), "already registered")
}

func TestRun_GridError(t *testing.T) {
	t.Parallel()

	path := writeGrid(t, `
filter "testsrc" "A" {
  arguments {
`)
	err := run(context.Background(), &bytes.Buffer{}, []string{path})

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load grid")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
