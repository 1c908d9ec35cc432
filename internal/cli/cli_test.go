package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/framegrid/internal/app"
	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(settings, []byte(`
grid = "from-file.hcl"
frames = 10
log_level = "warn"
pool = true
`), 0o600))

	testCases := []struct {
		name     string
		args     []string
		want     *app.Config
		wantExit bool
		wantErr  string
	}{
		{
			name: "positional path with defaults",
			args: []string{"grid.hcl"},
			want: &app.Config{GridPath: "grid.hcl", Frames: 1, PoolIdle: frame.DefaultPoolIdle, LogFormat: "text", LogLevel: "info"},
		},
		{
			name: "grid flag wins over shorthand and positional",
			args: []string{"-grid", "a.hcl", "-g", "b.hcl", "c.hcl"},
			want: &app.Config{GridPath: "a.hcl", Frames: 1, PoolIdle: frame.DefaultPoolIdle, LogFormat: "text", LogLevel: "info"},
		},
		{
			name: "all flags",
			args: []string{"-g", "g.hcl", "-frames", "5", "-pool", "-pool-idle", "2", "-log-format", "JSON", "-log-level", "debug"},
			want: &app.Config{GridPath: "g.hcl", Frames: 5, Pool: true, PoolIdle: 2, LogFormat: "json", LogLevel: "debug"},
		},
		{
			name: "settings file",
			args: []string{"-config", settings},
			want: &app.Config{GridPath: "from-file.hcl", Frames: 10, Pool: true, PoolIdle: frame.DefaultPoolIdle, LogFormat: "text", LogLevel: "warn"},
		},
		{
			name: "explicit flags override settings file",
			args: []string{"-config", settings, "-frames", "1", "-pool=false", "other.hcl"},
			want: &app.Config{GridPath: "other.hcl", Frames: 1, PoolIdle: frame.DefaultPoolIdle, LogFormat: "text", LogLevel: "warn"},
		},
		{
			name:     "no grid prints usage",
			args:     []string{},
			wantExit: true,
		},
		{
			name:     "help",
			args:     []string{"-h"},
			wantExit: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"-workers", "4"},
			wantErr: "flag provided but not defined: -workers",
		},
		{
			name:    "invalid log format",
			args:    []string{"-log-format", "xml", "g.hcl"},
			wantErr: "invalid log-format",
		},
		{
			name:    "invalid log level",
			args:    []string{"-log-level", "trace", "g.hcl"},
			wantErr: "invalid log-level",
		},
		{
			name:    "negative frames",
			args:    []string{"-frames", "-3", "g.hcl"},
			wantErr: "frames must not be negative",
		},
		{
			name:    "missing settings file",
			args:    []string{"-config", filepath.Join(t.TempDir(), "nope.toml"), "g.hcl"},
			wantErr: "load settings",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cfg, exit, err := Parse(tc.args, out)

			if tc.wantErr != "" {
				require.Error(t, err)
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, 2, exitErr.Code)
				assert.Contains(t, exitErr.Message, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantExit, exit)
			if tc.wantExit {
				assert.Nil(t, cfg)
				assert.Contains(t, out.String(), "Usage:")
				return
			}
			assert.Equal(t, tc.want, cfg)
		})
	}
}
