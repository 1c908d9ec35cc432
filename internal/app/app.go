package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/framegrid/internal/builder"
	"github.com/specialistvlad/framegrid/internal/ctxlog"
	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/graph"
	"github.com/specialistvlad/framegrid/internal/model"
	"github.com/specialistvlad/framegrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Without modules every core stage module is registered. Registering an
// invalid or duplicate stage panics.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg, outW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	reg.RegisterModules(modules...)
	logger.Debug("All Go modules registered.", "modules", len(modules), "stages", reg.Names())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Run loads the grid, builds the graph and pulls the configured number of
// frames through every sink. Cancelling ctx stops the run between frames;
// that is not an error.
func (a *App) Run(ctx context.Context) error {
	logger := a.logger.With("run_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.")

	grid, err := model.LoadGridsRecursively(ctx, a.config.GridPath)
	if err != nil {
		return fmt.Errorf("failed to load grid: %w", err)
	}
	logger.Info("Grids loaded successfully.", "filters", len(grid.Filters), "links", len(grid.Links))

	var alloc frame.Allocator = frame.HeapAllocator{}
	var pool *frame.Pool
	if a.config.Pool {
		pool = frame.NewPool(a.config.PoolIdle)
		alloc = pool
	}

	g, err := builder.Build(ctx, grid, a.registry, alloc)
	if err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}
	defer g.Close()

	sinks := g.Sinks()
	if len(sinks) == 0 {
		logger.Warn("No sinks found in graph, nothing to pull.")
		return nil
	}

	logger.Info("Starting run.", "frames", a.config.Frames, "sinks", len(sinks))
	start := time.Now()
	done, err := pullFrames(ctx, sinks, a.config.Frames)
	if err != nil {
		return fmt.Errorf("run failed after %d frames: %w", done, err)
	}

	for _, sink := range sinks {
		if stats, ok := sink.Priv.(slog.LogValuer); ok {
			logger.Info("Sink finished.", "instance", sink, "stats", stats)
		}
	}
	if pool != nil {
		stats := pool.Stats()
		logger.Debug("Buffer pool usage.", "allocs", stats.Allocs, "reuses", stats.Reuses, "idle", stats.Idle)
	}
	logger.Info("Run finished.", "frames", done, "duration", time.Since(start))
	return nil
}

// pullFrames requests one frame per round on every input link of every
// sink. It returns the number of completed rounds.
func pullFrames(ctx context.Context, sinks []*graph.Instance, frames int) (int, error) {
	logger := ctxlog.FromContext(ctx)
	for round := 0; round < frames; round++ {
		if err := ctx.Err(); err != nil {
			logger.Warn("Run interrupted.", "frames", round, "reason", err)
			return round, nil
		}
		for _, sink := range sinks {
			for n := 0; n < sink.NumInputs(); n++ {
				link := sink.Input(n)
				if err := link.RequestFrame(); err != nil {
					return round, fmt.Errorf("%s: %w", link, err)
				}
			}
		}
		logger.Debug("Frame pulled.", "frame", round)
	}
	return frames, nil
}
