package server

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marqueeplayer/marquee/internal/content"
	"github.com/marqueeplayer/marquee/internal/events"
)

// Event log rows older than this are pruned daily.
const eventRetention = 7 * 24 * time.Hour

// RunnerConfig for the event-driven background components.
type RunnerConfig struct {
	SweepInterval time.Duration
}

// Runner manages the core's background components.
type Runner struct {
	core   *Core
	config RunnerConfig
	logger *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(core *Core, cfg RunnerConfig, logger *slog.Logger) *Runner {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		core:   core,
		config: cfg,
		logger: logger.With("component", "runner"),
	}
}

// Run starts all background components and blocks until the context is
// canceled or a component fails.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return r.core.Orch.Run(ctx) })
	g.Go(func() error { return r.bridgePreloads(ctx) })
	g.Go(func() error { return r.sweepLoop(ctx) })
	g.Go(func() error { return r.pruneLoop(ctx) })

	return g.Wait()
}

// bridgePreloads feeds the engine's preload-target announcements into the
// asset preloader and the orchestrator's durable prefetch queue.
func (r *Runner) bridgePreloads(ctx context.Context) error {
	targets := r.core.Bus.Subscribe(events.EventPreloadTargets, 16)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-targets:
			if !ok {
				return nil
			}
			ev, isTargets := e.(events.PreloadTargets)
			if !isTargets {
				continue
			}
			var items []*content.Item
			for _, id := range ev.ContentIDs {
				if item := r.core.Engine.Item(id); item != nil {
					items = append(items, item)
				}
			}
			r.core.Preloader.EnqueueAll(items)
			r.core.Orch.PrefetchUpcoming(ctx, ev.ContentIDs)
		}
	}
}

// sweepLoop clears expired cache rows on a fixed cadence.
func (r *Runner) sweepLoop(ctx context.Context) error {
	ticker := time.NewTicker(r.config.SweepInterval)
	defer ticker.Stop()

	r.logger.Info("cache sweep loop started", "interval", r.config.SweepInterval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			removed, err := r.core.Orch.Sweep(ctx)
			if err != nil {
				r.logger.Error("cache sweep failed", "error", err)
				continue
			}
			if removed > 0 {
				r.logger.Info("cache sweep completed", "removed", removed)
			}
		}
	}
}

// pruneLoop trims old rows from the persisted event log.
func (r *Runner) pruneLoop(ctx context.Context) error {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			pruned, err := r.core.EventLog.Prune(ctx, time.Now().Add(-eventRetention))
			if err != nil {
				r.logger.Error("event log prune failed", "error", err)
				continue
			}
			if pruned > 0 {
				r.logger.Info("event log pruned", "removed", pruned)
			}
		}
	}
}
