// Package server assembles the playback core and runs its event-driven
// components.
package server

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/marqueeplayer/marquee/internal/cache"
	"github.com/marqueeplayer/marquee/internal/config"
	"github.com/marqueeplayer/marquee/internal/content"
	"github.com/marqueeplayer/marquee/internal/events"
	"github.com/marqueeplayer/marquee/internal/fetch"
	"github.com/marqueeplayer/marquee/internal/netmon"
	"github.com/marqueeplayer/marquee/internal/orchestrator"
	"github.com/marqueeplayer/marquee/internal/playback"
	"github.com/marqueeplayer/marquee/internal/preload"
)

// Core holds the assembled playback components. One Core per daemon.
type Core struct {
	DB        *sql.DB
	Bus       *events.Bus
	EventLog  *events.EventLog
	Monitor   *netmon.SignalMonitor
	Store     *cache.Store
	Fetch     *fetch.Client
	Engine    *playback.Engine
	Orch      *orchestrator.Orchestrator
	Preloader *preload.Preloader

	log *slog.Logger
}

// assetLoader adapts the fetch client to the preloader.
type assetLoader struct {
	fetch *fetch.Client
}

func (l assetLoader) Load(ctx context.Context, item *content.Item) ([]byte, string, error) {
	return l.fetch.Asset(ctx, item.URL, item.Type)
}

// NewCore wires the full playback stack: durable cache over db, fetch
// client against the configured content server, event bus with sqlite
// persistence, preloader, playback engine, and the orchestrator feeding
// resolution outcomes back into the engine.
func NewCore(db *sql.DB, cfg *config.Config, logger *slog.Logger) *Core {
	if logger == nil {
		logger = slog.Default()
	}

	eventLog := events.NewEventLog(db)
	bus := events.NewBus(eventLog, logger.With("component", "bus"))

	// Starts online; the external probe corrects it via the API.
	monitor := netmon.NewSignalMonitor(netmon.Status{Online: true})

	store := cache.NewStore(db, cache.Options{
		TTL:          cfg.Cache.TTL.Duration,
		MaxAssetSize: cfg.Cache.MaxAssetSize,
	}, logger)

	client := fetch.NewClient(cfg.Content.ServerURL, logger)

	engine := playback.NewEngine(bus, playback.Options{
		RetryInterval:      cfg.Playback.RetryInterval.Duration,
		MaxRetries:         cfg.Playback.MaxRetries,
		SkipDelay:          cfg.Playback.SkipDelay.Duration,
		TransitionBuffer:   cfg.Playback.TransitionBuffer.Duration,
		PrefetchCount:      cfg.Playback.PrefetchCount,
		DisableAutoAdvance: cfg.Playback.ManualAdvance,
	}, logger)

	orch := orchestrator.New(client, store, monitor, engine, bus, orchestrator.Options{
		OnlineRetry:   cfg.Orchestrator.OnlineRetry.Duration,
		OfflineRetry:  cfg.Orchestrator.OfflineRetry.Duration,
		PrefetchCount: cfg.Orchestrator.PrefetchCount,
	}, logger)

	preloadTypes := make([]content.Type, 0, len(cfg.Preload.Types))
	for _, typ := range cfg.Preload.Types {
		preloadTypes = append(preloadTypes, content.Type(typ))
	}
	preloader := preload.New(assetLoader{fetch: client}, bus, preload.Options{
		MaxConcurrent: cfg.Preload.MaxConcurrent,
		LoadTimeout:   cfg.Preload.LoadTimeout.Duration,
		Types:         preloadTypes,
	}, logger)

	return &Core{
		DB:        db,
		Bus:       bus,
		EventLog:  eventLog,
		Monitor:   monitor,
		Store:     store,
		Fetch:     client,
		Engine:    engine,
		Orch:      orch,
		Preloader: preloader,
		log:       logger.With("component", "core"),
	}
}

// Open initializes durable storage and restores the last cached playlist so
// a display resumes showing content before the network is consulted.
func (c *Core) Open(ctx context.Context) error {
	if err := c.Orch.Open(ctx); err != nil {
		return err
	}
	if cached := c.Orch.CachedPlaylist(ctx); cached != nil {
		c.log.Info("restoring cached playlist", "count", len(cached))
		c.Engine.LoadPlaylist(cached, 0)
	}
	return nil
}

// LoadPlaylist installs a playlist on the engine and persists it for
// offline recovery.
func (c *Core) LoadPlaylist(ctx context.Context, items []*content.Item, startIndex int) {
	c.Engine.LoadPlaylist(items, startIndex)
	c.Orch.CachePlaylist(ctx, items)
}

// UpdatePlaylist swaps the playlist without interrupting playback and
// persists the new one.
func (c *Core) UpdatePlaylist(ctx context.Context, items []*content.Item) {
	c.Engine.UpdatePlaylist(items)
	c.Orch.CachePlaylist(ctx, c.Engine.Playlist())
}

// Close tears the components down in dependency order.
func (c *Core) Close() {
	c.Preloader.Stop()
	c.Engine.Close()
	c.Orch.Close()
	_ = c.Bus.Close()
}
