// Package orchestrator resolves content ids to full items with an
// offline-first policy: durable cache before network, background refresh
// behind cache hits, and connectivity-aware retry when neither serves.
// Resolution outcomes flow back to the playback engine through a Sink.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/marqueeplayer/marquee/internal/content"
	"github.com/marqueeplayer/marquee/internal/events"
	"github.com/marqueeplayer/marquee/internal/netmon"
	"github.com/marqueeplayer/marquee/internal/timers"
)

// Defaults.
const (
	DefaultOnlineRetry   = 5 * time.Second
	DefaultOfflineRetry  = 15 * time.Second
	DefaultPrefetchCount = 5
)

const timerResolveRetry = "resolve-retry"

// Options tune an Orchestrator. Zero values take the defaults.
type Options struct {
	OnlineRetry   time.Duration
	OfflineRetry  time.Duration
	PrefetchCount int
}

// Orchestrator owns offline-first content resolution and prefetching.
type Orchestrator struct {
	fetcher Fetcher
	store   CacheStore
	monitor netmon.Monitor
	sink    Sink
	bus     *events.Bus
	log     *slog.Logger

	onlineRetry   time.Duration
	offlineRetry  time.Duration
	prefetchCount int

	timers   *timers.Set
	prefetch *prefetcher

	mu        sync.Mutex
	durable   bool
	opened    bool
	schedule  *content.Schedule
	resolving string
	mem       map[string]*content.Item
}

// New creates an Orchestrator. Call Open before use.
func New(fetcher Fetcher, store CacheStore, monitor netmon.Monitor, sink Sink, bus *events.Bus, opts Options, log *slog.Logger) *Orchestrator {
	if opts.OnlineRetry <= 0 {
		opts.OnlineRetry = DefaultOnlineRetry
	}
	if opts.OfflineRetry <= 0 {
		opts.OfflineRetry = DefaultOfflineRetry
	}
	if opts.PrefetchCount <= 0 {
		opts.PrefetchCount = DefaultPrefetchCount
	}
	if log == nil {
		log = slog.Default()
	}
	o := &Orchestrator{
		fetcher:       fetcher,
		store:         store,
		monitor:       monitor,
		sink:          sink,
		bus:           bus,
		log:           log.With("component", "orchestrator"),
		onlineRetry:   opts.OnlineRetry,
		offlineRetry:  opts.OfflineRetry,
		prefetchCount: opts.PrefetchCount,
		timers:        timers.NewSet(),
		mem:           make(map[string]*content.Item),
	}
	o.prefetch = newPrefetcher(o)
	return o
}

// Open initializes durable storage. A storage failure is not fatal; the
// orchestrator continues cache-less and every cache interaction becomes a
// no-op.
func (o *Orchestrator) Open(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.opened {
		return nil
	}
	o.opened = true

	ok, err := o.store.Initialize(ctx)
	if err != nil || !ok {
		o.log.Warn("durable cache unavailable, continuing cache-less", "error", err)
		o.durable = false
		return nil
	}
	o.durable = true
	return nil
}

// Close cancels pending retries and prefetch work.
func (o *Orchestrator) Close() {
	o.timers.Stop()
	o.prefetch.stop()
}

// Durable reports whether the cache layer survived initialization.
func (o *Orchestrator) Durable() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.durable
}

// Run consumes content-change requests and connectivity transitions until
// the context ends. Intended to run in its own goroutine.
func (o *Orchestrator) Run(ctx context.Context) error {
	changed := o.bus.Subscribe(events.EventContentChanged, 16)
	netCh := o.monitor.Subscribe(4)
	defer o.monitor.Unsubscribe(netCh)

	online := o.monitor.Status().Online
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-changed:
			if !ok {
				return nil
			}
			o.requestResolve(ctx, e.ContentID())
		case st, ok := <-netCh:
			if !ok {
				return nil
			}
			o.onConnectivity(ctx, online, st)
			online = st.Online
		}
	}
}

// requestResolve records the id the engine now waits on and resolves it in
// the background. Any outcome for a superseded id is dropped.
func (o *Orchestrator) requestResolve(ctx context.Context, id string) {
	if id == "" {
		return
	}
	o.mu.Lock()
	o.resolving = id
	o.mu.Unlock()
	o.timers.Cancel(timerResolveRetry)

	go o.resolveFor(ctx, id)
}

func (o *Orchestrator) stillResolving(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.resolving == id
}

func (o *Orchestrator) resolveFor(ctx context.Context, id string) {
	_, err := o.Resolve(ctx, id)
	if !o.stillResolving(id) {
		o.log.Debug("stale resolution dropped", "content_id", id)
		return
	}

	if err != nil {
		interval := o.onlineRetry
		if !o.monitor.Status().Online {
			interval = o.offlineRetry
		}
		o.log.Warn("resolution failed, retry scheduled",
			"content_id", id, "interval", interval, "error", err)
		if o.sink != nil {
			o.sink.MarkContentError(id, err)
		}
		o.timers.Schedule(timerResolveRetry, interval, func() {
			if o.stillResolving(id) {
				o.resolveFor(ctx, id)
			}
		})
		return
	}

	if o.sink != nil {
		o.sink.MarkContentLoaded(id)
	}
}

// Resolve turns a content id into a full item, offline-first:
// memory, then durable cache (with a background refresh when online),
// then a fresh fetch persisted back into the cache.
func (o *Orchestrator) Resolve(ctx context.Context, id string) (*content.Item, error) {
	o.mu.Lock()
	if item, ok := o.mem[id]; ok {
		o.mu.Unlock()
		if o.monitor.Status().Online {
			go o.refresh(ctx, id)
		}
		return item, nil
	}
	o.mu.Unlock()

	online := o.monitor.Status().Online

	if !online {
		if item := o.cacheGet(ctx, id); item != nil {
			o.remember(item)
			return item, nil
		}
		return nil, fmt.Errorf("resolve %s: %w", id, ErrNotAvailableOffline)
	}

	if item := o.cacheGet(ctx, id); item != nil {
		o.remember(item)
		go o.refresh(ctx, id)
		return item, nil
	}

	item, err := o.fetcher.Content(ctx, id, false)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", id, err)
	}
	o.persist(ctx, item)
	o.remember(item)
	return item, nil
}

// refresh re-fetches an item with cache busting and commits it only when
// the upstream copy actually differs from what is being served.
func (o *Orchestrator) refresh(ctx context.Context, id string) {
	fresh, err := o.fetcher.Content(ctx, id, true)
	if err != nil {
		o.log.Debug("background refresh failed", "content_id", id, "error", err)
		return
	}

	o.mu.Lock()
	cached := o.mem[id]
	o.mu.Unlock()
	if cached == nil {
		cached = o.cacheGet(ctx, id)
	}
	if content.Equal(fresh, cached) {
		return
	}

	o.persist(ctx, fresh)
	o.remember(fresh)
	o.log.Info("content changed upstream", "content_id", id)
	if o.bus != nil {
		o.bus.Publish(ctx, events.ContentUpdated{
			BaseEvent: events.NewBaseEvent(events.EventContentUpdated, id),
			Item:      *fresh,
		})
	}
}

// cacheGet reads through the durable cache, swallowing storage errors.
func (o *Orchestrator) cacheGet(ctx context.Context, id string) *content.Item {
	o.mu.Lock()
	durable := o.durable
	o.mu.Unlock()
	if !durable {
		return nil
	}
	item, err := o.store.GetContent(ctx, id)
	if err != nil {
		return nil
	}
	return item
}

// persist writes an item to the durable cache and, for image and video
// items with a remote URL, fetches and stores the binary asset in the
// background. Storage errors degrade to cache-less operation, never fail
// the resolution.
func (o *Orchestrator) persist(ctx context.Context, item *content.Item) {
	o.mu.Lock()
	durable := o.durable
	o.mu.Unlock()
	if !durable {
		return
	}
	if err := o.store.SetContent(ctx, item); err != nil {
		o.log.Warn("failed to cache content", "content_id", item.ID, "error", err)
		return
	}
	if item.HasRemoteAsset() {
		go o.persistAsset(ctx, item)
	}
}

func (o *Orchestrator) persistAsset(ctx context.Context, item *content.Item) {
	data, mime, err := o.fetcher.Asset(ctx, item.URL, item.Type)
	if err != nil {
		o.log.Warn("failed to fetch asset", "content_id", item.ID, "url", item.URL, "error", err)
		return
	}
	if err := o.store.SetBinaryAsset(ctx, item.ID, data, mime); err != nil {
		o.log.Warn("failed to cache asset", "content_id", item.ID, "error", err)
		return
	}
	o.log.Debug("asset cached", "content_id", item.ID, "size", len(data), "mime", mime)
}

// remember records an item in the in-memory readahead map.
func (o *Orchestrator) remember(item *content.Item) {
	o.mu.Lock()
	o.mem[item.ID] = item
	o.mu.Unlock()
}

// InvalidateMemory drops the in-memory readahead map. Called whenever the
// durable layer changes underneath it, e.g. after an expiry sweep.
func (o *Orchestrator) InvalidateMemory() {
	o.mu.Lock()
	o.mem = make(map[string]*content.Item)
	o.mu.Unlock()
}

// onConnectivity reacts to online/offline edges. Reconnecting cancels the
// pending offline retry and re-resolves whatever the engine is waiting on;
// disconnecting only notifies, leaving displayed content untouched.
func (o *Orchestrator) onConnectivity(ctx context.Context, wasOnline bool, st netmon.Status) {
	switch {
	case !wasOnline && st.Online:
		o.log.Info("network reconnected", "downlink_mbps", st.DownlinkMbps)
		if o.bus != nil {
			o.bus.Publish(ctx, events.NetworkOnline{
				BaseEvent:    events.NewBaseEvent(events.EventNetworkOnline, ""),
				DownlinkMbps: st.DownlinkMbps,
			})
		}
		o.timers.Cancel(timerResolveRetry)
		o.mu.Lock()
		id := o.resolving
		o.mu.Unlock()
		if id != "" {
			go o.resolveFor(ctx, id)
		}
		o.prefetch.resume(ctx)
	case wasOnline && !st.Online:
		o.log.Warn("network disconnected")
		if o.bus != nil {
			o.bus.Publish(ctx, events.NetworkOffline{
				BaseEvent: events.NewBaseEvent(events.EventNetworkOffline, ""),
			})
		}
		o.prefetch.pause()
	}
}

// SetSchedule installs a new schedule and warms the durable cache for its
// upcoming entries.
func (o *Orchestrator) SetSchedule(ctx context.Context, s *content.Schedule) {
	o.mu.Lock()
	o.schedule = s
	o.mu.Unlock()
	if s == nil {
		return
	}
	o.PrefetchUpcoming(ctx, s.UpcomingIDs(o.prefetchCount))
}

// Schedule returns the installed schedule, or nil.
func (o *Orchestrator) Schedule() *content.Schedule {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.schedule
}

// ActiveContentID picks the schedule entry covering now, honoring priority.
func (o *Orchestrator) ActiveContentID(now time.Time) (string, error) {
	o.mu.Lock()
	s := o.schedule
	o.mu.Unlock()
	if s == nil {
		return "", ErrNoActiveContent
	}
	item, ok := s.ActiveAt(now)
	if !ok {
		return "", ErrNoActiveContent
	}
	return item.ContentID, nil
}

// PrefetchUpcoming queues ids for a durable-cache warm, deduplicated
// against memory and the queue itself.
func (o *Orchestrator) PrefetchUpcoming(ctx context.Context, ids []string) {
	o.prefetch.enqueue(ctx, ids)
}

// PrefetchStatus reports in-flight and queued prefetch counts.
func (o *Orchestrator) PrefetchStatus() (active, queued int) {
	return o.prefetch.status()
}

// Sweep clears expired rows from the durable cache and invalidates the
// in-memory layer so nothing stale is served over deleted rows.
func (o *Orchestrator) Sweep(ctx context.Context) (int, error) {
	o.mu.Lock()
	durable := o.durable
	o.mu.Unlock()
	if !durable {
		return 0, nil
	}

	removed, err := o.store.ClearExpiredContent(ctx)
	if err != nil {
		return 0, fmt.Errorf("sweep: %w", err)
	}
	o.InvalidateMemory()
	if o.bus != nil {
		o.bus.Publish(ctx, events.CacheSwept{
			BaseEvent: events.NewBaseEvent(events.EventCacheSwept, ""),
			Removed:   removed,
		})
	}
	return removed, nil
}

// CachePlaylist persists a playlist for offline recovery.
func (o *Orchestrator) CachePlaylist(ctx context.Context, items []*content.Item) {
	o.mu.Lock()
	durable := o.durable
	o.mu.Unlock()
	if !durable {
		return
	}
	if err := o.store.CachePlaylist(ctx, items); err != nil {
		o.log.Warn("failed to cache playlist", "error", err)
	}
}

// CachedPlaylist reconstructs the last persisted playlist, or nil.
func (o *Orchestrator) CachedPlaylist(ctx context.Context) []*content.Item {
	o.mu.Lock()
	durable := o.durable
	o.mu.Unlock()
	if !durable {
		return nil
	}
	items, err := o.store.GetCachedPlaylist(ctx)
	if err != nil {
		o.log.Warn("failed to read cached playlist", "error", err)
		return nil
	}
	return items
}
