// Package preload warms content assets ahead of playback. Requests queue in
// FIFO order and at most a fixed number of loads run at once, so a long
// playlist cannot saturate the network the moment it arrives.
package preload

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/marqueeplayer/marquee/internal/content"
	"github.com/marqueeplayer/marquee/internal/events"
)

// Defaults.
const (
	DefaultMaxConcurrent = 3
	DefaultLoadTimeout   = 30 * time.Second
)

// Loader fetches the asset behind a content item.
type Loader interface {
	Load(ctx context.Context, item *content.Item) (data []byte, mimeType string, err error)
}

// Result is a finished preload, success or failure.
type Result struct {
	Item     *content.Item
	Data     []byte
	MimeType string
	Err      error
	Took     time.Duration
}

// Loaded reports whether the asset arrived intact.
func (r *Result) Loaded() bool { return r.Err == nil }

type task struct {
	item   *content.Item
	cancel context.CancelFunc
}

// DefaultTypes are the content types warmed when none are configured.
var DefaultTypes = []content.Type{content.TypeImage, content.TypeVideo}

// Options tune a Preloader. Zero values take the defaults.
type Options struct {
	MaxConcurrent int
	LoadTimeout   time.Duration
	// Types restricts warming to these content types. Empty means
	// DefaultTypes.
	Types []content.Type
}

// Preloader runs bounded-concurrency asset warming over a Loader.
type Preloader struct {
	loader  Loader
	bus     *events.Bus
	log     *slog.Logger
	maxConc int
	timeout time.Duration
	types   map[content.Type]bool

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	queue  []*content.Item
	active map[string]*task
	ready  map[string]*Result
	closed bool
}

// New creates a Preloader. The bus is optional; pass nil to skip event
// publication.
func New(loader Loader, bus *events.Bus, opts Options, log *slog.Logger) *Preloader {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = DefaultLoadTimeout
	}
	if len(opts.Types) == 0 {
		opts.Types = DefaultTypes
	}
	if log == nil {
		log = slog.Default()
	}
	types := make(map[content.Type]bool, len(opts.Types))
	for _, typ := range opts.Types {
		types[typ] = true
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Preloader{
		loader:  loader,
		bus:     bus,
		log:     log.With("component", "preload"),
		maxConc: opts.MaxConcurrent,
		timeout: opts.LoadTimeout,
		types:   types,
		ctx:     ctx,
		cancel:  cancel,
		active:  make(map[string]*task),
		ready:   make(map[string]*Result),
	}
}

// Enqueue schedules an item for preloading. Items already queued, loading,
// or loaded are ignored. Items whose type is not configured as preloadable,
// or that carry no remote asset, resolve immediately.
func (p *Preloader) Enqueue(item *content.Item) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.tracked(item.ID) {
		return
	}
	if !p.types[item.Type] || !item.HasRemoteAsset() {
		p.ready[item.ID] = &Result{Item: item}
		return
	}
	p.queue = append(p.queue, item)
	p.pump()
}

// EnqueueAll schedules a batch in order.
func (p *Preloader) EnqueueAll(items []*content.Item) {
	for _, item := range items {
		p.Enqueue(item)
	}
}

func (p *Preloader) tracked(id string) bool {
	if _, ok := p.ready[id]; ok {
		return true
	}
	if _, ok := p.active[id]; ok {
		return true
	}
	for _, q := range p.queue {
		if q.ID == id {
			return true
		}
	}
	return false
}

// pump starts queued loads while capacity remains. Caller holds p.mu.
func (p *Preloader) pump() {
	for len(p.queue) > 0 && len(p.active) < p.maxConc {
		item := p.queue[0]
		p.queue = p.queue[1:]

		ctx, cancel := context.WithTimeout(p.ctx, p.timeout)
		p.active[item.ID] = &task{item: item, cancel: cancel}
		go p.run(ctx, cancel, item)
	}
}

func (p *Preloader) run(ctx context.Context, cancel context.CancelFunc, item *content.Item) {
	defer cancel()

	start := time.Now()
	data, mime, err := p.loader.Load(ctx, item)
	took := time.Since(start)

	res := &Result{Item: item, Took: took}
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			res.Err = ErrPreloadTimeout
		case errors.Is(err, context.Canceled):
			res.Err = ErrPreloadCancelled
		default:
			res.Err = err
		}
	} else {
		res.Data = data
		res.MimeType = mime
	}

	p.mu.Lock()
	if _, still := p.active[item.ID]; !still {
		// Cancelled while in flight. Drop the result.
		p.mu.Unlock()
		return
	}
	delete(p.active, item.ID)
	if !errors.Is(res.Err, ErrPreloadCancelled) {
		p.ready[item.ID] = res
	}
	p.pump()
	p.mu.Unlock()

	p.publish(item, res)
}

func (p *Preloader) publish(item *content.Item, res *Result) {
	if res.Err != nil {
		p.log.Warn("preload failed", "content_id", item.ID, "url", item.URL, "error", res.Err)
		if p.bus != nil {
			p.bus.Publish(p.ctx, events.AssetPreloadFailed{
				BaseEvent: events.NewBaseEvent(events.EventAssetPreloadFailed, item.ID),
				URL:       item.URL,
				Reason:    res.Err.Error(),
				TimedOut:  errors.Is(res.Err, ErrPreloadTimeout),
			})
		}
		return
	}
	p.log.Debug("asset preloaded",
		"content_id", item.ID, "size", len(res.Data), "took", res.Took)
	if p.bus != nil {
		p.bus.Publish(p.ctx, events.AssetPreloaded{
			BaseEvent: events.NewBaseEvent(events.EventAssetPreloaded, item.ID),
			URL:       item.URL,
			Size:      int64(len(res.Data)),
		})
	}
}

// Cancel aborts a queued or in-flight load and forgets its result.
// Reports whether anything was cancelled.
func (p *Preloader) Cancel(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if t, ok := p.active[id]; ok {
		t.cancel()
		delete(p.active, id)
		p.pump()
		return true
	}
	for i, q := range p.queue {
		if q.ID == id {
			p.queue = append(p.queue[:i], p.queue[i+1:]...)
			return true
		}
	}
	if _, ok := p.ready[id]; ok {
		delete(p.ready, id)
		return true
	}
	return false
}

// Clear aborts every pending and in-flight load and drops all results.
func (p *Preloader) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queue = nil
	for id, t := range p.active {
		t.cancel()
		delete(p.active, id)
	}
	p.ready = make(map[string]*Result)
}

// IsLoaded reports whether an item's asset finished loading successfully.
func (p *Preloader) IsLoaded(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	res, ok := p.ready[id]
	return ok && res.Loaded()
}

// Get returns the finished result for an item, if any.
func (p *Preloader) Get(id string) (*Result, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	res, ok := p.ready[id]
	return res, ok
}

// QueueStatus reports in-flight and queued load counts.
func (p *Preloader) QueueStatus() (active, queued int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.active), len(p.queue)
}

// Stop aborts everything and rejects further work.
func (p *Preloader) Stop() {
	p.mu.Lock()
	p.closed = true
	p.queue = nil
	for id, t := range p.active {
		t.cancel()
		delete(p.active, id)
	}
	p.mu.Unlock()
	p.cancel()
}
