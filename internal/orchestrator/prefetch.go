package orchestrator

import (
	"context"

	"github.com/marqueeplayer/marquee/internal/events"
	"github.com/marqueeplayer/marquee/internal/netmon"
)

// concurrencyFor maps reported connection quality to a prefetch download
// limit. An unreported downlink counts as good.
func concurrencyFor(st netmon.Status) int {
	switch {
	case st.DownlinkMbps <= 0:
		return 3
	case st.DownlinkMbps < 1:
		return 1
	case st.DownlinkMbps < 5:
		return 2
	default:
		return 3
	}
}

// prefetcher drains a deduplicated queue of upcoming content ids into the
// durable cache. Concurrency adapts to connection quality; draining pauses
// offline and resumes on reconnect.
type prefetcher struct {
	o *Orchestrator

	// guarded by o.mu
	queue   []string
	pending map[string]struct{}
	active  int
	paused  bool
	stopped bool
}

func newPrefetcher(o *Orchestrator) *prefetcher {
	return &prefetcher{o: o, pending: make(map[string]struct{})}
}

func (p *prefetcher) enqueue(ctx context.Context, ids []string) {
	o := p.o
	o.mu.Lock()
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, inMem := o.mem[id]; inMem {
			continue
		}
		if _, queued := p.pending[id]; queued {
			continue
		}
		p.pending[id] = struct{}{}
		p.queue = append(p.queue, id)
	}
	p.paused = !o.monitor.Status().Online
	o.mu.Unlock()

	p.drain(ctx)
}

// drain starts warms while capacity remains under the adaptive limit.
func (p *prefetcher) drain(ctx context.Context) {
	o := p.o
	limit := concurrencyFor(o.monitor.Status())

	o.mu.Lock()
	var started []string
	for !p.paused && !p.stopped && p.active < limit && len(p.queue) > 0 {
		id := p.queue[0]
		p.queue = p.queue[1:]
		p.active++
		started = append(started, id)
	}
	o.mu.Unlock()

	for _, id := range started {
		go p.warm(ctx, id)
	}
}

// warm pulls one id through the full resolution path, persisting content
// and asset to the durable cache on the way.
func (p *prefetcher) warm(ctx context.Context, id string) {
	o := p.o

	_, err := o.Resolve(ctx, id)

	o.mu.Lock()
	p.active--
	delete(p.pending, id)
	o.mu.Unlock()

	if err != nil {
		o.log.Debug("prefetch failed", "content_id", id, "error", err)
	}
	if o.bus != nil {
		ev := events.ContentPrefetched{
			BaseEvent: events.NewBaseEvent(events.EventContentPrefetched, id),
			Success:   err == nil,
		}
		if err != nil {
			ev.Reason = err.Error()
		}
		o.bus.Publish(ctx, ev)
	}

	p.drain(ctx)
}

func (p *prefetcher) pause() {
	o := p.o
	o.mu.Lock()
	p.paused = true
	o.mu.Unlock()
}

func (p *prefetcher) resume(ctx context.Context) {
	o := p.o
	o.mu.Lock()
	p.paused = false
	o.mu.Unlock()
	p.drain(ctx)
}

func (p *prefetcher) status() (active, queued int) {
	o := p.o
	o.mu.Lock()
	defer o.mu.Unlock()
	return p.active, len(p.queue)
}

func (p *prefetcher) stop() {
	o := p.o
	o.mu.Lock()
	p.stopped = true
	p.queue = nil
	o.mu.Unlock()
}
