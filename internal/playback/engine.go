// Package playback implements the state machine that owns what plays now.
// The engine selects items, schedules auto-advance, retries failed content a
// bounded number of times, and publishes every move on the event bus. It
// never fetches anything itself; resolution is pushed back to it through
// MarkContentLoaded and MarkContentError.
package playback

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/marqueeplayer/marquee/internal/content"
	"github.com/marqueeplayer/marquee/internal/events"
	"github.com/marqueeplayer/marquee/internal/timers"
)

// Defaults.
const (
	DefaultRetryInterval = 5 * time.Second
	DefaultMaxRetries    = 3
	DefaultSkipDelay     = time.Second
	DefaultPrefetchCount = 2
)

// Timer ids. One logical timer per id; rescheduling cancels the predecessor.
const (
	timerAdvance = "auto-advance"
	timerRetry   = "retry"
	timerSkip    = "skip"
)

// Options tune an Engine. Zero values take the defaults.
type Options struct {
	RetryInterval time.Duration
	MaxRetries    int
	SkipDelay     time.Duration
	// TransitionBuffer is added on top of an item's duration when the
	// auto-advance timer is scheduled, for render paths that need settle
	// time between items. Zero keeps the raw duration.
	TransitionBuffer   time.Duration
	PrefetchCount      int
	DisableAutoAdvance bool
}

// Engine is the playback state machine.
type Engine struct {
	bus *events.Bus
	log *slog.Logger

	retryInterval time.Duration
	maxRetries    int
	skipDelay     time.Duration
	transitionBuf time.Duration
	prefetchCount int
	autoAdvance   bool

	mu       sync.Mutex
	timers   *timers.Set
	playlist []*content.Item
	index    int
	status   Status
	lastErr  string
	retries  int
}

// NewEngine creates an idle engine.
func NewEngine(bus *events.Bus, opts Options, log *slog.Logger) *Engine {
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultRetryInterval
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.SkipDelay <= 0 {
		opts.SkipDelay = DefaultSkipDelay
	}
	if opts.PrefetchCount <= 0 {
		opts.PrefetchCount = DefaultPrefetchCount
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		bus:           bus,
		log:           log.With("component", "playback"),
		retryInterval: opts.RetryInterval,
		maxRetries:    opts.MaxRetries,
		skipDelay:     opts.SkipDelay,
		transitionBuf: opts.TransitionBuffer,
		prefetchCount: opts.PrefetchCount,
		autoAdvance:   !opts.DisableAutoAdvance,
		timers:        timers.NewSet(),
		index:         -1,
		status:        StatusIdle,
	}
}

// State returns a snapshot of the current playback state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		Status:     e.status,
		Current:    e.currentLocked(),
		Next:       e.nextLocked(),
		Index:      e.index,
		LastError:  e.lastErr,
		RetryCount: e.retries,
	}
}

func (e *Engine) currentLocked() *content.Item {
	if e.index < 0 || e.index >= len(e.playlist) {
		return nil
	}
	return e.playlist[e.index]
}

func (e *Engine) nextLocked() *content.Item {
	if len(e.playlist) <= 1 || e.index < 0 {
		return nil
	}
	return e.playlist[(e.index+1)%len(e.playlist)]
}

// setStatus moves the state machine, refusing invalid transitions.
// Caller holds e.mu.
func (e *Engine) setStatus(to Status) bool {
	if !canTransition(e.status, to) {
		e.log.Warn("invalid state transition refused", "from", e.status, "to", to)
		return false
	}
	if e.status == to {
		return true
	}
	e.status = to
	e.publishState()
	return true
}

// publishState emits a StateChanged snapshot. Caller holds e.mu.
func (e *Engine) publishState() {
	if e.bus == nil {
		return
	}
	var currentID, nextID string
	if cur := e.currentLocked(); cur != nil {
		currentID = cur.ID
	}
	if next := e.nextLocked(); next != nil {
		nextID = next.ID
	}
	e.bus.Publish(context.Background(), events.StateChanged{
		BaseEvent:  events.NewBaseEvent(events.EventStateChanged, currentID),
		Status:     string(e.status),
		Index:      e.index,
		NextID:     nextID,
		Error:      e.lastErr,
		RetryCount: e.retries,
	})
}

// LoadPlaylist replaces the playlist and begins loading at startIndex
// (clamped to the last item). An empty list goes idle.
func (e *Engine) LoadPlaylist(items []*content.Item, startIndex int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelTimersLocked()

	if len(items) == 0 {
		e.playlist = nil
		e.index = -1
		e.lastErr = ""
		e.retries = 0
		e.status = StatusIdle
		e.publishState()
		e.publish(events.PlaylistEmpty{BaseEvent: events.NewBaseEvent(events.EventPlaylistEmpty, "")})
		e.log.Info("empty playlist loaded, going idle")
		return
	}

	if startIndex < 0 {
		startIndex = 0
	}
	if startIndex > len(items)-1 {
		startIndex = len(items) - 1
	}

	e.playlist = items
	e.index = startIndex
	e.lastErr = ""
	e.retries = 0
	e.status = StatusLoading
	e.publishState()

	e.log.Info("playlist loaded", "count", len(items), "index", startIndex)
	e.publish(events.PlaylistLoaded{
		BaseEvent: events.NewBaseEvent(events.EventPlaylistLoaded, ""),
		Count:     len(items),
		Index:     startIndex,
	})
	e.announceCurrentLocked()
}

// UpdatePlaylist swaps the playlist without interrupting playback. The
// current item keeps its position when it survives into the new list; an
// empty update while something is playing degrades to a single-item playlist
// holding the current item rather than cutting to black.
func (e *Engine) UpdatePlaylist(items []*content.Item) {
	e.mu.Lock()

	current := e.currentLocked()

	if len(items) == 0 {
		if current == nil {
			e.mu.Unlock()
			e.LoadPlaylist(nil, 0)
			return
		}
		e.playlist = []*content.Item{current}
		e.index = 0
		e.publishState()
		e.publish(events.PlaylistUpdated{
			BaseEvent: events.NewBaseEvent(events.EventPlaylistUpdated, current.ID),
			Count:     1,
			Index:     0,
		})
		e.log.Warn("empty playlist update, holding current item", "content_id", current.ID)
		e.mu.Unlock()
		return
	}

	if current != nil {
		for i, item := range items {
			if item.ID == current.ID {
				e.playlist = items
				e.index = i
				e.publishState()
				e.publish(events.PlaylistUpdated{
					BaseEvent: events.NewBaseEvent(events.EventPlaylistUpdated, current.ID),
					Count:     len(items),
					Index:     i,
				})
				e.requestPreloadLocked()
				e.log.Info("playlist updated in place", "count", len(items), "index", i)
				e.mu.Unlock()
				return
			}
		}
	}

	// Current item gone (or nothing playing): start over.
	e.mu.Unlock()
	e.LoadPlaylist(items, 0)
}

// Play starts or resumes playback. A no-op unless idle or paused.
func (e *Engine) Play() {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.status {
	case StatusPaused:
		if !e.setStatus(StatusPlaying) {
			return
		}
		e.scheduleAdvanceLocked()
		e.publish(events.PlaybackStarted{BaseEvent: events.NewBaseEvent(events.EventPlaybackStarted, e.currentID())})
	case StatusIdle:
		if len(e.playlist) == 0 {
			return
		}
		if e.index < 0 {
			e.index = 0
		}
		if !e.setStatus(StatusLoading) {
			return
		}
		e.publish(events.PlaybackStarted{BaseEvent: events.NewBaseEvent(events.EventPlaybackStarted, e.currentID())})
		e.announceCurrentLocked()
	}
}

// Pause halts playback and cancels the pending auto-advance.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != StatusPlaying && e.status != StatusTransitioning && e.status != StatusLoading {
		return
	}
	if !e.setStatus(StatusPaused) {
		return
	}
	e.timers.Cancel(timerAdvance)
	e.publish(events.PlaybackPaused{BaseEvent: events.NewBaseEvent(events.EventPlaybackPaused, e.currentID())})
}

// Stop resets the engine: index -1, no current or next item, no error.
// The playlist itself is kept for a later Play.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelTimersLocked()
	e.index = -1
	e.lastErr = ""
	e.retries = 0
	e.status = StatusIdle
	e.publishState()
	e.publish(events.PlaybackStopped{BaseEvent: events.NewBaseEvent(events.EventPlaybackStopped, "")})
}

// Advance moves to the next item, wrapping at the end of the playlist.
func (e *Engine) Advance() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advanceLocked()
}

func (e *Engine) advanceLocked() {
	if len(e.playlist) == 0 {
		e.cancelTimersLocked()
		e.index = -1
		e.status = StatusIdle
		e.publishState()
		e.publish(events.PlaylistEmpty{BaseEvent: events.NewBaseEvent(events.EventPlaylistEmpty, "")})
		return
	}
	e.jumpLocked((e.index + 1) % len(e.playlist))
}

// SkipTo jumps to a specific playlist index. Out-of-range indices are
// rejected without touching state.
func (e *Engine) SkipTo(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.playlist) {
		return fmt.Errorf("skip to %d: %w", index, ErrIndexOutOfRange)
	}
	e.jumpLocked(index)
	return nil
}

// jumpLocked selects a new current index with advance semantics.
// Caller holds e.mu.
func (e *Engine) jumpLocked(index int) {
	e.cancelTimersLocked()
	e.index = index
	e.retries = 0
	e.lastErr = ""
	if !e.setStatus(StatusTransitioning) {
		return
	}
	e.announceCurrentLocked()
}

// announceCurrentLocked emits content-changed and preload-target events for
// the freshly selected item. Caller holds e.mu.
func (e *Engine) announceCurrentLocked() {
	current := e.currentLocked()
	if current == nil {
		return
	}
	e.log.Debug("content selected", "content_id", current.ID, "index", e.index)
	e.publish(events.ContentChanged{
		BaseEvent: events.NewBaseEvent(events.EventContentChanged, current.ID),
		Item:      *current,
	})
	e.requestPreloadLocked()
}

// requestPreloadLocked emits the ids worth warming ahead. Caller holds e.mu.
func (e *Engine) requestPreloadLocked() {
	targets := e.preloadTargetsLocked()
	if len(targets) == 0 {
		return
	}
	e.publish(events.PreloadTargets{
		BaseEvent:  events.NewBaseEvent(events.EventPreloadTargets, e.currentID()),
		ContentIDs: targets,
	})
}

func (e *Engine) preloadTargetsLocked() []string {
	if len(e.playlist) <= 1 || e.index < 0 {
		return nil
	}
	var targets []string
	for i := 1; i <= e.prefetchCount; i++ {
		idx := (e.index + i) % len(e.playlist)
		if idx == e.index {
			break
		}
		targets = append(targets, e.playlist[idx].ID)
	}
	return targets
}

// PreloadTargets returns the upcoming item ids the engine wants warmed,
// wrapping around the playlist and excluding the current item.
func (e *Engine) PreloadTargets() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.preloadTargetsLocked()
}

// Playlist returns the items currently loaded, in play order.
func (e *Engine) Playlist() []*content.Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*content.Item, len(e.playlist))
	copy(out, e.playlist)
	return out
}

// Item returns the playlist item with the given id, or nil.
func (e *Engine) Item(id string) *content.Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, item := range e.playlist {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// MarkContentLoaded reports that the current item finished loading. Calls
// for any other id are stale completions and ignored.
func (e *Engine) MarkContentLoaded(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.currentLocked()
	if current == nil || current.ID != id {
		e.log.Debug("stale load completion ignored", "content_id", id)
		return
	}
	if e.status == StatusPaused || e.status == StatusIdle {
		return
	}

	e.lastErr = ""
	e.retries = 0
	if !e.setStatus(StatusPlaying) {
		return
	}
	e.scheduleAdvanceLocked()
}

// MarkContentError reports that the current item failed to load. Calls for
// any other id are stale and ignored. Failures retry on a fixed interval up
// to the retry limit, then the item is skipped.
func (e *Engine) MarkContentError(id string, cause error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.currentLocked()
	if current == nil || current.ID != id {
		e.log.Debug("stale error ignored", "content_id", id)
		return
	}

	e.lastErr = cause.Error()
	if !e.setStatus(StatusError) {
		return
	}
	e.publish(events.ContentError{
		BaseEvent: events.NewBaseEvent(events.EventContentError, id),
		Reason:    cause.Error(),
	})

	if e.retries < e.maxRetries {
		e.retries++
		e.log.Warn("content failed, retrying",
			"content_id", id, "attempt", e.retries, "max", e.maxRetries, "error", cause)
		e.publish(events.ContentRetry{
			BaseEvent:   events.NewBaseEvent(events.EventContentRetry, id),
			Attempt:     e.retries,
			MaxAttempts: e.maxRetries,
		})
		e.timers.Schedule(timerRetry, e.retryInterval, func() { e.retryCurrent(id) })
		return
	}

	e.log.Warn("content exhausted retries", "content_id", id, "error", cause)
	if e.autoAdvance {
		e.timers.Schedule(timerSkip, e.skipDelay, func() { e.skipFailed(id) })
	}
}

// retryCurrent re-enters loading for a failed item, provided it is still
// the current one when the retry timer fires.
func (e *Engine) retryCurrent(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.currentLocked()
	if current == nil || current.ID != id {
		return
	}
	if !e.setStatus(StatusLoading) {
		return
	}
	e.publish(events.ContentChanged{
		BaseEvent: events.NewBaseEvent(events.EventContentChanged, id),
		Item:      *current,
	})
}

// skipFailed advances past an item that exhausted its retries, provided it
// is still current when the skip timer fires.
func (e *Engine) skipFailed(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.currentLocked()
	if current == nil || current.ID != id {
		return
	}
	e.advanceLocked()
}

// scheduleAdvanceLocked arms the auto-advance timer for the current item.
// A zero duration means manual advance only. Caller holds e.mu.
func (e *Engine) scheduleAdvanceLocked() {
	e.timers.Cancel(timerAdvance)
	if !e.autoAdvance {
		return
	}
	current := e.currentLocked()
	if current == nil || current.Duration <= 0 {
		return
	}
	delay := time.Duration(current.Duration)*time.Millisecond + e.transitionBuf
	id := current.ID
	e.timers.Schedule(timerAdvance, delay, func() { e.autoAdvanceFrom(id) })
}

// autoAdvanceFrom advances when the timer that was armed for id fires and
// id is still the current item in a playing state.
func (e *Engine) autoAdvanceFrom(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.currentLocked()
	if current == nil || current.ID != id || e.status != StatusPlaying {
		return
	}
	e.advanceLocked()
}

func (e *Engine) cancelTimersLocked() {
	e.timers.Cancel(timerAdvance)
	e.timers.Cancel(timerRetry)
	e.timers.Cancel(timerSkip)
}

func (e *Engine) currentID() string {
	if cur := e.currentLocked(); cur != nil {
		return cur.ID
	}
	return ""
}

func (e *Engine) publish(ev events.Event) {
	if e.bus != nil {
		e.bus.Publish(context.Background(), ev)
	}
}

// Close cancels every pending timer.
func (e *Engine) Close() {
	e.timers.Stop()
}
