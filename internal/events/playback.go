package events

import "github.com/marqueeplayer/marquee/internal/content"

// Event type constants
const (
	EventStateChanged       = "state.changed"
	EventContentChanged     = "content.changed"
	EventContentUpdated     = "content.updated"
	EventContentError       = "content.error"
	EventContentRetry       = "content.retry"
	EventPlaylistLoaded     = "playlist.loaded"
	EventPlaylistUpdated    = "playlist.updated"
	EventPlaylistEmpty      = "playlist.empty"
	EventPlaybackStarted    = "playback.started"
	EventPlaybackPaused     = "playback.paused"
	EventPlaybackStopped    = "playback.stopped"
	EventPreloadTargets     = "preload.targets"
	EventAssetPreloaded     = "asset.preloaded"
	EventAssetPreloadFailed = "asset.preload_failed"
	EventContentPrefetched  = "content.prefetched"
	EventNetworkOnline      = "network.reconnected"
	EventNetworkOffline     = "network.disconnected"
	EventCacheSwept         = "cache.swept"
)

// StateChanged is emitted whenever the playback state machine moves.
type StateChanged struct {
	BaseEvent
	Status     string `json:"status"`
	Index      int    `json:"index"`
	NextID     string `json:"next_id,omitempty"`
	Error      string `json:"error,omitempty"`
	RetryCount int    `json:"retry_count,omitempty"`
}

// ContentChanged is emitted when a new item becomes current.
type ContentChanged struct {
	BaseEvent
	Item content.Item `json:"item"`
}

// ContentUpdated is emitted when a background refresh detects that the
// currently displayed content changed upstream.
type ContentUpdated struct {
	BaseEvent
	Item content.Item `json:"item"`
}

// ContentError is emitted when the current item fails to load.
type ContentError struct {
	BaseEvent
	Reason string `json:"reason"`
}

// ContentRetry is emitted when a retry of the current item is scheduled.
type ContentRetry struct {
	BaseEvent
	Attempt     int `json:"attempt"`
	MaxAttempts int `json:"max_attempts"`
}

// PlaylistLoaded is emitted when a playlist replaces the previous one.
type PlaylistLoaded struct {
	BaseEvent
	Count int `json:"count"`
	Index int `json:"index"`
}

// PlaylistUpdated is emitted when a playlist changes without interrupting playback.
type PlaylistUpdated struct {
	BaseEvent
	Count int `json:"count"`
	Index int `json:"index"`
}

// PlaylistEmpty is emitted when there is nothing left to play.
type PlaylistEmpty struct {
	BaseEvent
}

// PlaybackStarted is emitted when playback begins or resumes.
type PlaybackStarted struct {
	BaseEvent
}

// PlaybackPaused is emitted when playback pauses.
type PlaybackPaused struct {
	BaseEvent
}

// PlaybackStopped is emitted when playback stops and resets.
type PlaybackStopped struct {
	BaseEvent
}

// PreloadTargets is emitted when the engine decides which upcoming items
// should be warmed ahead of playback.
type PreloadTargets struct {
	BaseEvent
	ContentIDs []string `json:"content_ids"`
}

// AssetPreloaded is emitted when a preload task settles successfully.
type AssetPreloaded struct {
	BaseEvent
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// AssetPreloadFailed is emitted when a preload task settles with an error.
type AssetPreloadFailed struct {
	BaseEvent
	URL      string `json:"url"`
	Reason   string `json:"reason"`
	TimedOut bool   `json:"timed_out"`
}

// ContentPrefetched is emitted when a durable-cache warm settles.
type ContentPrefetched struct {
	BaseEvent
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// NetworkOnline is emitted on reconnect.
type NetworkOnline struct {
	BaseEvent
	DownlinkMbps float64 `json:"downlink_mbps,omitempty"`
}

// NetworkOffline is emitted on disconnect.
type NetworkOffline struct {
	BaseEvent
}

// CacheSwept is emitted after an expiry sweep of the durable cache.
type CacheSwept struct {
	BaseEvent
	Removed int `json:"removed"`
}
