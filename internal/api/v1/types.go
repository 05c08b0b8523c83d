package v1

import (
	"github.com/marqueeplayer/marquee/internal/content"
	"github.com/marqueeplayer/marquee/internal/netmon"
	"github.com/marqueeplayer/marquee/internal/playback"
)

type statusResponse struct {
	Playback       playback.State `json:"playback"`
	PlaylistSize   int            `json:"playlist_size"`
	Network        netmon.Status  `json:"network"`
	CacheDurable   bool           `json:"cache_durable"`
	PreloadActive  int            `json:"preload_active"`
	PreloadQueued  int            `json:"preload_queued"`
	PrefetchActive int            `json:"prefetch_active"`
	PrefetchQueued int            `json:"prefetch_queued"`
}

type loadPlaylistRequest struct {
	Items      []*content.Item `json:"items"`
	StartIndex int             `json:"start_index"`
}

type playlistResponse struct {
	Items []*content.Item `json:"items"`
	Index int             `json:"index"`
}

type sweepResponse struct {
	Removed int `json:"removed"`
}
