package orchestrator

import (
	"context"
	"time"

	"github.com/marqueeplayer/marquee/internal/content"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// Fetcher retrieves content metadata and assets from the upstream server.
type Fetcher interface {
	Content(ctx context.Context, id string, cacheBust bool) (*content.Item, error)
	Asset(ctx context.Context, url string, typ content.Type) (data []byte, mimeType string, err error)
}

// CacheStore is the durable cache the orchestrator reads through and
// writes back to. Storage failures are never fatal; the orchestrator
// degrades to cache-less operation.
type CacheStore interface {
	Initialize(ctx context.Context) (bool, error)
	GetContent(ctx context.Context, id string) (*content.Item, error)
	SetContent(ctx context.Context, item *content.Item) error
	SetBinaryAsset(ctx context.Context, contentID string, data []byte, mimeType string) error
	HasBinaryAsset(ctx context.Context, contentID string) (bool, error)
	CachePlaylist(ctx context.Context, items []*content.Item) error
	GetCachedPlaylist(ctx context.Context) ([]*content.Item, error)
	ClearExpiredContent(ctx context.Context) (int, error)
	TTL() time.Duration
}

// Sink receives resolution outcomes for the content id the playback engine
// is waiting on.
type Sink interface {
	MarkContentLoaded(id string)
	MarkContentError(id string, err error)
}
