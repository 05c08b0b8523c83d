package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/marqueeplayer/marquee/internal/content"
)

// CachePlaylist persists the current playlist: each item as its own content
// row, plus an ordered id list under the reserved playlist key. A nil or
// empty playlist clears the reserved row.
func (s *Store) CachePlaylist(ctx context.Context, items []*content.Item) error {
	if len(items) == 0 {
		if _, err := s.db.ExecContext(ctx,
			"DELETE FROM content WHERE id = ?", reservedPlaylistKey,
		); err != nil {
			return fmt.Errorf("clear playlist: %w", err)
		}
		return nil
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		if err := s.SetContent(ctx, item); err != nil {
			return fmt.Errorf("cache playlist item: %w", err)
		}
		ids = append(ids, item.ID)
	}

	order, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal playlist order: %w", err)
	}

	now := time.Now()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO content (id, payload, created_at, expires_at, last_accessed_at, has_binary_asset)
		VALUES (?, ?, ?, ?, ?, 0)
		ON CONFLICT(id) DO UPDATE SET
			payload = excluded.payload,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at,
			last_accessed_at = excluded.last_accessed_at`,
		reservedPlaylistKey, string(order), now, now.Add(s.ttl), now,
	)
	if err != nil {
		return fmt.Errorf("cache playlist order: %w", err)
	}
	return nil
}

// GetCachedPlaylist reconstructs the playlist from the reserved order row.
// Items that have since expired or vanished are skipped; the survivors keep
// their original order. Returns nil when no playlist is cached or no item
// survived.
func (s *Store) GetCachedPlaylist(ctx context.Context) ([]*content.Item, error) {
	var payload string
	var expiresAt time.Time
	err := s.db.QueryRowContext(ctx,
		"SELECT payload, expires_at FROM content WHERE id = ?", reservedPlaylistKey,
	).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("get cached playlist: %w", err)
		}
		// Startup recovery treats the cache as best effort, but a broken
		// store is worth noting.
		s.log.Warn("failed to read cached playlist", "error", err)
		return nil, nil
	}
	if time.Now().After(expiresAt) {
		return nil, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(payload), &ids); err != nil {
		return nil, fmt.Errorf("unmarshal playlist order: %w", err)
	}

	items := make([]*content.Item, 0, len(ids))
	for _, id := range ids {
		item, err := s.GetContent(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get cached playlist: %w", err)
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}
