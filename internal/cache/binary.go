package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// AssetID derives the canonical binary-asset id for a content id.
func AssetID(contentID string) string {
	return "asset-" + contentID
}

// BinaryAsset is a cached media blob tied to a content row.
type BinaryAsset struct {
	ID        string
	ContentID string
	Data      []byte
	MimeType  string
	Size      int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SetBinaryAsset stores a media blob and marks the owning content row as
// carrying one, in a single transaction. Oversized payloads are rejected
// outright; an absent owning row rolls the whole write back.
func (s *Store) SetBinaryAsset(ctx context.Context, contentID string, data []byte, mimeType string) error {
	if int64(len(data)) > s.maxAssetSize {
		return fmt.Errorf("asset for %s is %d bytes: %w", contentID, len(data), ErrAssetTooLarge)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin asset write: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO binary_assets (id, content_id, data, mime_type, size, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content_id = excluded.content_id,
			data = excluded.data,
			mime_type = excluded.mime_type,
			size = excluded.size,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at`,
		AssetID(contentID), contentID, data, mimeType, int64(len(data)), now, now.Add(s.ttl),
	)
	if err != nil {
		return fmt.Errorf("store asset for %s: %w", contentID, err)
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE content SET has_binary_asset = 1 WHERE id = ?", contentID,
	)
	if err != nil {
		return fmt.Errorf("flag content %s: %w", contentID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("asset for unknown content %s: %w", contentID, ErrNotFound)
	}
	return tx.Commit()
}

// GetBinaryAsset retrieves an asset by its asset id. Expired assets are
// deleted and reported as a miss.
func (s *Store) GetBinaryAsset(ctx context.Context, assetID string) (*BinaryAsset, error) {
	var a BinaryAsset
	err := s.db.QueryRowContext(ctx, `
		SELECT id, content_id, data, mime_type, size, created_at, expires_at
		FROM binary_assets WHERE id = ?`, assetID,
	).Scan(&a.ID, &a.ContentID, &a.Data, &a.MimeType, &a.Size, &a.CreatedAt, &a.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get asset %s: %w", assetID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get asset %s: %w", assetID, err)
	}

	if time.Now().After(a.ExpiresAt) {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM binary_assets WHERE id = ?", assetID); err != nil {
			s.log.Warn("failed to delete expired asset", "asset_id", assetID, "error", err)
		}
		return nil, fmt.Errorf("get asset %s: %w", assetID, ErrNotFound)
	}
	return &a, nil
}

// AssetForContent retrieves the asset owned by a content id.
func (s *Store) AssetForContent(ctx context.Context, contentID string) (*BinaryAsset, error) {
	return s.GetBinaryAsset(ctx, AssetID(contentID))
}

// HasBinaryAsset reports whether a live content row is flagged as carrying
// a binary asset.
func (s *Store) HasBinaryAsset(ctx context.Context, contentID string) (bool, error) {
	var flag int
	err := s.db.QueryRowContext(ctx,
		"SELECT has_binary_asset FROM content WHERE id = ?", contentID,
	).Scan(&flag)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("asset flag for %s: %w", contentID, err)
	}
	return flag == 1, nil
}
