// Package cache implements the durable, TTL-based store that keeps a display
// playing through restarts and network loss. Content metadata and binary
// assets live in SQLite; every read performs a lazy expiry check and an
// hourly sweep clears what lazy reads never touched.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/marqueeplayer/marquee/internal/content"
	"github.com/marqueeplayer/marquee/internal/migrations"
)

// Defaults.
const (
	DefaultTTL          = 30 * 24 * time.Hour
	DefaultMaxAssetSize = 100 << 20 // 100 MB
)

// Reserved keys share the content table keyspace with real content ids.
// Writes of real content ids carrying the reserved prefixes are rejected so
// a colliding id cannot corrupt these rows.
const (
	reservedPlaylistKey = "playlist:current"
	reservedMetaKey     = "meta:store"
)

func isReservedKey(id string) bool {
	return strings.HasPrefix(id, "playlist:") || strings.HasPrefix(id, "meta:")
}

// Options tune the store. Zero values take the defaults.
type Options struct {
	TTL          time.Duration
	MaxAssetSize int64
}

// Store is the durable cache over a SQLite database.
type Store struct {
	db           *sql.DB
	ttl          time.Duration
	maxAssetSize int64
	log          *slog.Logger

	mu    sync.Mutex
	ready bool
}

// NewStore creates a store. Call Initialize before use.
func NewStore(db *sql.DB, opts Options, log *slog.Logger) *Store {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.MaxAssetSize <= 0 {
		opts.MaxAssetSize = DefaultMaxAssetSize
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		db:           db,
		ttl:          opts.TTL,
		maxAssetSize: opts.MaxAssetSize,
		log:          log.With("component", "cache"),
	}
}

// Initialize applies the schema and verifies the database is usable.
// Idempotent. A false return means durable storage is unavailable and the
// caller must operate cache-less.
func (s *Store) Initialize(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return true, nil
	}
	if err := s.db.PingContext(ctx); err != nil {
		return false, fmt.Errorf("ping: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, migrations.InitialSQL); err != nil {
		return false, fmt.Errorf("migrate: %w", err)
	}
	s.ready = true
	s.log.Info("durable cache initialized", "ttl", s.ttl, "max_asset_size", s.maxAssetSize)
	return true, nil
}

// TTL returns the configured time-to-live for new entries.
func (s *Store) TTL() time.Duration { return s.ttl }

// SetContent persists a content item with the default TTL, replacing any
// previous row. A replaced row loses its binary-asset flag; the asset is
// re-fetched and re-marked by the owning service.
func (s *Store) SetContent(ctx context.Context, item *content.Item) error {
	if isReservedKey(item.ID) {
		return fmt.Errorf("set content %q: %w", item.ID, ErrReservedKey)
	}
	return s.upsertContent(ctx, s.db, item.ID, item)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) upsertContent(ctx context.Context, db execer, id string, item *content.Item) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal content %s: %w", id, err)
	}

	now := time.Now()
	_, err = db.ExecContext(ctx, `
		INSERT INTO content (id, payload, created_at, expires_at, last_accessed_at, has_binary_asset)
		VALUES (?, ?, ?, ?, ?, 0)
		ON CONFLICT(id) DO UPDATE SET
			payload = excluded.payload,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at,
			last_accessed_at = excluded.last_accessed_at,
			has_binary_asset = 0`,
		id, string(payload), now, now.Add(s.ttl), now,
	)
	if err != nil {
		return fmt.Errorf("set content %s: %w", id, err)
	}
	return nil
}

// GetContent retrieves a content item. An entry past its expiry is deleted
// (with its binary assets) and reported as a miss; a live entry has its
// access time bumped.
func (s *Store) GetContent(ctx context.Context, id string) (*content.Item, error) {
	var payload string
	var expiresAt time.Time

	err := s.db.QueryRowContext(ctx,
		"SELECT payload, expires_at FROM content WHERE id = ?", id,
	).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get content %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get content %s: %w", id, err)
	}

	if time.Now().After(expiresAt) {
		if err := s.DeleteContent(ctx, id); err != nil {
			s.log.Warn("failed to delete expired content", "content_id", id, "error", err)
		}
		return nil, fmt.Errorf("get content %s: %w", id, ErrNotFound)
	}

	if _, err := s.db.ExecContext(ctx,
		"UPDATE content SET last_accessed_at = ? WHERE id = ?", time.Now(), id,
	); err != nil {
		s.log.Warn("failed to bump access time", "content_id", id, "error", err)
	}

	var item content.Item
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		return nil, fmt.Errorf("unmarshal content %s: %w", id, err)
	}
	return &item, nil
}

// DeleteContent removes a content row and every binary asset referencing it.
// Idempotent.
func (s *Store) DeleteContent(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete %s: %w", id, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM binary_assets WHERE content_id = ?", id); err != nil {
		return fmt.Errorf("delete assets for %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM content WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete content %s: %w", id, err)
	}
	return tx.Commit()
}

// ClearExpiredContent sweeps the content table by expiry, cascading binary
// deletion, then separately sweeps the binary table by its own expiry so
// assets orphaned through other paths still age out. Returns the number of
// content rows removed.
func (s *Store) ClearExpiredContent(ctx context.Context) (int, error) {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin sweep: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM binary_assets WHERE content_id IN
			(SELECT id FROM content WHERE expires_at < ?)`, now,
	); err != nil {
		return 0, fmt.Errorf("sweep assets: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM content WHERE expires_at < ?", now)
	if err != nil {
		return 0, fmt.Errorf("sweep content: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sweep: %w", err)
	}

	// Orphan defense: expired assets whose owning row left through another path.
	if _, err := s.db.ExecContext(ctx, "DELETE FROM binary_assets WHERE expires_at < ?", now); err != nil {
		return int(removed), fmt.Errorf("sweep orphaned assets: %w", err)
	}

	if removed > 0 {
		s.log.Info("expired content swept", "removed", removed)
	}
	return int(removed), nil
}

// Clear removes every content row and binary asset, reserved rows included.
func (s *Store) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM binary_assets"); err != nil {
		return fmt.Errorf("clear assets: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM content"); err != nil {
		return fmt.Errorf("clear content: %w", err)
	}
	return tx.Commit()
}

// SetMetadata stores an arbitrary key/value pair in the metadata table.
func (s *Store) SetMetadata(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set metadata %s: %w", key, err)
	}
	return nil
}

// GetMetadata retrieves a metadata value. Returns ErrNotFound when absent.
func (s *Store) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("get metadata %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get metadata %s: %w", key, err)
	}
	return value, nil
}

// Stats reports row counts and binary sizes.
type Stats struct {
	ContentRows     int64 `json:"content_rows"`
	BinaryRows      int64 `json:"binary_rows"`
	TotalBinarySize int64 `json:"total_binary_size"`
	AvgAssetSize    int64 `json:"avg_asset_size"`
}

// GetStorageStats reports content row count (reserved rows excluded),
// binary asset count, aggregate binary size, and average asset size.
func (s *Store) GetStorageStats(ctx context.Context) (Stats, error) {
	var st Stats

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM content WHERE id NOT IN (?, ?)",
		reservedPlaylistKey, reservedMetaKey,
	).Scan(&st.ContentRows)
	if err != nil {
		return Stats{}, fmt.Errorf("count content: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(size), 0) FROM binary_assets",
	).Scan(&st.BinaryRows, &st.TotalBinarySize)
	if err != nil {
		return Stats{}, fmt.Errorf("count assets: %w", err)
	}

	if st.BinaryRows > 0 {
		st.AvgAssetSize = st.TotalBinarySize / st.BinaryRows
	}
	return st, nil
}
