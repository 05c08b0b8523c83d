package events

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_type TEXT NOT NULL,
			content_id TEXT NOT NULL DEFAULT '',
			payload TEXT NOT NULL,
			occurred_at DATETIME NOT NULL
		)`)
	require.NoError(t, err)

	return db
}

func TestEventLog_AppendAndSince(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	ctx := context.Background()

	id1, err := log.Append(ctx, ContentChanged{BaseEvent: NewBaseEvent(EventContentChanged, "c1")})
	require.NoError(t, err)
	id2, err := log.Append(ctx, ContentError{
		BaseEvent: NewBaseEvent(EventContentError, "c1"),
		Reason:    "fetch failed",
	})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	got, err := log.Since(ctx, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, EventContentChanged, got[0].EventType)
	assert.Equal(t, "c1", got[0].ContentID)
	assert.Contains(t, got[1].Payload, "fetch failed")
}

func TestEventLog_SinceFiltersByTime(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	ctx := context.Background()

	old := PlaybackStopped{BaseEvent: BaseEvent{
		Type:      EventPlaybackStopped,
		Timestamp: time.Now().Add(-2 * time.Hour),
	}}
	_, err := log.Append(ctx, old)
	require.NoError(t, err)

	_, err = log.Append(ctx, PlaybackStarted{BaseEvent: NewBaseEvent(EventPlaybackStarted, "c1")})
	require.NoError(t, err)

	got, err := log.Since(ctx, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, EventPlaybackStarted, got[0].EventType)
}

func TestEventLog_Prune(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	ctx := context.Background()

	old := PlaylistEmpty{BaseEvent: BaseEvent{
		Type:      EventPlaylistEmpty,
		Timestamp: time.Now().Add(-48 * time.Hour),
	}}
	_, err := log.Append(ctx, old)
	require.NoError(t, err)
	_, err = log.Append(ctx, PlaylistEmpty{BaseEvent: NewBaseEvent(EventPlaylistEmpty, "")})
	require.NoError(t, err)

	removed, err := log.Prune(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	remaining, err := log.Since(ctx, time.Time{})
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}
