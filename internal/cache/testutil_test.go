package cache

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/marqueeplayer/marquee/internal/content"
	"github.com/marqueeplayer/marquee/internal/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(migrations.InitialSQL)
	require.NoError(t, err)

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testStore(t *testing.T, opts Options) *Store {
	t.Helper()
	return NewStore(setupTestDB(t), opts, testLogger())
}

func testItem(id string) *content.Item {
	return &content.Item{
		ID:       id,
		Type:     content.TypeImage,
		URL:      "https://cdn.example.com/" + id + ".jpg",
		Duration: 10000,
		Title:    "Item " + id,
	}
}

func expireContent(t *testing.T, s *Store, id string) {
	t.Helper()
	_, err := s.db.Exec(
		"UPDATE content SET expires_at = ? WHERE id = ?",
		time.Now().Add(-time.Hour), id,
	)
	require.NoError(t, err)
}
