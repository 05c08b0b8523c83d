package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/marqueeplayer/marquee/internal/config"
	"github.com/marqueeplayer/marquee/internal/content"
	"github.com/marqueeplayer/marquee/internal/migrations"
	"github.com/marqueeplayer/marquee/internal/playback"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(serverURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Content.ServerURL = serverURL
	cfg.Cache.SweepInterval.Duration = time.Hour
	return cfg
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(migrations.InitialSQL)
	require.NoError(t, err)
	return db
}

func testItem(id string, assetURL string) *content.Item {
	return &content.Item{
		ID:       id,
		Type:     content.TypeImage,
		URL:      assetURL,
		Duration: 10000,
	}
}

func newTestCore(t *testing.T, serverURL string) *Core {
	t.Helper()
	core := NewCore(testDB(t), testConfig(serverURL), testLogger())
	require.NoError(t, core.Open(context.Background()))
	t.Cleanup(core.Close)
	return core
}

func TestNewCoreWiring(t *testing.T) {
	core := newTestCore(t, "http://localhost:0")

	assert.NotNil(t, core.Bus)
	assert.NotNil(t, core.Store)
	assert.NotNil(t, core.Engine)
	assert.NotNil(t, core.Orch)
	assert.NotNil(t, core.Preloader)
	assert.True(t, core.Orch.Durable())
	assert.True(t, core.Monitor.Status().Online)
}

func TestLoadPlaylistPersistsForRecovery(t *testing.T) {
	core := newTestCore(t, "http://localhost:0")
	ctx := context.Background()

	core.LoadPlaylist(ctx, []*content.Item{
		testItem("a", "https://cdn.example.com/a.jpg"),
		testItem("b", "https://cdn.example.com/b.jpg"),
	}, 0)

	items, err := core.Store.GetCachedPlaylist(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
}

func TestOpenRestoresCachedPlaylist(t *testing.T) {
	db := testDB(t)
	cfg := testConfig("http://localhost:0")

	first := NewCore(db, cfg, testLogger())
	require.NoError(t, first.Open(context.Background()))
	first.LoadPlaylist(context.Background(), []*content.Item{
		testItem("a", "https://cdn.example.com/a.jpg"),
	}, 0)
	first.Close()

	// A fresh core over the same database resumes from the cached playlist.
	second := NewCore(db, cfg, testLogger())
	require.NoError(t, second.Open(context.Background()))
	t.Cleanup(second.Close)

	st := second.Engine.State()
	assert.Equal(t, playback.StatusLoading, st.Status)
	require.NotNil(t, st.Current)
	assert.Equal(t, "a", st.Current.ID)
}

func TestRunnerBridgesPreloadTargets(t *testing.T) {
	// The upstream serves assets for every item.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg"))
	}))
	t.Cleanup(upstream.Close)

	core := newTestCore(t, upstream.URL)
	runner := NewRunner(core, RunnerConfig{}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = runner.Run(ctx) }()
	time.Sleep(50 * time.Millisecond) // let the runner subscribe

	core.LoadPlaylist(ctx, []*content.Item{
		testItem("a", upstream.URL+"/a.jpg"),
		testItem("b", upstream.URL+"/b.jpg"),
		testItem("c", upstream.URL+"/c.jpg"),
	}, 0)

	// The engine announces b and c as preload targets; the bridge feeds
	// them to the preloader.
	deadline := time.After(2 * time.Second)
	for {
		if core.Preloader.IsLoaded("b") && core.Preloader.IsLoaded("c") {
			break
		}
		select {
		case <-deadline:
			t.Fatal("preload targets never warmed")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRunnerResolvesContentForEngine(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/content/a" {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": "a", "type": "webpage", "url": "https://example.com", "duration": 5000,
			})
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(upstream.Close)

	core := newTestCore(t, upstream.URL)
	runner := NewRunner(core, RunnerConfig{}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = runner.Run(ctx) }()
	time.Sleep(50 * time.Millisecond) // let the runner subscribe

	core.LoadPlaylist(ctx, []*content.Item{
		{ID: "a", Type: content.TypeWebpage, URL: "https://example.com", Duration: 5000},
	}, 0)

	// The orchestrator resolves "a" and reports back; the engine plays it.
	deadline := time.After(2 * time.Second)
	for {
		if core.Engine.State().Status == playback.StatusPlaying {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("engine never reached playing, status %s", core.Engine.State().Status)
		case <-time.After(10 * time.Millisecond):
		}
	}
}
