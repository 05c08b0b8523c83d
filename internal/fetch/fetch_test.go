package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marqueeplayer/marquee/internal/content"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Content(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/content/c1", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("_t"))
		_, _ = w.Write([]byte(`{"id":"c1","type":"image","url":"https://cdn.example.com/a.jpg","duration":5000}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger())
	item, err := c.Content(context.Background(), "c1", false)
	require.NoError(t, err)
	assert.Equal(t, "c1", item.ID)
	assert.Equal(t, content.TypeImage, item.Type)
}

func TestClient_Content_CacheBust(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("_t"))
		_, _ = w.Write([]byte(`{"id":"c1","type":"image","url":"u","duration":0}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger())
	_, err := c.Content(context.Background(), "c1", true)
	require.NoError(t, err)
}

func TestClient_Content_NonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger())
	_, err := c.Content(context.Background(), "missing", false)
	require.Error(t, err)
	assert.True(t, IsFetchError(err))

	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
}

func TestClient_Content_InvalidPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"c1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger())
	_, err := c.Content(context.Background(), "c1", false)
	assert.ErrorIs(t, err, content.ErrInvalidContent)
	assert.False(t, IsFetchError(err), "validation failure is not a fetch failure")
}

func TestClient_Asset(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png; charset=binary")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger())
	data, mime, err := c.Asset(context.Background(), srv.URL+"/logo.png", content.TypeImage)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "image/png", mime)
}

func TestClient_Asset_MimeFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte("data"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger())
	_, mime, err := c.Asset(context.Background(), srv.URL+"/clip.webm", content.TypeVideo)
	require.NoError(t, err)
	assert.Equal(t, "video/webm", mime)
}

func TestClient_Asset_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, testLogger())
	_, _, err := c.Asset(ctx, srv.URL+"/a.jpg", content.TypeImage)
	require.Error(t, err)
}
