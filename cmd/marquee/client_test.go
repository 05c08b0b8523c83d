package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Status_Success(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/status").
		ExpectGET().
		RespondJSON(StatusResponse{
			Playback: PlaybackState{
				Status:  "playing",
				Current: &ContentItem{ID: "a", Type: "image", Title: "Menu Board"},
				Index:   0,
			},
			PlaylistSize:  3,
			Network:       NetworkStatus{Online: true, DownlinkMbps: 4.2},
			CacheDurable:  true,
			PreloadActive: 1,
			PreloadQueued: 2,
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Status()
	require.NoError(t, err)

	assert.Equal(t, "playing", resp.Playback.Status)
	require.NotNil(t, resp.Playback.Current)
	assert.Equal(t, "a", resp.Playback.Current.ID)
	assert.Equal(t, 3, resp.PlaylistSize)
	assert.True(t, resp.Network.Online)
	assert.True(t, resp.CacheDurable)
	assert.Equal(t, 1, resp.PreloadActive)
	assert.Equal(t, 2, resp.PreloadQueued)
}

func TestClient_Status_ServerError(t *testing.T) {
	srv := newMockServer(t).
		RespondError(http.StatusInternalServerError, "boom").
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Status()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error 500")
}

func TestClient_PlaybackAction(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/playback/pause").
		ExpectPOST().
		RespondJSON(PlaybackState{Status: "paused", Index: 1}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	st, err := client.PlaybackAction("pause")
	require.NoError(t, err)
	assert.Equal(t, "paused", st.Status)
	assert.Equal(t, 1, st.Index)
}

func TestClient_SkipTo(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/playback/skip/2").
		ExpectPOST().
		RespondJSON(PlaybackState{Status: "transitioning", Index: 2}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	st, err := client.SkipTo(2)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Index)
}

func TestClient_LoadPlaylist_SendsBody(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/playlist").
		ExpectPOST().
		Handler(func(w http.ResponseWriter, r *http.Request) {
			var req LoadPlaylistRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Len(t, req.Items, 2)
			assert.Equal(t, 1, req.StartIndex)
			respondJSON(t, w, PlaybackState{Status: "loading", Index: 1})
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	st, err := client.LoadPlaylist(LoadPlaylistRequest{
		Items: []ContentItem{
			{ID: "a", Type: "image", URL: "https://cdn.example.com/a.jpg", Duration: 10000},
			{ID: "b", Type: "webpage", URL: "https://example.com/b", Duration: 15000},
		},
		StartIndex: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "loading", st.Status)
}

func TestClient_Search_EscapesQuery(t *testing.T) {
	srv := newMockServer(t).
		ExpectGET().
		Handler(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "lobby welcome", r.URL.Query().Get("q"))
			respondJSON(t, w, []SearchResult{{ID: "b", Title: "Lobby Welcome Loop", Score: 0.97, Confidence: 3}})
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	results, err := client.Search("lobby welcome")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].ID)
}

func TestClient_CacheClear(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/cache").
		ExpectDELETE().
		Handler(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	require.NoError(t, client.CacheClear())
}

func TestClient_Events_SincePassedThrough(t *testing.T) {
	srv := newMockServer(t).
		ExpectGET().
		Handler(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2026-01-02T15:04:05Z", r.URL.Query().Get("since"))
			respondJSON(t, w, []RawEvent{{ID: 1, EventType: "content.changed", ContentID: "a"}})
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	events, err := client.Events("2026-01-02T15:04:05Z")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "content.changed", events[0].EventType)
}

func TestClient_SetNetwork(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/network").
		ExpectPOST().
		Handler(func(w http.ResponseWriter, r *http.Request) {
			var st NetworkStatus
			require.NoError(t, json.NewDecoder(r.Body).Decode(&st))
			assert.False(t, st.Online)
			respondJSON(t, w, st)
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	st, err := client.SetNetwork(NetworkStatus{Online: false, DownlinkMbps: 0.5})
	require.NoError(t, err)
	assert.False(t, st.Online)
}
