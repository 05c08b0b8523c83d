package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps HTTP calls to the marquee daemon.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new marquee API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) send(method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) post(path string, body any, result any) error {
	return c.send(http.MethodPost, path, body, result)
}

func (c *Client) put(path string, body any, result any) error {
	return c.send(http.MethodPut, path, body, result)
}

func (c *Client) delete(path string) error {
	return c.send(http.MethodDelete, path, nil, nil)
}

// API response types (mirror server types)

type ContentItem struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	URL      string          `json:"url"`
	Duration int64           `json:"duration"`
	Title    string          `json:"title,omitempty"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

type PlaybackState struct {
	Status     string       `json:"status"`
	Current    *ContentItem `json:"current,omitempty"`
	Next       *ContentItem `json:"next,omitempty"`
	Index      int          `json:"index"`
	LastError  string       `json:"last_error,omitempty"`
	RetryCount int          `json:"retry_count"`
}

type NetworkStatus struct {
	Online        bool    `json:"online"`
	DownlinkMbps  float64 `json:"downlink_mbps,omitempty"`
	RTTMillis     int     `json:"rtt_ms,omitempty"`
	EffectiveTier string  `json:"effective_tier,omitempty"`
}

type StatusResponse struct {
	Playback       PlaybackState `json:"playback"`
	PlaylistSize   int           `json:"playlist_size"`
	Network        NetworkStatus `json:"network"`
	CacheDurable   bool          `json:"cache_durable"`
	PreloadActive  int           `json:"preload_active"`
	PreloadQueued  int           `json:"preload_queued"`
	PrefetchActive int           `json:"prefetch_active"`
	PrefetchQueued int           `json:"prefetch_queued"`
}

type PlaylistResponse struct {
	Items []ContentItem `json:"items"`
	Index int           `json:"index"`
}

type LoadPlaylistRequest struct {
	Items      []ContentItem `json:"items"`
	StartIndex int           `json:"start_index"`
}

type ScheduleItem struct {
	ID        string `json:"id"`
	ContentID string `json:"contentId"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Priority  int    `json:"priority"`
}

type ScheduleResponse struct {
	Items []ScheduleItem `json:"items"`
}

type SearchResult struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Score      float64 `json:"score"`
	Confidence int     `json:"confidence"`
}

type CacheStats struct {
	ContentRows     int64 `json:"content_rows"`
	BinaryRows      int64 `json:"binary_rows"`
	TotalBinarySize int64 `json:"total_binary_size"`
	AvgAssetSize    int64 `json:"avg_asset_size"`
}

type SweepResponse struct {
	Removed int `json:"removed"`
}

type RawEvent struct {
	ID         int64  `json:"id"`
	EventType  string `json:"event_type"`
	ContentID  string `json:"content_id,omitempty"`
	Payload    string `json:"payload"`
	OccurredAt string `json:"occurred_at"`
}

// API methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Playback() (*PlaybackState, error) {
	var resp PlaybackState
	if err := c.get("/api/v1/playback", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) PlaybackAction(action string) (*PlaybackState, error) {
	var resp PlaybackState
	if err := c.post("/api/v1/playback/"+action, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SkipTo(index int) (*PlaybackState, error) {
	var resp PlaybackState
	if err := c.post(fmt.Sprintf("/api/v1/playback/skip/%d", index), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Playlist() (*PlaylistResponse, error) {
	var resp PlaylistResponse
	if err := c.get("/api/v1/playlist", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) LoadPlaylist(req LoadPlaylistRequest) (*PlaybackState, error) {
	var resp PlaybackState
	if err := c.post("/api/v1/playlist", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdatePlaylist(req LoadPlaylistRequest) (*PlaybackState, error) {
	var resp PlaybackState
	if err := c.put("/api/v1/playlist", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Schedule() (*ScheduleResponse, error) {
	var resp ScheduleResponse
	if err := c.get("/api/v1/schedule", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SetSchedule(req ScheduleResponse) (*ScheduleResponse, error) {
	var resp ScheduleResponse
	if err := c.put("/api/v1/schedule", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Search(query string) ([]SearchResult, error) {
	var resp []SearchResult
	if err := c.get("/api/v1/content/search?q="+url.QueryEscape(query), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) CacheStats() (*CacheStats, error) {
	var resp CacheStats
	if err := c.get("/api/v1/cache/stats", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CacheSweep() (*SweepResponse, error) {
	var resp SweepResponse
	if err := c.post("/api/v1/cache/sweep", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CacheClear() error {
	return c.delete("/api/v1/cache")
}

func (c *Client) Events(since string) ([]RawEvent, error) {
	path := "/api/v1/events"
	if since != "" {
		path += "?since=" + url.QueryEscape(since)
	}
	var resp []RawEvent
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Network() (*NetworkStatus, error) {
	var resp NetworkStatus
	if err := c.get("/api/v1/network", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SetNetwork(st NetworkStatus) (*NetworkStatus, error) {
	var resp NetworkStatus
	if err := c.post("/api/v1/network", st, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
