// Package fetch talks to the content API and asset CDN over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/marqueeplayer/marquee/internal/content"
)

// maxAssetBody caps how much of an asset response is read into memory.
// The durable store enforces its own cap at write time; this one just keeps
// a misconfigured CDN from exhausting the device.
const maxAssetBody = 256 << 20

// Client fetches content metadata and binary assets.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a fetch client for the given content API base URL.
func NewClient(baseURL string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		log:     log.With("component", "fetch"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Content fetches a content item by id. With cacheBust set, a timestamp
// query parameter defeats intermediary caches so background refresh sees
// the upstream copy.
func (c *Client) Content(ctx context.Context, id string, cacheBust bool) (*content.Item, error) {
	url := c.baseURL + "/api/content/" + id
	if cacheBust {
		url += "?_t=" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}

	item, err := content.Decode(body)
	if err != nil {
		return nil, err
	}

	c.log.Debug("content fetched", "content_id", id, "type", item.Type, "cache_bust", cacheBust)
	return item, nil
}

// Asset downloads a binary asset. The MIME type comes from the response
// header when present, otherwise from the URL extension and content type.
func (c *Client) Asset(ctx context.Context, url string, typ content.Type) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", &Error{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &Error{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBody))
	if err != nil {
		return nil, "", &Error{URL: url, Err: err}
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = content.GuessMime(url, typ)
	}
	// Strip charset and similar parameters.
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}

	c.log.Debug("asset fetched", "url", url, "bytes", len(data), "mime", mime)
	return data, mime, nil
}
