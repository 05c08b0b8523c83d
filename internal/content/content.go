// Package content defines the playable content model: items, playlists,
// and schedules, plus validation of the wire shape served by the content API.
package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Type classifies what a content item renders as.
type Type string

const (
	TypeImage   Type = "image"
	TypeVideo   Type = "video"
	TypeWebpage Type = "webpage"
	TypeStream  Type = "stream"
	TypeWidget  Type = "widget"
)

// Item is a single playable unit. Duration is in milliseconds; zero means
// the item never auto-advances and must be skipped manually. Settings are
// renderer hints and are passed through untouched.
type Item struct {
	ID       string          `json:"id"`
	Type     Type            `json:"type"`
	URL      string          `json:"url"`
	Duration int64           `json:"duration"`
	Title    string          `json:"title,omitempty"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

// HasRemoteAsset reports whether the item points at a fetchable binary:
// an image or video with an absolute http(s) URL.
func (i Item) HasRemoteAsset() bool {
	if i.Type != TypeImage && i.Type != TypeVideo {
		return false
	}
	return strings.HasPrefix(i.URL, "http://") || strings.HasPrefix(i.URL, "https://")
}

// wireItem mirrors the JSON shape served by the content API. Pointer fields
// distinguish absent from zero so malformed payloads are rejected outright.
type wireItem struct {
	ID       *string         `json:"id"`
	Type     *string         `json:"type"`
	URL      *string         `json:"url"`
	Duration *int64          `json:"duration"`
	Title    string          `json:"title"`
	Settings json.RawMessage `json:"settings"`
}

// Decode parses and validates a content payload. Any payload missing id,
// type, url, or duration (or with a negative duration) is rejected with
// ErrInvalidContent.
func Decode(data []byte) (*Item, error) {
	var w wireItem
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	switch {
	case w.ID == nil || *w.ID == "":
		return nil, fmt.Errorf("%w: missing id", ErrInvalidContent)
	case w.Type == nil || *w.Type == "":
		return nil, fmt.Errorf("%w: missing type", ErrInvalidContent)
	case w.URL == nil:
		return nil, fmt.Errorf("%w: missing url", ErrInvalidContent)
	case w.Duration == nil:
		return nil, fmt.Errorf("%w: missing duration", ErrInvalidContent)
	case *w.Duration < 0:
		return nil, fmt.Errorf("%w: negative duration", ErrInvalidContent)
	}
	return &Item{
		ID:       *w.ID,
		Type:     Type(*w.Type),
		URL:      *w.URL,
		Duration: *w.Duration,
		Title:    w.Title,
		Settings: w.Settings,
	}, nil
}

// Validate checks an already-decoded item against the same rules as Decode.
func (i Item) Validate() error {
	switch {
	case i.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidContent)
	case i.Type == "":
		return fmt.Errorf("%w: missing type", ErrInvalidContent)
	case i.Duration < 0:
		return fmt.Errorf("%w: negative duration", ErrInvalidContent)
	}
	return nil
}

// Equal reports whether two items serialize identically. Used by background
// refresh to decide whether a fetched copy supersedes the cached one.
func Equal(a, b *Item) bool {
	if a == nil || b == nil {
		return a == b
	}
	aj, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bj, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(aj) == string(bj)
}
