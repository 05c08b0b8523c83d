package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Valid(t *testing.T) {
	item, err := Decode([]byte(`{
		"id": "c1",
		"type": "image",
		"url": "https://cdn.example.com/a.jpg",
		"duration": 5000,
		"title": "Lobby banner",
		"settings": {"fit": "cover", "loop": true}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "c1", item.ID)
	assert.Equal(t, TypeImage, item.Type)
	assert.Equal(t, int64(5000), item.Duration)
	assert.JSONEq(t, `{"fit":"cover","loop":true}`, string(item.Settings))
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{{`},
		{"missing id", `{"type":"image","url":"u","duration":5}`},
		{"empty id", `{"id":"","type":"image","url":"u","duration":5}`},
		{"missing type", `{"id":"c1","url":"u","duration":5}`},
		{"missing url", `{"id":"c1","type":"image","duration":5}`},
		{"missing duration", `{"id":"c1","type":"image","url":"u"}`},
		{"negative duration", `{"id":"c1","type":"image","url":"u","duration":-1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.payload))
			assert.ErrorIs(t, err, ErrInvalidContent)
		})
	}
}

func TestDecode_ZeroDurationIsValid(t *testing.T) {
	item, err := Decode([]byte(`{"id":"c1","type":"webpage","url":"https://example.com","duration":0}`))
	require.NoError(t, err)
	assert.Zero(t, item.Duration)
}

func TestItem_HasRemoteAsset(t *testing.T) {
	assert.True(t, Item{Type: TypeImage, URL: "https://cdn.example.com/a.jpg"}.HasRemoteAsset())
	assert.True(t, Item{Type: TypeVideo, URL: "http://cdn.example.com/a.mp4"}.HasRemoteAsset())
	assert.False(t, Item{Type: TypeWebpage, URL: "https://example.com"}.HasRemoteAsset())
	assert.False(t, Item{Type: TypeImage, URL: "data:image/png;base64,xyz"}.HasRemoteAsset())
	assert.False(t, Item{Type: TypeImage, URL: "/relative/a.jpg"}.HasRemoteAsset())
}

func TestEqual(t *testing.T) {
	a := &Item{ID: "c1", Type: TypeImage, URL: "u", Duration: 5000}
	b := &Item{ID: "c1", Type: TypeImage, URL: "u", Duration: 5000}
	c := &Item{ID: "c1", Type: TypeImage, URL: "u", Duration: 6000}

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.False(t, Equal(a, nil))
	assert.True(t, Equal(nil, nil))
}

func TestGuessMime(t *testing.T) {
	assert.Equal(t, "image/png", GuessMime("https://cdn.example.com/logo.png", TypeImage))
	assert.Equal(t, "video/webm", GuessMime("https://cdn.example.com/clip.webm?sig=abc", TypeVideo))
	// No usable extension falls back to the content type.
	assert.Equal(t, "video/mp4", GuessMime("https://cdn.example.com/stream", TypeVideo))
	assert.Equal(t, "application/octet-stream", GuessMime("https://example.com/page", TypeWebpage))
}
