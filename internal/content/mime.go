package content

import (
	"net/url"
	"path"
	"strings"
)

// extensionMimes maps common asset file extensions to MIME types.
var extensionMimes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
	"mp4":  "video/mp4",
	"webm": "video/webm",
	"mov":  "video/quicktime",
	"avi":  "video/x-msvideo",
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"ogg":  "audio/ogg",
	"m4a":  "audio/x-m4a",
	"pdf":  "application/pdf",
}

// typeMimes is the last-resort mapping from content type to a nominal MIME type.
var typeMimes = map[Type]string{
	TypeImage: "image/jpeg",
	TypeVideo: "video/mp4",
}

// GuessMime derives a MIME type for an asset URL, preferring the file
// extension and falling back to the content type. Returns
// "application/octet-stream" when nothing matches.
func GuessMime(rawURL string, typ Type) string {
	if u, err := url.Parse(rawURL); err == nil {
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), "."))
		if mime, ok := extensionMimes[ext]; ok {
			return mime
		}
	}
	if mime, ok := typeMimes[typ]; ok {
		return mime
	}
	return "application/octet-stream"
}
