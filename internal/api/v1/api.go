// Package v1 implements the native REST API over the playback core.
package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/marqueeplayer/marquee/internal/server"
)

// Server is the v1 API server.
type Server struct {
	core *server.Core
}

// New creates a new v1 API server.
func New(core *server.Core) *Server {
	return &Server{core: core}
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)

	// Playback
	mux.HandleFunc("GET /api/v1/playback", s.getPlayback)
	mux.HandleFunc("POST /api/v1/playback/play", s.play)
	mux.HandleFunc("POST /api/v1/playback/pause", s.pause)
	mux.HandleFunc("POST /api/v1/playback/stop", s.stop)
	mux.HandleFunc("POST /api/v1/playback/advance", s.advance)
	mux.HandleFunc("POST /api/v1/playback/skip/{index}", s.skipTo)

	// Playlist
	mux.HandleFunc("GET /api/v1/playlist", s.getPlaylist)
	mux.HandleFunc("POST /api/v1/playlist", s.loadPlaylist)
	mux.HandleFunc("PUT /api/v1/playlist", s.updatePlaylist)

	// Schedule
	mux.HandleFunc("GET /api/v1/schedule", s.getSchedule)
	mux.HandleFunc("PUT /api/v1/schedule", s.putSchedule)

	// Content
	mux.HandleFunc("GET /api/v1/content/search", s.searchContent)

	// Cache
	mux.HandleFunc("GET /api/v1/cache/stats", s.cacheStats)
	mux.HandleFunc("POST /api/v1/cache/sweep", s.cacheSweep)
	mux.HandleFunc("DELETE /api/v1/cache", s.cacheClear)

	// Events
	mux.HandleFunc("GET /api/v1/events", s.listEvents)

	// Network signal (fed by an external probe)
	mux.HandleFunc("GET /api/v1/network", s.getNetwork)
	mux.HandleFunc("POST /api/v1/network", s.putNetwork)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// pathInt extracts an integer from the URL path.
func pathInt(r *http.Request, name string) (int, error) {
	v := r.PathValue(name)
	if v == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	return strconv.Atoi(v)
}
