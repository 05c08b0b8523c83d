package v1

import (
	"net/http"

	"github.com/marqueeplayer/marquee/pkg/match"
)

// searchContent fuzzy-matches a query against the titles of everything the
// daemon currently knows about: the active playlist plus the durably cached
// one. Items without a title fall back to their id.
func (s *Server) searchContent(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing_query", "query parameter q is required")
		return
	}

	seen := make(map[string]bool)
	var candidates []match.Candidate
	add := func(id, title string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		if title == "" {
			title = id
		}
		candidates = append(candidates, match.Candidate{ID: id, Title: title})
	}

	for _, item := range s.core.Engine.Playlist() {
		add(item.ID, item.Title)
	}
	for _, item := range s.core.Orch.CachedPlaylist(r.Context()) {
		add(item.ID, item.Title)
	}

	writeJSON(w, http.StatusOK, match.Rank(query, candidates))
}
