package v1

import (
	"encoding/json"
	"net/http"
)

func (s *Server) getPlaylist(w http.ResponseWriter, r *http.Request) {
	st := s.core.Engine.State()
	writeJSON(w, http.StatusOK, playlistResponse{
		Items: s.core.Engine.Playlist(),
		Index: st.Index,
	})
}

func (s *Server) loadPlaylist(w http.ResponseWriter, r *http.Request) {
	var req loadPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	for _, item := range req.Items {
		if item == nil {
			writeError(w, http.StatusBadRequest, "invalid_content", "null playlist item")
			return
		}
		if err := item.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_content", err.Error())
			return
		}
	}

	s.core.LoadPlaylist(r.Context(), req.Items, req.StartIndex)
	writeJSON(w, http.StatusOK, s.core.Engine.State())
}

func (s *Server) updatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req loadPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	for _, item := range req.Items {
		if item == nil {
			writeError(w, http.StatusBadRequest, "invalid_content", "null playlist item")
			return
		}
		if err := item.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_content", err.Error())
			return
		}
	}

	s.core.UpdatePlaylist(r.Context(), req.Items)
	writeJSON(w, http.StatusOK, s.core.Engine.State())
}
