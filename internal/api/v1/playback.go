package v1

import (
	"errors"
	"net/http"

	"github.com/marqueeplayer/marquee/internal/playback"
)

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	preActive, preQueued := s.core.Preloader.QueueStatus()
	pfActive, pfQueued := s.core.Orch.PrefetchStatus()

	writeJSON(w, http.StatusOK, statusResponse{
		Playback:       s.core.Engine.State(),
		PlaylistSize:   len(s.core.Engine.Playlist()),
		Network:        s.core.Monitor.Status(),
		CacheDurable:   s.core.Orch.Durable(),
		PreloadActive:  preActive,
		PreloadQueued:  preQueued,
		PrefetchActive: pfActive,
		PrefetchQueued: pfQueued,
	})
}

func (s *Server) getPlayback(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.core.Engine.State())
}

func (s *Server) play(w http.ResponseWriter, r *http.Request) {
	s.core.Engine.Play()
	writeJSON(w, http.StatusOK, s.core.Engine.State())
}

func (s *Server) pause(w http.ResponseWriter, r *http.Request) {
	s.core.Engine.Pause()
	writeJSON(w, http.StatusOK, s.core.Engine.State())
}

func (s *Server) stop(w http.ResponseWriter, r *http.Request) {
	s.core.Engine.Stop()
	writeJSON(w, http.StatusOK, s.core.Engine.State())
}

func (s *Server) advance(w http.ResponseWriter, r *http.Request) {
	s.core.Engine.Advance()
	writeJSON(w, http.StatusOK, s.core.Engine.State())
}

func (s *Server) skipTo(w http.ResponseWriter, r *http.Request) {
	index, err := pathInt(r, "index")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_index", "index must be an integer")
		return
	}
	if err := s.core.Engine.SkipTo(index); err != nil {
		if errors.Is(err, playback.ErrIndexOutOfRange) {
			writeError(w, http.StatusBadRequest, "index_out_of_range", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "skip_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.core.Engine.State())
}
