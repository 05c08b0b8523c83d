package v1

import (
	"net/http"
)

func (s *Server) cacheStats(w http.ResponseWriter, r *http.Request) {
	if !s.core.Orch.Durable() {
		writeError(w, http.StatusServiceUnavailable, "cache_unavailable", "durable cache is not available")
		return
	}
	stats, err := s.core.Store.GetStorageStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "stats_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) cacheSweep(w http.ResponseWriter, r *http.Request) {
	removed, err := s.core.Orch.Sweep(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sweep_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sweepResponse{Removed: removed})
}

func (s *Server) cacheClear(w http.ResponseWriter, r *http.Request) {
	if !s.core.Orch.Durable() {
		writeError(w, http.StatusServiceUnavailable, "cache_unavailable", "durable cache is not available")
		return
	}
	if err := s.core.Store.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "clear_failed", err.Error())
		return
	}
	s.core.Orch.InvalidateMemory()
	w.WriteHeader(http.StatusNoContent)
}
