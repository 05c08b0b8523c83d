package v1

import (
	"encoding/json"
	"net/http"

	"github.com/marqueeplayer/marquee/internal/netmon"
)

func (s *Server) getNetwork(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.core.Monitor.Status())
}

// putNetwork accepts a connectivity report from the external network probe
// and fans it out to every component that adapts to the signal.
func (s *Server) putNetwork(w http.ResponseWriter, r *http.Request) {
	var st netmon.Status
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	if st.DownlinkMbps < 0 {
		writeError(w, http.StatusBadRequest, "invalid_status", "downlink_mbps must not be negative")
		return
	}

	s.core.Monitor.Set(st)
	writeJSON(w, http.StatusOK, st)
}
