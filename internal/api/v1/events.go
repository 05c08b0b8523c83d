package v1

import (
	"net/http"
	"time"

	"github.com/marqueeplayer/marquee/internal/events"
)

// defaultEventWindow bounds the event listing when no since parameter is
// given.
const defaultEventWindow = time.Hour

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	since := time.Now().Add(-defaultEventWindow)
	if raw := r.URL.Query().Get("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_since", "since must be an RFC 3339 timestamp")
			return
		}
		since = t
	}

	items, err := s.core.EventLog.Since(r.Context(), since)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "events_failed", err.Error())
		return
	}
	if items == nil {
		items = []events.RawEvent{}
	}
	writeJSON(w, http.StatusOK, items)
}
