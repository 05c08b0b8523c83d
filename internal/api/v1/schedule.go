package v1

import (
	"encoding/json"
	"net/http"

	"github.com/marqueeplayer/marquee/internal/content"
)

func (s *Server) getSchedule(w http.ResponseWriter, r *http.Request) {
	sched := s.core.Orch.Schedule()
	if sched == nil {
		sched = &content.Schedule{}
	}
	writeJSON(w, http.StatusOK, sched)
}

func (s *Server) putSchedule(w http.ResponseWriter, r *http.Request) {
	var sched content.Schedule
	if err := json.NewDecoder(r.Body).Decode(&sched); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	for _, item := range sched.Items {
		if item.ContentID == "" {
			writeError(w, http.StatusBadRequest, "invalid_schedule", "schedule item missing contentId")
			return
		}
	}

	s.core.Orch.SetSchedule(r.Context(), &sched)
	writeJSON(w, http.StatusOK, &sched)
}
