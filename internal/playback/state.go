package playback

import "github.com/marqueeplayer/marquee/internal/content"

// Status is a playback state machine state.
type Status string

const (
	StatusIdle          Status = "idle"
	StatusLoading       Status = "loading"
	StatusPlaying       Status = "playing"
	StatusPaused        Status = "paused"
	StatusTransitioning Status = "transitioning"
	StatusError         Status = "error"
)

// validTransitions defines the allowed state machine moves.
var validTransitions = map[Status][]Status{
	StatusIdle:          {StatusLoading},
	StatusLoading:       {StatusPlaying, StatusPaused, StatusError, StatusTransitioning, StatusLoading, StatusIdle},
	StatusPlaying:       {StatusTransitioning, StatusPaused, StatusLoading, StatusError, StatusIdle},
	StatusPaused:        {StatusPlaying, StatusLoading, StatusTransitioning, StatusIdle},
	StatusTransitioning: {StatusPlaying, StatusLoading, StatusPaused, StatusError, StatusTransitioning, StatusIdle},
	StatusError:         {StatusLoading, StatusTransitioning, StatusIdle},
}

func canTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// State is a point-in-time snapshot of the engine. Mutated only by the
// engine itself; callers receive copies.
type State struct {
	Status     Status        `json:"status"`
	Current    *content.Item `json:"current,omitempty"`
	Next       *content.Item `json:"next,omitempty"`
	Index      int           `json:"index"`
	LastError  string        `json:"last_error,omitempty"`
	RetryCount int           `json:"retry_count"`
}
