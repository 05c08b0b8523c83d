// Package timers provides a small scheduler for named one-shot timers.
// Each logical id holds at most one pending timer; scheduling an id again
// cancels the previous timer first, so stale callbacks from superseded
// schedules never fire.
package timers

import (
	"sync"
	"time"
)

type pending struct {
	timer *time.Timer
	gen   uint64
}

// Set tracks pending timers by logical id.
type Set struct {
	mu      sync.Mutex
	pending map[string]pending
	gen     uint64
	closed  bool
}

// NewSet returns an empty timer set.
func NewSet() *Set {
	return &Set{pending: make(map[string]pending)}
}

// Schedule arranges fn to run after d, replacing any pending timer under the
// same id. fn runs on the timer goroutine. A fired timer whose callback is
// still waiting on the lock when a replacement is installed finds its
// generation superseded and does nothing.
func (s *Set) Schedule(id string, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if p, ok := s.pending[id]; ok {
		p.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.pending[id] = pending{gen: gen, timer: time.AfterFunc(d, func() {
		s.mu.Lock()
		cur, ok := s.pending[id]
		if !ok || cur.gen != gen {
			s.mu.Unlock()
			return
		}
		delete(s.pending, id)
		s.mu.Unlock()
		fn()
	})}
}

// Cancel stops the pending timer under id, if any. Reports whether a timer
// was cancelled before firing.
func (s *Set) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	return p.timer.Stop()
}

// Active reports whether a timer is pending under id.
func (s *Set) Active(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[id]
	return ok
}

// Stop cancels every pending timer and rejects further scheduling.
func (s *Set) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for id, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, id)
	}
}
