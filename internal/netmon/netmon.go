// Package netmon carries the connectivity signal produced by an external
// network probe. It does no connectivity detection itself; the daemon is fed
// status updates and fans them out to components that adapt their retry
// intervals and download concurrency.
package netmon

import "sync"

// Status is a point-in-time connectivity report.
type Status struct {
	Online        bool    `json:"online"`
	DownlinkMbps  float64 `json:"downlink_mbps,omitempty"`
	RTTMillis     int     `json:"rtt_ms,omitempty"`
	EffectiveTier string  `json:"effective_tier,omitempty"` // e.g. "4g", "3g"
}

// Monitor exposes the current connectivity status and a change feed.
type Monitor interface {
	Status() Status
	Subscribe(bufferSize int) <-chan Status
	Unsubscribe(ch <-chan Status)
}

// SignalMonitor is a Monitor fed by an external probe via Set. The zero
// value is offline; construct with NewSignalMonitor to seed a status.
type SignalMonitor struct {
	mu   sync.RWMutex
	cur  Status
	subs []chan Status
}

// NewSignalMonitor creates a monitor seeded with the given status.
func NewSignalMonitor(initial Status) *SignalMonitor {
	return &SignalMonitor{cur: initial}
}

// Status returns the most recent report.
func (m *SignalMonitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur
}

// Set records a new report and notifies subscribers. Subscribers that
// cannot keep up miss intermediate reports; Status always has the latest.
func (m *SignalMonitor) Set(s Status) {
	m.mu.Lock()
	m.cur = s
	subs := make([]chan Status, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- s:
		default:
		}
	}
}

// Subscribe returns a channel receiving subsequent status reports.
func (m *SignalMonitor) Subscribe(bufferSize int) <-chan Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan Status, bufferSize)
	m.subs = append(m.subs, ch)
	return ch
}

// Unsubscribe removes a subscription channel and closes it.
func (m *SignalMonitor) Unsubscribe(ch <-chan Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subs {
		if sub == ch {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			close(sub)
			return
		}
	}
}
