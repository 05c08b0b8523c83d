package netmon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalMonitor_StatusAndSet(t *testing.T) {
	m := NewSignalMonitor(Status{Online: true, DownlinkMbps: 10})
	assert.True(t, m.Status().Online)

	m.Set(Status{Online: false})
	assert.False(t, m.Status().Online)
}

func TestSignalMonitor_Subscribe(t *testing.T) {
	m := NewSignalMonitor(Status{Online: true})
	ch := m.Subscribe(2)

	m.Set(Status{Online: false})
	m.Set(Status{Online: true, DownlinkMbps: 2.5})

	select {
	case s := <-ch:
		assert.False(t, s.Online)
	case <-time.After(time.Second):
		t.Fatal("expected first status")
	}
	select {
	case s := <-ch:
		assert.True(t, s.Online)
		assert.InDelta(t, 2.5, s.DownlinkMbps, 0.001)
	case <-time.After(time.Second):
		t.Fatal("expected second status")
	}
}

func TestSignalMonitor_SlowSubscriberMissesIntermediates(t *testing.T) {
	m := NewSignalMonitor(Status{})
	ch := m.Subscribe(1)

	m.Set(Status{Online: true})
	m.Set(Status{Online: false}) // dropped, buffer full

	require.Len(t, ch, 1)
	assert.False(t, m.Status().Online, "Status still reflects the latest report")
}

func TestSignalMonitor_Unsubscribe(t *testing.T) {
	m := NewSignalMonitor(Status{})
	ch := m.Subscribe(1)
	m.Unsubscribe(ch)

	_, open := <-ch
	assert.False(t, open)

	// Setting after unsubscribe must not panic.
	m.Set(Status{Online: true})
}
