package timers

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduleFires(t *testing.T) {
	s := NewSet()
	defer s.Stop()

	done := make(chan struct{})
	s.Schedule("advance", 10*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	assert.False(t, s.Active("advance"))
}

func TestRescheduleReplacesPending(t *testing.T) {
	s := NewSet()
	defer s.Stop()

	var first, second atomic.Int32
	s.Schedule("advance", 20*time.Millisecond, func() { first.Add(1) })
	s.Schedule("advance", 20*time.Millisecond, func() { second.Add(1) })

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), first.Load())
	assert.Equal(t, int32(1), second.Load())
}

func TestStaleFireKeepsReplacement(t *testing.T) {
	s := NewSet()
	defer s.Stop()

	// A zero-duration timer fires while Schedule installs a replacement
	// under the same id. The superseded callback must not remove the
	// replacement's entry once it gets the lock.
	for i := 0; i < 100; i++ {
		s.Schedule("advance", 0, func() {})
		s.Schedule("advance", time.Hour, func() {})

		time.Sleep(time.Millisecond)
		assert.True(t, s.Active("advance"))
		s.Cancel("advance")
	}
}

func TestCancel(t *testing.T) {
	s := NewSet()
	defer s.Stop()

	var fired atomic.Int32
	s.Schedule("retry", 20*time.Millisecond, func() { fired.Add(1) })

	assert.True(t, s.Cancel("retry"))
	assert.False(t, s.Cancel("retry"))

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestIndependentIDs(t *testing.T) {
	s := NewSet()
	defer s.Stop()

	var a, b atomic.Int32
	s.Schedule("a", 10*time.Millisecond, func() { a.Add(1) })
	s.Schedule("b", 10*time.Millisecond, func() { b.Add(1) })
	s.Cancel("a")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), a.Load())
	assert.Equal(t, int32(1), b.Load())
}

func TestStopRejectsNewTimers(t *testing.T) {
	s := NewSet()

	var fired atomic.Int32
	s.Schedule("x", 10*time.Millisecond, func() { fired.Add(1) })
	s.Stop()
	s.Schedule("y", 10*time.Millisecond, func() { fired.Add(1) })

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
