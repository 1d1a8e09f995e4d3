package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestAddTimer_FiresOnce(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	fired := make(chan struct{}, 10)
	m.AddTimer(50*time.Millisecond, 0, func() {
		fired <- struct{}{}
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("One-shot timer never fired")
	}

	// 无 interval 的任务不应重复触发
	select {
	case <-fired:
		t.Fatal("One-shot timer fired more than once")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestAddTimer_Periodic(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	var count int64
	m.AddTimer(50*time.Millisecond, 150*time.Millisecond, func() {
		atomic.AddInt64(&count, 1)
	})

	deadline := time.After(3 * time.Second)
	for atomic.LoadInt64(&count) < 2 {
		select {
		case <-deadline:
			t.Fatalf("Periodic timer fired %d times, want at least 2", atomic.LoadInt64(&count))
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestRemoveTimer(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	fired := make(chan struct{}, 1)
	id := m.AddTimer(400*time.Millisecond, 0, func() {
		fired <- struct{}{}
	})
	m.RemoveTimer(id)

	select {
	case <-fired:
		t.Fatal("Removed timer still fired")
	case <-time.After(800 * time.Millisecond):
	}
}

func TestStop_DiscardsPending(t *testing.T) {
	m := NewManager()

	fired := make(chan struct{}, 1)
	m.AddTimer(400*time.Millisecond, 0, func() {
		fired <- struct{}{}
	})
	m.Stop()

	select {
	case <-fired:
		t.Fatal("Timer fired after Stop")
	case <-time.After(800 * time.Millisecond):
	}
}
