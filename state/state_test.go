package state

import (
	"testing"
)

func TestMachine_InitialStatus(t *testing.T) {
	m := NewMachine(StatusWaiting)

	if m.Current() != StatusWaiting {
		t.Errorf("Expected waiting, got %s", m.Current())
	}
}

func TestMachine_WaitingToPlaying(t *testing.T) {
	m := NewMachine(StatusWaiting)

	if err := m.Transition(StatusPlaying); err != nil {
		t.Fatalf("waiting -> playing should be allowed, got: %v", err)
	}
	if m.Current() != StatusPlaying {
		t.Errorf("Expected playing, got %s", m.Current())
	}
}

func TestMachine_BlockedTransitions(t *testing.T) {
	m := NewMachine(StatusWaiting)

	// The lifecycle is one-way: no self-loop, no going back.
	if err := m.Transition(StatusWaiting); err != ErrTransitionNotAllowed {
		t.Errorf("waiting -> waiting should be blocked, got: %v", err)
	}

	m.Transition(StatusPlaying)

	if err := m.Transition(StatusWaiting); err != ErrTransitionNotAllowed {
		t.Errorf("playing -> waiting should be blocked, got: %v", err)
	}
	if err := m.Transition(StatusPlaying); err != ErrTransitionNotAllowed {
		t.Errorf("playing -> playing should be blocked, got: %v", err)
	}
	if m.Current() != StatusPlaying {
		t.Errorf("Status must be unchanged after a blocked transition, got %s", m.Current())
	}
}
