package state

import (
	"errors"
	"sync"
)

// Status 表示房间的业务状态
type Status string

const (
	StatusWaiting Status = "waiting"
	StatusPlaying Status = "playing"
)

// ErrTransitionNotAllowed is returned when a status transition is not allowed.
var ErrTransitionNotAllowed = errors.New("status transition not allowed")

// Machine validates room lifecycle transitions against a fixed table. The
// reference lifecycle is one-way: a waiting room may start playing, and a
// playing room never returns to waiting.
type Machine struct {
	current     Status
	transitions map[Status]map[Status]bool
	mutex       sync.RWMutex
}

func NewMachine(initial Status) *Machine {
	return &Machine{
		current: initial,
		transitions: map[Status]map[Status]bool{
			StatusWaiting: {StatusPlaying: true},
		},
	}
}

func (m *Machine) Current() Status {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.current
}

func (m *Machine) Transition(to Status) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	allowed, exists := m.transitions[m.current]
	if !exists || !allowed[to] {
		return ErrTransitionNotAllowed
	}
	m.current = to
	return nil
}
