package state

import (
	"sync"
)

// Phase is a room's lifecycle phase.
type Phase int

const (
	// Waiting: fewer than two seats are occupied.
	Waiting Phase = iota
	// Active: both seats occupied, game in progress.
	Active
	// Finished: one side has no pieces left; only a restart leaves this phase.
	Finished
)

func (p Phase) String() string {
	switch p {
	case Waiting:
		return "waiting"
	case Active:
		return "active"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Machine tracks one room's phase. It is event-driven: the room reports
// seat changes, the end of a game, and restarts; the machine decides the
// phase. Finished is sticky under seat churn: a vacating or arriving seat
// never clears a decided game, only a restart does.
type Machine struct {
	current Phase
	mutex   sync.RWMutex
}

// NewMachine returns a machine in the Waiting phase.
func NewMachine() *Machine {
	return &Machine{current: Waiting}
}

// Current returns the current phase.
func (m *Machine) Current() Phase {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.current
}

// SeatsFilled reports how many seats are now occupied. Ignored once the
// game is decided.
func (m *Machine) SeatsFilled(n int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.current == Finished {
		return
	}
	if n >= 2 {
		m.current = Active
	} else {
		m.current = Waiting
	}
}

// GameEnded moves the machine to Finished. A game can end with a vacated
// seat (the remaining player captures the last piece), so this applies
// from any phase.
func (m *Machine) GameEnded() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.current = Finished
}

// Restarted leaves Finished (or re-enters play) with the given number of
// occupied seats.
func (m *Machine) Restarted(seats int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if seats >= 2 {
		m.current = Active
	} else {
		m.current = Waiting
	}
}
