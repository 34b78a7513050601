// Package phase implements the session lifecycle: not started, playing,
// paused and finished. The Machine is the single source of truth for whether
// simulation and input capture are active.
package phase

import (
	"fmt"
	"sync"
	"time"
)

// Phase is the top-level state of a session.
type Phase uint8

const (
	NotStarted Phase = iota
	Playing
	Paused
	Finished
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// Transition records one accepted phase change.
type Transition struct {
	From    Phase
	To      Phase
	Run     int           // Run number after the change
	Elapsed time.Duration // Timer value at the moment of the change
}

// Machine owns the current phase, the PLAYING timer and the run counter.
// All mutation goes through the command methods; illegal commands are
// no-ops that return false.
type Machine struct {
	mu        sync.RWMutex
	phase     Phase
	elapsed   time.Duration
	run       int
	observers []func(Transition)
}

// NewMachine returns a machine in NotStarted.
func NewMachine() *Machine {
	return &Machine{}
}

// Subscribe registers fn to be called after every accepted transition.
// Observers run synchronously on the caller of the command, outside the lock,
// so they may query the machine.
func (m *Machine) Subscribe(fn func(Transition)) {
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	m.mu.Unlock()
}

// Start begins the first run. Legal only from NotStarted.
func (m *Machine) Start() bool {
	return m.transition(func() (Phase, bool) {
		if m.phase != NotStarted {
			return m.phase, false
		}
		m.run = 1
		return Playing, true
	})
}

// Pause freezes a run. Pausing while already paused is accepted as a no-op.
func (m *Machine) Pause() bool {
	m.mu.RLock()
	already := m.phase == Paused
	m.mu.RUnlock()
	if already {
		return true
	}
	return m.transition(func() (Phase, bool) {
		if m.phase != Playing {
			return m.phase, false
		}
		return Paused, true
	})
}

// Resume continues a paused run.
func (m *Machine) Resume() bool {
	return m.transition(func() (Phase, bool) {
		if m.phase != Paused {
			return m.phase, false
		}
		return Playing, true
	})
}

// TogglePause flips between Playing and Paused. Outside those two phases it
// does nothing.
func (m *Machine) TogglePause() bool {
	return m.transition(func() (Phase, bool) {
		switch m.phase {
		case Playing:
			return Paused, true
		case Paused:
			return Playing, true
		}
		return m.phase, false
	})
}

// Finish ends the current run. Legal only from Playing.
func (m *Machine) Finish() bool {
	return m.transition(func() (Phase, bool) {
		if m.phase != Playing {
			return m.phase, false
		}
		return Finished, true
	})
}

// Restart begins a new run after a finish, with the timer reset.
func (m *Machine) Restart() bool {
	return m.transition(func() (Phase, bool) {
		if m.phase != Finished {
			return m.phase, false
		}
		m.elapsed = 0
		m.run++
		return Playing, true
	})
}

// Advance adds dt to the timer while Playing. In every other phase the timer
// is frozen.
func (m *Machine) Advance(dt time.Duration) {
	m.mu.Lock()
	if m.phase == Playing {
		m.elapsed += dt
	}
	m.mu.Unlock()
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

// Active reports whether the simulation should run.
func (m *Machine) Active() bool {
	return m.Phase() == Playing
}

// Elapsed returns the time spent Playing in the current run.
func (m *Machine) Elapsed() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.elapsed
}

// Run returns the current run number, 0 before the first Start.
func (m *Machine) Run() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.run
}

func (m *Machine) transition(apply func() (Phase, bool)) bool {
	m.mu.Lock()
	from := m.phase
	to, ok := apply()
	if !ok {
		m.mu.Unlock()
		return false
	}
	m.phase = to
	tr := Transition{From: from, To: to, Run: m.run, Elapsed: m.elapsed}
	observers := make([]func(Transition), len(m.observers))
	copy(observers, m.observers)
	m.mu.Unlock()

	for _, fn := range observers {
		fn(tr)
	}
	return true
}

// FormatClock renders d as MM:SS. Minutes keep counting past 59.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
