// Package input samples keyboard state for the simulation tick.
//
// Key events arrive whenever the platform delivers them and only touch a
// staging buffer. The tick calls Snapshot once and works on that copy, so a
// single tick never sees a half-applied set of keys.
package input

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Action is a logical input the game understands.
type Action uint8

const (
	Forward Action = iota
	Backward
	Left
	Right
	Run
	Jump
	numActions
)

var actionNames = [numActions]string{"forward", "backward", "left", "right", "run", "jump"}

func (a Action) String() string {
	if a < numActions {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return 0, false
}

// State is the logical input for one tick.
type State struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Run      bool
	Jump     bool
}

// Held reports whether action a is down in s.
func (s State) Held(a Action) bool {
	switch a {
	case Forward:
		return s.Forward
	case Backward:
		return s.Backward
	case Left:
		return s.Left
	case Right:
		return s.Right
	case Run:
		return s.Run
	case Jump:
		return s.Jump
	}
	return false
}

func (s *State) set(a Action, down bool) {
	switch a {
	case Forward:
		s.Forward = down
	case Backward:
		s.Backward = down
	case Left:
		s.Left = down
	case Right:
		s.Right = down
	case Run:
		s.Run = down
	case Jump:
		s.Jump = down
	}
}

// Bindings maps normalized key names to actions.
type Bindings map[string]Action

// NewBindings builds bindings from a key name -> action name index, as found
// in config.DerivedConfig.KeyIndex. Unknown action names are an error.
func NewBindings(index map[string]string) (Bindings, error) {
	b := make(Bindings, len(index))
	for key, name := range index {
		a, ok := ParseAction(name)
		if !ok {
			return nil, fmt.Errorf("binding %q: unknown action %q", key, name)
		}
		b[NormalizeKey(key)] = a
	}
	return b, nil
}

// Keys returns every bound key name in sorted order.
func (b Bindings) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KeysFor returns the sorted key names bound to a.
func (b Bindings) KeysFor(a Action) []string {
	var keys []string
	for k, bound := range b {
		if bound == a {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// NormalizeKey lower-cases a key name. The space character is reported by
// browsers and terminals as " ", which maps to "space".
func NormalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	return strings.ToLower(strings.TrimSpace(key))
}

// Sampler holds the staged key state between ticks, keyed by normalized
// key name. While detached, key events are dropped.
type Sampler struct {
	mu       sync.Mutex
	bindings Bindings
	attached bool
	held     map[string]bool
	front    State
}

// NewSampler creates a detached sampler with the given bindings.
func NewSampler(b Bindings) *Sampler {
	return &Sampler{bindings: b, held: make(map[string]bool)}
}

// Attach starts capturing key events.
func (s *Sampler) Attach() {
	s.mu.Lock()
	s.attached = true
	s.mu.Unlock()
}

// Detach stops capturing key events and releases every held action, so a key
// released while detached does not stay down after the next Attach.
func (s *Sampler) Detach() {
	s.mu.Lock()
	s.attached = false
	clear(s.held)
	s.front = State{}
	s.mu.Unlock()
}

// Attached reports whether key events are being captured.
func (s *Sampler) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attached
}

// KeyDown records a key press. Unbound keys are ignored.
func (s *Sampler) KeyDown(key string) {
	s.key(key, true)
}

// KeyUp records a key release. Unbound keys are ignored.
func (s *Sampler) KeyUp(key string) {
	s.key(key, false)
}

func (s *Sampler) key(key string, down bool) {
	name := NormalizeKey(key)
	if _, ok := s.bindings[name]; !ok {
		return
	}
	s.mu.Lock()
	if s.attached {
		if down {
			s.held[name] = true
		} else {
			delete(s.held, name)
		}
	}
	s.mu.Unlock()
}

// Snapshot publishes the staged state and returns it. An action is down
// while any of its keys is held. It does not consume anything: calling it
// twice without new events yields the same State.
func (s *Sampler) Snapshot() State {
	s.mu.Lock()
	var st State
	for name := range s.held {
		st.set(s.bindings[name], true)
	}
	s.front = st
	s.mu.Unlock()
	return st
}
