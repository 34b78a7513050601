package input

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ScriptEvent presses and releases keys at a given tick of a run.
type ScriptEvent struct {
	Tick int      `yaml:"tick"`
	Down []string `yaml:"down"`
	Up   []string `yaml:"up"`
}

// Script replays key events for headless runs.
type Script struct {
	Events []ScriptEvent `yaml:"events"`

	byTick map[int][]ScriptEvent
}

// LoadScript reads a YAML input script from path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes a YAML input script.
func ParseScript(data []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing input script: %w", err)
	}
	for i, ev := range s.Events {
		if ev.Tick < 0 {
			return nil, fmt.Errorf("input script event %d: negative tick %d", i, ev.Tick)
		}
	}
	sort.SliceStable(s.Events, func(i, j int) bool { return s.Events[i].Tick < s.Events[j].Tick })
	s.index()
	return s, nil
}

func (s *Script) index() {
	s.byTick = make(map[int][]ScriptEvent, len(s.Events))
	for _, ev := range s.Events {
		s.byTick[ev.Tick] = append(s.byTick[ev.Tick], ev)
	}
}

// Feed applies the events scheduled for tick to the sampler. Releases are
// applied before presses so a key can be re-pressed within one tick.
func (s *Script) Feed(tick int, sm *Sampler) {
	if s == nil {
		return
	}
	if s.byTick == nil {
		s.index()
	}
	for _, ev := range s.byTick[tick] {
		for _, k := range ev.Up {
			sm.KeyUp(k)
		}
		for _, k := range ev.Down {
			sm.KeyDown(k)
		}
	}
}

// Len returns the tick of the last event plus one.
func (s *Script) Len() int {
	if s == nil || len(s.Events) == 0 {
		return 0
	}
	return s.Events[len(s.Events)-1].Tick + 1
}
