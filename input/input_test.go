package input

import (
	"slices"
	"testing"
)

func testBindings(t *testing.T) Bindings {
	t.Helper()
	b, err := NewBindings(map[string]string{
		"w": "forward", "arrowup": "forward",
		"s": "backward",
		"a": "left", "d": "right",
		"shift": "run", "space": "jump",
	})
	if err != nil {
		t.Fatalf("NewBindings: %v", err)
	}
	return b
}

func TestNewBindingsUnknownAction(t *testing.T) {
	if _, err := NewBindings(map[string]string{"q": "crouch"}); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestBindingsKeys(t *testing.T) {
	b := testBindings(t)
	if got := b.KeysFor(Forward); !slices.Equal(got, []string{"arrowup", "w"}) {
		t.Errorf("KeysFor(forward) = %v", got)
	}
	if got := b.KeysFor(Jump); !slices.Equal(got, []string{"space"}) {
		t.Errorf("KeysFor(jump) = %v", got)
	}
	if got := b.Keys(); len(got) != 7 || !slices.IsSorted(got) {
		t.Errorf("Keys() = %v", got)
	}
}

func TestSamplerDetachedDropsEvents(t *testing.T) {
	s := NewSampler(testBindings(t))
	s.KeyDown("w")
	if s.Snapshot().Forward {
		t.Error("detached sampler recorded a key")
	}

	s.Attach()
	s.KeyDown("w")
	if !s.Snapshot().Forward {
		t.Error("attached sampler missed a key")
	}
}

func TestSamplerSpaceMapsToJump(t *testing.T) {
	s := NewSampler(testBindings(t))
	s.Attach()
	s.KeyDown(" ")
	if !s.Snapshot().Jump {
		t.Error(`" " should map to jump`)
	}
	s.KeyUp("Space")
	if s.Snapshot().Jump {
		t.Error("Space release should clear jump")
	}
}

func TestSamplerCaseInsensitive(t *testing.T) {
	s := NewSampler(testBindings(t))
	s.Attach()
	s.KeyDown("W")
	s.KeyDown("Shift")
	st := s.Snapshot()
	if !st.Forward || !st.Run {
		t.Errorf("Snapshot() = %+v, want forward and run", st)
	}
	s.KeyUp("w")
	if s.Snapshot().Forward {
		t.Error("lower-case release should clear upper-case press")
	}
}

func TestSamplerActionHeldWhileAnyKeyDown(t *testing.T) {
	s := NewSampler(testBindings(t))
	s.Attach()
	s.KeyDown("w")
	s.KeyDown("ArrowUp")
	s.KeyUp("ArrowUp")
	if !s.Snapshot().Forward {
		t.Error("w still held but forward released with arrowup")
	}
	s.KeyUp("W")
	if s.Snapshot().Forward {
		t.Error("forward held after both keys released")
	}
}

func TestSnapshotNonDestructive(t *testing.T) {
	s := NewSampler(testBindings(t))
	s.Attach()
	s.KeyDown("a")
	first := s.Snapshot()
	second := s.Snapshot()
	if first != second {
		t.Errorf("snapshots differ: %+v vs %+v", first, second)
	}
	if !second.Left {
		t.Error("left should still be held")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := NewSampler(testBindings(t))
	s.Attach()
	s.KeyDown("d")
	snap := s.Snapshot()
	s.KeyUp("d")
	if !snap.Right {
		t.Error("later events leaked into a taken snapshot")
	}
}

func TestDetachReleasesKeys(t *testing.T) {
	s := NewSampler(testBindings(t))
	s.Attach()
	s.KeyDown("w")
	s.Snapshot()

	// Key released while paused never reaches the sampler
	s.Detach()
	s.KeyUp("w")
	s.Attach()

	if s.Snapshot().Forward {
		t.Error("forward stuck down after detach/attach")
	}
}

func TestUnboundKeyIgnored(t *testing.T) {
	s := NewSampler(testBindings(t))
	s.Attach()
	s.KeyDown("z")
	if s.Snapshot() != (State{}) {
		t.Error("unbound key changed state")
	}
}

func TestStateHeld(t *testing.T) {
	st := State{Forward: true, Jump: true}
	if !st.Held(Forward) || !st.Held(Jump) || st.Held(Left) {
		t.Errorf("Held() wrong for %+v", st)
	}
	if Jump.String() != "jump" {
		t.Errorf("Jump.String() = %q", Jump.String())
	}
}

func TestScriptFeed(t *testing.T) {
	script, err := ParseScript([]byte(`
events:
  - { tick: 10, up: [w], down: [space] }
  - { tick: 0, down: [w, shift] }
  - { tick: 11, up: [space] }
`))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	if script.Len() != 12 {
		t.Errorf("Len() = %d, want 12", script.Len())
	}

	s := NewSampler(testBindings(t))
	s.Attach()

	script.Feed(0, s)
	if st := s.Snapshot(); !st.Forward || !st.Run {
		t.Errorf("tick 0: %+v, want forward and run", st)
	}
	script.Feed(5, s)
	script.Feed(10, s)
	if st := s.Snapshot(); st.Forward || !st.Jump || !st.Run {
		t.Errorf("tick 10: %+v, want run and jump only", st)
	}
	script.Feed(11, s)
	if s.Snapshot().Jump {
		t.Error("tick 11: jump still held")
	}
}

func TestParseScriptRejectsNegativeTick(t *testing.T) {
	if _, err := ParseScript([]byte("events:\n  - { tick: -1, down: [w] }\n")); err == nil {
		t.Error("expected error for negative tick")
	}
}

func TestLoadScriptFile(t *testing.T) {
	s, err := LoadScript("../scripts/walk_off.yaml")
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if s.Len() != 83 {
		t.Errorf("expected script length 83, got %d", s.Len())
	}
	if _, err := LoadScript("does-not-exist.yaml"); err == nil {
		t.Error("expected error for missing script")
	}
}
