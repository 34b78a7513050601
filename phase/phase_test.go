package phase

import (
	"testing"
	"time"
)

func TestNewMachine(t *testing.T) {
	m := NewMachine()
	if m.Phase() != NotStarted {
		t.Errorf("Phase() = %v, want not_started", m.Phase())
	}
	if m.Active() {
		t.Error("new machine should not be active")
	}
	if m.Run() != 0 {
		t.Errorf("Run() = %d, want 0", m.Run())
	}
}

func TestPauseGuardBeforeStart(t *testing.T) {
	m := NewMachine()
	if m.Pause() {
		t.Error("Pause() from not_started should be rejected")
	}
	if m.TogglePause() {
		t.Error("TogglePause() from not_started should be rejected")
	}
	if m.Finish() {
		t.Error("Finish() from not_started should be rejected")
	}
	if m.Phase() != NotStarted {
		t.Errorf("Phase() = %v, want not_started", m.Phase())
	}
}

func TestPauseIdempotent(t *testing.T) {
	m := NewMachine()
	m.Start()
	m.Advance(2 * time.Second)

	var transitions int
	m.Subscribe(func(Transition) { transitions++ })

	if !m.Pause() {
		t.Fatal("Pause() from playing rejected")
	}
	if !m.Pause() {
		t.Error("second Pause() should be accepted as a no-op")
	}
	if m.Phase() != Paused {
		t.Errorf("Phase() = %v, want paused", m.Phase())
	}
	if transitions != 1 {
		t.Errorf("observers saw %d transitions, want 1", transitions)
	}

	m.Advance(5 * time.Second)
	if m.Elapsed() != 2*time.Second {
		t.Errorf("Elapsed() = %v, want 2s (frozen while paused)", m.Elapsed())
	}
}

func TestTogglePause(t *testing.T) {
	m := NewMachine()
	m.Start()

	m.TogglePause()
	if m.Phase() != Paused {
		t.Fatalf("Phase() = %v, want paused", m.Phase())
	}
	m.TogglePause()
	if m.Phase() != Playing {
		t.Fatalf("Phase() = %v, want playing", m.Phase())
	}

	m.Finish()
	if m.TogglePause() {
		t.Error("TogglePause() from finished should be rejected")
	}
}

func TestFinishOnlyFromPlaying(t *testing.T) {
	m := NewMachine()
	m.Start()
	m.Pause()

	if m.Finish() {
		t.Error("Finish() from paused should be rejected")
	}
	m.Resume()
	if !m.Finish() {
		t.Fatal("Finish() from playing rejected")
	}
	if m.Finish() {
		t.Error("second Finish() should be rejected")
	}
	if m.Resume() {
		t.Error("Resume() from finished should be rejected")
	}
}

func TestRestartResetsTimer(t *testing.T) {
	m := NewMachine()
	if m.Restart() {
		t.Error("Restart() from not_started should be rejected")
	}
	m.Start()
	m.Advance(90 * time.Second)
	m.Finish()
	m.Advance(time.Second)

	if m.Elapsed() != 90*time.Second {
		t.Errorf("Elapsed() = %v, want 90s (frozen when finished)", m.Elapsed())
	}

	if !m.Restart() {
		t.Fatal("Restart() from finished rejected")
	}
	if m.Phase() != Playing {
		t.Errorf("Phase() = %v, want playing", m.Phase())
	}
	if m.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, want 0", m.Elapsed())
	}
	if m.Run() != 2 {
		t.Errorf("Run() = %d, want 2", m.Run())
	}
}

func TestObserversSeeTransitions(t *testing.T) {
	m := NewMachine()
	var got []Transition
	m.Subscribe(func(tr Transition) {
		// Observers may read the machine without deadlocking
		if m.Phase() != tr.To {
			t.Errorf("Phase() inside observer = %v, want %v", m.Phase(), tr.To)
		}
		got = append(got, tr)
	})

	m.Start()
	m.Advance(3 * time.Second)
	m.Finish()
	m.Restart()

	want := []struct{ from, to Phase }{
		{NotStarted, Playing},
		{Playing, Finished},
		{Finished, Playing},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d transitions, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].From != w.from || got[i].To != w.to {
			t.Errorf("transition %d = %v->%v, want %v->%v", i, got[i].From, got[i].To, w.from, w.to)
		}
	}
	if got[1].Elapsed != 3*time.Second {
		t.Errorf("finish transition Elapsed = %v, want 3s", got[1].Elapsed)
	}
	if got[2].Run != 2 {
		t.Errorf("restart transition Run = %d, want 2", got[2].Run)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61*time.Second + 900*time.Millisecond, "01:01"},
		{75 * time.Minute, "75:00"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.d); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if Playing.String() != "playing" {
		t.Errorf("Playing.String() = %q", Playing.String())
	}
	if Phase(9).String() != "phase(9)" {
		t.Errorf("Phase(9).String() = %q", Phase(9).String())
	}
}
