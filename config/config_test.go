package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Player.JumpForce != 15 {
		t.Errorf("JumpForce = %v, want 15", cfg.Player.JumpForce)
	}
	if cfg.Player.FallThreshold != -10 {
		t.Errorf("FallThreshold = %v, want -10", cfg.Player.FallThreshold)
	}
	if got := cfg.Player.Spawn.R3(); got.Y != 3 {
		t.Errorf("Spawn.Y = %v, want 3", got.Y)
	}
	if len(cfg.Level.Platforms) != 5 {
		t.Errorf("len(Platforms) = %d, want 5", len(cfg.Level.Platforms))
	}
	if cfg.Derived.KeyIndex["arrowup"] != "forward" {
		t.Errorf("KeyIndex[arrowup] = %q, want forward", cfg.Derived.KeyIndex["arrowup"])
	}
	if cfg.Derived.KeyIndex["space"] != "jump" {
		t.Errorf("KeyIndex[space] = %q, want jump", cfg.Derived.KeyIndex["space"])
	}
	if cfg.Derived.LogEveryTicks != 600 {
		t.Errorf("LogEveryTicks = %d, want 600", cfg.Derived.LogEveryTicks)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("player:\n  run_speed: 8\ninput:\n  bindings:\n    jump: [J]\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Player.RunSpeed != 8 {
		t.Errorf("RunSpeed = %v, want 8", cfg.Player.RunSpeed)
	}
	// Untouched fields keep their defaults
	if cfg.Player.WalkSpeed != 2 {
		t.Errorf("WalkSpeed = %v, want 2", cfg.Player.WalkSpeed)
	}
	if cfg.Derived.KeyIndex["j"] != "jump" {
		t.Errorf("KeyIndex[j] = %q, want jump", cfg.Derived.KeyIndex["j"])
	}
	if cfg.Derived.KeyIndex["w"] != "forward" {
		t.Errorf("KeyIndex[w] = %q, want forward", cfg.Derived.KeyIndex["w"])
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("camera:\n  stiffness: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for zero stiffness")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if again.Camera.Offset != cfg.Camera.Offset {
		t.Errorf("Camera.Offset = %v, want %v", again.Camera.Offset, cfg.Camera.Offset)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	prev := global
	global = nil
	defer func() {
		global = prev
		if recover() == nil {
			t.Error("Cfg() did not panic before Init")
		}
	}()
	Cfg()
}

func TestTickDurationRounded(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	if got, want := cfg.Derived.TickDuration, 16666667*time.Nanosecond; got != want {
		t.Errorf("TickDuration = %v, want %v", got, want)
	}
	// Ten seconds of ticks must not read as 00:09
	if got := 600 * cfg.Derived.TickDuration; got < 10*time.Second {
		t.Errorf("600 ticks = %v, want at least 10s", got)
	}
}

func TestLoadRejectsDuplicateKeyBinding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dup.yaml")
	data := []byte("input:\n  bindings:\n    jump: [W]\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for w bound to forward and jump")
	}

	// Repeating a key within one action is harmless
	path = filepath.Join(dir, "repeat.yaml")
	data = []byte("input:\n  bindings:\n    jump: [space, Space]\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("Load: %v", err)
	}
}
