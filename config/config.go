// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Camera    CameraConfig    `yaml:"camera"`
	Level     LevelConfig     `yaml:"level"`
	Input     InputConfig     `yaml:"input"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Vec3 is a YAML-friendly three component vector, written as [x, y, z].
type Vec3 [3]float64

// R3 converts the vector to gonum's r3 representation.
func (v Vec3) R3() r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// PhysicsConfig holds rigid-body simulation parameters.
type PhysicsConfig struct {
	DT          float64 `yaml:"dt"`           // Fixed step in seconds
	Gravity     float64 `yaml:"gravity"`      // Downward acceleration (negative Y)
	MaxSubsteps int     `yaml:"max_substeps"` // Cap on fixed steps per rendered frame
	SleepTicks  int     `yaml:"sleep_ticks"`  // Resting ticks before a body sleeps (0 = never)
	SleepSpeed  float64 `yaml:"sleep_speed"`  // Speed below which a body counts as resting
	ContactSkin float64 `yaml:"contact_skin"` // Gap tolerated while still counting as touching
}

// PlayerConfig holds player body and movement tuning.
type PlayerConfig struct {
	Spawn         Vec3    `yaml:"spawn"`
	HalfExtents   Vec3    `yaml:"half_extents"`
	Mass          float64 `yaml:"mass"`
	GravityScale  float64 `yaml:"gravity_scale"`
	LinearDamping float64 `yaml:"linear_damping"`
	WalkSpeed     float64 `yaml:"walk_speed"`
	RunSpeed      float64 `yaml:"run_speed"`
	JumpForce     float64 `yaml:"jump_force"`
	TurnRate      float64 `yaml:"turn_rate"`      // Radians of yaw per tick
	FallThreshold float64 `yaml:"fall_threshold"` // Run ends when body Y drops below this
}

// CameraConfig holds follow camera parameters.
type CameraConfig struct {
	Offset     Vec3    `yaml:"offset"`      // Camera position relative to the player
	LookOffset Vec3    `yaml:"look_offset"` // Look target relative to the player
	Stiffness  float64 `yaml:"stiffness"`   // 1 = rigid follow, lower = smoother
	FollowYaw  bool    `yaml:"follow_yaw"`  // Rotate offset with the player
	Fovy       float64 `yaml:"fovy"`
	GridSlices int     `yaml:"grid_slices"`
}

// PlatformConfig describes one fixed box collider in the level.
type PlatformConfig struct {
	Name        string `yaml:"name"`
	Center      Vec3   `yaml:"center"`
	HalfExtents Vec3   `yaml:"half_extents"`
}

// LevelConfig holds the level layout.
type LevelConfig struct {
	GroundName string           `yaml:"ground_name"`
	Platforms  []PlatformConfig `yaml:"platforms"`
}

// InputConfig maps logical actions to key names.
type InputConfig struct {
	Bindings map[string][]string `yaml:"bindings"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	LogInterval         float64 `yaml:"log_interval"` // Seconds of game time between perf log lines
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"` // Empty = stdout only
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32          float32           // Physics.DT as float32
	TickDuration  time.Duration     // Physics.DT as a duration
	ScreenW32     float32           // Screen.Width as float32
	ScreenH32     float32           // Screen.Height as float32
	LogEveryTicks int               // Telemetry.LogInterval in ticks
	KeyIndex      map[string]string // key name -> action name
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Player.Mass <= 0 {
		return fmt.Errorf("player.mass must be positive, got %v", c.Player.Mass)
	}
	if c.Camera.Stiffness <= 0 || c.Camera.Stiffness > 1 {
		return fmt.Errorf("camera.stiffness must be in (0, 1], got %v", c.Camera.Stiffness)
	}
	for i, p := range c.Level.Platforms {
		for _, h := range p.HalfExtents {
			if h <= 0 {
				return fmt.Errorf("level.platforms[%d] (%s): half extents must be positive", i, p.Name)
			}
		}
	}

	bound := make(map[string]string)
	for action, keys := range c.Input.Bindings {
		for _, k := range keys {
			k = keyName(k)
			if prev, ok := bound[k]; ok && prev != action {
				return fmt.Errorf("input.bindings: key %q bound to both %s and %s", k, prev, action)
			}
			bound[k] = action
		}
	}
	return nil
}

// keyName lower-cases a binding key the way the input sampler does.
func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return strings.ToLower(strings.TrimSpace(k))
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.TickDuration = time.Duration(math.Round(c.Physics.DT * float64(time.Second)))
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	c.Derived.LogEveryTicks = int(math.Round(c.Telemetry.LogInterval / c.Physics.DT))
	if c.Derived.LogEveryTicks < 1 {
		c.Derived.LogEveryTicks = 1
	}

	if c.Physics.MaxSubsteps < 1 {
		c.Physics.MaxSubsteps = 1
	}

	if c.Level.GroundName == "" {
		c.Level.GroundName = "ground"
	}
	for i := range c.Level.Platforms {
		if c.Level.Platforms[i].Name == "" {
			c.Level.Platforms[i].Name = c.Level.GroundName
		}
	}

	c.Derived.KeyIndex = make(map[string]string)
	for action, keys := range c.Input.Bindings {
		for _, k := range keys {
			c.Derived.KeyIndex[keyName(k)] = action
		}
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
