// Package game wires the phase machine, input sampler, physics world,
// motion controller and follow camera into one fixed-step loop.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/threerun/camera"
	"github.com/pthm-cable/threerun/components"
	"github.com/pthm-cable/threerun/config"
	"github.com/pthm-cable/threerun/input"
	"github.com/pthm-cable/threerun/motion"
	"github.com/pthm-cable/threerun/phase"
	"github.com/pthm-cable/threerun/physics"
	"github.com/pthm-cable/threerun/telemetry"
)

// Options configures game construction.
type Options struct {
	OutputDir string         // CSV output directory (empty = disabled)
	Headless  bool           // No window; input comes from Script
	Script    *input.Script  // Scripted key events replayed every run
	Runs      int            // Headless: stop after N finished runs (0 = unlimited)
	Config    *config.Config // Overrides the global config when set
}

// Platform is a fixed level block, kept for drawing.
type Platform struct {
	Name        string
	Center      r3.Vec
	HalfExtents r3.Vec
}

// Game holds the complete runner state.
type Game struct {
	cfg  *config.Config
	opts Options

	phase      *phase.Machine
	bindings   input.Bindings
	sampler    *input.Sampler
	world      *physics.World
	player     physics.Handle
	platforms  []Platform
	controller *motion.Controller
	camera     *camera.Camera

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager

	tick        int64   // Ticks simulated since launch
	runTick     int     // Ticks simulated in the current run
	accumulator float64 // Unsimulated frame time in seconds
	last        motion.Output
	finished    int
	best        time.Duration
	sessions    []telemetry.SessionStats
}

// NewGame creates a game with default options.
func NewGame() (*Game, error) {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions builds the level, spawns the player and wires the
// phase observers. The game starts in the not-started phase.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	bindings, err := input.NewBindings(cfg.Derived.KeyIndex)
	if err != nil {
		return nil, fmt.Errorf("input bindings: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("output: %w", err)
	}

	g := &Game{
		cfg:       cfg,
		opts:      opts,
		phase:     phase.NewMachine(),
		bindings:  bindings,
		sampler:   input.NewSampler(bindings),
		world:     physics.NewWorld(cfg.Physics),
		camera:    camera.New(cfg.Camera),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector: telemetry.NewCollector(),
		output:    output,
	}
	g.controller = motion.NewController(motion.ParamsFromConfig(cfg), g.phase)

	g.buildLevel()
	g.spawnPlayer()
	g.camera.Update(g.player)
	g.phase.Subscribe(g.onTransition)

	slog.Info("game created",
		"platforms", len(g.platforms),
		"headless", opts.Headless,
		"output_dir", output.Dir(),
		"dt", cfg.Physics.DT,
	)
	return g, nil
}

// buildLevel adds one fixed collider per configured platform.
func (g *Game) buildLevel() {
	for _, p := range g.cfg.Level.Platforms {
		center, half := p.Center.R3(), p.HalfExtents.R3()
		g.world.AddFixed(p.Name, center, half)
		g.platforms = append(g.platforms, Platform{Name: p.Name, Center: center, HalfExtents: half})
	}
}

// spawnPlayer creates the player body at the spawn point and routes its
// collision events to the controller.
func (g *Game) spawnPlayer() {
	pc := g.cfg.Player
	g.player = g.world.AddBody(physics.BodyDesc{
		Name:          "player",
		Kind:          components.KindDynamic,
		Position:      pc.Spawn.R3(),
		HalfExtents:   pc.HalfExtents.R3(),
		Mass:          pc.Mass,
		GravityScale:  pc.GravityScale,
		LinearDamping: pc.LinearDamping,
	})
	g.world.OnCollision(g.player, g.controller.OnCollisionEnter, g.controller.OnCollisionExit)
	g.controller.SetBody(g.player)
}

// respawn replaces the player body and resets per-run state.
func (g *Game) respawn() {
	g.world.RemoveBody(g.player)
	g.controller.Reset()
	g.spawnPlayer()
	g.camera.Reset()
	g.camera.Update(g.player)
	g.accumulator = 0
	g.runTick = 0
}

// onTransition keeps the sampler attached only while playing and resets
// the world when a finished run restarts.
func (g *Game) onTransition(tr phase.Transition) {
	slog.Info("phase",
		"from", tr.From.String(),
		"to", tr.To.String(),
		"run", tr.Run,
		"clock", phase.FormatClock(tr.Elapsed),
	)

	switch {
	case tr.From == phase.Finished && tr.To == phase.Playing:
		g.respawn()
		g.collector.BeginRun(tr.Run, g.player.Translation())
	case tr.From == phase.NotStarted && tr.To == phase.Playing:
		g.runTick = 0
		g.collector.BeginRun(tr.Run, g.player.Translation())
	}

	if tr.To == phase.Playing {
		g.sampler.Attach()
	} else {
		g.sampler.Detach()
	}
}

// endRun records the session summary for the run that just ended.
func (g *Game) endRun(reason string) {
	elapsed := g.phase.Elapsed()
	stats := g.collector.Finish(elapsed, reason)
	stats.LogStats()
	if err := g.output.WriteSession(stats); err != nil {
		slog.Warn("failed to write session", "error", err)
	}
	g.sessions = append(g.sessions, stats)

	if reason == "fell" {
		g.finished++
		if elapsed > g.best {
			g.best = elapsed
		}
	}
}

// Start begins the first run.
func (g *Game) Start() bool { return g.command("start", g.phase.Start) }

// TogglePause pauses a playing run or resumes a paused one.
func (g *Game) TogglePause() bool { return g.command("toggle_pause", g.phase.TogglePause) }

// Restart begins a new run after a fall.
func (g *Game) Restart() bool { return g.command("restart", g.phase.Restart) }

func (g *Game) command(name string, fn func() bool) bool {
	if fn() {
		return true
	}
	slog.Debug("command ignored", "command", name, "phase", g.phase.Phase().String())
	return false
}

// Zoom scales the camera follow distance.
func (g *Game) Zoom(factor float64) { g.camera.Zoom(factor) }

// Sampler returns the input sampler that keyboard sources write to.
func (g *Game) Sampler() *input.Sampler { return g.sampler }

// Bindings returns the key bindings the sampler uses.
func (g *Game) Bindings() input.Bindings { return g.bindings }

// Phase returns the current game phase.
func (g *Game) Phase() phase.Phase { return g.phase.Phase() }

// Elapsed returns the playing time of the current run.
func (g *Game) Elapsed() time.Duration { return g.phase.Elapsed() }

// Run returns the current run number.
func (g *Game) Run() int { return g.phase.Run() }

// Best returns the longest finished run.
func (g *Game) Best() time.Duration { return g.best }

// Finished returns how many runs ended in a fall.
func (g *Game) Finished() int { return g.finished }

// Sessions returns the summaries of all ended runs.
func (g *Game) Sessions() []telemetry.SessionStats { return g.sessions }

// Tick returns the total number of simulated ticks.
func (g *Game) Tick() int64 { return g.tick }

// LastOutput returns the controller output of the latest tick.
func (g *Game) LastOutput() motion.Output { return g.last }

// Player returns the player body handle.
func (g *Game) Player() physics.Handle { return g.player }

// Platforms returns the level blocks.
func (g *Game) Platforms() []Platform { return g.platforms }

// Camera returns the follow camera.
func (g *Game) Camera() *camera.Camera { return g.camera }

// PlayerHalfExtents returns the configured player box size.
func (g *Game) PlayerHalfExtents() r3.Vec { return g.cfg.Player.HalfExtents.R3() }

// Perf returns the tick timing collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perf }

// Unload records an in-progress run and closes output files.
func (g *Game) Unload() {
	if p := g.phase.Phase(); p == phase.Playing || p == phase.Paused {
		g.endRun("quit")
	}
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	slog.Info("game unloaded", "ticks", g.tick, "runs", g.phase.Run(), "best", phase.FormatClock(g.best))
}
