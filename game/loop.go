package game

import (
	"log/slog"

	"github.com/pthm-cable/threerun/phase"
	"github.com/pthm-cable/threerun/telemetry"
)

// Update advances the simulation by one rendered frame of frameSeconds.
// Fixed ticks run only while playing, at most MaxSubsteps per frame.
func (g *Game) Update(frameSeconds float64) int {
	g.perf.RecordFrame()

	if !g.phase.Active() {
		g.accumulator = 0
		return 0
	}

	dt := g.cfg.Physics.DT
	limit := g.cfg.Physics.MaxSubsteps
	g.accumulator += frameSeconds

	steps := 0
	for g.accumulator >= dt && steps < limit && g.phase.Active() {
		g.simulationStep()
		g.accumulator -= dt
		steps++
	}
	// Drop backlog the frame could not absorb; a sub-tick remainder carries over
	if g.accumulator >= dt {
		g.accumulator = 0
	}
	return steps
}

// UpdateHeadless runs exactly one tick, starting and restarting runs as
// needed. Input comes from the scripted events.
func (g *Game) UpdateHeadless() {
	switch g.phase.Phase() {
	case phase.NotStarted:
		g.phase.Start()
	case phase.Paused:
		g.phase.Resume()
	case phase.Finished:
		if g.Done() {
			return
		}
		g.phase.Restart()
	}
	g.simulationStep()
}

// Done reports whether the headless run limit has been reached.
func (g *Game) Done() bool {
	return g.opts.Runs > 0 && g.finished >= g.opts.Runs
}

// simulationStep runs one fixed tick: sample input, drive the player,
// step physics, advance the clock and move the camera.
func (g *Game) simulationStep() {
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseInput)
	if g.opts.Headless {
		g.opts.Script.Feed(g.runTick, g.sampler)
	}
	in := g.sampler.Snapshot()

	g.perf.StartPhase(telemetry.PhaseController)
	out := g.controller.Tick(in)
	g.last = out

	if g.phase.Active() {
		g.perf.StartPhase(telemetry.PhasePhysics)
		g.world.Step(g.cfg.Physics.DT)
		g.phase.Advance(g.cfg.Derived.TickDuration)
	}

	g.perf.StartPhase(telemetry.PhaseCamera)
	g.camera.Update(g.player)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordTick(out, g.player.Translation())
	if out.Fell {
		g.endRun("fell")
	}

	g.tick++
	g.runTick++
	g.perf.EndTick()

	if g.tick%int64(g.cfg.Derived.LogEveryTicks) == 0 {
		g.flushPerf()
	}
}

// flushPerf logs rolling tick timings and appends them to perf.csv.
func (g *Game) flushPerf() {
	stats := g.perf.Stats()
	stats.LogStats()
	if err := g.output.WritePerf(stats, g.tick); err != nil {
		slog.Warn("failed to write perf", "error", err)
	}
}
