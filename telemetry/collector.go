package telemetry

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/threerun/motion"
	"github.com/pthm-cable/threerun/phase"
)

// Collector accumulates per-tick motion data for the current run and
// produces SessionStats when the run ends.
type Collector struct {
	run     int
	ticks   int
	jumps   int
	walking int
	running int
	air     int

	distance  float64
	maxHeight float64
	speeds    []float64
	last      r3.Vec
	hasLast   bool
}

// NewCollector creates a new session collector.
func NewCollector() *Collector {
	return &Collector{}
}

// BeginRun resets counters for a new run starting at spawn.
func (c *Collector) BeginRun(run int, spawn r3.Vec) {
	*c = Collector{
		run:       run,
		speeds:    c.speeds[:0],
		last:      spawn,
		hasLast:   true,
		maxHeight: spawn.Y,
	}
}

// RecordTick records one controller tick. Skipped ticks are ignored.
func (c *Collector) RecordTick(out motion.Output, pos r3.Vec) {
	if !out.Ran {
		return
	}
	c.ticks++
	if out.Jumped {
		c.jumps++
	}
	if out.Flags.Walking {
		c.walking++
	}
	if out.Flags.Running {
		c.running++
	}
	if !out.Flags.Grounded {
		c.air++
	}

	if c.hasLast {
		c.distance += math.Hypot(pos.X-c.last.X, pos.Z-c.last.Z)
	}
	c.last = pos
	c.hasLast = true
	c.maxHeight = math.Max(c.maxHeight, pos.Y)
	c.speeds = append(c.speeds, math.Hypot(out.Velocity.X, out.Velocity.Z))
}

// Ticks returns the number of ticks recorded in the current run.
func (c *Collector) Ticks() int {
	return c.ticks
}

// Finish produces the SessionStats for the current run.
func (c *Collector) Finish(elapsed time.Duration, reason string) SessionStats {
	mean, p90, peak := ComputeSpeedStats(c.speeds)

	s := SessionStats{
		Run:         c.run,
		DurationSec: elapsed.Seconds(),
		Clock:       phase.FormatClock(elapsed),
		Ticks:       c.ticks,
		Jumps:       c.jumps,
		Distance:    c.distance,
		MaxHeight:   c.maxHeight,
		SpeedMean:   mean,
		SpeedP90:    p90,
		SpeedMax:    peak,
		FinalX:      c.last.X,
		FinalY:      c.last.Y,
		FinalZ:      c.last.Z,
		EndReason:   reason,
	}
	if c.ticks > 0 {
		n := float64(c.ticks)
		s.WalkingPct = float64(c.walking) / n * 100
		s.RunningPct = float64(c.running) / n * 100
		s.AirbornePct = float64(c.air) / n * 100
	}
	return s
}
