package main

import (
	"fmt"
	"math"

	"github.com/pthm-cable/threerun/config"
	"github.com/pthm-cable/threerun/game"
	"github.com/pthm-cable/threerun/input"
	"github.com/pthm-cable/threerun/telemetry"
)

// Targets are the run measurements the tuner tries to hit. A zero target
// is ignored.
type Targets struct {
	MaxHeight float64 // Highest body centre reached, in metres
	Clock     float64 // Seconds from start to the fall
	Distance  float64 // Horizontal path length, in metres
}

// FitnessEvaluator runs one scripted headless run per parameter vector.
type FitnessEvaluator struct {
	params   *ParamVector
	base     *config.Config
	script   *input.Script
	targets  Targets
	maxTicks int64

	last telemetry.SessionStats
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, base *config.Config, script *input.Script, targets Targets, maxTicks int64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:   params,
		base:     base,
		script:   script,
		targets:  targets,
		maxTicks: maxTicks,
	}
}

// Last returns the session of the most recent evaluation.
func (fe *FitnessEvaluator) Last() telemetry.SessionStats {
	return fe.last
}

// Evaluate computes fitness for raw parameter values (lower = better).
// Runs that never fall carry a fixed penalty.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	s, err := fe.Run(raw)
	if err != nil {
		return math.Inf(1)
	}
	fe.last = s
	return fe.computeFitness(s)
}

// Run plays one headless run with raw applied to the base config.
func (fe *FitnessEvaluator) Run(raw []float64) (telemetry.SessionStats, error) {
	cfg := fe.configFor(raw)

	g, err := game.NewGameWithOptions(game.Options{
		Headless: true,
		Script:   fe.script,
		Runs:     1,
		Config:   cfg,
	})
	if err != nil {
		return telemetry.SessionStats{}, err
	}
	for !g.Done() && g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	g.Unload()

	sessions := g.Sessions()
	if len(sessions) == 0 {
		return telemetry.SessionStats{}, fmt.Errorf("run produced no session")
	}
	return sessions[len(sessions)-1], nil
}

// configFor copies the base config and applies raw. Sections the
// evaluator never writes are shared with the base.
func (fe *FitnessEvaluator) configFor(raw []float64) *config.Config {
	cfg := *fe.base
	fe.params.ApplyToConfig(&cfg, raw)
	return &cfg
}

// computeFitness sums squared relative errors against the targets.
func (fe *FitnessEvaluator) computeFitness(s telemetry.SessionStats) float64 {
	f := relErr2(s.MaxHeight, fe.targets.MaxHeight) +
		relErr2(s.DurationSec, fe.targets.Clock) +
		relErr2(s.Distance, fe.targets.Distance)
	if s.EndReason != "fell" {
		f += 1
	}
	return f
}

func relErr2(got, target float64) float64 {
	if target == 0 {
		return 0
	}
	d := (got - target) / target
	return d * d
}
