// Package main searches player movement parameters so a scripted headless
// run matches target jump height, run time and distance.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/threerun/config"
	"github.com/pthm-cable/threerun/input"
	"github.com/pthm-cable/threerun/logging"
)

// EvalRecord is one row of tune_log.csv.
type EvalRecord struct {
	Eval         int     `csv:"eval"`
	Fitness      float64 `csv:"fitness"`
	JumpForce    float64 `csv:"jump_force"`
	GravityScale float64 `csv:"gravity_scale"`
	WalkSpeed    float64 `csv:"walk_speed"`
	RunSpeed     float64 `csv:"run_speed"`
	MaxHeight    float64 `csv:"max_height"`
	DurationSec  float64 `csv:"duration_sec"`
	Distance     float64 `csv:"distance"`
	EndReason    string  `csv:"end_reason"`
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	scriptPath := flag.String("script", "scripts/walk_off.yaml", "Input script replayed for every evaluation")
	maxTicks := flag.Int64("max-ticks", 3600, "Tick cap per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	targetHeight := flag.Float64("target-height", 6, "Target max body height (0 = ignore)")
	targetClock := flag.Float64("target-clock", 3, "Target seconds until the fall (0 = ignore)")
	targetDistance := flag.Float64("target-distance", 0, "Target horizontal distance (0 = ignore)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	// Per-run game logs would drown the progress output
	if _, closer, err := logging.Setup(config.LoggingConfig{Level: "warn"}, os.Stderr); err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	} else {
		defer closer.Close()
	}

	script, err := input.LoadScript(*scriptPath)
	if err != nil {
		log.Fatalf("failed to load script: %v", err)
	}

	params := NewParamVector()
	targets := Targets{MaxHeight: *targetHeight, Clock: *targetClock, Distance: *targetDistance}
	evaluator := NewFitnessEvaluator(params, baseCfg, script, targets, *maxTicks)

	logFile, err := os.Create(filepath.Join(*outputDir, "tune_log.csv"))
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = raw
			}

			s := evaluator.Last()
			rec := []EvalRecord{{
				Eval: evalCount, Fitness: fitness,
				JumpForce: raw[0], GravityScale: raw[1], WalkSpeed: raw[2], RunSpeed: raw[3],
				MaxHeight: s.MaxHeight, DurationSec: s.DurationSec, Distance: s.Distance, EndReason: s.EndReason,
			}}
			var werr error
			if evalCount == 1 {
				werr = gocsv.Marshal(rec, logFile)
			} else {
				werr = gocsv.MarshalWithoutHeaders(rec, logFile)
			}
			if werr != nil {
				log.Printf("failed to write log row: %v", werr)
			}

			fmt.Printf("Eval %d/%d: height=%.2f clock=%.2fs dist=%.2f fitness=%.4f (best=%.4f)\n",
				evalCount, *maxEvals, s.MaxHeight, s.DurationSec, s.Distance, fitness, bestFitness)
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}
	method := &optimize.NelderMead{}

	fmt.Printf("Tuning %d parameters, max_evals=%d\n", params.Dim(), *maxEvals)

	initX := params.Normalize(params.ExtractFromConfig(baseCfg))
	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, time.Since(startTime).Round(time.Second))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.4f\n", spec.Path, bestParams[i])
	}

	bestCfg, _ := config.Load(*configPath)
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
