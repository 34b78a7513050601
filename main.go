package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/threerun/config"
	"github.com/pthm-cable/threerun/game"
	"github.com/pthm-cable/threerun/input"
	"github.com/pthm-cable/threerun/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	scriptPath := flag.String("script", "", "Input script YAML replayed in headless runs")
	runs := flag.Int("runs", 1, "Headless: stop after N finished runs (0 = unlimited)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logLevel := flag.String("log-level", "", "Log level override: debug, info, warn, error")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	cfg := config.Cfg()

	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	_, logCloser, err := logging.Setup(cfg.Logging, os.Stdout)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		return 1
	}
	defer logCloser.Close()

	opts := game.Options{
		OutputDir: *outputDir,
		Headless:  *headless,
		Runs:      *runs,
	}
	if *scriptPath != "" {
		script, err := input.LoadScript(*scriptPath)
		if err != nil {
			slog.Error("failed to load script", "error", err)
			return 1
		}
		opts.Script = script
	}

	if *headless {
		return runHeadless(opts, *maxTicks)
	}
	return runWindow(cfg, opts, *maxTicks)
}

// runHeadless ticks the game without raylib until the run limit or tick
// limit is reached.
func runHeadless(opts game.Options, maxTicks int) int {
	// Without a script the player never moves, so only a tick limit ends the loop
	if maxTicks == 0 && (opts.Runs == 0 || opts.Script == nil) {
		slog.Error("headless mode needs -max-ticks unless -script and -runs are set")
		return 1
	}

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return 1
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"runs", opts.Runs,
		"max_ticks", maxTicks,
		"script_ticks", opts.Script.Len(),
	)

	for !g.Done() {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
	return 0
}

// runWindow opens the raylib window and drives one frame per loop.
func runWindow(cfg *config.Config, opts game.Options, maxTicks int) int {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return 1
	}
	defer g.Unload()

	f := newFrontend(cfg, g)
	for !rl.WindowShouldClose() {
		f.Update()
		f.Draw()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
	return 0
}
