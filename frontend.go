package main

import (
	"fmt"
	"log/slog"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/threerun/config"
	"github.com/pthm-cable/threerun/game"
	"github.com/pthm-cable/threerun/input"
	"github.com/pthm-cable/threerun/phase"
	"github.com/pthm-cable/threerun/renderer"
	"github.com/pthm-cable/threerun/ui"
)

const hotkeys = "[P] pause  [Enter] begin/restart  [Wheel] zoom  [F1] debug  [F11] fullscreen"

// frontend owns everything that needs a raylib window.
type frontend struct {
	cfg      *config.Config
	game     *game.Game
	keyboard *ui.Keyboard
	scene    *renderer.SceneRenderer
	hud      *ui.HUD
	screens  *ui.Screens
	legend   []string
	debug    bool
}

func newFrontend(cfg *config.Config, g *game.Game) *frontend {
	b := g.Bindings()
	return &frontend{
		cfg:      cfg,
		game:     g,
		keyboard: ui.NewKeyboard(b.Keys()),
		scene:    renderer.NewSceneRenderer(cfg.Camera),
		hud:      ui.NewHUD(),
		screens:  ui.NewScreens(),
		legend:   controlsLegend(b),
	}
}

// controlsLegend lists the bound keys of every action, one line each.
func controlsLegend(b input.Bindings) []string {
	actions := []input.Action{input.Forward, input.Left, input.Right, input.Run, input.Jump}
	lines := make([]string, 0, len(actions))
	for _, a := range actions {
		keys := b.KeysFor(a)
		if len(keys) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-8s %s", a, strings.Join(keys, " / ")))
	}
	return lines
}

// Update handles hotkeys, forwards held keys to the sampler and advances
// the simulation by the frame time.
func (f *frontend) Update() {
	f.handleInput()
	f.keyboard.Poll(f.game.Sampler())
	f.game.Update(float64(rl.GetFrameTime()))
}

func (f *frontend) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		f.debug = !f.debug
	}
	if rl.IsKeyPressed(rl.KeyP) {
		f.game.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		switch f.game.Phase() {
		case phase.NotStarted:
			f.game.Start()
		case phase.Finished:
			f.game.Restart()
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		f.game.Zoom(1 - float64(wheel)*0.1)
	}
}

// Draw renders the scene, HUD and phase screens, then applies any button
// command.
func (f *frontend) Draw() {
	g := f.game
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	out := g.LastOutput()

	rl.BeginDrawing()

	f.scene.Draw(renderer.View{
		Camera:     g.Camera(),
		Platforms:  g.Platforms(),
		Player:     g.Player(),
		PlayerHalf: g.PlayerHalfExtents(),
		Flags:      out.Flags,
	}, f.cfg.Level.GroundName)

	f.hud.Draw(ui.HUDData{
		Title:   f.cfg.Screen.Title,
		Elapsed: g.Elapsed(),
		Best:    g.Best(),
		Run:     g.Run(),
		Flags:   out.Flags,
		State:   out.State,
		FPS:     rl.GetFPS(),
		Debug:   f.debug,
	})
	f.hud.DrawControls(h, hotkeys)

	cmd := f.screens.Draw(ui.ScreenData{
		Title:        f.cfg.Screen.Title,
		Phase:        g.Phase(),
		Elapsed:      g.Elapsed(),
		Best:         g.Best(),
		Run:          g.Run(),
		Controls:     f.legend,
		ScreenWidth:  w,
		ScreenHeight: h,
	})

	rl.EndDrawing()

	f.apply(cmd)
}

func (f *frontend) apply(cmd ui.Command) {
	var ok bool
	switch cmd {
	case ui.CmdNone:
		return
	case ui.CmdStart:
		ok = f.game.Start()
	case ui.CmdTogglePause:
		ok = f.game.TogglePause()
	case ui.CmdRestart:
		ok = f.game.Restart()
	}
	slog.Debug("ui command", "command", cmd.String(), "applied", ok)
}
