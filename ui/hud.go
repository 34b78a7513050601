package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/threerun/motion"
	"github.com/pthm-cable/threerun/phase"
)

// HUDData holds all the data needed to render the in-run HUD.
type HUDData struct {
	Title   string
	Elapsed time.Duration
	Best    time.Duration
	Run     int
	Flags   motion.Flags
	State   motion.MoveState
	FPS     int32
	Debug   bool // Show movement state and flags
}

// HUD renders the in-run heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer

	rl.DrawText(data.Title, 10, 10, r.Theme.HeaderFontSize, r.Theme.TitleColor)
	rl.DrawText(phase.FormatClock(data.Elapsed), 10, 36, 32, r.Theme.ValueColor)

	y := int32(74)
	y = r.DrawLabelValue(10, y, "Run", fmt.Sprintf("%d", data.Run))
	if data.Best > 0 {
		y = r.DrawLabelValue(10, y, "Best", phase.FormatClock(data.Best))
	}

	if data.Debug {
		y = r.DrawLabelValue(10, y, "State", data.State.String())
		y = r.DrawLabelValue(10, y, "FPS", fmt.Sprintf("%d", data.FPS))
		x := int32(10)
		x = r.DrawFlag(x, y, "walk", data.Flags.Walking)
		x = r.DrawFlag(x, y, "run", data.Flags.Running)
		x = r.DrawFlag(x, y, "jump", data.Flags.Jumping)
		x = r.DrawFlag(x, y, "ground", data.Flags.Grounded)
		x = r.DrawFlag(x, y, "left", data.Flags.TurningLeft)
		r.DrawFlag(x, y, "right", data.Flags.TurningRight)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
