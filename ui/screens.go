package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/threerun/phase"
)

// ScreenData holds what the phase screens display.
type ScreenData struct {
	Title        string
	Phase        phase.Phase
	Elapsed      time.Duration
	Best         time.Duration
	Run          int
	Controls     []string
	ScreenWidth  int32
	ScreenHeight int32
}

// Screens draws the start, pause and end screens and the pause button.
type Screens struct {
	renderer *Renderer
}

// NewScreens creates the phase screens.
func NewScreens() *Screens {
	return &Screens{renderer: NewRenderer()}
}

// Draw renders the overlay for the current phase and returns the command
// of any button clicked this frame.
func (s *Screens) Draw(data ScreenData) Command {
	cmd := CmdNone
	switch data.Phase {
	case phase.NotStarted:
		cmd = s.drawStart(data)
	case phase.Playing:
		cmd = s.drawPauseButton(data, "II")
	case phase.Paused:
		s.drawPaused(data)
		cmd = s.drawPauseButton(data, ">")
	case phase.Finished:
		cmd = s.drawGameOver(data)
	}
	return cmd
}

func (s *Screens) drawStart(data ScreenData) Command {
	r := s.renderer
	cx, cy := data.ScreenWidth/2, data.ScreenHeight/2

	r.DrawOverlay(data.ScreenWidth, data.ScreenHeight)
	r.DrawCentered(data.Title, cx, cy-160, r.Theme.TitleFontSize, r.Theme.TitleColor)

	y := cy - 90
	for _, line := range data.Controls {
		r.DrawCentered(line, cx, y, r.Theme.FontSize, r.Theme.LabelColor)
		y += r.Theme.LineHeight
	}

	if r.Button(float32(cx), float32(y+r.Theme.LineHeight), "Begin") {
		return CmdStart
	}
	return CmdNone
}

func (s *Screens) drawPaused(data ScreenData) {
	r := s.renderer
	cx, cy := data.ScreenWidth/2, data.ScreenHeight/2

	r.DrawOverlay(data.ScreenWidth, data.ScreenHeight)
	r.DrawCentered("Paused", cx, cy-40, r.Theme.TitleFontSize, r.Theme.TitleColor)
	r.DrawCentered(phase.FormatClock(data.Elapsed), cx, cy+20, r.Theme.HeaderFontSize, r.Theme.ValueColor)
}

// drawPauseButton draws the square toggle in the top right corner.
func (s *Screens) drawPauseButton(data ScreenData, label string) Command {
	r := s.renderer
	size := r.Theme.ButtonHeight
	x := float32(data.ScreenWidth) - size - float32(r.Theme.Padding)
	if gui.Button(rl.Rectangle{X: x, Y: float32(r.Theme.Padding), Width: size, Height: size}, label) {
		return CmdTogglePause
	}
	return CmdNone
}

func (s *Screens) drawGameOver(data ScreenData) Command {
	r := s.renderer
	cx, cy := data.ScreenWidth/2, data.ScreenHeight/2

	r.DrawOverlay(data.ScreenWidth, data.ScreenHeight)
	r.DrawCentered("Game Over", cx, cy-120, r.Theme.TitleFontSize, r.Theme.TitleColor)
	r.DrawCentered(fmt.Sprintf("Time: %s", phase.FormatClock(data.Elapsed)), cx, cy-50, r.Theme.HeaderFontSize, r.Theme.ValueColor)
	if data.Best > 0 {
		r.DrawCentered(fmt.Sprintf("Best: %s", phase.FormatClock(data.Best)), cx, cy-20, r.Theme.FontSize, r.Theme.LabelColor)
	}

	if r.Button(float32(cx), float32(cy+20), "Restart") {
		return CmdRestart
	}
	return CmdNone
}
