// Package ui draws the HUD and the start, pause and end screens, and
// translates raylib keyboard state into sampler events.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Command is a phase change requested by a screen button.
type Command int

const (
	CmdNone Command = iota
	CmdStart
	CmdTogglePause
	CmdRestart
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdStart:
		return "start"
	case CmdTogglePause:
		return "toggle_pause"
	case CmdRestart:
		return "restart"
	default:
		return "none"
	}
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	Overlay        rl.Color
	TitleColor     rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	ActiveColor    rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	TitleFontSize  int32
	ButtonWidth    float32
	ButtonHeight   float32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		Overlay:        rl.Color{R: 0, G: 0, B: 0, A: 140},
		TitleColor:     rl.White,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		ActiveColor:    rl.Yellow,
		Padding:        10,
		LineHeight:     20,
		LabelWidth:     70,
		FontSize:       16,
		TitleFontSize:  48,
		ButtonWidth:    160,
		ButtonHeight:   40,
		HeaderFontSize: 20,
	}
}
