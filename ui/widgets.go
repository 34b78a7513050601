package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawOverlay dims the whole screen.
func (r *Renderer) DrawOverlay(width, height int32) {
	rl.DrawRectangle(0, 0, width, height, r.Theme.Overlay)
}

// DrawCentered draws text horizontally centred on cx.
func (r *Renderer) DrawCentered(text string, cx, y, size int32, col rl.Color) {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, cx-w/2, y, size, col)
}

// DrawLabelValue draws a label and value on the same line and returns the next Y.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawFlag draws a flag name, highlighted when set, and returns the next X.
func (r *Renderer) DrawFlag(x, y int32, name string, set bool) int32 {
	col := rl.Fade(r.Theme.LabelColor, 0.35)
	if set {
		col = r.Theme.ActiveColor
	}
	rl.DrawText(name, x, y, r.Theme.FontSize, col)
	return x + rl.MeasureText(name, r.Theme.FontSize) + r.Theme.Padding
}

// Button draws a centred raygui button and reports whether it was clicked.
func (r *Renderer) Button(cx, y float32, text string) bool {
	w, h := r.Theme.ButtonWidth, r.Theme.ButtonHeight
	return gui.Button(rl.Rectangle{X: cx - w/2, Y: y, Width: w, Height: h}, text)
}
