// Package renderer draws the 3D level and player with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/threerun/camera"
	"github.com/pthm-cable/threerun/config"
	"github.com/pthm-cable/threerun/game"
	"github.com/pthm-cable/threerun/motion"
	"github.com/pthm-cable/threerun/physics"
)

// View is the per-frame state the scene draws.
type View struct {
	Camera     *camera.Camera
	Platforms  []game.Platform
	Player     physics.Handle
	PlayerHalf r3.Vec
	Flags      motion.Flags
}

// SceneRenderer renders the level blocks, the player and a reference grid.
type SceneRenderer struct {
	gridSlices int32

	Background    rl.Color
	GroundColor   rl.Color
	PlatformColor rl.Color
	EdgeColor     rl.Color
	PlayerColor   rl.Color
	AirColor      rl.Color
	RunColor      rl.Color
}

// NewSceneRenderer creates a scene renderer.
func NewSceneRenderer(cfg config.CameraConfig) *SceneRenderer {
	return &SceneRenderer{
		gridSlices:    int32(cfg.GridSlices),
		Background:    rl.Color{R: 24, G: 28, B: 36, A: 255},
		GroundColor:   rl.Color{R: 70, G: 110, B: 80, A: 255},
		PlatformColor: rl.Color{R: 110, G: 100, B: 80, A: 255},
		EdgeColor:     rl.Color{R: 30, G: 40, B: 30, A: 255},
		PlayerColor:   rl.Color{R: 80, G: 150, B: 230, A: 255},
		AirColor:      rl.Color{R: 230, G: 200, B: 80, A: 255},
		RunColor:      rl.Color{R: 230, G: 110, B: 80, A: 255},
	}
}

// Draw renders the scene. Must be called between BeginDrawing and EndDrawing.
func (s *SceneRenderer) Draw(v View, groundName string) {
	rl.ClearBackground(s.Background)
	if v.Camera == nil {
		return
	}

	rl.BeginMode3D(Camera3D(v.Camera))

	if s.gridSlices > 0 {
		rl.DrawGrid(s.gridSlices, 1)
	}

	for _, p := range v.Platforms {
		col := s.PlatformColor
		if p.Name == groundName {
			col = s.GroundColor
		}
		drawBox(p.Center, p.HalfExtents, col, s.EdgeColor)
	}

	if v.Player.Valid() {
		s.drawPlayer(v)
	}

	rl.EndMode3D()
}

// drawPlayer draws the body box tinted by motion state plus a marker on
// its facing side.
func (s *SceneRenderer) drawPlayer(v View) {
	pos := v.Player.Translation()

	col := s.PlayerColor
	switch {
	case !v.Flags.Grounded:
		col = s.AirColor
	case v.Flags.Running:
		col = s.RunColor
	}
	drawBox(pos, v.PlayerHalf, col, rl.Black)

	// Facing marker
	nose := v.Player.Rotation().Rotate(r3.Vec{Y: v.PlayerHalf.Y * 0.5, Z: v.PlayerHalf.Z + 0.15})
	rl.DrawSphere(vec3(r3.Add(pos, nose)), 0.15, rl.White)
}

func drawBox(center, half r3.Vec, fill, edge rl.Color) {
	c := vec3(center)
	w, h, l := float32(half.X*2), float32(half.Y*2), float32(half.Z*2)
	rl.DrawCube(c, w, h, l, fill)
	rl.DrawCubeWires(c, w, h, l, edge)
}

// Camera3D converts the follow camera into a raylib camera.
func Camera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(c.Position),
		Target:     vec3(c.LookAt),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       float32(c.Fovy),
		Projection: rl.CameraPerspective,
	}
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}
