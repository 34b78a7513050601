// Package camera provides a 3D follow camera for the player.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/threerun/config"
)

// Target is what the camera follows. The camera only reads from it.
type Target interface {
	Valid() bool
	Translation() r3.Vec
	Rotation() r3.Rotation
}

// Camera tracks a target from a fixed offset.
type Camera struct {
	// Current eye position and look-at point in world coordinates
	Position r3.Vec
	LookAt   r3.Vec

	// Vertical field of view in degrees
	Fovy float64

	// Eye position relative to the target, in the target's frame when FollowYaw is set
	Offset     r3.Vec
	LookOffset r3.Vec
	FollowYaw  bool

	// Fraction of the remaining distance covered per update (1 = rigid)
	Stiffness float64

	// Zoom constraints on the offset length
	MinDistance, MaxDistance float64

	snapped bool
}

// New creates a camera from config. The first Update snaps to the target.
func New(cfg config.CameraConfig) *Camera {
	offset := cfg.Offset.R3()
	dist := r3.Norm(offset)
	return &Camera{
		Fovy:        cfg.Fovy,
		Offset:      offset,
		LookOffset:  cfg.LookOffset.R3(),
		FollowYaw:   cfg.FollowYaw,
		Stiffness:   cfg.Stiffness,
		MinDistance: dist * 0.5,
		MaxDistance: dist * 3,
	}
}

// Reset makes the next Update snap instead of easing.
func (c *Camera) Reset() {
	c.snapped = false
}

// Desired returns the eye and look-at points for a target at pos facing rot.
func (c *Camera) Desired(pos r3.Vec, rot r3.Rotation) (eye, look r3.Vec) {
	offset := c.Offset
	if c.FollowYaw {
		offset = rot.Rotate(offset)
	}
	return r3.Add(pos, offset), r3.Add(pos, c.LookOffset)
}

// Update moves the camera toward the target. It returns false and leaves the
// camera untouched when there is no valid target.
func (c *Camera) Update(t Target) bool {
	if t == nil || !t.Valid() {
		return false
	}
	eye, look := c.Desired(t.Translation(), t.Rotation())

	k := c.Stiffness
	if !c.snapped || k >= 1 || k <= 0 {
		k = 1
	}
	c.Position = lerp(c.Position, eye, k)
	c.LookAt = lerp(c.LookAt, look, k)
	c.snapped = true
	return true
}

// Zoom scales the offset length by factor, clamped to the distance limits.
func (c *Camera) Zoom(factor float64) {
	dist := r3.Norm(c.Offset)
	if dist == 0 || factor <= 0 {
		return
	}
	next := math.Max(c.MinDistance, math.Min(c.MaxDistance, dist*factor))
	c.Offset = r3.Scale(next/dist, c.Offset)
}

func lerp(a, b r3.Vec, t float64) r3.Vec {
	if t >= 1 {
		return b
	}
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}
