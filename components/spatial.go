package components

import "gonum.org/v1/gonum/spatial/r3"

// Transform is a body's world position and orientation.
// Rotation is only ever written by game code; the physics step keeps
// rotations locked.
type Transform struct {
	Position r3.Vec
	Rotation r3.Rotation
}

// Velocity is a body's linear velocity in world units per second.
type Velocity struct {
	Linear r3.Vec
}
