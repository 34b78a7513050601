package motion

import "gonum.org/v1/gonum/spatial/r3"

// MoveState selects how the controller writes the body's velocity.
type MoveState uint8

const (
	// Airborne leaves velocity alone so jumps and falls stay ballistic.
	Airborne MoveState = iota
	// Moving drives the body along its facing, on the ground or steering in the air.
	Moving
	// Idle stops horizontal motion on the ground.
	Idle
)

func (s MoveState) String() string {
	switch s {
	case Airborne:
		return "airborne"
	case Moving:
		return "moving"
	case Idle:
		return "idle"
	}
	return "unknown"
}

// Classify picks the movement state for this tick. Walking takes precedence
// over being airborne.
func Classify(grounded, walking bool) MoveState {
	switch {
	case walking:
		return Moving
	case grounded:
		return Idle
	default:
		return Airborne
	}
}

// TargetVelocity returns the velocity to command for state s. The vertical
// component of current is always preserved.
func TargetVelocity(s MoveState, current r3.Vec, facing r3.Rotation, speed float64) r3.Vec {
	switch s {
	case Moving:
		return facing.Rotate(r3.Vec{X: 0, Y: current.Y, Z: speed})
	case Idle:
		return r3.Vec{X: 0, Y: current.Y, Z: 0}
	}
	return current
}
