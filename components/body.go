package components

import "gonum.org/v1/gonum/spatial/r3"

// RigidBody holds the dynamic properties of a body.
type RigidBody struct {
	Kind          BodyKind
	Mass          float64
	GravityScale  float64
	LinearDamping float64
	Sleeping      bool
	RestTicks     int // Consecutive slow steps, reset on wake
}

// InvMass returns 1/Mass, or 0 for fixed or massless bodies.
func (b *RigidBody) InvMass() float64 {
	if b.Kind == KindFixed || b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// Wake clears the sleep state.
func (b *RigidBody) Wake() {
	b.Sleeping = false
	b.RestTicks = 0
}

// Collider is an axis-aligned box centred on the body's position.
// Name tags the surface so contact handlers can tell ground from walls.
type Collider struct {
	Name        string
	HalfExtents r3.Vec
}
