// Package components defines ECS components for the physics world.
package components

// BodyKind selects how the physics step treats a body.
type BodyKind uint8

const (
	KindDynamic BodyKind = iota // Integrated and collided every step
	KindFixed                   // Never moves; other bodies collide against it
)

// String returns the display name for a BodyKind.
func (k BodyKind) String() string {
	switch k {
	case KindDynamic:
		return "dynamic"
	case KindFixed:
		return "fixed"
	}
	return "unknown"
}
