// Package physics is a small rigid-body world built on an ark ECS world.
//
// Dynamic bodies fall under gravity and are resolved axis by axis against
// fixed box colliders. Rotations are locked: only game code writes them.
// Contacts are diffed every step and reported as enter/exit events once the
// ECS query has finished, so handlers are free to add or remove bodies.
package physics

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/threerun/components"
	"github.com/pthm-cable/threerun/config"
)

// Contact identifies the other collider in a collision event.
type Contact struct {
	Entity ecs.Entity
	Name   string
}

// BodyDesc describes a body to add to the world.
type BodyDesc struct {
	Name          string
	Kind          components.BodyKind
	Position      r3.Vec
	HalfExtents   r3.Vec
	Mass          float64
	GravityScale  float64
	LinearDamping float64
}

type listener struct {
	enter func(Contact)
	exit  func(Contact)
}

type fixedBody struct {
	entity ecs.Entity
	name   string
	box    aabb
}

// World owns every body and the contact state between them.
type World struct {
	world *ecs.World

	bodyMapper *ecs.Map4[components.Transform, components.Velocity, components.RigidBody, components.Collider]
	bodyFilter *ecs.Filter4[components.Transform, components.Velocity, components.RigidBody, components.Collider]

	transformMap *ecs.Map1[components.Transform]
	velocityMap  *ecs.Map1[components.Velocity]
	rigidMap     *ecs.Map1[components.RigidBody]
	colliderMap  *ecs.Map1[components.Collider]

	cfg config.PhysicsConfig

	contacts  map[ecs.Entity][]Contact
	listeners map[ecs.Entity]listener

	// Scratch buffers reused across steps
	fixed  []fixedBody
	events []event
}

// NewWorld creates an empty world.
func NewWorld(cfg config.PhysicsConfig) *World {
	world := ecs.NewWorld()
	return &World{
		world: world,
		bodyMapper: ecs.NewMap4[
			components.Transform,
			components.Velocity,
			components.RigidBody,
			components.Collider,
		](world),
		bodyFilter: ecs.NewFilter4[
			components.Transform,
			components.Velocity,
			components.RigidBody,
			components.Collider,
		](world),
		transformMap: ecs.NewMap1[components.Transform](world),
		velocityMap:  ecs.NewMap1[components.Velocity](world),
		rigidMap:     ecs.NewMap1[components.RigidBody](world),
		colliderMap:  ecs.NewMap1[components.Collider](world),
		cfg:          cfg,
		contacts:     make(map[ecs.Entity][]Contact),
		listeners:    make(map[ecs.Entity]listener),
	}
}

// AddBody creates a body and returns a handle to it.
func (w *World) AddBody(d BodyDesc) Handle {
	t := components.Transform{Position: d.Position, Rotation: r3.Rotation{Real: 1}}
	v := components.Velocity{}
	b := components.RigidBody{
		Kind:          d.Kind,
		Mass:          d.Mass,
		GravityScale:  d.GravityScale,
		LinearDamping: d.LinearDamping,
	}
	c := components.Collider{Name: d.Name, HalfExtents: d.HalfExtents}
	e := w.bodyMapper.NewEntity(&t, &v, &b, &c)
	return Handle{w: w, e: e}
}

// AddFixed is shorthand for a fixed box collider.
func (w *World) AddFixed(name string, center, halfExtents r3.Vec) Handle {
	return w.AddBody(BodyDesc{
		Name:        name,
		Kind:        components.KindFixed,
		Position:    center,
		HalfExtents: halfExtents,
	})
}

// RemoveBody deletes the body behind h. Handles to it become invalid.
// No exit events are sent for the removed body's own contacts.
func (w *World) RemoveBody(h Handle) {
	if !h.Valid() || h.w != w {
		return
	}
	delete(w.contacts, h.e)
	delete(w.listeners, h.e)
	w.world.RemoveEntity(h.e)
}

// OnCollision registers contact handlers for a dynamic body. Either handler
// may be nil. A later call replaces earlier handlers.
func (w *World) OnCollision(h Handle, enter, exit func(Contact)) {
	if !h.Valid() || h.w != w {
		return
	}
	w.listeners[h.e] = listener{enter: enter, exit: exit}
}

// Contacts returns the colliders h touched at the end of the last step.
func (w *World) Contacts(h Handle) []Contact {
	cs := w.contacts[h.e]
	out := make([]Contact, len(cs))
	copy(out, cs)
	return out
}

// Handle is a non-owning reference to a body. The zero Handle is invalid.
type Handle struct {
	w *World
	e ecs.Entity
}

// Entity returns the underlying ECS entity.
func (h Handle) Entity() ecs.Entity {
	return h.e
}

// Valid reports whether the body still exists.
func (h Handle) Valid() bool {
	return h.w != nil && !h.e.IsZero() && h.w.world.Alive(h.e)
}

// Translation returns the body's centre.
func (h Handle) Translation() r3.Vec {
	if !h.Valid() {
		return r3.Vec{}
	}
	return h.w.transformMap.Get(h.e).Position
}

// Rotation returns the body's orientation.
func (h Handle) Rotation() r3.Rotation {
	if !h.Valid() {
		return r3.Rotation{Real: 1}
	}
	return h.w.transformMap.Get(h.e).Rotation
}

// LinearVelocity returns the body's velocity.
func (h Handle) LinearVelocity() r3.Vec {
	if !h.Valid() {
		return r3.Vec{}
	}
	return h.w.velocityMap.Get(h.e).Linear
}

// Sleeping reports whether the body is asleep.
func (h Handle) Sleeping() bool {
	if !h.Valid() {
		return false
	}
	return h.w.rigidMap.Get(h.e).Sleeping
}

// SetTranslation teleports the body.
func (h Handle) SetTranslation(p r3.Vec, wake bool) {
	if !h.Valid() {
		return
	}
	h.w.transformMap.Get(h.e).Position = p
	h.wake(wake)
}

// SetRotation replaces the body's orientation.
func (h Handle) SetRotation(q r3.Rotation, wake bool) {
	if !h.Valid() {
		return
	}
	h.w.transformMap.Get(h.e).Rotation = q
	h.wake(wake)
}

// SetLinearVelocity replaces the body's velocity.
func (h Handle) SetLinearVelocity(v r3.Vec, wake bool) {
	if !h.Valid() {
		return
	}
	h.w.velocityMap.Get(h.e).Linear = v
	h.wake(wake)
}

// ApplyImpulse changes the velocity by j/mass immediately.
// Fixed and massless bodies ignore impulses.
func (h Handle) ApplyImpulse(j r3.Vec, wake bool) {
	if !h.Valid() {
		return
	}
	b := h.w.rigidMap.Get(h.e)
	inv := b.InvMass()
	if inv == 0 {
		return
	}
	vel := h.w.velocityMap.Get(h.e)
	vel.Linear = r3.Add(vel.Linear, r3.Scale(inv, j))
	h.wake(wake)
}

func (h Handle) wake(wake bool) {
	if wake {
		h.w.rigidMap.Get(h.e).Wake()
	}
}
