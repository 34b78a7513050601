package physics

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/threerun/components"
)

type event struct {
	body  ecs.Entity
	other Contact
	enter bool
}

// Step advances every awake dynamic body by dt seconds, then reports
// contact changes to registered handlers.
func (w *World) Step(dt float64) {
	// First pass: snapshot fixed colliders
	w.fixed = w.fixed[:0]
	query := w.bodyFilter.Query()
	for query.Next() {
		t, _, b, c := query.Get()
		if b.Kind != components.KindFixed {
			continue
		}
		w.fixed = append(w.fixed, fixedBody{
			entity: query.Entity(),
			name:   c.Name,
			box:    boxAt(t.Position, c.HalfExtents),
		})
	}

	// Second pass: integrate dynamic bodies and collect contact changes
	w.events = w.events[:0]
	query = w.bodyFilter.Query()
	for query.Next() {
		t, v, b, c := query.Get()
		if b.Kind != components.KindDynamic {
			continue
		}
		e := query.Entity()

		if !b.Sleeping {
			w.integrate(t, v, b, c, dt)
		}

		before := w.contacts[e]
		touching := w.touching(boxAt(t.Position, c.HalfExtents), nil)
		if _, ok := w.listeners[e]; ok {
			w.diffContacts(e, before, touching)
		}
		w.contacts[e] = touching

		// Lost support wakes a sleeping body
		if b.Sleeping && len(touching) < len(before) {
			b.Wake()
		}

		w.updateSleep(v, b, len(touching) > 0)
	}

	// Dispatch after iteration so handlers may modify the world
	for _, ev := range w.events {
		l, ok := w.listeners[ev.body]
		if !ok {
			continue
		}
		if ev.enter && l.enter != nil {
			l.enter(ev.other)
		} else if !ev.enter && l.exit != nil {
			l.exit(ev.other)
		}
	}
}

func (w *World) integrate(t *components.Transform, v *components.Velocity, b *components.RigidBody, c *components.Collider, dt float64) {
	vel := v.Linear
	vel.Y += w.cfg.Gravity * b.GravityScale * dt
	if b.LinearDamping > 0 {
		vel = r3.Scale(1/(1+dt*b.LinearDamping), vel)
	}

	pos := t.Position
	// Vertical first so a landing body slides on the surface it lands on
	for _, a := range [...]axis{axisY, axisX, axisZ} {
		delta := component(vel, a) * dt
		allowed, hit := sweepAxis(boxAt(pos, c.HalfExtents), a, delta, w.fixed)
		pos = withComponent(pos, a, component(pos, a)+allowed)
		if hit {
			vel = withComponent(vel, a, 0)
		}
	}

	t.Position = pos
	v.Linear = vel
}

// touching appends every fixed collider within the contact skin of box.
func (w *World) touching(box aabb, dst []Contact) []Contact {
	probe := box.expand(w.cfg.ContactSkin + axisTolerance)
	for _, f := range w.fixed {
		if intersects(probe, f.box) {
			dst = append(dst, Contact{Entity: f.entity, Name: f.name})
		}
	}
	return dst
}

// diffContacts queues exits before enters so a handler never sees a stale
// contact alongside its replacement.
func (w *World) diffContacts(body ecs.Entity, before, after []Contact) {
	for _, c := range before {
		if !containsContact(after, c.Entity) {
			w.events = append(w.events, event{body: body, other: c, enter: false})
		}
	}
	for _, c := range after {
		if !containsContact(before, c.Entity) {
			w.events = append(w.events, event{body: body, other: c, enter: true})
		}
	}
}

func (w *World) updateSleep(v *components.Velocity, b *components.RigidBody, supported bool) {
	if w.cfg.SleepTicks <= 0 || b.Sleeping {
		return
	}
	if !supported || r3.Norm(v.Linear) >= w.cfg.SleepSpeed {
		b.RestTicks = 0
		return
	}
	b.RestTicks++
	if b.RestTicks >= w.cfg.SleepTicks {
		b.Sleeping = true
		v.Linear = r3.Vec{}
	}
}

func containsContact(cs []Contact, e ecs.Entity) bool {
	for _, c := range cs {
		if c.Entity == e {
			return true
		}
	}
	return false
}
