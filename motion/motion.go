// Package motion drives the player body from sampled input.
//
// The Controller runs once per simulation tick while the session is playing.
// It turns an input snapshot into yaw, jump and velocity commands on the body
// and keeps the presentation flags in step with ground contact reported by
// the physics world.
package motion

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/threerun/config"
	"github.com/pthm-cable/threerun/input"
	"github.com/pthm-cable/threerun/physics"
)

var up = r3.Vec{X: 0, Y: 1, Z: 0}

// Body is the rigid body the controller steers.
type Body interface {
	Valid() bool
	ApplyImpulse(j r3.Vec, wake bool)
	SetLinearVelocity(v r3.Vec, wake bool)
	SetRotation(q r3.Rotation, wake bool)
	LinearVelocity() r3.Vec
	Translation() r3.Vec
}

// Session is the lifecycle gate the controller obeys.
type Session interface {
	Active() bool
	Finish() bool
}

// Params holds movement tuning.
type Params struct {
	WalkSpeed     float64
	RunSpeed      float64
	JumpForce     float64
	TurnRate      float64 // Radians per tick
	FallThreshold float64
	GroundName    string
}

// ParamsFromConfig builds Params from the player and level config.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		WalkSpeed:     cfg.Player.WalkSpeed,
		RunSpeed:      cfg.Player.RunSpeed,
		JumpForce:     cfg.Player.JumpForce,
		TurnRate:      cfg.Player.TurnRate,
		FallThreshold: cfg.Player.FallThreshold,
		GroundName:    cfg.Level.GroundName,
	}
}

// Flags are the derived presentation signals for the player.
type Flags struct {
	Walking      bool
	Running      bool
	Jumping      bool
	TurningLeft  bool
	TurningRight bool
	Grounded     bool
}

// Output reports what one tick did.
type Output struct {
	Ran      bool // False when the tick was skipped
	Flags    Flags
	State    MoveState
	Jumped   bool
	Velocity r3.Vec // Commanded velocity
	Yaw      float64
	Fell     bool // This tick ended the run
}

// Controller owns the player's yaw and motion flags.
type Controller struct {
	params  Params
	session Session
	body    Body

	yaw      float64
	flags    Flags
	contacts map[ecs.Entity]struct{} // Ground colliders currently touched
}

// NewController creates a controller with no body attached.
func NewController(p Params, s Session) *Controller {
	return &Controller{
		params:   p,
		session:  s,
		contacts: make(map[ecs.Entity]struct{}),
	}
}

// SetBody attaches the body to steer. Passing nil detaches it.
func (c *Controller) SetBody(b Body) {
	c.body = b
}

// Flags returns the current flags.
func (c *Controller) Flags() Flags {
	return c.flags
}

// Yaw returns the current heading in radians.
func (c *Controller) Yaw() float64 {
	return c.yaw
}

// Reset restores the spawn state: facing +Z, no flags, no contacts.
func (c *Controller) Reset() {
	c.yaw = 0
	c.flags = Flags{}
	for e := range c.contacts {
		delete(c.contacts, e)
	}
}

// Tick runs one controller step against the attached body.
func (c *Controller) Tick(in input.State) Output {
	if c.session == nil || !c.session.Active() || c.body == nil || !c.body.Valid() {
		return Output{Flags: c.flags, Yaw: c.yaw}
	}
	out := Output{Ran: true}

	c.flags.Walking = in.Forward
	c.flags.Running = in.Forward && in.Run
	c.flags.TurningLeft = in.Left
	c.flags.TurningRight = in.Right

	if c.flags.TurningLeft {
		c.yaw += c.params.TurnRate
	}
	if c.flags.TurningRight {
		c.yaw -= c.params.TurnRate
	}
	facing := r3.NewRotation(c.yaw, up)
	c.body.SetRotation(facing, true)

	if in.Jump && c.flags.Grounded {
		c.body.ApplyImpulse(r3.Vec{Y: c.params.JumpForce}, true)
		c.flags.Jumping = true
		c.flags.Grounded = false
		out.Jumped = true
	}

	speed := c.params.WalkSpeed
	if c.flags.Running {
		speed = c.params.RunSpeed
	}
	out.State = Classify(c.flags.Grounded, c.flags.Walking)
	out.Velocity = TargetVelocity(out.State, c.body.LinearVelocity(), facing, speed)
	c.body.SetLinearVelocity(out.Velocity, true)

	if c.body.Translation().Y < c.params.FallThreshold {
		out.Fell = c.session.Finish()
	}

	out.Flags = c.flags
	out.Yaw = c.yaw
	return out
}

// OnCollisionEnter records a new contact. Only colliders named as ground
// affect the flags.
func (c *Controller) OnCollisionEnter(ct physics.Contact) {
	if ct.Name != c.params.GroundName {
		return
	}
	c.contacts[ct.Entity] = struct{}{}
	c.flags.Grounded = true
	c.flags.Jumping = false
}

// OnCollisionExit forgets a contact. Grounded clears once no ground contact
// is left.
func (c *Controller) OnCollisionExit(ct physics.Contact) {
	if _, ok := c.contacts[ct.Entity]; !ok {
		return
	}
	delete(c.contacts, ct.Entity)
	if len(c.contacts) == 0 {
		c.flags.Grounded = false
	}
}
