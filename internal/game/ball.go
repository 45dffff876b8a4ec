package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ball is a rigid sphere integrated by the session. Forces added during a
// tick are consumed by the next Integrate call.
type Ball struct {
	Position        mgl64.Vec3
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
	Radius          float64
	Mass            float64
	Drag            float64
	AngularDrag     float64
	MaxAngularSpeed float64 // 0 means uncapped

	force mgl64.Vec3
}

func NewBall(pos mgl64.Vec3, radius, mass float64) *Ball {
	return &Ball{Position: pos, Radius: radius, Mass: mass}
}

// AddForce accumulates a continuous force for the next integration step
func (b *Ball) AddForce(f mgl64.Vec3) {
	b.force = b.force.Add(f)
}

// PendingForce returns the force accumulated since the last step
func (b *Ball) PendingForce() mgl64.Vec3 {
	return b.force
}

// AddVelocity applies an instantaneous velocity change
func (b *Ball) AddVelocity(dv mgl64.Vec3) {
	b.Velocity = b.Velocity.Add(dv)
}

// ScaleVelocity multiplies the linear velocity by factor
func (b *Ball) ScaleVelocity(factor float64) {
	b.Velocity = b.Velocity.Mul(factor)
}

// AddTorqueImpulse changes angular velocity by impulse / inertia, using the
// inertia of a solid sphere.
func (b *Ball) AddTorqueImpulse(impulse mgl64.Vec3) {
	inertia := 0.4 * b.Mass * b.Radius * b.Radius
	if inertia <= 0 {
		return
	}
	b.AngularVelocity = b.AngularVelocity.Add(impulse.Mul(1 / inertia))
	b.capSpin()
}

// Integrate advances the ball by dt seconds (semi-implicit Euler) and clears
// the force accumulator.
func (b *Ball) Integrate(dt float64, gravity mgl64.Vec3) {
	accel := gravity
	if b.Mass > 0 {
		accel = accel.Add(b.force.Mul(1 / b.Mass))
	}
	b.force = mgl64.Vec3{}

	b.Velocity = b.Velocity.Add(accel.Mul(dt)).Mul(dragFactor(b.Drag, dt))
	b.AngularVelocity = b.AngularVelocity.Mul(dragFactor(b.AngularDrag, dt))
	b.capSpin()

	b.Position = b.Position.Add(b.Velocity.Mul(dt))
}

// Speed returns current linear speed
func (b *Ball) Speed() float64 {
	return b.Velocity.Len()
}

// Bottom returns the height of the lowest point of the ball
func (b *Ball) Bottom() float64 {
	return b.Position.Y() - b.Radius
}

func (b *Ball) capSpin() {
	if b.MaxAngularSpeed <= 0 {
		return
	}
	if w := b.AngularVelocity.Len(); w > b.MaxAngularSpeed {
		b.AngularVelocity = b.AngularVelocity.Mul(b.MaxAngularSpeed / w)
	}
}

// dragFactor is the per-step linear damping multiplier, never negative.
func dragFactor(drag, dt float64) float64 {
	return math.Max(0, 1-drag*dt)
}
