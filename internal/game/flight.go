package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rand is the randomness the flight model draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// FlightController owns the forces applied to a ball in flight: swing before
// the bounce and the spin deflection at the bounce.
type FlightController struct {
	tuning Tuning
	rng    Rand
}

func NewFlightController(t Tuning, rng Rand) *FlightController {
	return &FlightController{tuning: t, rng: rng}
}

// uniform returns a value in [lo, hi)
func (fc *FlightController) uniform(lo, hi float64) float64 {
	return lo + fc.rng.Float64()*(hi-lo)
}

// SwingAxis returns the horizontal side axis for a ball travelling along
// velocity: perpendicular to both the direction of travel and Up. Left-arm
// bowlers get the mirrored axis.
func SwingAxis(velocity mgl64.Vec3, arm Arm) mgl64.Vec3 {
	side := normalize(normalize(velocity).Cross(Up))
	if arm == LeftArm {
		side = side.Mul(-1)
	}
	return side
}

// SwingForce computes this tick's swing force: the side axis nudged by a
// small random jitter on X, scaled by |SwingStrength| and a random variation.
func (fc *FlightController) SwingForce(b *Ball, p ThrowParams) mgl64.Vec3 {
	t := fc.tuning
	axis := SwingAxis(b.Velocity, p.Arm)
	jitter := mgl64.Vec3{fc.uniform(-t.SwingJitter, t.SwingJitter), 0, 0}
	dir := normalize(axis.Add(jitter))
	variation := fc.uniform(t.SwingVarMin, t.SwingVarMax)

	return dir.Mul(math.Abs(p.SwingStrength) * variation * t.SwingForceScale)
}

// ApplySwing adds the swing force for one tick. Nothing is applied once the
// ball has bounced, for spin throws, or when there is no ball.
func (fc *FlightController) ApplySwing(b *Ball, p ThrowParams, phase Phase) bool {
	if b == nil || phase != PreBounce || p.SpinEnabled() {
		return false
	}
	b.AddForce(fc.SwingForce(b, p))
	return true
}

// TurnDirection returns the horizontal direction a spin delivery turns after
// the bounce. The raw axis is Up x forward; it is negated when exactly one of
// "off-spin" and "left arm" holds:
//
//	            right arm   left arm
//	off-spin    negated     raw
//	leg-spin    raw         negated
func TurnDirection(forward mgl64.Vec3, spin SpinType, arm Arm) mgl64.Vec3 {
	turn := normalize(Up.Cross(forward))

	isOffSpin := spin == OffSpin
	isLeftArm := arm == LeftArm
	if isOffSpin != isLeftArm {
		turn = turn.Mul(-1)
	}
	return turn
}

// ApplyBounceDeflection applies the one-off spin turn at the bounce: a
// sideways velocity change, then damping of the result, then a torque
// impulse about the turn axis. It is not idempotent; the bounce detector
// makes sure it runs once per delivery.
func (fc *FlightController) ApplyBounceDeflection(b *Ball, p ThrowParams) {
	if b == nil {
		return
	}
	t := fc.tuning
	turn := TurnDirection(p.Forward, p.SpinType, p.Arm)

	b.AddVelocity(turn.Mul(p.SpinStrength * t.TurnScale))
	b.ScaleVelocity(t.BounceDamping)
	b.AddTorqueImpulse(turn.Mul(p.SpinStrength * t.BounceTorqueScale))
}

// ApplyReleaseSpin gives a spin throw its initial rotation about the bowler's
// right axis; off-spin rotates about +right and leg-spin about -right.
func (fc *FlightController) ApplyReleaseSpin(b *Ball, p ThrowParams) {
	if b == nil || !p.SpinEnabled() {
		return
	}
	t := fc.tuning
	axis := normalize(Up.Cross(p.Forward))
	if p.SpinType == LegSpin {
		axis = axis.Mul(-1)
	}
	amount := p.SpinStrength * t.ReleaseTorqueScale * fc.uniform(t.ReleaseTorqueMin, t.ReleaseTorqueMax)
	b.AddTorqueImpulse(axis.Mul(amount))
}
