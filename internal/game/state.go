package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/diegok/pixbowl/internal/protocol"
)

// Event is a delivery event raised during Update or Release
type Event struct {
	Type     protocol.EventType
	Tick     int
	Delivery int
	Point    mgl64.Vec3
	Detail   string
}

// ToProtocol converts to the wire form
func (e Event) ToProtocol() protocol.Event {
	return protocol.Event{
		Type:     e.Type,
		Tick:     e.Tick,
		Delivery: e.Delivery,
		Point:    protocol.FromVec(e.Point),
		Detail:   e.Detail,
	}
}

// GameState is one bowler's session: the aim flow, the pitch, the flight
// model and at most one live delivery.
type GameState struct {
	Tuning     Tuning
	Gravity    mgl64.Vec3
	Pitch      *Pitch
	Bowler     *Bowler
	Flight     *FlightController
	Delivery   *Delivery
	Tick       int
	Deliveries int
	Spectators int

	noBallTicks int
	events      []Event
}

// NewGameState creates a session with the given tuning and randomness
func NewGameState(t Tuning, rng Rand) *GameState {
	return &GameState{
		Tuning:  t,
		Gravity: mgl64.Vec3{0, -t.Gravity, 0},
		Pitch:   NewPitch(t.Restitution, t.Friction),
		Bowler:  NewBowler(t),
		Flight:  NewFlightController(t, rng),
	}
}

// ProcessCommand applies a bowler command
func (gs *GameState) ProcessCommand(cmd protocol.Command) error {
	b := gs.Bowler
	switch cmd {
	case protocol.CmdAimUp:
		b.SetAim(Forward)
	case protocol.CmdAimDown:
		b.SetAim(Forward.Mul(-1))
	case protocol.CmdAimLeft:
		b.SetAim(Right.Mul(-1))
	case protocol.CmdAimRight:
		b.SetAim(Right)
	case protocol.CmdConfirm:
		b.Confirm()
	case protocol.CmdQuickThrow:
		err := gs.Release(b.Power)
		b.Reset()
		return err
	case protocol.CmdSwitchArm:
		b.SwitchArm()
	case protocol.CmdToggleSpin:
		b.ToggleSpin()
	case protocol.CmdToggleSpinType:
		b.ToggleSpinType()
	case protocol.CmdSwingUp:
		b.AdjustSwing(StrengthStep)
	case protocol.CmdSwingDown:
		b.AdjustSwing(-StrengthStep)
	case protocol.CmdSpinUp:
		b.AdjustSpin(StrengthStep)
	case protocol.CmdSpinDown:
		b.AdjustSpin(-StrengthStep)
	}
	return nil
}

// Update runs one game tick. Within a tick the ball is integrated first,
// then its contacts go to the bounce detector, and only if the delivery is
// still pre-bounce is the swing force for the next tick accumulated. A tick
// that produces the bounce therefore never adds swing.
func (gs *GameState) Update() error {
	gs.Tick++
	dt := gs.Tuning.Step()

	if gs.noBallTicks > 0 {
		gs.noBallTicks--
	}

	var err error
	if gs.Bowler.Update(dt) {
		err = gs.Release(gs.Bowler.Power)
		gs.Bowler.Reset()
	}

	gs.stepDelivery(dt)
	return err
}

func (gs *GameState) stepDelivery(dt float64) {
	d := gs.Delivery
	if d == nil || d.Ball == nil || d.Retired {
		return
	}

	d.Ticks++
	d.Ball.Integrate(dt, gs.Gravity)
	if c, ok := gs.Pitch.Collide(d.Ball); ok {
		d.Detector.Observe(c, d.Ball.Position)
	}
	d.record()

	if float64(d.Ticks)*dt >= gs.Tuning.MaxFlightTime {
		d.Retired = true
		return
	}
	gs.Flight.ApplySwing(d.Ball, d.Params, d.Phase())
}

// Release throws a new ball at the bowler's target with the given power.
// The previous delivery, if any, is replaced.
func (gs *GameState) Release(power float64) error {
	t := gs.Tuning
	b := gs.Bowler
	power = clamp01(power)

	spawn := b.SpawnPoint()
	forward := b.Forward()
	target := b.Target
	// Aim against the swing so the drift carries the ball back onto the
	// target. The offset uses the held swing strength in both modes.
	side := SwingAxis(target.Sub(spawn), b.Settings.Arm)
	aim := target.Sub(side.Mul(b.Settings.SwingStrength))
	aim = aim.Add(forward.Mul(t.AimLead))

	duration := TravelTime(power, t.MinTravelTime, t.MaxTravelTime)
	params, err := NewThrowParams(b.Settings, spawn, aim, forward, duration, t.PowerMultiplier)
	if err != nil {
		return errors.Wrap(err, "release")
	}
	velocity, err := LaunchVelocity(params.Start, params.Target, params.Duration, gs.Gravity)
	if err != nil {
		return errors.Wrap(err, "release")
	}

	noBall := power >= t.NoBallThreshold
	if noBall {
		gs.noBallTicks = t.ticks(t.NoBallDisplay)
	} else {
		gs.noBallTicks = 0
	}

	ball := NewBall(spawn, t.BallRadius, t.BallMass)
	ball.AngularDrag = t.AngularDrag
	ball.MaxAngularSpeed = t.MaxAngularSpeed
	if params.SpinEnabled() {
		velocity[1] += t.SpinLift
		ball.Drag = t.SpinDrag
		gs.Flight.ApplyReleaseSpin(ball, params)
	} else {
		ball.Drag = t.SwingDrag
	}
	ball.Velocity = velocity.Mul(params.PowerMultiplier)

	gs.Deliveries++
	d := &Delivery{
		ID:           gs.Deliveries,
		Ball:         ball,
		Params:       params,
		BounceTarget: target,
		Power:        power,
		NoBall:       noBall,
		trailLen:     t.TrailLength,
	}
	d.Detector = NewBounceDetector(t.BounceThreshold, func(c Contact) {
		gs.emit(protocol.EventBounce, d.ID, c.Point, fmt.Sprintf("surface=%q", c.Tag))
		if params.SpinEnabled() {
			gs.Flight.ApplyBounceDeflection(ball, params)
			gs.emit(protocol.EventDeflect, d.ID, c.Point, fmt.Sprintf("%s %s", params.SpinType, params.Arm))
		}
	})
	d.record()
	gs.Delivery = d

	if noBall {
		gs.emit(protocol.EventNoBall, d.ID, spawn, fmt.Sprintf("power=%.2f", power))
	}
	gs.emit(protocol.EventRelease, d.ID, spawn, fmt.Sprintf("%s power=%.2f", b.ModeLabel(), power))

	// First tick's swing; later ticks accumulate it at the end of stepDelivery
	gs.Flight.ApplySwing(ball, params, PreBounce)
	return nil
}

// HasBounced reports whether the live delivery has bounced
func (gs *GameState) HasBounced() bool {
	return gs.Delivery != nil && gs.Delivery.HasBounced()
}

// NoBallShowing reports whether the no-ball warning is still displayed
func (gs *GameState) NoBallShowing() bool {
	return gs.noBallTicks > 0
}

// Events returns and clears the events raised since the last call
func (gs *GameState) Events() []Event {
	events := gs.events
	gs.events = nil
	return events
}

func (gs *GameState) emit(typ protocol.EventType, delivery int, point mgl64.Vec3, detail string) {
	gs.events = append(gs.events, Event{
		Type:     typ,
		Tick:     gs.Tick,
		Delivery: delivery,
		Point:    point,
		Detail:   detail,
	})
}

// ToProtocolState converts to network-serializable state
func (gs *GameState) ToProtocolState() protocol.SessionState {
	state := protocol.SessionState{
		Tick:         gs.Tick,
		Bowler:       gs.Bowler.ToProtocolState(),
		BounceTarget: protocol.FromVec(gs.Bowler.Target),
		NoBall:       gs.NoBallShowing(),
		Deliveries:   gs.Deliveries,
		Spectators:   gs.Spectators,
	}

	d := gs.Delivery
	if d == nil || d.Ball == nil {
		return state
	}

	state.Ball = protocol.BallState{
		Present:         true,
		Position:        protocol.FromVec(d.Ball.Position),
		Velocity:        protocol.FromVec(d.Ball.Velocity),
		AngularVelocity: protocol.FromVec(d.Ball.AngularVelocity),
		Radius:          d.Ball.Radius,
		HasBounced:      d.HasBounced(),
	}
	state.BounceTarget = protocol.FromVec(d.BounceTarget)
	if c, ok := d.Detector.Contact(); ok {
		state.BouncePoint = protocol.FromVec(c.Point)
		state.HasBouncePoint = true
	}
	state.Trail = make([]protocol.Vec3, len(d.Trail))
	for i, p := range d.Trail {
		state.Trail[i] = protocol.FromVec(p)
	}
	return state
}
