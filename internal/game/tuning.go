package game

import "github.com/pkg/errors"

// Default tuning values
const (
	TickRate = 60 // Simulation ticks per second

	DefaultGravity     = 9.81
	DefaultBallRadius  = 0.12
	DefaultBallMass    = 1.0
	DefaultRestitution = 0.55
	DefaultFriction    = 0.9

	DefaultPowerMultiplier = 1.5
	DefaultMinTravelTime   = 0.3
	DefaultMaxTravelTime   = 0.7
	DefaultAimLead         = 3.0 // Aim point sits this far past the bounce target
	DefaultSpinLift        = 2.0 // Extra launch v_y for spin throws

	DefaultSwingDrag       = 0.1
	DefaultSpinDrag        = 0.8
	DefaultAngularDrag     = 0.05
	DefaultMaxAngularSpeed = 7.0

	DefaultSwingForceScale = 4.0
	DefaultSwingJitter     = 0.2
	DefaultSwingVarMin     = 1.0
	DefaultSwingVarMax     = 1.4

	DefaultTurnScale          = 3.0
	DefaultBounceDamping      = 0.95
	DefaultBounceTorqueScale  = 20.0
	DefaultReleaseTorqueScale = 50.0
	DefaultReleaseTorqueMin   = 0.8
	DefaultReleaseTorqueMax   = 1.2
	DefaultBounceThreshold    = 0.1

	DefaultNoBallThreshold = 0.9
	DefaultNoBallDisplay   = 2.0 // Seconds
	DefaultThrowDelay      = 0.5 // Seconds between locking the meter and release
	DefaultMeterSpeed      = 0.7 // Power meter units per second
	DefaultAimSpeed        = 5.0 // Target units per second
	DefaultTrailLength     = 48
	DefaultMaxFlightTime   = 6.0 // Seconds before a delivery is retired
)

// Tuning holds every constant the simulation reads. It is loaded from a TOML
// file by the config package and is read-only once a session starts.
type Tuning struct {
	TickRate int `toml:"tick_rate"`

	Gravity     float64 `toml:"gravity"`
	BallRadius  float64 `toml:"ball_radius"`
	BallMass    float64 `toml:"ball_mass"`
	Restitution float64 `toml:"restitution"`
	Friction    float64 `toml:"friction"`

	PowerMultiplier float64 `toml:"power_multiplier"`
	MinTravelTime   float64 `toml:"min_travel_time"`
	MaxTravelTime   float64 `toml:"max_travel_time"`
	AimLead         float64 `toml:"aim_lead"`
	SpinLift        float64 `toml:"spin_lift"`

	SwingDrag       float64 `toml:"swing_drag"`
	SpinDrag        float64 `toml:"spin_drag"`
	AngularDrag     float64 `toml:"angular_drag"`
	MaxAngularSpeed float64 `toml:"max_angular_speed"`

	SwingForceScale float64 `toml:"swing_force_scale"`
	SwingJitter     float64 `toml:"swing_jitter"`
	SwingVarMin     float64 `toml:"swing_variation_min"`
	SwingVarMax     float64 `toml:"swing_variation_max"`

	TurnScale          float64 `toml:"turn_scale"`
	BounceDamping      float64 `toml:"bounce_damping"`
	BounceTorqueScale  float64 `toml:"bounce_torque_scale"`
	ReleaseTorqueScale float64 `toml:"release_torque_scale"`
	ReleaseTorqueMin   float64 `toml:"release_torque_min"`
	ReleaseTorqueMax   float64 `toml:"release_torque_max"`
	BounceThreshold    float64 `toml:"bounce_threshold"`

	NoBallThreshold float64 `toml:"no_ball_threshold"`
	NoBallDisplay   float64 `toml:"no_ball_display"`
	ThrowDelay      float64 `toml:"throw_delay"`
	MeterSpeed      float64 `toml:"meter_speed"`
	AimSpeed        float64 `toml:"aim_speed"`
	TrailLength     int     `toml:"trail_length"`
	MaxFlightTime   float64 `toml:"max_flight_time"`
}

// DefaultTuning returns the stock tuning.
func DefaultTuning() Tuning {
	return Tuning{
		TickRate:           TickRate,
		Gravity:            DefaultGravity,
		BallRadius:         DefaultBallRadius,
		BallMass:           DefaultBallMass,
		Restitution:        DefaultRestitution,
		Friction:           DefaultFriction,
		PowerMultiplier:    DefaultPowerMultiplier,
		MinTravelTime:      DefaultMinTravelTime,
		MaxTravelTime:      DefaultMaxTravelTime,
		AimLead:            DefaultAimLead,
		SpinLift:           DefaultSpinLift,
		SwingDrag:          DefaultSwingDrag,
		SpinDrag:           DefaultSpinDrag,
		AngularDrag:        DefaultAngularDrag,
		MaxAngularSpeed:    DefaultMaxAngularSpeed,
		SwingForceScale:    DefaultSwingForceScale,
		SwingJitter:        DefaultSwingJitter,
		SwingVarMin:        DefaultSwingVarMin,
		SwingVarMax:        DefaultSwingVarMax,
		TurnScale:          DefaultTurnScale,
		BounceDamping:      DefaultBounceDamping,
		BounceTorqueScale:  DefaultBounceTorqueScale,
		ReleaseTorqueScale: DefaultReleaseTorqueScale,
		ReleaseTorqueMin:   DefaultReleaseTorqueMin,
		ReleaseTorqueMax:   DefaultReleaseTorqueMax,
		BounceThreshold:    DefaultBounceThreshold,
		NoBallThreshold:    DefaultNoBallThreshold,
		NoBallDisplay:      DefaultNoBallDisplay,
		ThrowDelay:         DefaultThrowDelay,
		MeterSpeed:         DefaultMeterSpeed,
		AimSpeed:           DefaultAimSpeed,
		TrailLength:        DefaultTrailLength,
		MaxFlightTime:      DefaultMaxFlightTime,
	}
}

// Validate reports the first setting that would make the simulation undefined.
func (t Tuning) Validate() error {
	switch {
	case t.TickRate < 1:
		return errors.Errorf("tick_rate must be at least 1, got %d", t.TickRate)
	case t.BallRadius <= 0:
		return errors.Errorf("ball_radius must be positive, got %g", t.BallRadius)
	case t.BallMass <= 0:
		return errors.Errorf("ball_mass must be positive, got %g", t.BallMass)
	case t.MinTravelTime <= 0 || t.MaxTravelTime < t.MinTravelTime:
		return errors.Errorf("travel time range [%g, %g] is invalid", t.MinTravelTime, t.MaxTravelTime)
	case t.SwingVarMax < t.SwingVarMin:
		return errors.Errorf("swing variation range [%g, %g] is invalid", t.SwingVarMin, t.SwingVarMax)
	case t.ReleaseTorqueMax < t.ReleaseTorqueMin:
		return errors.Errorf("release torque range [%g, %g] is invalid", t.ReleaseTorqueMin, t.ReleaseTorqueMax)
	case t.BounceThreshold < 0:
		return errors.Errorf("bounce_threshold must not be negative, got %g", t.BounceThreshold)
	case t.BounceThreshold >= t.BallRadius:
		// A resting ball's centre sits one radius above the ground, so the
		// untagged outfield could never register a bounce
		return errors.Errorf("bounce_threshold %g must be below ball_radius %g", t.BounceThreshold, t.BallRadius)
	case t.TrailLength < 0:
		return errors.Errorf("trail_length must not be negative, got %d", t.TrailLength)
	}
	return nil
}

// Step returns the fixed simulation step in seconds.
func (t Tuning) Step() float64 {
	return 1 / float64(t.TickRate)
}

// ticks converts a duration in seconds to whole simulation ticks.
func (t Tuning) ticks(seconds float64) int {
	return int(seconds*float64(t.TickRate) + 0.5)
}
