package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// MaxStrength bounds swing and spin strength magnitudes.
const MaxStrength = 1.5

var (
	ErrInvalidDuration = errors.New("flight duration must be positive")
	ErrModeConflict    = errors.New("swing and spin strengths cannot both be set")
	ErrStrengthRange   = errors.New("strength out of range")
	ErrAccuracyRange   = errors.New("accuracy out of range")
)

// SpinType selects which way a spin delivery turns off the pitch
type SpinType int

const (
	OffSpin SpinType = iota
	LegSpin
)

func (s SpinType) String() string {
	if s == LegSpin {
		return "Leg-Spin"
	}
	return "Off-Spin"
}

// Toggle returns the other spin type
func (s SpinType) Toggle() SpinType {
	if s == OffSpin {
		return LegSpin
	}
	return OffSpin
}

// Arm is the bowler's throwing arm
type Arm int

const (
	RightArm Arm = iota
	LeftArm
)

func (a Arm) String() string {
	if a == LeftArm {
		return "Left Arm"
	}
	return "Right Arm"
}

// Toggle returns the other arm
func (a Arm) Toggle() Arm {
	if a == RightArm {
		return LeftArm
	}
	return RightArm
}

// Mode is the delivery style. A throw either swings in the air or spins off
// the pitch, never both.
type Mode int

const (
	ModeSwing Mode = iota
	ModeSpin
)

func (m Mode) String() string {
	if m == ModeSpin {
		return "Spin"
	}
	return "Swing"
}

// Settings are the bowler's current choices, edited between throws.
type Settings struct {
	Arm           Arm
	Mode          Mode
	SpinType      SpinType
	SwingStrength float64 // Signed; the sign picks the swing side
	SpinStrength  float64
	Accuracy      float64 // Reserved, carried through but not used by the flight model
}

// DefaultSettings matches a right-arm swing bowler with no swing dialled in.
func DefaultSettings() Settings {
	return Settings{
		Arm:           RightArm,
		Mode:          ModeSwing,
		SpinType:      OffSpin,
		SwingStrength: 0,
		SpinStrength:  1,
		Accuracy:      1,
	}
}

// ThrowParams is the immutable bundle describing one throw.
type ThrowParams struct {
	Start           mgl64.Vec3
	Target          mgl64.Vec3
	Forward         mgl64.Vec3 // Bowler facing axis, fixed for the throw
	Duration        float64
	PowerMultiplier float64
	Mode            Mode
	SwingStrength   float64
	SpinType        SpinType
	SpinStrength    float64
	Arm             Arm
	Accuracy        float64
}

// NewThrowParams builds the parameters for one throw. Only the active mode's
// strength is copied from s, so the result always satisfies Validate's mode
// check.
func NewThrowParams(s Settings, start, target, forward mgl64.Vec3, duration, multiplier float64) (ThrowParams, error) {
	p := ThrowParams{
		Start:           start,
		Target:          target,
		Forward:         normalize(forward),
		Duration:        duration,
		PowerMultiplier: multiplier,
		Mode:            s.Mode,
		SpinType:        s.SpinType,
		Arm:             s.Arm,
		Accuracy:        s.Accuracy,
	}
	if s.Mode == ModeSpin {
		p.SpinStrength = s.SpinStrength
	} else {
		p.SwingStrength = s.SwingStrength
	}
	if p.Forward == (mgl64.Vec3{}) {
		p.Forward = Forward
	}

	if err := p.Validate(); err != nil {
		return ThrowParams{}, err
	}
	return p, nil
}

// Validate checks the invariants every throw must hold.
func (p ThrowParams) Validate() error {
	if !(p.Duration > 0) {
		return errors.Wrapf(ErrInvalidDuration, "duration %g", p.Duration)
	}
	if p.Mode == ModeSpin && p.SwingStrength != 0 {
		return errors.Wrapf(ErrModeConflict, "spin throw with swing strength %g", p.SwingStrength)
	}
	if p.Mode == ModeSwing && p.SpinStrength != 0 {
		return errors.Wrapf(ErrModeConflict, "swing throw with spin strength %g", p.SpinStrength)
	}
	if math.Abs(p.SwingStrength) > MaxStrength {
		return errors.Wrapf(ErrStrengthRange, "swing strength %g", p.SwingStrength)
	}
	if p.SpinStrength < 0 || p.SpinStrength > MaxStrength {
		return errors.Wrapf(ErrStrengthRange, "spin strength %g", p.SpinStrength)
	}
	if p.Accuracy < 0 || p.Accuracy > 1 {
		return errors.Wrapf(ErrAccuracyRange, "accuracy %g", p.Accuracy)
	}
	return nil
}

// SpinEnabled reports whether this is a spin throw.
func (p ThrowParams) SpinEnabled() bool {
	return p.Mode == ModeSpin
}
