package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/diegok/pixbowl/internal/protocol"
)

const (
	AimTimeout     = 8    // Ticks to keep moving the target after last input (~133ms at 60Hz)
	StrengthStep   = 0.1  // Swing/spin strength change per keypress
	ReleaseHeight  = 2.1  // Hand height at release
	ReleaseOffsetX = 0.35 // Hand offset from the stumps line
	ReleaseOffsetZ = 0.5
)

// Target bounds on the ground
const (
	TargetMinX = -3.0
	TargetMaxX = 3.0
	TargetMinZ = 4.0
	TargetMaxZ = PitchLength
)

// DefaultTarget is a good length on middle stump
var DefaultTarget = mgl64.Vec3{0, 0, 15}

// Bowler is the aiming collaborator: it moves the bounce target, runs the
// power meter and holds the delivery settings between throws.
type Bowler struct {
	Settings Settings
	Target   mgl64.Vec3
	Phase    protocol.AimPhase
	Power    float64

	increasing     bool
	aimDir         mgl64.Vec3
	aimTicks       int
	waitingToThrow bool
	throwTimer     float64
	tuning         Tuning
}

func NewBowler(t Tuning) *Bowler {
	return &Bowler{
		Settings:   DefaultSettings(),
		Target:     DefaultTarget,
		Phase:      protocol.PhaseAiming,
		increasing: true,
		tuning:     t,
	}
}

// SetAim starts nudging the target in dir for the next AimTimeout ticks
func (b *Bowler) SetAim(dir mgl64.Vec3) {
	b.aimDir = dir
	if dir != (mgl64.Vec3{}) {
		b.aimTicks = AimTimeout
	}
}

// Confirm advances the aiming state machine: Aiming starts the power meter,
// SpeedSelect locks it and starts the throw delay.
func (b *Bowler) Confirm() {
	switch b.Phase {
	case protocol.PhaseAiming:
		b.Phase = protocol.PhaseSpeedSelect
		b.Power = 0
		b.increasing = true
	case protocol.PhaseSpeedSelect:
		if !b.waitingToThrow {
			b.waitingToThrow = true
			b.throwTimer = b.tuning.ThrowDelay
		}
	}
}

// WaitingToThrow reports whether the meter is locked and the release is pending
func (b *Bowler) WaitingToThrow() bool {
	return b.waitingToThrow
}

// Update runs one tick and returns true when the pending throw should be
// released now.
func (b *Bowler) Update(dt float64) bool {
	switch b.Phase {
	case protocol.PhaseAiming:
		b.moveTarget(dt)
	case protocol.PhaseSpeedSelect:
		if !b.waitingToThrow {
			b.animateMeter(dt)
			return false
		}
		b.throwTimer -= dt
		if b.throwTimer <= 0 {
			b.Phase = protocol.PhaseReadyToThrow
			return true
		}
	}
	return false
}

// Reset returns to aiming with an empty meter and cancels any pending throw
func (b *Bowler) Reset() {
	b.Phase = protocol.PhaseAiming
	b.Power = 0
	b.increasing = true
	b.waitingToThrow = false
	b.throwTimer = 0
}

func (b *Bowler) moveTarget(dt float64) {
	if b.aimTicks <= 0 {
		return
	}
	b.Target = b.Target.Add(b.aimDir.Mul(b.tuning.AimSpeed * dt))
	b.Target[0] = clamp(b.Target.X(), TargetMinX, TargetMaxX)
	b.Target[2] = clamp(b.Target.Z(), TargetMinZ, TargetMaxZ)

	b.aimTicks--
	if b.aimTicks == 0 {
		b.aimDir = mgl64.Vec3{}
	}
}

// animateMeter sweeps the power meter between 0 and 1
func (b *Bowler) animateMeter(dt float64) {
	step := b.tuning.MeterSpeed * dt
	if !b.increasing {
		step = -step
	}
	b.Power = clamp01(b.Power + step)

	if b.Power >= 1 || b.Power <= 0 {
		b.increasing = !b.increasing
	}
}

func (b *Bowler) SwitchArm() {
	b.Settings.Arm = b.Settings.Arm.Toggle()
}

func (b *Bowler) ToggleSpin() {
	if b.Settings.Mode == ModeSpin {
		b.Settings.Mode = ModeSwing
	} else {
		b.Settings.Mode = ModeSpin
	}
}

func (b *Bowler) ToggleSpinType() {
	b.Settings.SpinType = b.Settings.SpinType.Toggle()
}

// AdjustSwing changes the signed swing strength within ±MaxStrength
func (b *Bowler) AdjustSwing(delta float64) {
	b.Settings.SwingStrength = clamp(b.Settings.SwingStrength+delta, -MaxStrength, MaxStrength)
}

// AdjustSpin changes the spin strength within [0, MaxStrength]
func (b *Bowler) AdjustSpin(delta float64) {
	b.Settings.SpinStrength = clamp(b.Settings.SpinStrength+delta, 0, MaxStrength)
}

// SpawnPoint returns the release point for the current arm
func (b *Bowler) SpawnPoint() mgl64.Vec3 {
	x := ReleaseOffsetX
	if b.Settings.Arm == LeftArm {
		x = -ReleaseOffsetX
	}
	return mgl64.Vec3{x, ReleaseHeight, ReleaseOffsetZ}
}

// Forward is the bowler's facing axis
func (b *Bowler) Forward() mgl64.Vec3 {
	return Forward
}

// ModeLabel returns the status line text, e.g. "Right Arm - Swing"
func (b *Bowler) ModeLabel() string {
	return fmt.Sprintf("%s - %s", b.Settings.Arm, b.Settings.Mode)
}

// ToProtocolState converts to network-serializable state
func (b *Bowler) ToProtocolState() protocol.BowlerState {
	return protocol.BowlerState{
		Phase:         b.Phase,
		Target:        protocol.FromVec(b.Target),
		Power:         b.Power,
		LeftArm:       b.Settings.Arm == LeftArm,
		SpinMode:      b.Settings.Mode == ModeSpin,
		OffSpin:       b.Settings.SpinType == OffSpin,
		SwingStrength: b.Settings.SwingStrength,
		SpinStrength:  b.Settings.SpinStrength,
		Accuracy:      b.Settings.Accuracy,
		ModeLabel:     b.ModeLabel(),
		SpinLabel:     b.Settings.SpinType.String(),
	}
}
