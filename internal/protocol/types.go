package protocol

import (
	"encoding/gob"

	"github.com/go-gl/mathgl/mgl64"
)

// Command is a bowler action sent from the bowling terminal
type Command int

const (
	CmdNone Command = iota
	CmdAimUp
	CmdAimDown
	CmdAimLeft
	CmdAimRight
	CmdConfirm
	CmdQuickThrow
	CmdSwitchArm
	CmdToggleSpin
	CmdToggleSpinType
	CmdSwingUp
	CmdSwingDown
	CmdSpinUp
	CmdSpinDown
)

// AimPhase mirrors the bowler's aiming state machine
type AimPhase int

const (
	PhaseAiming AimPhase = iota
	PhaseSpeedSelect
	PhaseReadyToThrow
)

// EventType identifies a delivery event
type EventType int

const (
	EventRelease EventType = iota
	EventNoBall
	EventBounce
	EventDeflect
)

func (e EventType) String() string {
	switch e {
	case EventRelease:
		return "release"
	case EventNoBall:
		return "no_ball"
	case EventBounce:
		return "bounce"
	case EventDeflect:
		return "deflect"
	}
	return "unknown"
}

// MessageType identifies the type of network message
type MessageType int

const (
	MsgJoinRequest MessageType = iota
	MsgJoinResponse
	MsgCommand
	MsgSessionState
	MsgEvent
)

// Message is the wrapper for all network messages
type Message struct {
	Type    MessageType
	Payload interface{}
}

// Vec3 is the wire form of a world-space vector
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// FromVec converts an mgl64 vector to its wire form
func FromVec(v mgl64.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Vec converts back to mgl64
func (v Vec3) Vec() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// JoinRequest is sent by a client wanting to join the session
type JoinRequest struct {
	PlayerName     string
	TerminalWidth  int
	TerminalHeight int
}

// JoinResponse is sent by the server in response to a join request
type JoinResponse struct {
	PlayerID string
	Accepted bool
	Reason   string
	IsBowler bool
}

// CommandInput carries one bowler command
type CommandInput struct {
	Command Command
}

// BallState is the live ball as seen by renderers
type BallState struct {
	Present         bool
	Position        Vec3
	Velocity        Vec3
	AngularVelocity Vec3
	Radius          float64
	HasBounced      bool
}

// BowlerState is the bowler's aim and settings
type BowlerState struct {
	Phase         AimPhase
	Target        Vec3
	Power         float64
	LeftArm       bool
	SpinMode      bool
	OffSpin       bool
	SwingStrength float64
	SpinStrength  float64
	Accuracy      float64
	ModeLabel     string // e.g. "Right Arm - Swing"
	SpinLabel     string // e.g. "Off-Spin"
}

// SessionState is the complete state broadcast every tick
type SessionState struct {
	Tick           int
	Ball           BallState
	Bowler         BowlerState
	Trail          []Vec3
	BounceTarget   Vec3
	BouncePoint    Vec3
	HasBouncePoint bool
	NoBall         bool
	Deliveries     int
	Spectators     int
}

// Event is a one-off delivery event
type Event struct {
	Type     EventType
	Tick     int
	Delivery int
	Point    Vec3
	Detail   string
}

func init() {
	// Register all payload types with gob for network serialization
	gob.Register(JoinRequest{})
	gob.Register(JoinResponse{})
	gob.Register(CommandInput{})
	gob.Register(BallState{})
	gob.Register(BowlerState{})
	gob.Register(SessionState{})
	gob.Register(Event{})
}
