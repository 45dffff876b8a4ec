package protocol

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		name  string
		cmd   Command
		value int
	}{
		{"CmdNone is 0", CmdNone, 0},
		{"CmdAimUp is 1", CmdAimUp, 1},
		{"CmdConfirm is 5", CmdConfirm, 5},
		{"CmdQuickThrow is 6", CmdQuickThrow, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if int(tt.cmd) != tt.value {
				t.Errorf("expected %s to be %d, got %d", tt.name, tt.value, int(tt.cmd))
			}
		})
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventRelease, "release"},
		{EventNoBall, "no_ball"},
		{EventBounce, "bounce"},
		{EventDeflect, "deflect"},
		{EventType(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestVec3Conversion(t *testing.T) {
	v := mgl64.Vec3{1.5, -2, 3.25}
	w := FromVec(v)
	if w.X != 1.5 || w.Y != -2 || w.Z != 3.25 {
		t.Errorf("unexpected wire vector %+v", w)
	}
	if w.Vec() != v {
		t.Errorf("expected %v, got %v", v, w.Vec())
	}
}

func TestGobRegistration(t *testing.T) {
	// Every payload must survive gob through the interface-typed field
	testCases := []struct {
		name    string
		message Message
	}{
		{
			name: "JoinRequest",
			message: Message{
				Type: MsgJoinRequest,
				Payload: JoinRequest{
					PlayerName:     "TestBowler",
					TerminalWidth:  80,
					TerminalHeight: 24,
				},
			},
		},
		{
			name: "JoinResponse",
			message: Message{
				Type: MsgJoinResponse,
				Payload: JoinResponse{
					PlayerID: "player-123",
					Accepted: true,
					IsBowler: true,
				},
			},
		},
		{
			name: "CommandInput",
			message: Message{
				Type:    MsgCommand,
				Payload: CommandInput{Command: CmdAimLeft},
			},
		},
		{
			name: "BowlerState",
			message: Message{
				Type: MsgSessionState,
				Payload: BowlerState{
					Phase:     PhaseSpeedSelect,
					Target:    Vec3{Z: 15},
					Power:     0.6,
					SpinMode:  true,
					OffSpin:   true,
					ModeLabel: "Right Arm - Spin",
					SpinLabel: "Off-Spin",
				},
			},
		},
		{
			name: "SessionState",
			message: Message{
				Type: MsgSessionState,
				Payload: SessionState{
					Tick:           100,
					Ball:           BallState{Present: true, Position: Vec3{Y: 0.12, Z: 14.9}, HasBounced: true},
					Trail:          []Vec3{{Y: 2.1, Z: 0.5}, {Y: 0.12, Z: 14.9}},
					BounceTarget:   Vec3{Z: 15},
					BouncePoint:    Vec3{Z: 14.9},
					HasBouncePoint: true,
					Deliveries:     3,
					Spectators:     1,
				},
			},
		},
		{
			name: "Event",
			message: Message{
				Type:    MsgEvent,
				Payload: Event{Type: EventNoBall, Tick: 12, Delivery: 1, Detail: "power=0.95"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := gob.NewEncoder(&buf)
			if err := enc.Encode(&tc.message); err != nil {
				t.Fatalf("failed to encode %s: %v", tc.name, err)
			}

			var decoded Message
			dec := gob.NewDecoder(&buf)
			if err := dec.Decode(&decoded); err != nil {
				t.Fatalf("failed to decode %s: %v", tc.name, err)
			}

			if decoded.Type != tc.message.Type {
				t.Errorf("expected type %d, got %d", tc.message.Type, decoded.Type)
			}

			if decoded.Payload == nil {
				t.Error("decoded payload is nil")
			}
		})
	}
}

func TestMessageTypes(t *testing.T) {
	types := []MessageType{
		MsgJoinRequest,
		MsgJoinResponse,
		MsgCommand,
		MsgSessionState,
		MsgEvent,
	}

	seen := make(map[MessageType]bool)
	for _, mt := range types {
		if seen[mt] {
			t.Errorf("duplicate message type value: %d", mt)
		}
		seen[mt] = true
	}
}
