package protocol

import "testing"

func TestFrame_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
	}{
		{"JoinRequest", Message{Type: MsgJoinRequest, Payload: JoinRequest{PlayerName: "web", TerminalWidth: 80, TerminalHeight: 24}}},
		{"JoinResponse", Message{Type: MsgJoinResponse, Payload: JoinResponse{PlayerID: "p1", Accepted: true, IsBowler: true}}},
		{"Command", Message{Type: MsgCommand, Payload: CommandInput{Command: CmdQuickThrow}}},
		{"Event", Message{Type: MsgEvent, Payload: Event{Type: EventBounce, Tick: 31, Delivery: 2, Point: Vec3{Z: 14.8}, Detail: `surface="Pitch"`}}},
		{"SessionState", Message{Type: MsgSessionState, Payload: SessionState{
			Tick:   7,
			Ball:   BallState{Present: true, Position: Vec3{X: 0.2, Y: 1.9, Z: 3}},
			Bowler: BowlerState{Phase: PhaseSpeedSelect, Power: 0.42, ModeLabel: "Right Arm - Swing"},
			Trail:  []Vec3{{Y: 2.1, Z: 0.5}},
			NoBall: true,
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalFrame(&tt.msg)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}

			decoded, err := UnmarshalFrame(data)
			if err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if decoded.Type != tt.msg.Type {
				t.Errorf("expected type %d, got %d", tt.msg.Type, decoded.Type)
			}

			switch want := tt.msg.Payload.(type) {
			case SessionState:
				got, ok := decoded.Payload.(SessionState)
				if !ok {
					t.Fatalf("expected SessionState, got %T", decoded.Payload)
				}
				if got.Tick != want.Tick || got.Ball != want.Ball || got.Bowler != want.Bowler || got.NoBall != want.NoBall {
					t.Errorf("expected %+v, got %+v", want, got)
				}
				if len(got.Trail) != 1 || got.Trail[0] != want.Trail[0] {
					t.Errorf("expected trail %v, got %v", want.Trail, got.Trail)
				}
			default:
				if decoded.Payload != tt.msg.Payload {
					t.Errorf("expected %+v, got %+v", tt.msg.Payload, decoded.Payload)
				}
			}
		})
	}
}

func TestFrame_UnknownType(t *testing.T) {
	data, err := MarshalFrame(&Message{Type: MessageType(99), Payload: CommandInput{}})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if _, err := UnmarshalFrame(data); err == nil {
		t.Error("expected error for unknown message type")
	}
}

func TestFrame_Garbage(t *testing.T) {
	if _, err := UnmarshalFrame([]byte{}); err == nil {
		t.Error("expected error for invalid msgpack")
	}
}
