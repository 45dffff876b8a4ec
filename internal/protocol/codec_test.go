package protocol

import (
	"bytes"
	"io"
	"testing"
)

func TestCodec_EncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	codec := NewCodec(&buf)

	original := &Message{
		Type: MsgSessionState,
		Payload: SessionState{
			Tick: 42,
			Ball: BallState{
				Present:  true,
				Position: Vec3{X: 0.1, Y: 1.5, Z: 9.2},
				Velocity: Vec3{X: -0.4, Y: -2.0, Z: 28.0},
				Radius:   0.12,
			},
			Trail: []Vec3{{X: 0.35, Y: 2.1, Z: 0.5}, {X: 0.3, Y: 2.0, Z: 1.0}},
		},
	}

	if err := codec.Encode(original); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded, err := codec.Decode()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if decoded.Type != original.Type {
		t.Errorf("type mismatch: got %v, want %v", decoded.Type, original.Type)
	}

	state, ok := decoded.Payload.(SessionState)
	if !ok {
		t.Fatalf("payload type mismatch")
	}

	if state.Tick != 42 {
		t.Errorf("tick mismatch: got %d, want 42", state.Tick)
	}
	if state.Ball.Velocity.Z != 28.0 {
		t.Errorf("velocity mismatch: got %v", state.Ball.Velocity)
	}
	if len(state.Trail) != 2 {
		t.Errorf("expected 2 trail points, got %d", len(state.Trail))
	}
}

func TestCodec_DecodeEOF(t *testing.T) {
	codec := NewDecoder(&bytes.Buffer{})
	if _, err := codec.Decode(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestCodec_MissingHalves(t *testing.T) {
	if err := NewDecoder(&bytes.Buffer{}).Encode(&Message{}); err == nil {
		t.Error("expected error encoding with a decoder-only codec")
	}
	if _, err := NewEncoder(&bytes.Buffer{}).Decode(); err == nil {
		t.Error("expected error decoding with an encoder-only codec")
	}
}
