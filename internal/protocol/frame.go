package protocol

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Frame is the websocket form of a Message. The payload stays raw until the
// type is known, so browsers and other non-Go clients never see gob.
type Frame struct {
	Type    MessageType        `msgpack:"type"`
	Payload msgpack.RawMessage `msgpack:"payload"`
}

// MarshalFrame encodes a message as one msgpack websocket frame
func MarshalFrame(msg *Message) ([]byte, error) {
	payload, err := msgpack.Marshal(msg.Payload)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal payload for message type %d", msg.Type)
	}
	data, err := msgpack.Marshal(&Frame{Type: msg.Type, Payload: payload})
	return data, errors.Wrap(err, "marshal frame")
}

// UnmarshalFrame decodes a msgpack frame back into a Message with a typed
// payload.
func UnmarshalFrame(data []byte) (*Message, error) {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "unmarshal frame")
	}

	var payload interface{}
	switch f.Type {
	case MsgJoinRequest:
		payload = &JoinRequest{}
	case MsgJoinResponse:
		payload = &JoinResponse{}
	case MsgCommand:
		payload = &CommandInput{}
	case MsgSessionState:
		payload = &SessionState{}
	case MsgEvent:
		payload = &Event{}
	default:
		return nil, errors.Errorf("unknown message type %d", f.Type)
	}
	if err := msgpack.Unmarshal(f.Payload, payload); err != nil {
		return nil, errors.Wrapf(err, "unmarshal payload for message type %d", f.Type)
	}

	return &Message{Type: f.Type, Payload: deref(payload)}, nil
}

// deref returns payloads by value, matching what the gob codec yields
func deref(p interface{}) interface{} {
	switch v := p.(type) {
	case *JoinRequest:
		return *v
	case *JoinResponse:
		return *v
	case *CommandInput:
		return *v
	case *SessionState:
		return *v
	case *Event:
		return *v
	}
	return p
}
