package protocol

import (
	"encoding/gob"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// Codec reads and writes gob-encoded messages on a stream connection.
// Encode is safe to call from several goroutines.
type Codec struct {
	mu  sync.Mutex
	enc *gob.Encoder
	dec *gob.Decoder
}

// NewCodec creates a codec for the given read/writer
func NewCodec(rw io.ReadWriter) *Codec {
	return &Codec{
		enc: gob.NewEncoder(rw),
		dec: gob.NewDecoder(rw),
	}
}

// NewEncoder creates an encoder-only codec
func NewEncoder(w io.Writer) *Codec {
	return &Codec{enc: gob.NewEncoder(w)}
}

// NewDecoder creates a decoder-only codec
func NewDecoder(r io.Reader) *Codec {
	return &Codec{dec: gob.NewDecoder(r)}
}

// Encode writes a message
func (c *Codec) Encode(msg *Message) error {
	if c.enc == nil {
		return errors.New("codec has no encoder")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return errors.Wrapf(c.enc.Encode(msg), "encode message type %d", msg.Type)
}

// Decode reads a message. io.EOF is returned unwrapped so callers can tell a
// closed connection from a broken one.
func (c *Codec) Decode() (*Message, error) {
	if c.dec == nil {
		return nil, errors.New("codec has no decoder")
	}
	var msg Message
	if err := c.dec.Decode(&msg); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, errors.Wrap(err, "decode message")
	}
	return &msg, nil
}
