package server

import (
	"net"
	"sync"

	"github.com/diegok/pixbowl/internal/protocol"
)

const sendBufferSize = 64

// Client is a terminal connected over TCP. Exactly one client at a time is
// the bowler; the rest only watch.
type Client struct {
	ID       int
	Name     string
	Width    int
	Height   int
	IsBowler bool
	conn     net.Conn
	Codec    *protocol.Codec
	sendCh   chan *protocol.Message
	done     chan struct{}
	mu       sync.Mutex
}

// NewClient creates a new client with the given connection
func NewClient(id int, conn net.Conn) *Client {
	return &Client{
		ID:     id,
		conn:   conn,
		Codec:  protocol.NewCodec(conn),
		sendCh: make(chan *protocol.Message, sendBufferSize),
		done:   make(chan struct{}),
	}
}

// StartWriter starts the goroutine that writes queued messages to the connection
func (c *Client) StartWriter() {
	go func() {
		for {
			select {
			case <-c.done:
				return
			case msg := <-c.sendCh:
				if err := c.Codec.Encode(msg); err != nil {
					c.Close()
					return
				}
			}
		}
	}()
}

// Send queues a message without blocking. When the buffer is full the
// message is dropped; the next session state supersedes it anyway.
func (c *Client) Send(msg *protocol.Message) {
	select {
	case c.sendCh <- msg:
	default:
	}
}

// SendDirect writes a message immediately (handshake and role changes)
func (c *Client) SendDirect(msg *protocol.Message) error {
	return c.Codec.Encode(msg)
}

// Done is closed once the client has been closed
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close closes the client connection
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return
	default:
		close(c.done)
	}

	if c.conn != nil {
		c.conn.Close()
	}
}
