package client

import (
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/diegok/pixbowl/internal/protocol"
)

const (
	channelBufferSize = 16
	connectTimeout    = 5 * time.Second
)

var (
	// ErrNotConnected is returned when sending without a live connection
	ErrNotConnected = errors.New("not connected to server")
	// ErrWatchOnly is returned when sending over a websocket watch connection
	ErrWatchOnly = errors.New("websocket connections cannot bowl")
)

// Client is a terminal's connection to a pixbowl server.
type Client struct {
	Name         string
	Width        int
	Height       int
	PlayerID     string
	conn         net.Conn
	codec        *protocol.Codec
	ws           *websocket.Conn
	readMsg      func() (*protocol.Message, error)
	mu           sync.Mutex
	connected    bool
	isBowler     bool
	SessionState chan protocol.SessionState
	Events       chan protocol.Event
	Role         chan bool // Receives true when promoted to bowler
	Error        chan error
	done         chan struct{}
}

// NewClient creates a new client with the given name and terminal dimensions.
func NewClient(name string, width, height int) *Client {
	return &Client{
		Name:         name,
		Width:        width,
		Height:       height,
		SessionState: make(chan protocol.SessionState, channelBufferSize),
		Events:       make(chan protocol.Event, channelBufferSize),
		Role:         make(chan bool, 1),
		Error:        make(chan error, channelBufferSize),
		done:         make(chan struct{}),
	}
}

// Connect dials the server, sends a JoinRequest and waits for the
// JoinResponse before returning. A ws:// or wss:// address joins the
// server's websocket listener as a watcher instead.
func (c *Client) Connect(addr string) error {
	if IsWebsocketURL(addr) {
		return c.connectWebsocket(addr)
	}

	conn, err := net.DialTimeout("tcp", addr, connectTimeout)
	if err != nil {
		return errors.Wrap(err, "failed to connect to server")
	}

	c.conn = conn
	c.codec = protocol.NewCodec(conn)
	c.readMsg = c.codec.Decode

	joinReq := protocol.Message{
		Type: protocol.MsgJoinRequest,
		Payload: protocol.JoinRequest{
			PlayerName:     c.Name,
			TerminalWidth:  c.Width,
			TerminalHeight: c.Height,
		},
	}
	if err := c.codec.Encode(&joinReq); err != nil {
		c.conn.Close()
		return errors.Wrap(err, "failed to send join request")
	}

	c.conn.SetReadDeadline(time.Now().Add(connectTimeout))
	msg, err := c.codec.Decode()
	if err != nil {
		c.conn.Close()
		return errors.Wrap(err, "failed to receive join response")
	}
	c.conn.SetReadDeadline(time.Time{})

	return c.finishJoin(msg)
}

// connectWebsocket joins as a read-only watcher. The server greets watchers
// with a JoinResponse frame without waiting for a request.
func (c *Client) connectWebsocket(url string) error {
	dialer := websocket.Dialer{HandshakeTimeout: connectTimeout}
	ws, _, err := dialer.Dial(url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to connect to websocket")
	}

	c.ws = ws
	c.readMsg = c.readFrame

	ws.SetReadDeadline(time.Now().Add(connectTimeout))
	msg, err := c.readFrame()
	if err != nil {
		ws.Close()
		return errors.Wrap(err, "failed to receive join response")
	}
	ws.SetReadDeadline(time.Time{})

	return c.finishJoin(msg)
}

func (c *Client) readFrame() (*protocol.Message, error) {
	_, data, err := c.ws.ReadMessage()
	if err != nil {
		return nil, err
	}
	return protocol.UnmarshalFrame(data)
}

// finishJoin checks the JoinResponse and starts the receive loop
func (c *Client) finishJoin(msg *protocol.Message) error {
	if msg.Type != protocol.MsgJoinResponse {
		c.closeTransport()
		return errors.Errorf("expected join response, got message type %d", msg.Type)
	}

	resp, ok := msg.Payload.(protocol.JoinResponse)
	if !ok {
		c.closeTransport()
		return errors.New("invalid join response payload")
	}

	if !resp.Accepted {
		c.closeTransport()
		return errors.Errorf("join request rejected: %s", resp.Reason)
	}

	c.PlayerID = resp.PlayerID
	c.mu.Lock()
	c.connected = true
	c.isBowler = resp.IsBowler
	c.mu.Unlock()

	go c.receiveLoop()

	return nil
}

func (c *Client) closeTransport() {
	if c.conn != nil {
		c.conn.Close()
	}
	if c.ws != nil {
		c.ws.Close()
	}
}

// IsWebsocketURL reports whether addr names a websocket endpoint
func IsWebsocketURL(addr string) bool {
	return strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://")
}

// SendCommand sends one bowler command to the server. Spectator commands
// are accepted on the wire and ignored by the server.
func (c *Client) SendCommand(cmd protocol.Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return ErrNotConnected
	}
	if c.ws != nil {
		return ErrWatchOnly
	}

	msg := protocol.Message{
		Type:    protocol.MsgCommand,
		Payload: protocol.CommandInput{Command: cmd},
	}
	return c.codec.Encode(&msg)
}

// Close closes the connection to the server.
func (c *Client) Close() {
	c.mu.Lock()
	wasConnected := c.connected
	c.connected = false
	c.mu.Unlock()

	if wasConnected {
		close(c.done)
		c.closeTransport()
	}
}

// IsConnected returns true if the client is connected to the server.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// IsBowler reports whether this terminal controls the bowler
func (c *Client) IsBowler() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isBowler
}

// receiveLoop continuously reads messages from the server and dispatches them.
func (c *Client) receiveLoop() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
	}()

	for {
		msg, err := c.readMsg()
		if err != nil {
			select {
			case <-c.done:
			default:
				select {
				case c.Error <- errors.Wrap(err, "receive error"):
				default:
				}
			}
			return
		}

		c.dispatchMessage(msg)
	}
}

// dispatchMessage routes a message to the appropriate channel.
func (c *Client) dispatchMessage(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgSessionState:
		if state, ok := msg.Payload.(protocol.SessionState); ok {
			pushLatest(c.SessionState, state)
		}

	case protocol.MsgEvent:
		if ev, ok := msg.Payload.(protocol.Event); ok {
			pushLatest(c.Events, ev)
		}

	case protocol.MsgJoinResponse:
		if resp, ok := msg.Payload.(protocol.JoinResponse); ok && resp.Accepted {
			c.mu.Lock()
			c.isBowler = resp.IsBowler
			c.mu.Unlock()
			pushLatest(c.Role, resp.IsBowler)
		}
	}
}

// pushLatest sends v, dropping the oldest queued value if the channel is full.
// Only receiveLoop sends, so the retry cannot block.
func pushLatest[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
