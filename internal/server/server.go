package server

import (
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/diegok/pixbowl/internal/config"
	"github.com/diegok/pixbowl/internal/game"
	"github.com/diegok/pixbowl/internal/logger"
	"github.com/diegok/pixbowl/internal/protocol"
)

// Minimum terminal size for TCP clients
const (
	MinTermWidth  = 40
	MinTermHeight = 20
)

// Server hosts one bowling session: it owns the GameState, steps it at the
// tuning tick rate and streams it to every connected client.
type Server struct {
	cfg        *config.Config
	log        *logger.Logger
	tuning     game.Tuning
	listener   net.Listener
	httpServer *http.Server
	upgrader   websocket.Upgrader

	mu        sync.RWMutex
	clients   map[int]*Client
	watchers  map[int]*watcher
	nextID    int
	bowlerID  int // 0 when nobody is bowling
	gameState *game.GameState
	done      chan struct{}
}

// NewServer creates a server. A zero cfg.Seed seeds the swing jitter from
// the clock.
func NewServer(cfg *config.Config, tuning game.Tuning, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Discard("server")
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Server{
		cfg:    cfg,
		log:    log,
		tuning: tuning,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients:   make(map[int]*Client),
		watchers:  make(map[int]*watcher),
		nextID:    1,
		gameState: game.NewGameState(tuning, rand.New(rand.NewSource(seed))),
		done:      make(chan struct{}),
	}
}

// Start listens for terminals, starts the game loop and, when configured,
// the websocket listener.
func (s *Server) Start() error {
	if err := s.tuning.Validate(); err != nil {
		return errors.Wrap(err, "invalid tuning")
	}

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "failed to start server")
	}
	s.listener = listener
	s.log.Printf("listening on %s", listener.Addr())

	if s.cfg.HTTPAddr != "" {
		if err := s.startHTTP(s.cfg.HTTPAddr); err != nil {
			listener.Close()
			return err
		}
	}

	go s.acceptLoop()
	go s.gameLoop()

	return nil
}

// Addr returns the TCP listen address
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.mu.Lock()
	select {
	case <-s.done:
		s.mu.Unlock()
		return
	default:
		close(s.done)
	}
	s.mu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	if s.httpServer != nil {
		s.httpServer.Close()
	}

	s.mu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	for _, w := range s.watchers {
		w.conn.Close()
	}
	s.mu.Unlock()

	s.log.Printf("stopped")
}

// GetServerAddresses returns the LAN addresses spectators can join on
func (s *Server) GetServerAddresses() []string {
	var addresses []string

	interfaces, err := net.Interfaces()
	if err != nil {
		return addresses
	}

	for _, iface := range interfaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}

			if ip != nil && ip.To4() != nil {
				addresses = append(addresses, fmt.Sprintf("%s:%d", ip.String(), s.cfg.Port))
			}
		}
	}

	return addresses
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				s.log.Printf("accept error: %v", err)
				continue
			}
		}

		go s.handleConnection(conn)
	}
}

// handleConnection runs the join handshake and then reads the client's
// messages until it disconnects.
func (s *Server) handleConnection(conn net.Conn) {
	s.mu.Lock()
	clientID := s.nextID
	s.nextID++
	s.mu.Unlock()

	client := NewClient(clientID, conn)

	msg, err := client.Codec.Decode()
	if err != nil {
		conn.Close()
		return
	}

	joinReq, ok := msg.Payload.(protocol.JoinRequest)
	if msg.Type != protocol.MsgJoinRequest || !ok {
		conn.Close()
		return
	}

	if joinReq.TerminalWidth < MinTermWidth || joinReq.TerminalHeight < MinTermHeight {
		client.SendDirect(&protocol.Message{
			Type: protocol.MsgJoinResponse,
			Payload: protocol.JoinResponse{
				Accepted: false,
				Reason:   fmt.Sprintf("Terminal too small. Minimum: %dx%d", MinTermWidth, MinTermHeight),
			},
		})
		conn.Close()
		return
	}

	client.Name = joinReq.PlayerName
	if client.Name == "" {
		client.Name = fmt.Sprintf("Player%d", clientID)
	}
	client.Width = joinReq.TerminalWidth
	client.Height = joinReq.TerminalHeight

	s.mu.Lock()
	if s.bowlerID == 0 {
		s.bowlerID = clientID
		client.IsBowler = true
	}
	isBowler := client.IsBowler
	s.clients[clientID] = client
	s.updateSpectators()
	s.mu.Unlock()

	err = client.SendDirect(&protocol.Message{
		Type: protocol.MsgJoinResponse,
		Payload: protocol.JoinResponse{
			PlayerID: fmt.Sprintf("%d", clientID),
			Accepted: true,
			IsBowler: isBowler,
		},
	})
	if err != nil {
		s.handleDisconnect(clientID)
		return
	}

	role := "spectator"
	if isBowler {
		role = "bowler"
	}
	s.log.Printf("client joined id=%d name=%s role=%s remote=%s", clientID, client.Name, role, conn.RemoteAddr())

	client.StartWriter()

	for {
		msg, err := client.Codec.Decode()
		if err != nil {
			s.handleDisconnect(clientID)
			return
		}

		s.handleMessage(client, msg)
	}
}

// handleDisconnect removes a client. If it was bowling, the longest-connected
// spectator takes over.
func (s *Server) handleDisconnect(clientID int) {
	s.mu.Lock()
	client, exists := s.clients[clientID]
	if !exists {
		s.mu.Unlock()
		return
	}

	client.Close()
	delete(s.clients, clientID)

	var promoted *Client
	if s.bowlerID == clientID {
		s.bowlerID = 0
		for id, c := range s.clients {
			if promoted == nil || id < promoted.ID {
				promoted = c
			}
		}
		if promoted != nil {
			s.bowlerID = promoted.ID
			promoted.IsBowler = true
		}
	}
	s.updateSpectators()
	s.mu.Unlock()

	s.log.Printf("client left id=%d name=%s", clientID, client.Name)

	if promoted != nil {
		s.log.Printf("client id=%d is now bowling", promoted.ID)
		promoted.Send(&protocol.Message{
			Type: protocol.MsgJoinResponse,
			Payload: protocol.JoinResponse{
				PlayerID: fmt.Sprintf("%d", promoted.ID),
				Accepted: true,
				IsBowler: true,
			},
		})
	}
}

// handleMessage processes incoming messages. Only the bowler's commands
// reach the session.
func (s *Server) handleMessage(client *Client, msg *protocol.Message) {
	if msg.Type != protocol.MsgCommand {
		return
	}
	input, ok := msg.Payload.(protocol.CommandInput)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if client.ID != s.bowlerID {
		return
	}
	if err := s.gameState.ProcessCommand(input.Command); err != nil {
		s.log.Printf("command %d failed: %v", input.Command, err)
	}
}

// updateSpectators refreshes the watcher count shown to everyone. Callers
// hold s.mu.
func (s *Server) updateSpectators() {
	n := len(s.clients) + len(s.watchers)
	if s.bowlerID != 0 {
		n--
	}
	s.gameState.Spectators = n
}

// gameLoop steps the session at the tick rate and streams its events and
// state to every client.
func (s *Server) gameLoop() {
	ticker := time.NewTicker(time.Second / time.Duration(s.tuning.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			err := s.gameState.Update()
			events := s.gameState.Events()
			state := s.gameState.ToProtocolState()
			s.mu.Unlock()

			if err != nil {
				s.log.Printf("update failed: %v", err)
			}
			for _, ev := range events {
				s.log.Printf("%s delivery=%d tick=%d point=(%.2f, %.2f, %.2f) %s",
					ev.Type, ev.Delivery, ev.Tick, ev.Point.X(), ev.Point.Y(), ev.Point.Z(), ev.Detail)
				s.broadcast(&protocol.Message{Type: protocol.MsgEvent, Payload: ev.ToProtocol()})
			}

			s.broadcast(&protocol.Message{Type: protocol.MsgSessionState, Payload: state})
		}
	}
}

// broadcast sends a message to every terminal and websocket watcher
func (s *Server) broadcast(msg *protocol.Message) {
	frame, err := protocol.MarshalFrame(msg)
	if err != nil {
		s.log.Printf("marshal frame failed: %v", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, client := range s.clients {
		client.Send(msg)
	}
	if frame == nil {
		return
	}
	for _, w := range s.watchers {
		w.queue(frame)
	}
}
