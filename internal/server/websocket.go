package server

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/diegok/pixbowl/internal/protocol"
)

const (
	wsReadTimeout  = 90 * time.Second
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 20 * time.Second
)

// watcher is a read-only spectator connected over websocket. It receives
// the same messages as terminals, msgpack-encoded.
type watcher struct {
	id   int
	conn *websocket.Conn
	send chan []byte
}

func (w *watcher) queue(frame []byte) {
	select {
	case w.send <- frame:
	default:
	}
}

// Handler returns the HTTP handler serving /health and /ws
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) startHTTP(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "failed to start websocket listener")
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.Printf("websocket spectators on %s/ws", ln.Addr())

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Printf("http server failed: %v", err)
		}
	}()
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	status := map[string]interface{}{
		"status":     "ok",
		"tick":       s.gameState.Tick,
		"deliveries": s.gameState.Deliveries,
		"spectators": s.gameState.Spectators,
		"bowling":    s.bowlerID != 0,
	}
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("websocket upgrade error: %v", err)
		return
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.mu.Unlock()

	wt := &watcher{id: id, conn: conn, send: make(chan []byte, sendBufferSize)}
	welcome, err := protocol.MarshalFrame(&protocol.Message{
		Type: protocol.MsgJoinResponse,
		Payload: protocol.JoinResponse{
			PlayerID: fmt.Sprintf("ws-%d", id),
			Accepted: true,
		},
	})
	if err == nil {
		wt.queue(welcome)
	}

	s.mu.Lock()
	s.watchers[id] = wt
	s.updateSpectators()
	s.mu.Unlock()

	s.log.Printf("websocket spectator joined id=%d remote=%s", id, r.RemoteAddr)

	go s.writePump(wt)
	s.readPump(wt)
}

// readPump only keeps the connection alive; watchers cannot bowl.
func (s *Server) readPump(wt *watcher) {
	defer func() {
		s.unregisterWatcher(wt.id)
		_ = wt.conn.Close()
	}()

	_ = wt.conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	wt.conn.SetPongHandler(func(string) error {
		return wt.conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	for {
		if _, _, err := wt.conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Printf("websocket read error id=%d err=%v", wt.id, err)
			}
			return
		}
	}
}

func (s *Server) writePump(wt *watcher) {
	ticker := time.NewTicker(wsPingInterval)
	defer func() {
		ticker.Stop()
		_ = wt.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-wt.send:
			_ = wt.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if !ok {
				_ = wt.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := wt.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = wt.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := wt.conn.WriteMessage(websocket.PingMessage, []byte("keepalive")); err != nil {
				return
			}
		}
	}
}

func (s *Server) unregisterWatcher(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if wt, ok := s.watchers[id]; ok {
		close(wt.send)
		delete(s.watchers, id)
		s.updateSpectators()
		s.log.Printf("websocket spectator left id=%d", id)
	}
}
