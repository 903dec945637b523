package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/arcade-hub/internal/store"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Live feed frame types.
const (
	frameSnapshot = "snapshot"
	frameUpdate   = "update"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// liveMessage is one frame of the live feed.
type liveMessage struct {
	Type  string      `json:"type"` // frameSnapshot on connect, then frameUpdate
	State store.State `json:"state"`
}

// handleLive streams a store snapshot on connect and after every transition.
// Slow clients only see the latest snapshots.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	sub := s.store.Subscribe(8)
	s.logger.Info("live client connected", "remote", r.RemoteAddr)

	closed := make(chan struct{})
	go s.readPump(conn, closed)
	s.writePump(conn, sub, closed)

	sub.Close()
	conn.Close()
	s.logger.Info("live client disconnected", "remote", r.RemoteAddr)
}

// readPump discards client messages and keeps the read deadline fresh.
// It closes closed when the peer goes away.
func (s *Server) readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("live read error", "error", err)
			}
			return
		}
	}
}

func (s *Server) writePump(conn *websocket.Conn, sub *store.Subscription, closed <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	send := func(kind string, st store.State) bool {
		conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
		if err := conn.WriteJSON(liveMessage{Type: kind, State: st}); err != nil {
			s.logger.Debug("live write failed", "error", err)
			return false
		}
		return true
	}

	if !send(frameSnapshot, s.store.Snapshot()) {
		return
	}
	for {
		select {
		case st := <-sub.Updates():
			if !send(frameUpdate, st) {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-sub.Done():
			conn.WriteControl( //nolint:errcheck
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait),
			)
			return
		case <-closed:
			return
		}
	}
}
