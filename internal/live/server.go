package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/berpycasiano-dotcom/catanylizer/internal/config"
	"github.com/berpycasiano-dotcom/catanylizer/internal/geometry"
)

// handshakeTimeout bounds how long a client may take to send HELLO after
// the socket upgrades.
const handshakeTimeout = 10 * time.Second

// Server accepts live sessions over WebSocket. Each connection gets one
// Session; frames are applied on the reader goroutine and responses are
// pushed through a single writer goroutine.
type Server struct {
	graph         *geometry.IntersectionGraph
	defaultWeight float64
	limits        config.Live
	upgrader      websocket.Upgrader

	mu   sync.Mutex
	open int
}

// NewServer builds a live session server over a prebuilt intersection
// graph.
func NewServer(graph *geometry.IntersectionGraph, defaultWeight float64, limits config.Live) *Server {
	return &Server{
		graph:         graph,
		defaultWeight: defaultWeight,
		limits:        limits,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
			// Origin policy is enforced by the HTTP layer's CORS
			// middleware; the upgrade accepts any origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// SessionCount returns the number of currently open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *Server) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open >= s.limits.MaxSessions {
		return false
	}
	s.open++
	return true
}

func (s *Server) release() {
	s.mu.Lock()
	s.open--
	s.mu.Unlock()
}

// HandleWS upgrades the request and runs the session until the client
// disconnects or goes idle.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	if !s.acquire() {
		http.Error(w, "too many live sessions", http.StatusServiceUnavailable)
		return
	}
	defer s.release()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("live: upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(int64(s.limits.MaxMessageBytes))

	sess, ok := s.handshake(conn)
	if !ok {
		return
	}
	slog.Info("live: session opened", "session", sess.ID, "remote", r.RemoteAddr)
	defer slog.Info("live: session closed", "session", sess.ID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	out := make(chan []byte, 64)
	go s.writePump(ctx, cancel, conn, out)
	s.readPump(ctx, conn, sess, out)
}

// handshake reads the opening frame, which must be a HELLO, and answers
// with WELCOME plus the initial RANKING. Any other opening frame closes
// the connection.
func (s *Server) handshake(conn *websocket.Conn) (*Session, bool) {
	conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		return nil, false
	}

	base, err := DecodeBase(raw)
	if err != nil {
		s.writeFrame(conn, errorFrame(ErrBadFrame, "%v", err))
		return nil, false
	}
	if base.Type != TypeHello {
		s.writeFrame(conn, errorFrame(ErrUnknownType, "expected %s, got %q", TypeHello, base.Type))
		return nil, false
	}

	var hello HelloMsg
	if err := json.Unmarshal(raw, &hello); err != nil {
		s.writeFrame(conn, errorFrame(ErrBadFrame, "decode %s: %v", TypeHello, err))
		return nil, false
	}

	sess, errFrame := Open(s.graph, hello, s.defaultWeight)
	if errFrame != nil {
		s.writeFrame(conn, *errFrame)
		return nil, false
	}

	if !s.writeFrame(conn, sess.Welcome()) {
		return nil, false
	}
	if !s.writeFrame(conn, sess.Ranking()) {
		return nil, false
	}
	return sess, true
}

// readPump applies client frames until disconnect or idle timeout.
func (s *Server) readPump(ctx context.Context, conn *websocket.Conn, sess *Session, out chan<- []byte) {
	idle := time.Duration(s.limits.IdleTimeoutSec) * time.Second
	for {
		conn.SetReadDeadline(time.Now().Add(idle))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		data, err := json.Marshal(sess.Handle(raw))
		if err != nil {
			slog.Error("live: marshal response", "session", sess.ID, "error", err)
			return
		}
		select {
		case out <- data:
		case <-ctx.Done():
			return
		}
	}
}

// writePump is the connection's single writer.
func (s *Server) writePump(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, out <-chan []byte) {
	timeout := time.Duration(s.limits.WriteTimeoutSec) * time.Second
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-out:
			conn.SetWriteDeadline(time.Now().Add(timeout))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				cancel()
				return
			}
		}
	}
}

func (s *Server) writeFrame(conn *websocket.Conn, frame any) bool {
	data, err := json.Marshal(frame)
	if err != nil {
		slog.Error("live: marshal frame", "error", err)
		return false
	}
	timeout := time.Duration(s.limits.WriteTimeoutSec) * time.Second
	conn.SetWriteDeadline(time.Now().Add(timeout))
	return conn.WriteMessage(websocket.TextMessage, data) == nil
}
