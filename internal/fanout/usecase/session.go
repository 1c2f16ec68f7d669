package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"fanout-srv/internal/fanout"
	"fanout-srv/pkg/log"

	"github.com/gorilla/websocket"
)

// Session states. A session moves Connecting -> Open -> Closed; Closed is
// terminal. A reconnecting client gets a brand-new session.
const (
	stateConnecting int32 = iota
	stateOpen
	stateClosed
)

// sendBufferSize is the per-session outbound queue length.
const sendBufferSize = 256

// Session wraps one long-lived push connection. It is owned exclusively by
// the process that accepted it and is never shared across processes.
type Session struct {
	id          string
	userID      string
	tenantID    string
	channels    []fanout.ChannelKey
	connectedAt time.Time

	conn  *websocket.Conn
	send  chan []byte
	done  chan struct{}
	state atomic.Int32

	pongWait   time.Duration
	pingPeriod time.Duration
	writeWait  time.Duration

	// onClose is the single cleanup path. Client disconnect, transport error
	// and server shutdown all converge here, exactly once.
	onClose   func(sessionID string)
	closeOnce sync.Once

	logger log.Logger
}

func newSession(id string, desc fanout.SessionDescriptor, conn *websocket.Conn, pongWait, pingPeriod, writeWait time.Duration, logger log.Logger) *Session {
	s := &Session{
		id:          id,
		userID:      desc.UserID,
		tenantID:    desc.TenantID,
		channels:    desc.Channels,
		connectedAt: time.Now(),
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		done:        make(chan struct{}),
		pongWait:    pongWait,
		pingPeriod:  pingPeriod,
		writeWait:   writeWait,
		logger:      logger,
	}
	s.state.Store(stateConnecting)
	return s
}

// ID returns the process-unique session id.
func (s *Session) ID() string { return s.id }

// IsOpen reports whether the session is in the Open state.
func (s *Session) IsOpen() bool { return s.state.Load() == stateOpen }

// open marks the handshake complete and starts the pumps.
func (s *Session) open() {
	// A session closed during admission stays closed; starting pumps on a
	// dead connection would tear it down a second time.
	if !s.state.CompareAndSwap(stateConnecting, stateOpen) {
		return
	}
	go s.writePump()
	go s.readPump()
}

// enqueue queues a frame for delivery. Returns false when the session buffer
// is full or the session already closed; the frame is dropped either way.
func (s *Session) enqueue(frame []byte) bool {
	if s.state.Load() == stateClosed {
		return false
	}
	select {
	case s.send <- frame:
		return true
	default:
		return false
	}
}

// closeTransport moves the session to Closed and tears down the connection.
// Guarded by a state swap so any number of paths can call it; only the first
// one acts. It never runs the cleanup hook, so Cleanup can call it without
// re-entering Close.
func (s *Session) closeTransport() {
	if s.state.Swap(stateClosed) == stateClosed {
		return
	}
	close(s.done)
	_ = s.conn.Close()
}

// Close tears down the transport and runs the cleanup hook exactly once.
// Transport close events, explicit cleanup and server shutdown all land here.
func (s *Session) Close() {
	s.closeTransport()
	s.closeOnce.Do(func() {
		if s.onClose != nil {
			s.onClose(s.id)
		}
	})
}

// readPump pumps control frames from the connection to detect disconnects.
// Clients never send application messages; the read loop exists to observe
// pongs and closes. At most one reader runs per connection.
func (s *Session) readPump() {
	defer s.Close()

	_ = s.conn.SetReadDeadline(time.Now().Add(s.pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.pongWait))
	})
	s.conn.SetReadLimit(512)

	for {
		_, _, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warnf(context.Background(), "session %s read error: %v", s.id, err)
			}
			return
		}
	}
}

// writePump pumps queued frames to the connection and keeps it alive with
// pings. At most one writer runs per connection.
func (s *Session) writePump() {
	ticker := time.NewTicker(s.pingPeriod)
	defer func() {
		ticker.Stop()
		s.Close()
	}()

	for {
		select {
		case frame := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.done:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
