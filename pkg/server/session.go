package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// ClientSession is one WebSocket connection's server-side state: its opaque
// session id (survives a reconnect), the live socket (nil while
// disconnected-but-in-grace), an outbound send queue, and the room it is
// seated in, if any. Grounded on the scribble.rs port's Player record
// (internal/game/shared.go: ws *websocket.Conn guarded by a socketMutex,
// plus a disconnectTime used for grace handling) — the same shape, carrying
// a room seat instead of a drawing lobby's score/rank fields.
type ClientSession struct {
	ID string

	PlayerName string
	Room       *Room

	mu             sync.Mutex
	conn           *websocket.Conn
	send           chan []byte
	closer         iox.AsyncCloser // signals this generation's writePump to exit
	disconnectedAt *time.Time
	lastPingAt     time.Time
	lastPongAt     time.Time

	QuickMatchVariant string // non-empty while queued
}

// NewClientSession wraps a freshly upgraded connection under a new session id.
func NewClientSession(id string, conn *websocket.Conn) *ClientSession {
	now := time.Now()
	return &ClientSession{
		ID:         id,
		conn:       conn,
		send:       make(chan []byte, 64),
		closer:     iox.NewAsyncCloser(),
		lastPingAt: now,
		lastPongAt: now,
	}
}

// generation returns the send channel and closer for the session's current
// connection, for the caller to hand to a freshly spawned writePump.
func (s *ClientSession) generation() (chan []byte, iox.AsyncCloser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.send, s.closer
}

// Send enqueues a frame for the write pump. Never blocks: a session whose
// send queue is full is already in trouble, and the frame is dropped here
// rather than backing up the caller.
func (s *ClientSession) Send(raw []byte) {
	select {
	case s.send <- raw:
	default:
	}
}

// Rebind attaches a new live connection to an existing (previously
// disconnected) session, for the reconnect flow. It closes the prior
// connection generation's AsyncCloser so that generation's writePump
// goroutine observes the signal and exits instead of blocking forever on an
// orphaned send channel, then returns the new generation's send channel and
// closer for the caller to spawn a replacement writePump against.
func (s *ClientSession) Rebind(conn *websocket.Conn) (chan []byte, iox.AsyncCloser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closer.Close()
	s.conn = conn
	s.send = make(chan []byte, 64)
	s.closer = iox.NewAsyncCloser()
	s.disconnectedAt = nil
	now := time.Now()
	s.lastPingAt, s.lastPongAt = now, now
	return s.send, s.closer
}

// MarkDisconnected records the moment the socket closed, starting the grace
// window that Server.Sweep checks against the disconnect-grace limit.
func (s *ClientSession) MarkDisconnected(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn = nil
	s.disconnectedAt = &at
}

func (s *ClientSession) connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// DisconnectedSince reports how long ago the session dropped, if it has.
func (s *ClientSession) DisconnectedSince() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disconnectedAt == nil {
		return time.Time{}, false
	}
	return *s.disconnectedAt, true
}

func (s *ClientSession) recordPong(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPongAt = at
}

func (s *ClientSession) recordPing(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPingAt = at
}

// missedTwoPings reports whether more than two keepalive intervals have
// passed since the last pong arrived.
func (s *ClientSession) missedTwoPings(now time.Time, interval time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastPongAt) > 2*interval
}

func (s *ClientSession) connection() *websocket.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}
