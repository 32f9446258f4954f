package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"go.uber.org/atomic"

	"github.com/tobagin/draughts-core/pkg/board"
	"github.com/tobagin/draughts-core/pkg/protocol"
	"github.com/tobagin/draughts-core/pkg/variant"
)

// Version is the relay server's own build version, reported on /health and
// logged at startup.
var Version = build.NewVersion(1, 0, 0)

// Default timings: a 60s disconnect grace, a 30-minute inactivity watchdog
// for untimed rooms, and a 25s keepalive ping interval.
const (
	DefaultDisconnectGrace   = 60 * time.Second
	DefaultInactivityLimit   = 30 * time.Minute
	DefaultKeepaliveInterval = 25 * time.Second
)

// Server is the relay server: the authoritative room registry, matchmaking
// queues, and the WebSocket message router. It deliberately never imports
// pkg/rules — see the package doc.
type Server struct {
	upgrader websocket.Upgrader
	store    *Store

	mu       sync.Mutex
	rooms    map[string]*Room
	sessions map[string]*ClientSession

	quick *quickMatchQueue

	connectionsEver     atomic.Int64
	peakConcurrentGames atomic.Int64

	disconnectGrace   time.Duration
	inactivityLimit   time.Duration
	keepaliveInterval time.Duration
	requiredVersion   string

	startedAt time.Time
}

// Option is a Server creation option.
type Option func(*Server)

// WithDisconnectGrace overrides the default 60s disconnect-grace window.
func WithDisconnectGrace(d time.Duration) Option {
	return func(s *Server) { s.disconnectGrace = d }
}

// WithInactivityLimit overrides the default 30-minute untimed-room inactivity
// watchdog.
func WithInactivityLimit(d time.Duration) Option {
	return func(s *Server) { s.inactivityLimit = d }
}

// WithKeepaliveInterval overrides the default 25s keepalive ping interval.
func WithKeepaliveInterval(d time.Duration) Option {
	return func(s *Server) { s.keepaliveInterval = d }
}

// WithRequiredVersion overrides the minimum client `version` string the
// relay accepts. Defaults to protocol.RequiredVersion.
func WithRequiredVersion(v string) Option {
	return func(s *Server) { s.requiredVersion = v }
}

// NewServer builds a relay server backed by store (may be nil to disable
// persistence entirely, e.g. in tests).
func NewServer(store *Store, opts ...Option) *Server {
	s := &Server{
		upgrader:          websocket.Upgrader{ReadBufferSize: 4096, WriteBufferSize: 4096},
		store:             store,
		rooms:             make(map[string]*Room),
		sessions:          make(map[string]*ClientSession),
		quick:             newQuickMatchQueue(),
		disconnectGrace:   DefaultDisconnectGrace,
		inactivityLimit:   DefaultInactivityLimit,
		keepaliveInterval: DefaultKeepaliveInterval,
		requiredVersion:   protocol.RequiredVersion,
		startedAt:         time.Now(),
	}
	for _, fn := range opts {
		fn(s)
	}
	return s
}

// Routes registers the server's HTTP surface: the WebSocket upgrade endpoint
// and the /health contract. /stats's HTML dashboard is explicitly out of
// core scope; only the JSON shape of /health is part of the engine contract.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)
	return mux
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Rooms   int    `json:"rooms"`
	Clients int    `json:"clients"`
	Uptime  int64  `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := healthResponse{
		Status:  "ok",
		Version: fmt.Sprintf("%v", Version),
		Rooms:   len(s.rooms),
		Clients: len(s.sessions),
		Uptime:  int64(time.Since(s.startedAt).Seconds()),
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// statsResponse is a process-wide stats summary: an HTML dashboard is out
// of core scope, so this is a plain JSON shape rather than a rendered page.
type statsResponse struct {
	ActiveRooms         int   `json:"active_rooms"`
	ConnectionsEver     int64 `json:"connections_ever"`
	PeakConcurrentGames int64 `json:"peak_concurrent_games"`
	GamesCompleted      int64 `json:"games_completed,omitempty"`
	Uptime              int64 `json:"uptime"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	activeRooms := 0
	for _, room := range s.rooms {
		if room.State == Playing {
			activeRooms++
		}
	}
	s.mu.Unlock()

	resp := statsResponse{
		ActiveRooms:         activeRooms,
		ConnectionsEver:     s.connectionsEver.Load(),
		PeakConcurrentGames: s.peakConcurrentGames.Load(),
		Uptime:              int64(time.Since(s.startedAt).Seconds()),
	}
	if s.store != nil {
		if stats, err := s.store.LoadStats(); err == nil {
			resp.ConnectionsEver = stats.ConnectionsEver
			resp.PeakConcurrentGames = stats.PeakConcurrentGames
			resp.GamesCompleted = stats.GamesCompleted
		} else {
			logw.Errorf(r.Context(), "load durable stats failed: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logw.Errorf(r.Context(), "websocket upgrade failed: %v", err)
		return
	}
	go s.serveConn(conn)
}

// serveConn drives one connection end to end: version handshake on the first
// frame, then a read loop dispatching every subsequent frame, until the
// socket closes.
func (s *Server) serveConn(conn *websocket.Conn) {
	ctx := context.Background()

	var sess *ClientSession
	conn.SetPongHandler(func(string) error {
		if sess != nil {
			sess.recordPong(time.Now())
		}
		return nil
	})

	defer func() {
		_ = conn.Close()
		if sess != nil {
			s.onDisconnect(sess, time.Now())
		}
	}()

	first := true
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		now := time.Now()

		if first {
			first = false
			var verr versionedFrame
			if jerr := json.Unmarshal(raw, &verr); jerr != nil || verr.Version == "" {
				s.sendError(conn, now, protocol.ErrParseError, "first frame must declare a version")
				return
			}
			if protocol.CompareVersions(verr.Version, s.requiredVersion) < 0 {
				s.sendVersionMismatch(conn, now, verr.Version)
				return
			}
			s.connectionsEver.Inc()
			if s.store != nil {
				if err := s.store.IncrConnectionsEver(); err != nil {
					logw.Errorf(ctx, "persist connections-ever failed: %v", err)
				}
			}
		}

		sess, err = s.dispatch(conn, sess, raw, now)
		if err != nil {
			logw.Warningf(ctx, "dispatch error: %v", err)
		}
	}
}

type versionedFrame struct {
	Type    protocol.Type `json:"type"`
	Version string        `json:"version"`
}

// dispatch handles one frame. sess is nil until a reconnect/create_room/
// join_room/quick_match assigns one; every later frame on the same
// connection passes the same sess back in and out unchanged.
func (s *Server) dispatch(conn *websocket.Conn, sess *ClientSession, raw []byte, now time.Time) (*ClientSession, error) {
	env, err := protocol.DecodeEnvelope(raw)
	if err != nil {
		s.sendError(conn, now, protocol.ErrParseError, "malformed frame")
		return sess, err
	}

	switch env.Type {
	case protocol.TypeReconnect:
		var msg protocol.ReconnectMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.sendError(conn, now, protocol.ErrParseError, "malformed reconnect")
			return sess, err
		}
		return s.handleReconnect(conn, msg, now)

	case protocol.TypeCreateRoom:
		var msg protocol.CreateRoomMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.sendError(conn, now, protocol.ErrParseError, "malformed create_room")
			return sess, err
		}
		return s.handleCreateRoom(conn, msg, now)

	case protocol.TypeJoinRoom:
		var msg protocol.JoinRoomMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.sendError(conn, now, protocol.ErrParseError, "malformed join_room")
			return sess, err
		}
		return s.handleJoinRoom(conn, msg, now)

	case protocol.TypeQuickMatch:
		var msg protocol.QuickMatchMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.sendError(conn, now, protocol.ErrParseError, "malformed quick_match")
			return sess, err
		}
		return s.handleQuickMatch(conn, msg, now)
	}

	if sess == nil {
		s.sendError(conn, now, protocol.ErrProtocolError, "no session established")
		return sess, fmt.Errorf("frame type %q before session established", env.Type)
	}

	switch env.Type {
	case protocol.TypeCancelQuickMatch:
		s.quick.Cancel(sess)
	case protocol.TypeMakeMove:
		var msg protocol.MakeMoveMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.sendError(conn, now, protocol.ErrParseError, "malformed make_move")
			return sess, err
		}
		s.handleMakeMove(sess, msg, now)
	case protocol.TypeResign:
		s.handleResign(sess, now)
	case protocol.TypeOfferDraw:
		s.relayToOpponent(sess, protocol.DrawOfferedMsg{Type: protocol.TypeDrawOffered, Timestamp: now.UnixMilli()})
	case protocol.TypeAcceptDraw:
		s.handleAcceptDraw(sess, now)
	case protocol.TypeRejectDraw:
		s.relayToOpponent(sess, protocol.DrawResponseMsg{Type: protocol.TypeDrawResponse, Timestamp: now.UnixMilli(), Accepted: false})
	case protocol.TypeGameEndedClient:
		var msg protocol.GameEndedClientMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.sendError(conn, now, protocol.ErrParseError, "malformed game_ended")
			return sess, err
		}
		s.handleClientGameEnded(sess, msg, now)
	case protocol.TypePing:
		s.send(sess, protocol.PongMsg{Type: protocol.TypePong, Timestamp: now.UnixMilli()})
	default:
		s.sendError(conn, now, protocol.ErrUnknownType, fmt.Sprintf("unknown type %q", env.Type))
		return sess, protocol.ErrUnknownMessageType
	}
	return sess, nil
}

func (s *Server) handleReconnect(conn *websocket.Conn, msg protocol.ReconnectMsg, now time.Time) (*ClientSession, error) {
	s.mu.Lock()
	sess, ok := s.sessions[msg.SessionID]
	s.mu.Unlock()

	if !ok {
		s.sendError(conn, now, protocol.ErrNoSuchSession, "no such session")
		return nil, fmt.Errorf("no such session %q", msg.SessionID)
	}
	if _, disconnected := sess.DisconnectedSince(); !disconnected {
		s.sendError(conn, now, protocol.ErrNoSuchSession, "session is not disconnected")
		return nil, fmt.Errorf("session %q not in a disconnected state", msg.SessionID)
	}

	send, closer := sess.Rebind(conn)
	go s.writePump(conn, send, closer)

	room := sess.Room
	resp := protocol.ReconnectedMsg{Type: protocol.TypeReconnected, Timestamp: now.UnixMilli(), SessionID: sess.ID}
	if room != nil {
		colour, _ := room.ColourOf(sess)
		resp.RoomCode = room.Code
		resp.PlayerName = sess.PlayerName
		resp.PlayerColor = colour.String()
		opponent := room.Opponent(sess)
		opponentName := ""
		if opponent != nil {
			opponentName = opponent.PlayerName
		}
		resp.Room = &protocol.ReconnectedRoomInfo{Variant: string(room.Variant.ID), OpponentName: opponentName}
	}
	s.send(sess, resp)

	if room != nil {
		red, black := room.RemainingMs(now)
		started := protocol.GameStartedMsg{
			Type: protocol.TypeGameStarted, Timestamp: now.UnixMilli(),
			Variant: string(room.Variant.ID), RoomCode: room.Code, UseTimer: room.Clock.UseTimer,
			RedRemainingMs: red, BlackRemainingMs: black,
			Moves: room.Moves,
		}
		if c, ok := room.ColourOf(sess); ok {
			started.YourColor = c.String()
			if opp := room.Opponent(sess); opp != nil {
				started.OpponentName = opp.PlayerName
			}
		}
		s.send(sess, started)
		s.relayToOpponent(sess, protocol.OpponentReconnectedMsg{Type: protocol.TypeOpponentReconn, Timestamp: now.UnixMilli()})
	}
	return sess, nil
}

func (s *Server) handleCreateRoom(conn *websocket.Conn, msg protocol.CreateRoomMsg, now time.Time) (*ClientSession, error) {
	v, err := variant.ByID(variant.ID(msg.Variant))
	if err != nil {
		s.sendError(conn, now, protocol.ErrNoSuchRoom, "unknown variant")
		return nil, err
	}

	sess := s.newSession(conn, msg.PlayerName)

	cfg := ClockConfig{UseTimer: msg.UseTimer, MinutesPerSide: msg.MinutesPerSide, IncrementSeconds: msg.IncrementSeconds, ClockType: msg.ClockType}

	s.mu.Lock()
	code, err := GenerateRoomCode(func(c string) bool { _, taken := s.rooms[c]; return taken })
	if err != nil {
		s.mu.Unlock()
		s.sendError(conn, now, protocol.ErrNoSuchRoom, "could not allocate room code")
		return sess, err
	}
	room := NewRoom(code, v, cfg, sess, now)
	s.rooms[code] = room
	s.mu.Unlock()

	sess.Room = room
	s.send(sess, protocol.ConnectedMsg{Type: protocol.TypeConnected, Timestamp: now.UnixMilli(), SessionID: sess.ID})
	s.send(sess, protocol.RoomCreatedMsg{Type: protocol.TypeRoomCreated, Timestamp: now.UnixMilli(), RoomCode: code, PlayerColor: board.Red.String()})
	return sess, nil
}

func (s *Server) handleJoinRoom(conn *websocket.Conn, msg protocol.JoinRoomMsg, now time.Time) (*ClientSession, error) {
	s.mu.Lock()
	room, ok := s.rooms[msg.RoomCode]
	s.mu.Unlock()

	if !ok {
		s.sendError(conn, now, protocol.ErrNoSuchRoom, "no such room")
		return nil, fmt.Errorf("no such room %q", msg.RoomCode)
	}
	if room.State != Open {
		code := protocol.ErrRoomFull
		if room.State == Closed {
			code = protocol.ErrNoSuchRoom
		}
		s.sendError(conn, now, code, "room is not open")
		return nil, fmt.Errorf("room %q not open (state=%v)", msg.RoomCode, room.State)
	}

	sess := s.newSession(conn, msg.PlayerName)
	sess.Room = room

	room.Fill(sess, now)
	s.bumpActiveGames()

	s.send(sess, protocol.ConnectedMsg{Type: protocol.TypeConnected, Timestamp: now.UnixMilli(), SessionID: sess.ID})
	s.send(room.Host, protocol.OpponentJoinedMsg{Type: protocol.TypeOpponentJoined, Timestamp: now.UnixMilli(), OpponentName: msg.PlayerName})

	red, black := room.RemainingMs(now)
	base := protocol.GameStartedMsg{
		Type: protocol.TypeGameStarted, Timestamp: now.UnixMilli(),
		Variant: string(room.Variant.ID), RoomCode: room.Code, UseTimer: room.Clock.UseTimer,
		MinutesPerSide: room.Clock.MinutesPerSide, IncrementSeconds: room.Clock.IncrementSeconds, ClockType: room.Clock.ClockType,
		RedRemainingMs: red, BlackRemainingMs: black,
	}

	hostMsg := base
	hostMsg.YourColor = board.Red.String()
	hostMsg.OpponentName = msg.PlayerName
	s.send(room.Host, hostMsg)

	guestMsg := base
	guestMsg.YourColor = board.Black.String()
	guestMsg.OpponentName = room.Host.PlayerName
	s.send(sess, guestMsg)

	return sess, nil
}

func (s *Server) handleQuickMatch(conn *websocket.Conn, msg protocol.QuickMatchMsg, now time.Time) (*ClientSession, error) {
	v, err := variant.ByID(variant.ID(msg.Variant))
	if err != nil {
		s.sendError(conn, now, protocol.ErrNoSuchRoom, "unknown variant")
		return nil, err
	}

	sess := s.newSession(conn, msg.PlayerName)
	s.send(sess, protocol.ConnectedMsg{Type: protocol.TypeConnected, Timestamp: now.UnixMilli(), SessionID: sess.ID})

	opponent, matched := s.quick.MatchOrEnqueue(msg.Variant, sess)
	if !matched {
		s.send(sess, protocol.QuickMatchSearchingMsg{Type: protocol.TypeQuickMatchSearching, Timestamp: now.UnixMilli()})
		return sess, nil
	}

	// Quick-match rooms default to Untimed.
	cfg := ClockConfig{UseTimer: false}

	s.mu.Lock()
	code, err := GenerateRoomCode(func(c string) bool { _, taken := s.rooms[c]; return taken })
	if err != nil {
		s.mu.Unlock()
		return sess, err
	}
	room := NewRoom(code, v, cfg, opponent, now)
	room.Fill(sess, now)
	s.rooms[code] = room
	s.mu.Unlock()

	opponent.Room = room
	sess.Room = room
	s.bumpActiveGames()

	s.send(opponent, protocol.QuickMatchFoundMsg{Type: protocol.TypeQuickMatchFound, Timestamp: now.UnixMilli(), RoomCode: code})
	s.send(sess, protocol.QuickMatchFoundMsg{Type: protocol.TypeQuickMatchFound, Timestamp: now.UnixMilli(), RoomCode: code})

	base := protocol.GameStartedMsg{Type: protocol.TypeGameStarted, Timestamp: now.UnixMilli(), Variant: string(v.ID), RoomCode: code, UseTimer: false}

	hostMsg := base
	hostMsg.YourColor = board.Red.String()
	hostMsg.OpponentName = sess.PlayerName
	s.send(opponent, hostMsg)

	guestMsg := base
	guestMsg.YourColor = board.Black.String()
	guestMsg.OpponentName = opponent.PlayerName
	s.send(sess, guestMsg)

	return sess, nil
}

func (s *Server) newSession(conn *websocket.Conn, playerName string) *ClientSession {
	sess := NewClientSession(uuid.NewString(), conn)
	sess.PlayerName = playerName

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	send, closer := sess.generation()
	go s.writePump(conn, send, closer)
	return sess
}

// writePump drains send and writes each frame to conn, for one connection
// generation. A reconnect calls Rebind, which closes closer so this goroutine
// exits instead of blocking forever on the now-orphaned send channel from a
// prior generation. conn is captured once at spawn time rather than read live
// off the session, so a pump can never write to a newer generation's socket
// after losing a select race against its own closer.
func (s *Server) writePump(conn *websocket.Conn, send chan []byte, closer iox.AsyncCloser) {
	for {
		select {
		case raw, ok := <-send:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-closer.Closed():
			return
		}
	}
}

func (s *Server) handleMakeMove(sess *ClientSession, msg protocol.MakeMoveMsg, now time.Time) {
	room := sess.Room
	if room == nil || room.State != Playing {
		return
	}
	colour, ok := room.ColourOf(sess)
	if !ok || colour != room.Active {
		return
	}

	room.ApplyMove(msg.Move, now)

	red, black := room.RemainingMs(now)
	out := protocol.MoveMadeMsg{Type: protocol.TypeMoveMade, Timestamp: now.UnixMilli(), Move: msg.Move, RedRemainingMs: red, BlackRemainingMs: black}
	s.send(room.Host, out)
	s.send(room.Guest, out)
}

func (s *Server) handleResign(sess *ClientSession, now time.Time) {
	room := sess.Room
	if room == nil || room.State != Playing {
		return
	}
	colour, ok := room.ColourOf(sess)
	if !ok {
		return
	}
	result := protocol.ResultBlackWins
	if colour == board.Black {
		result = protocol.ResultRedWins
	}
	s.endGame(room, result, protocol.ReasonResignation, now)
}

func (s *Server) handleAcceptDraw(sess *ClientSession, now time.Time) {
	room := sess.Room
	if room == nil || room.State != Playing {
		return
	}
	s.relayToOpponent(sess, protocol.DrawResponseMsg{Type: protocol.TypeDrawResponse, Timestamp: now.UnixMilli(), Accepted: true})
	s.endGame(room, protocol.ResultDraw, protocol.ReasonAgreement, now)
}

func (s *Server) handleClientGameEnded(sess *ClientSession, msg protocol.GameEndedClientMsg, now time.Time) {
	room := sess.Room
	if room == nil || room.State != Playing {
		return
	}
	s.endGame(room, msg.Result, msg.Reason, now)
}

// endGame closes a room and broadcasts the final result to both seats,
// persisting the completed game if a store is configured. Persistence
// failures are logged, never surfaced.
func (s *Server) endGame(room *Room, result protocol.Result, reason protocol.Reason, now time.Time) {
	room.Close()
	s.bumpActiveGames()

	out := protocol.GameEndedMsg{Type: protocol.TypeGameEnded, Timestamp: now.UnixMilli(), Result: result, Reason: reason}
	s.send(room.Host, out)
	s.send(room.Guest, out)

	s.mu.Lock()
	delete(s.rooms, room.Code)
	s.mu.Unlock()

	if s.store != nil {
		go func() {
			g := CompletedGame{RoomCode: room.Code, VariantID: string(room.Variant.ID), Moves: room.Moves, Result: result, Reason: reason, StartedAt: room.StartedAt, EndedAt: now}
			if err := s.store.SaveCompletedGame(g); err != nil {
				logw.Errorf(context.Background(), "persist completed game %v failed: %v", room.Code, err)
			}
		}()
	}
}

func (s *Server) relayToOpponent(sess *ClientSession, msg any) {
	room := sess.Room
	if room == nil {
		return
	}
	if opp := room.Opponent(sess); opp != nil {
		s.send(opp, msg)
	}
}

func (s *Server) send(sess *ClientSession, msg any) {
	if sess == nil {
		return
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return
	}
	sess.Send(raw)
}

func (s *Server) sendError(conn *websocket.Conn, now time.Time, code protocol.ErrorCode, desc string) {
	msg := protocol.NewError(now, code, desc)
	raw, err := json.Marshal(msg)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, raw)
}

func (s *Server) sendVersionMismatch(conn *websocket.Conn, now time.Time, clientVersion string) {
	msg := protocol.NewError(now, protocol.ErrVersionMismatch, "client version too old")
	msg.RequiredVersion = s.requiredVersion
	msg.ClientVersion = clientVersion
	raw, err := json.Marshal(msg)
	if err == nil {
		_ = conn.WriteMessage(websocket.TextMessage, raw)
	}
	_ = conn.Close()
}

// bumpActiveGames recomputes the live count of rooms in Playing state and,
// if it is a new high, records it as the peak. Called after any transition
// into or out of Playing; it recounts from the registry rather than
// tracking a running delta so it can never drift out of sync with it.
func (s *Server) bumpActiveGames() {
	s.mu.Lock()
	count := int64(0)
	for _, r := range s.rooms {
		if r.State == Playing {
			count++
		}
	}
	s.mu.Unlock()

	if count > s.peakConcurrentGames.Load() {
		s.peakConcurrentGames.Store(count)
		if s.store != nil {
			if err := s.store.RecordPeakConcurrentGames(count); err != nil {
				logw.Errorf(context.Background(), "persist peak concurrent games failed: %v", err)
			}
		}
	}
}

// onDisconnect marks a session disconnected and notifies its opponent. The
// session itself is not torn down yet: Sweep handles grace expiry.
func (s *Server) onDisconnect(sess *ClientSession, now time.Time) {
	s.quick.Cancel(sess)
	sess.MarkDisconnected(now)

	if room := sess.Room; room != nil && room.State == Playing {
		s.relayToOpponent(sess, protocol.OpponentDisconnectedMsg{Type: protocol.TypeOpponentDisconn, Timestamp: now.UnixMilli()})
	}
}

// Sweep runs the disconnect-grace, inactivity-watchdog, and keepalive
// checks. It is pure with respect to `now`, so tests can drive it
// deterministically instead of waiting on real timers; a running server
// calls it from a goroutine on a short ticker with time.Now().
func (s *Server) Sweep(now time.Time) {
	s.sweepKeepalive(now)
	s.sweepDisconnectGrace(now)
	s.sweepInactivity(now)
}

func (s *Server) sweepKeepalive(now time.Time) {
	s.mu.Lock()
	sessions := make([]*ClientSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		conn := sess.connection()
		if conn == nil {
			continue
		}
		if sess.missedTwoPings(now, s.keepaliveInterval) {
			_ = conn.Close()
			continue
		}
		if now.Sub(sess.lastPingAt) >= s.keepaliveInterval {
			sess.recordPing(now)
			_ = conn.WriteControl(websocket.PingMessage, nil, now.Add(5*time.Second))
		}
	}
}

func (s *Server) sweepDisconnectGrace(now time.Time) {
	s.mu.Lock()
	rooms := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	s.mu.Unlock()

	for _, room := range rooms {
		if room.State != Playing {
			continue
		}
		for _, sess := range []*ClientSession{room.Host, room.Guest} {
			if sess == nil {
				continue
			}
			since, disconnected := sess.DisconnectedSince()
			if !disconnected || now.Sub(since) < s.disconnectGrace {
				continue
			}
			colour, _ := room.ColourOf(sess)
			result := protocol.ResultBlackWins
			if colour == board.Black {
				result = protocol.ResultRedWins
			}
			s.endGame(room, result, protocol.ReasonOpponentTimeout, now)
			break
		}
	}
}

func (s *Server) sweepInactivity(now time.Time) {
	s.mu.Lock()
	rooms := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	s.mu.Unlock()

	for _, room := range rooms {
		if room.State != Playing || room.Clock.UseTimer {
			continue
		}
		if now.Sub(room.LastActivityAt) >= s.inactivityLimit {
			s.endGame(room, protocol.ResultDraw, protocol.ReasonInactivity, now)
		}
	}
}

// Run drives Sweep on a ticker until ctx is cancelled. interval should be
// small relative to the keepalive/grace/inactivity windows (a few seconds)
// so expiry is detected promptly without a dedicated timer per session.
func (s *Server) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			s.Sweep(t)
		}
	}
}
