package server

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/tobagin/draughts-core/pkg/board"
	"github.com/tobagin/draughts-core/pkg/clock"
	"github.com/tobagin/draughts-core/pkg/protocol"
	"github.com/tobagin/draughts-core/pkg/variant"
)

// RoomState is a room's lifecycle: Open -> Filled -> Playing -> Closed.
type RoomState uint8

const (
	Open RoomState = iota
	Filled
	Playing
	Closed
)

func (s RoomState) String() string {
	switch s {
	case Open:
		return "open"
	case Filled:
		return "filled"
	case Playing:
		return "playing"
	case Closed:
		return "closed"
	default:
		return "?"
	}
}

// ClockConfig is a room's clock configuration as declared by create_room.
type ClockConfig struct {
	UseTimer         bool
	MinutesPerSide   int
	IncrementSeconds int
	ClockType        protocol.ClockType
}

func (c ClockConfig) mode() clock.Mode {
	if !c.UseTimer {
		return clock.Untimed
	}
	if c.ClockType == protocol.ClockTypeBronstein {
		return clock.Bronstein
	}
	return clock.Fischer
}

func (c ClockConfig) base() time.Duration {
	return time.Duration(c.MinutesPerSide) * time.Minute
}

func (c ClockConfig) increment() time.Duration {
	return time.Duration(c.IncrementSeconds) * time.Second
}

// roomCodeAlphabet excludes no characters: codes are plain 6-character
// uppercase alphanumeric, and draughts room codes are read off a screen by a
// second human typing them in, not screened for profanity or look-alike
// ambiguity here.
const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRoomCode produces a fresh 6-character code by rejection sampling:
// draw a candidate, retry if `taken` reports it live. `taken` is expected to
// be backed by the registry's current key set under its own lock.
func GenerateRoomCode(taken func(string) bool) (string, error) {
	for attempt := 0; attempt < 10_000; attempt++ {
		candidate, err := randomRoomCode()
		if err != nil {
			return "", err
		}
		if !taken(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not find a free room code after repeated sampling")
}

func randomRoomCode() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := make([]byte, 6)
	for i, b := range buf {
		code[i] = roomCodeAlphabet[int(b)%len(roomCodeAlphabet)]
	}
	return string(code), nil
}

// Room is one two-seat game the relay server is authoritative for. It never
// runs pkg/rules: legality is each client's responsibility. The server only
// relays move payloads, tracks elapsed time against the declared clock
// config, and tears the room down on disconnect-grace or inactivity expiry.
type Room struct {
	Code      string
	Variant   variant.Variant
	Clock     ClockConfig
	State     RoomState

	Host  *ClientSession
	Guest *ClientSession

	Active         board.Colour
	Moves          []protocol.Move
	Clocks         *clock.Pair
	StartedAt      time.Time
	LastActivityAt time.Time

	// Disconnect-grace and inactivity expiry are checked by Server.Sweep
	// against LastActivityAt and each session's disconnect time; Room itself
	// does not schedule anything, keeping its own methods synchronous and
	// trivially testable.
}

// NewRoom opens a room hosted by host, Red by convention.
func NewRoom(code string, v variant.Variant, cfg ClockConfig, host *ClientSession, now time.Time) *Room {
	r := &Room{
		Code:           code,
		Variant:        v,
		Clock:          cfg,
		State:          Open,
		Host:           host,
		Active:         board.Red,
		LastActivityAt: now,
	}
	if cfg.UseTimer {
		r.Clocks = clock.NewPair(cfg.mode(), cfg.base(), cfg.increment())
	}
	return r
}

// Fill seats guest as Black and transitions Open -> Filled -> Playing,
// starting the clock for Red (who always moves first).
func (r *Room) Fill(guest *ClientSession, now time.Time) {
	r.Guest = guest
	r.State = Playing
	r.StartedAt = now
	r.LastActivityAt = now
	if r.Clocks != nil {
		r.Clocks.OnMoveStarted(board.Red, now)
	}
}

// SessionFor returns the session playing the given colour.
func (r *Room) SessionFor(c board.Colour) *ClientSession {
	if c == board.Red {
		return r.Host
	}
	return r.Guest
}

// ColourOf returns the colour a session plays in this room.
func (r *Room) ColourOf(s *ClientSession) (board.Colour, bool) {
	if r.Host == s {
		return board.Red, true
	}
	if r.Guest == s {
		return board.Black, true
	}
	return board.ZeroColour, false
}

// Opponent returns the other session in the room, if seated.
func (r *Room) Opponent(s *ClientSession) *ClientSession {
	if r.Host == s {
		return r.Guest
	}
	if r.Guest == s {
		return r.Host
	}
	return nil
}

// RemainingMs returns both sides' projected remaining time, in milliseconds,
// as of now. Zero for an untimed room.
func (r *Room) RemainingMs(now time.Time) (red, black int64) {
	if r.Clocks == nil {
		return 0, 0
	}
	return r.Clocks.Red.Projected(now).Milliseconds(), r.Clocks.Black.Projected(now).Milliseconds()
}

// ApplyMove is the authoritative per-move critical section: compute the
// timer delta, update the active colour, append the move, and refresh
// LastActivityAt, all before the caller broadcasts. It never re-derives
// captured ids or promotion — those came from the client and are trusted
// outright; the relay does not validate draughts legality.
func (r *Room) ApplyMove(m protocol.Move, now time.Time) {
	mover := r.Active
	if r.Clocks != nil {
		r.Clocks.OnMoveEnded(mover, now)
	}

	r.Moves = append(r.Moves, m)
	r.Active = mover.Opposite()
	r.LastActivityAt = now

	if r.Clocks != nil {
		r.Clocks.OnMoveStarted(r.Active, now)
	}
}

// Close tears the room down; no further messages are processed afterward.
func (r *Room) Close() {
	r.State = Closed
}

