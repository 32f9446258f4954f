// Package session is the session controller: it drives a single game,
// owning one game.Machine, one clock.Pair, the chosen variant.Variant, both
// players' identities, and a small typed event bus. The controller never
// polls wall time itself — every timestamp is caller-supplied, keeping it
// deterministic and testable. Events flow through a buffered channel the
// caller drains at its own pace, rather than a callback run inside the
// controller's own call stack.
package session

import (
	"context"
	"time"

	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/tobagin/draughts-core/pkg/board"
	"github.com/tobagin/draughts-core/pkg/clock"
	"github.com/tobagin/draughts-core/pkg/game"
	"github.com/tobagin/draughts-core/pkg/rules"
	"github.com/tobagin/draughts-core/pkg/variant"
)

// PlayerKind distinguishes who is behind a colour's moves.
type PlayerKind uint8

const (
	Human PlayerKind = iota
	AI
	RemoteNetwork
)

// Player identifies one side of a session.
type Player struct {
	ID   string
	Kind PlayerKind
	Name string
}

// EventType tags an Event's payload.
type EventType string

const (
	StateChanged EventType = "state-changed"
	MoveMade     EventType = "move-made"
	GameEnded    EventType = "game-ended"
	ClockTick    EventType = "clock-tick"
)

// Event is the controller's one typed record, emitted through a channel the
// caller drains; no subscriber ever runs inside the controller's own call
// stack.
type Event struct {
	Type EventType

	State    *board.GameState
	LastMove lang.Optional[board.Move]

	Move board.Move

	Status board.GameStatus
	Reason string

	RedRemaining, BlackRemaining time.Duration
}

// Session drives one game end to end.
type Session struct {
	machine *game.Machine
	clocks  *clock.Pair
	variant variant.Variant
	players [board.NumColours]Player

	events chan Event
}

// New builds a session. multiplayer disables undo/redo on the underlying
// machine. A clock.Mode of clock.Untimed makes the clock pair inert.
func New(v variant.Variant, red, black Player, mode clock.Mode, base, increment time.Duration, multiplayer bool) *Session {
	s := &Session{
		machine: game.NewMachine(v, multiplayer),
		clocks:  clock.NewPair(mode, base, increment),
		variant: v,
		events:  make(chan Event, 256),
	}
	s.players[board.Red] = red
	s.players[board.Black] = black
	return s
}

// Events returns the channel the caller must drain for state-changed,
// move-made, game-ended, and clock-tick notifications.
func (s *Session) Events() <-chan Event {
	return s.events
}

func (s *Session) emit(e Event) {
	s.events <- e
}

// Variant returns the rule variant this session plays under.
func (s *Session) Variant() variant.Variant {
	return s.variant
}

// Player returns the identity playing the given colour.
func (s *Session) Player(c board.Colour) Player {
	return s.players[c]
}

// LiveState returns a share-free snapshot of the current position.
func (s *Session) LiveState() *board.GameState {
	return s.machine.LiveState()
}

// Start begins the game clock for the side to move (Red always moves first)
// and emits the opening state-changed event.
func (s *Session) Start(now time.Time) {
	live := s.machine.LiveState()
	s.clocks.OnMoveStarted(live.Active, now)
	s.emit(Event{Type: StateChanged, State: live})
}

// MakeMove validates candidate against the live state, stops the mover's
// clock, applies the move, and — unless the game just ended — starts the new
// active colour's clock. Emits move-made and state-changed, then game-ended if
// terminal.
func (s *Session) MakeMove(candidate board.Move, now time.Time) error {
	live := s.machine.LiveState()
	if live.Status != board.InProgress {
		return game.ErrGameOver
	}
	if err := rules.ValidateMove(live, s.variant, candidate); err != nil {
		return err
	}

	mover := live.Active
	s.clocks.OnMoveEnded(mover, now)

	if err := s.machine.Apply(candidate); err != nil {
		return err
	}

	next := s.machine.LiveState()
	s.emit(Event{Type: MoveMade, Move: candidate})
	s.emit(Event{Type: StateChanged, State: next, LastMove: lang.Some(candidate)})

	if next.Status != board.InProgress {
		s.emit(Event{Type: GameEnded, Status: next.Status, Reason: terminalReason(next)})
		return nil
	}

	s.clocks.OnMoveStarted(next.Active, now)
	return nil
}

// CheckTimeout projects both clocks to now and, if either has expired, force-
// ends the game with the opponent as winner and emits game-ended. Returns
// whether the game ended as a result of this call.
func (s *Session) CheckTimeout(now time.Time) bool {
	live := s.machine.LiveState()
	if live.Status != board.InProgress {
		return false
	}

	colour, expired := s.clocks.CheckExpired(now)
	if !expired {
		return false
	}

	status := board.WinFor(colour.Opposite())
	s.machine.ForceTerminal(status, lang.Optional[board.DrawReason]{})
	s.emit(Event{Type: GameEnded, Status: status, Reason: "timeout"})
	return true
}

// Resign ends the game immediately with the opposite colour winning.
func (s *Session) Resign(resigning board.Colour) {
	status := board.WinFor(resigning.Opposite())
	s.machine.ForceTerminal(status, lang.Optional[board.DrawReason]{})
	s.emit(Event{Type: GameEnded, Status: status, Reason: "resignation"})
}

// AcceptDraw ends the game as a draw by agreement.
func (s *Session) AcceptDraw() {
	s.machine.ForceTerminal(board.Draw, lang.Some(board.Agreement))
	s.emit(Event{Type: GameEnded, Status: board.Draw, Reason: board.Agreement.String()})
}

// Tick emits a clock-tick event with both sides' remaining time projected to
// now, without mutating clock state.
func (s *Session) Tick(now time.Time) {
	s.emit(Event{
		Type:           ClockTick,
		RedRemaining:   s.clocks.Red.Projected(now),
		BlackRemaining: s.clocks.Black.Projected(now),
	})
}

// Undo, Redo, ViewAt, and ReturnToLive delegate to the underlying machine.
// Undo, Redo and ReturnToLive emit state-changed on success; ViewAt changes
// nothing and emits no event. The controller owns clocks and history
// together, so a caller wiring these into a UI gets a single event stream.

func (s *Session) Undo(ctx context.Context) error {
	if err := s.machine.Undo(ctx); err != nil {
		return err
	}
	s.emit(Event{Type: StateChanged, State: s.machine.LiveState()})
	return nil
}

func (s *Session) Redo(ctx context.Context) error {
	if err := s.machine.Redo(ctx); err != nil {
		return err
	}
	s.emit(Event{Type: StateChanged, State: s.machine.LiveState()})
	return nil
}

func (s *Session) ViewAt(i int) (*board.GameState, error) {
	return s.machine.ViewAt(i)
}

func (s *Session) ReturnToLive() {
	s.machine.ReturnToLive()
	s.emit(Event{Type: StateChanged, State: s.machine.LiveState()})
}

func terminalReason(state *board.GameState) string {
	if r, ok := state.DrawReason.V(); ok {
		return r.String()
	}
	return "game_over"
}
