package game

import (
	"context"
	"fmt"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/tobagin/draughts-core/pkg/board"
	"github.com/tobagin/draughts-core/pkg/rules"
	"github.com/tobagin/draughts-core/pkg/variant"
)

// Machine is a single game's authoritative history: the initial layout, every
// move applied since, a cursor into that history, and a redo tail of moves
// undone but not yet overwritten. It is the only component that mutates state;
// pkg/rules stays pure.
//
// states[k] is the snapshot after the first k moves of history have been
// applied (states[0] is the initial layout). cursor ranges from -1 (initial
// setup) to len(history)-1; the live state is states[cursor+1]. Undo never
// truncates history or states, only moves cursor back and grows redoTail;
// states are truncated only when Apply is called from a non-live cursor,
// discarding the redone-over future.
type Machine struct {
	variant     variant.Variant
	history     []board.Move
	states      []*board.GameState
	cursor      int
	redoTail    []board.Move
	multiplayer bool

	// recentHashes mirrors the position hash of every entry in states, consulted
	// by CheckDraw. Kept in lockstep with states rather than recomputed, since
	// repetition detection needs the whole played history, not just the
	// current position.
	recentHashes []board.Hash
}

// NewMachine starts a fresh game under v. When multiplayer is true, Undo and
// Redo are permanently disabled for this Machine.
func NewMachine(v variant.Variant, multiplayer bool) *Machine {
	initial := board.NewGameState(v.StartingLayout(), v.BoardSize)
	return NewMachineFromState(v, initial, multiplayer)
}

// NewMachineFromState starts a machine from an arbitrary initial state, with no
// history yet applied. Used to resume a persisted or notation-imported game and,
// in tests, to seed positions the starting layout can't reach directly.
func NewMachineFromState(v variant.Variant, initial *board.GameState, multiplayer bool) *Machine {
	seed := initial.Clone()
	return &Machine{
		variant:      v,
		states:       []*board.GameState{seed},
		cursor:       -1,
		multiplayer:  multiplayer,
		recentHashes: []board.Hash{seed.Hash()},
	}
}

// Variant returns the rule variant this machine plays under.
func (m *Machine) Variant() variant.Variant {
	return m.variant
}

// LiveState returns a share-free snapshot of the current live position.
func (m *Machine) LiveState() *board.GameState {
	return m.states[m.cursor+1].Clone()
}

// Cursor returns the current history cursor: -1 means initial setup, k means
// "after the (k+1)-th applied move."
func (m *Machine) Cursor() int {
	return m.cursor
}

// History returns a copy of every move applied so far, regardless of cursor
// position (i.e. including any moves ahead of the cursor that are still in the
// redo tail's reach because Apply has not truncated them).
func (m *Machine) History() []board.Move {
	return append([]board.Move(nil), m.history...)
}

// IsLive reports whether the cursor sits at the most recent applied move
// (equivalently, whether no undone move is left ahead of the cursor).
func (m *Machine) IsLive() bool {
	return m.cursor == len(m.history)-1
}

// Apply validates and executes move against the live state. If the cursor is
// not at the live end (the caller had navigated back with Undo and is
// now making a new move), the redo tail and any states/history beyond the
// cursor are discarded first — a new move always supersedes an undone future.
func (m *Machine) Apply(move board.Move) error {
	live := m.states[m.cursor+1]
	if live.Status != board.InProgress {
		return ErrGameOver
	}

	if !m.IsLive() {
		m.history = m.history[:m.cursor+1]
		m.states = m.states[:m.cursor+2]
		m.recentHashes = m.recentHashes[:m.cursor+2]
		m.redoTail = nil
	}

	next, err := rules.Execute(live, m.variant, move)
	if err != nil {
		return err
	}

	// CheckDraw's repetition count must include the position just reached, not
	// only the ones strictly before it, so the candidate history passed in
	// already has next's hash appended.
	candidateHistory := append(append([]board.Hash(nil), m.recentHashes...), next.Hash())
	if reason, drawn := rules.CheckDraw(next, m.variant, candidateHistory); drawn {
		next.Status = board.Draw
		next.DrawReason = lang.Some(reason)
	}

	m.history = append(m.history, move)
	m.states = append(m.states, next)
	m.recentHashes = candidateHistory
	m.cursor = len(m.history) - 1
	m.redoTail = nil
	return nil
}

// Undo retreats the cursor by one move, pushing the undone move onto the front
// of the redo tail. Disabled in multiplayer mode: the attempt is a no-op and
// logs a warning rather than silently succeeding or panicking.
func (m *Machine) Undo(ctx context.Context) error {
	if m.multiplayer {
		logw.Warningf(ctx, "undo rejected: history navigation disabled in multiplayer mode")
		return ErrHistoryNavigationDisabled
	}
	if m.cursor < 0 {
		return ErrNothingToUndo
	}
	m.redoTail = append([]board.Move{m.history[m.cursor]}, m.redoTail...)
	m.cursor--
	return nil
}

// Redo re-applies the head of the redo tail, advancing the cursor. Disabled in
// multiplayer mode: the attempt is a no-op and logs a warning rather than
// silently succeeding or panicking.
func (m *Machine) Redo(ctx context.Context) error {
	if m.multiplayer {
		logw.Warningf(ctx, "redo rejected: history navigation disabled in multiplayer mode")
		return ErrHistoryNavigationDisabled
	}
	if len(m.redoTail) == 0 {
		return ErrNothingToRedo
	}
	m.redoTail = m.redoTail[1:]
	m.cursor++
	return nil
}

// ViewAt returns a freshly reconstructed snapshot at history position i (-1 is
// the initial setup) without disturbing the cursor, history, or redo tail.
func (m *Machine) ViewAt(i int) (*board.GameState, error) {
	idx := i + 1
	if idx < 0 || idx >= len(m.states) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchPosition, i)
	}
	return m.states[idx].Clone(), nil
}

// ReturnToLive moves the cursor back to the most recently applied move without
// mutating history.
func (m *Machine) ReturnToLive() {
	m.cursor = len(m.history) - 1
}

// ForceTerminal marks the live state as ended for a reason the rule engine
// itself never produces: clock expiry, resignation, draw agreement, or an
// inactivity/disconnect timeout. It does not append to history, since no move
// was played.
func (m *Machine) ForceTerminal(status board.GameStatus, reason lang.Optional[board.DrawReason]) {
	live := m.states[m.cursor+1]
	live.Status = status
	live.DrawReason = reason
}
