package game_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobagin/draughts-core/pkg/board"
	"github.com/tobagin/draughts-core/pkg/game"
	"github.com/tobagin/draughts-core/pkg/rules"
	"github.com/tobagin/draughts-core/pkg/variant"
)

func firstLegalMove(t *testing.T, state *board.GameState, v variant.Variant) board.Move {
	t.Helper()
	moves := rules.GenerateLegalMoves(state, v)
	require.NotEmpty(t, moves)
	return moves[0]
}

func TestApplyAdvancesCursorAndHistory(t *testing.T) {
	v, err := variant.ByID(variant.American)
	require.NoError(t, err)

	m := game.NewMachine(v, false)
	move := firstLegalMove(t, m.LiveState(), v)

	require.NoError(t, m.Apply(move))
	assert.Equal(t, 0, m.Cursor())
	assert.Len(t, m.History(), 1)
	assert.Equal(t, board.Black, m.LiveState().Active)
}

// undo(apply(S,M)) should yield a state structurally equal to S.
func TestUndoRestoresPriorState(t *testing.T) {
	v, err := variant.ByID(variant.American)
	require.NoError(t, err)

	m := game.NewMachine(v, false)
	before := m.LiveState()
	move := firstLegalMove(t, before, v)

	require.NoError(t, m.Apply(move))
	require.NoError(t, m.Undo(context.Background()))

	after := m.LiveState()
	assert.Equal(t, -1, m.Cursor())
	assert.Equal(t, before.Active, after.Active)
	assert.Equal(t, before.MoveCount, after.MoveCount)
	assert.Equal(t, len(before.Pieces), len(after.Pieces))
}

// redo(undo(apply(S,M))) should yield the same state as apply(S,M).
func TestRedoReappliesUndoneMove(t *testing.T) {
	v, err := variant.ByID(variant.American)
	require.NoError(t, err)

	m := game.NewMachine(v, false)
	move := firstLegalMove(t, m.LiveState(), v)
	require.NoError(t, m.Apply(move))
	wantActive := m.LiveState().Active
	wantMoveCount := m.LiveState().MoveCount

	require.NoError(t, m.Undo(context.Background()))
	require.NoError(t, m.Redo(context.Background()))

	got := m.LiveState()
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, wantActive, got.Active)
	assert.Equal(t, wantMoveCount, got.MoveCount)
}

// view_at should be idempotent and never mutate cursor, history, or state.
func TestViewAtDoesNotMutateCursor(t *testing.T) {
	v, err := variant.ByID(variant.American)
	require.NoError(t, err)

	m := game.NewMachine(v, false)
	move := firstLegalMove(t, m.LiveState(), v)
	require.NoError(t, m.Apply(move))

	snapshot, err := m.ViewAt(-1)
	require.NoError(t, err)
	assert.Equal(t, board.Red, snapshot.Active)
	assert.Equal(t, 0, m.Cursor(), "ViewAt must not move the cursor")
	assert.Len(t, m.History(), 1)

	again, err := m.ViewAt(-1)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Active, again.Active)
	assert.Equal(t, len(snapshot.Pieces), len(again.Pieces))
}

func TestApplyAfterUndoDiscardsRedoTail(t *testing.T) {
	v, err := variant.ByID(variant.American)
	require.NoError(t, err)

	m := game.NewMachine(v, false)
	first := firstLegalMove(t, m.LiveState(), v)
	require.NoError(t, m.Apply(first))
	require.NoError(t, m.Undo(context.Background()))

	second := firstLegalMove(t, m.LiveState(), v)
	require.NoError(t, m.Apply(second))

	assert.ErrorIs(t, m.Redo(context.Background()), game.ErrNothingToRedo, "a new move after undo must discard the redo tail")
	assert.Len(t, m.History(), 1)
}

func TestUndoRedoDisabledInMultiplayer(t *testing.T) {
	v, err := variant.ByID(variant.American)
	require.NoError(t, err)

	m := game.NewMachine(v, true)
	move := firstLegalMove(t, m.LiveState(), v)
	require.NoError(t, m.Apply(move))

	assert.ErrorIs(t, m.Undo(context.Background()), game.ErrHistoryNavigationDisabled)
	assert.ErrorIs(t, m.Redo(context.Background()), game.ErrHistoryNavigationDisabled)
}

func TestApplyRejectsMoveOnceGameOver(t *testing.T) {
	v, err := variant.ByID(variant.American)
	require.NoError(t, err)

	lone := &board.GameState{
		BoardSize: v.BoardSize,
		Active:    board.Red,
		Status:    board.InProgress,
		Pieces: map[int]board.Piece{
			1: {ID: 1, Colour: board.Black, Kind: board.Man, Position: board.NewPosition(2, 1, 8)},
		},
	}
	lone.Status = rules.CheckResult(lone, v)
	m := game.NewMachineFromState(v, lone, false)
	require.Equal(t, board.BlackWins, m.LiveState().Status, "red has no pieces, black already won")

	err = m.Apply(board.Move{MoverID: 1, Kind: board.Simple})
	assert.ErrorIs(t, err, game.ErrGameOver)
}
