package board_test

import (
	"testing"

	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/tobagin/draughts-core/pkg/board"
)

func TestGameStateCloneIsShareFree(t *testing.T) {
	s := board.NewGameState([]board.Piece{
		{ID: 1, Colour: board.Red, Kind: board.Man, Position: board.NewPosition(5, 0, 8)},
	}, 8)
	s.LastMove = lang.Some(board.Move{MoverID: 1, Captured: []int{7}})

	clone := s.Clone()
	clone.Pieces[1] = board.Piece{ID: 1, Colour: board.Black, Kind: board.King, Position: board.NewPosition(0, 1, 8)}
	m, _ := clone.LastMove.V()
	m.Captured[0] = 99

	orig, ok := s.Pieces[1]
	assert.True(t, ok)
	assert.Equal(t, board.Red, orig.Colour)

	origMove, _ := s.LastMove.V()
	assert.Equal(t, 7, origMove.Captured[0])
}

func TestGameStateHashStableUnderPermutation(t *testing.T) {
	a := board.NewGameState([]board.Piece{
		{ID: 1, Colour: board.Red, Kind: board.Man, Position: board.NewPosition(5, 0, 8)},
		{ID: 2, Colour: board.Black, Kind: board.Man, Position: board.NewPosition(2, 1, 8)},
	}, 8)
	b := board.NewGameState([]board.Piece{
		{ID: 2, Colour: board.Black, Kind: board.Man, Position: board.NewPosition(2, 1, 8)},
		{ID: 1, Colour: board.Red, Kind: board.Man, Position: board.NewPosition(5, 0, 8)},
	}, 8)

	assert.Equal(t, a.Hash(), b.Hash())
}

func TestGameStateHashDiffersOnActiveColour(t *testing.T) {
	a := board.NewGameState([]board.Piece{
		{ID: 1, Colour: board.Red, Kind: board.Man, Position: board.NewPosition(5, 0, 8)},
	}, 8)
	b := a.Clone()
	b.Active = board.Black

	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestGameStateValidateRejectsOverlap(t *testing.T) {
	s := board.NewGameState([]board.Piece{
		{ID: 1, Colour: board.Red, Kind: board.Man, Position: board.NewPosition(5, 0, 8)},
		{ID: 2, Colour: board.Black, Kind: board.Man, Position: board.NewPosition(5, 0, 8)},
	}, 8)

	assert.Error(t, s.Validate())
}
