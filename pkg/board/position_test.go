package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tobagin/draughts-core/pkg/board"
)

func TestIsDark(t *testing.T) {
	assert.True(t, board.NewPosition(0, 1, 8).IsDark())
	assert.True(t, board.NewPosition(1, 0, 8).IsDark())
	assert.False(t, board.NewPosition(0, 0, 8).IsDark())
	assert.False(t, board.NewPosition(7, 7, 8).IsDark())
}

func TestSquareNumberRoundTrip(t *testing.T) {
	for size := 8; size <= 12; size += 2 {
		total := size * size / 2
		for n := 1; n <= total; n++ {
			pos, err := board.PositionFromSquareNumber(size, n)
			assert.NoError(t, err)
			assert.True(t, pos.IsDark())

			got, err := board.SquareNumber(pos)
			assert.NoError(t, err)
			assert.Equal(t, n, got)
		}
	}
}

func TestSquareNumberAmerican8x8(t *testing.T) {
	// Square 1 is the top-left-most dark square; square 32 the bottom-right-most.
	n, err := board.SquareNumber(board.NewPosition(0, 1, 8))
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = board.SquareNumber(board.NewPosition(7, 6, 8))
	assert.NoError(t, err)
	assert.Equal(t, 32, n)
}

func TestSquareNumberRejectsLightSquare(t *testing.T) {
	_, err := board.SquareNumber(board.NewPosition(0, 0, 8))
	assert.Error(t, err)
}

func TestIterateDiagonalStopsAtEdge(t *testing.T) {
	it := board.IterateDiagonal(board.NewPosition(0, 1, 8), board.Direction{DRow: -1, DCol: -1})
	_, ok := it.Next()
	assert.False(t, ok, "no squares beyond the top-left edge")

	it = board.IterateDiagonal(board.NewPosition(0, 1, 8), board.Direction{DRow: 1, DCol: 1})
	var positions []board.Position
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		positions = append(positions, p)
	}
	assert.Len(t, positions, 6)
	assert.Equal(t, board.NewPosition(6, 7, 8), positions[len(positions)-1])
}

func TestPromotionRow(t *testing.T) {
	assert.Equal(t, 0, board.PromotionRow(board.Red, 8))
	assert.Equal(t, 7, board.PromotionRow(board.Black, 8))
	assert.Equal(t, 9, board.PromotionRow(board.Black, 10))
}

func TestForwardDiagonals(t *testing.T) {
	for _, d := range board.ForwardDiagonals(board.Red) {
		assert.True(t, board.IsForward(board.Red, d))
		assert.False(t, board.IsForward(board.Black, d))
	}
}
