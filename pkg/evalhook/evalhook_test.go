package evalhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tobagin/draughts-core/pkg/board"
	"github.com/tobagin/draughts-core/pkg/variant"
)

func TestMaterialEvaluateFavoursExtraKing(t *testing.T) {
	v, err := variant.ByID(variant.American)
	assert.NoError(t, err)

	state := board.NewGameState([]board.Piece{
		{ID: 1, Colour: board.Red, Kind: board.King, Position: board.NewPosition(0, 1, v.BoardSize)},
		{ID: 2, Colour: board.Black, Kind: board.Man, Position: board.NewPosition(7, 0, v.BoardSize)},
	}, v.BoardSize)

	score := Material{Weights: DefaultMaterialWeights}.Evaluate(state, v)
	assert.Equal(t, DefaultMaterialWeights.King-DefaultMaterialWeights.Man, score)
}

func TestUnitSignsByColour(t *testing.T) {
	assert.Equal(t, Score(1), Unit(board.Red))
	assert.Equal(t, Score(-1), Unit(board.Black))
}

func TestCropClampsToRange(t *testing.T) {
	assert.Equal(t, MaxScore, Crop(MaxScore+100))
	assert.Equal(t, MinScore, Crop(MinScore-100))
	assert.Equal(t, Score(5), Crop(5))
}

func TestMoveGainCountsCapturesAndPromotion(t *testing.T) {
	m := board.Move{Kind: board.CaptureMove, Captured: []int{9}, Promoted: true}
	gain := MoveGain(m, DefaultMaterialWeights)
	assert.Equal(t, DefaultMaterialWeights.Man+(DefaultMaterialWeights.King-DefaultMaterialWeights.Man), gain)
}
